package databaseutils

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/siahsang/news/internal/utils/databaseutils"

// queryMetrics holds the OpenTelemetry metric instruments for query execution.
type queryMetrics struct {
	queryCount    metric.Int64Counter
	queryDuration metric.Float64Histogram
	queryErrors   metric.Int64Counter
}

func initQueryMetrics() *queryMetrics {
	meter := otel.Meter(meterName)

	queryCount, _ := meter.Int64Counter("db.query.count",
		metric.WithDescription("Total number of executed queries"))
	queryDuration, _ := meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Query duration in milliseconds"),
		metric.WithUnit("ms"))
	queryErrors, _ := meter.Int64Counter("db.query.errors",
		metric.WithDescription("Total number of failed queries"))

	return &queryMetrics{
		queryCount:    queryCount,
		queryDuration: queryDuration,
		queryErrors:   queryErrors,
	}
}

func (sqlTemplate *SQLTemplate) observe(ctx context.Context, query string, start time.Time, err error) {
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("db.operation", queryVerb(query)))
	sqlTemplate.metrics.queryCount.Add(ctx, 1, attrs)
	sqlTemplate.metrics.queryDuration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		sqlTemplate.metrics.queryErrors.Add(ctx, 1, attrs)
	}

	if sqlTemplate.log != nil && elapsed > sqlTemplate.SlowQueryThreshold {
		sqlTemplate.log.LogAttrs(ctx, slog.LevelWarn, "slow query",
			slog.String("query", strings.Join(strings.Fields(query), " ")),
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", sqlTemplate.SlowQueryThreshold),
		)
	}
}

// queryVerb extracts the leading SQL keyword for use as a metric attribute.
func queryVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(fields[0])
}
