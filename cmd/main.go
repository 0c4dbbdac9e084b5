package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

type config struct {
	addr         string
	dsn          string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  time.Duration
}

type application struct {
	config config
	core   *core.Core
	logger *slog.Logger
	wg     sync.WaitGroup
}

func main() {
	var cfg config

	flag.StringVar(&cfg.addr, "addr", ":9091", "HTTP listen address")
	flag.StringVar(&cfg.dsn, "dsn", os.Getenv("NEWS_DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.maxIdleConns, "db-max-idle-conns", 10, "PostgreSQL max idle connections")
	flag.DurationVar(&cfg.maxIdleTime, "db-max-idle-time", 10*time.Second, "PostgreSQL max connection idle time")
	flag.Parse()

	logger := configLogger()
	logger.Info("Starting application...")

	db, err := openDBConnection(cfg)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	sqlTemplate := databaseutils.NewSQLTemplate(db, 3*time.Second, logger)

	app := application{
		config: cfg,
		core:   core.NewCore(db, logger, sqlTemplate),
		logger: logger,
		wg:     sync.WaitGroup{},
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	logger := slog.New(handler)
	return logger
}

func openDBConnection(cfg config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.maxOpenConns)
	db.SetMaxIdleConns(cfg.maxIdleConns)
	db.SetConnMaxIdleTime(cfg.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
