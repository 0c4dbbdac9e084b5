package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/siahsang/news/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication() *application {
	return &application{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func requestWithParams(params httprouter.Params) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func TestReadIDParam(t *testing.T) {
	app := newTestApplication()

	r := requestWithParams(httprouter.Params{{Key: "article_id", Value: "7"}})
	id, err := app.readIDParam(r, "article_id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	r = requestWithParams(httprouter.Params{{Key: "article_id", Value: "not-a-number"}})
	_, err = app.readIDParam(r, "article_id")
	assert.Error(t, err)

	r = requestWithParams(httprouter.Params{{Key: "article_id", Value: "1.5"}})
	_, err = app.readIDParam(r, "article_id")
	assert.Error(t, err)
}

func TestReadString(t *testing.T) {
	app := newTestApplication()
	qs := url.Values{"topic": []string{"coding"}}

	assert.Equal(t, "coding", app.readString(qs, "topic", ""))
	assert.Equal(t, "created_at", app.readString(qs, "sort_by", "created_at"))
}

func TestReadInt(t *testing.T) {
	app := newTestApplication()

	v := validator.New()
	qs := url.Values{"limit": []string{"25"}}
	assert.Equal(t, int64(25), app.readInt(qs, "limit", 10, v))
	assert.Equal(t, int64(10), app.readInt(qs, "p", 10, v))
	assert.True(t, v.IsValid())

	v = validator.New()
	qs = url.Values{"limit": []string{"lots"}}
	assert.Equal(t, int64(10), app.readInt(qs, "limit", 10, v))
	assert.False(t, v.IsValid())
	assert.Contains(t, v.Errors, "limit")
}

func TestWriteJSON(t *testing.T) {
	app := newTestApplication()
	recorder := httptest.NewRecorder()

	err := app.writeJSON(recorder, http.StatusCreated, envelope{"topic": map[string]string{"slug": "coding"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body, "topic")
}

func TestEndpointsDescriptorIsValidJSON(t *testing.T) {
	require.True(t, json.Valid(endpointsJSON))

	var endpoints map[string]any
	require.NoError(t, json.Unmarshal(endpointsJSON, &endpoints))
	assert.Contains(t, endpoints, "GET /api/articles")
}
