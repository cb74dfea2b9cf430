package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/customer-api/internal/config"
	"github.com/deppfellow/customer-api/internal/errs"
	"github.com/deppfellow/customer-api/internal/server"
	"github.com/deppfellow/customer-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(logger zerolog.Logger) *server.Server {
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func renderError(t *testing.T, err error, method string) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/customers", nil), rec)

	NewGlobalMiddlewares(newTestServer(zerolog.Nop())).GlobalErrorHandler(err, c)

	var body errs.HTTPError
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "http error",
			err:         errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "customer_id", Error: "is required"}}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "BAD_REQUEST",
			wantMessage: "Validation failed",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("get: %w", sqlerr.NoRows("customers")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Customer not found",
		},
		{
			name:        "unknown route",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Route not found",
		},
		{
			name:        "echo method not allowed",
			err:         echo.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "METHOD_NOT_ALLOWED",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "driver error is sanitized",
			err:         &pgconn.PgError{Code: "42P01", Message: "relation \"customers\" does not exist"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "plain error",
			err:         errors.New("upstream exploded"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := renderError(t, tt.err, http.MethodGet)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestGlobalErrorHandler_KeepsFieldErrors(t *testing.T) {
	fields := []errs.FieldError{{Field: "customer_id", Error: "is required"}}
	_, body := renderError(t, errs.NewBadRequestError("Validation failed", true, nil, fields), http.MethodPost)

	assert.Equal(t, fields, body.Errors)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_Head(t *testing.T) {
	rec, _ := renderError(t, echo.ErrNotFound, http.MethodHead)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFromError(sqlerr.NoRows("customers")))
	assert.Equal(t, http.StatusBadRequest, statusFromError(errs.NewBadRequestError("x", false, nil, nil)))
	assert.Equal(t, http.StatusTeapot, statusFromError(echo.NewHTTPError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom")))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("generates when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()

		require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))

		require.NoError(t, h(e.NewContext(req, httptest.NewRecorder())))
		assert.Len(t, seen, 36)
	})
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NotNil(t, GetLogger(c))
	assert.Equal(t, zerolog.Disabled, GetLogger(c).GetLevel())
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(zerolog.New(&buf))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers?customer_id=a", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(RequestIDKey, "req-9")

	h := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return nil
	})
	require.NoError(t, h(c))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "req-9", entry["request_id"])
		assert.Equal(t, http.MethodGet, entry["method"])
	}
}

func TestCORS_AllowsAnyOriginWithCredentials(t *testing.T) {
	e := echo.New()
	e.Use(NewGlobalMiddlewares(newTestServer(zerolog.Nop())).CORS())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderOrigin, "https://shop.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func TestTracing_NoopWithoutNewRelic(t *testing.T) {
	tm := NewTracingMiddleware(newTestServer(zerolog.Nop()), nil)
	called := false

	h := tm.NewRelicMiddleware()(tm.EnhanceTracing()(func(c echo.Context) error {
		called = true
		return nil
	}))

	require.NoError(t, h(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))
	assert.True(t, called)
}
