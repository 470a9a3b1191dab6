package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "reuses incoming id", incoming: "abc-123", wantSame: true},
		{name: "generates when missing"},
		{name: "replaces oversized id", incoming: strings.Repeat("x", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var seen string
			e.GET("/", func(c echo.Context) error {
				seen = GetRequestID(c)
				return c.NoContent(http.StatusOK)
			}, RequestID())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header = %q, context = %q, want equal and non-empty", got, seen)
			}
			if (got == tt.incoming) != tt.wantSame {
				t.Errorf("id = %q, reused = %v, want reused = %v", got, got == tt.incoming, tt.wantSame)
			}
		})
	}
}

func TestEnhanceContext_LoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := newTestServer()
	s.Logger = &logger

	e := echo.New()
	e.GET("/dropdown-search", func(c echo.Context) error {
		ctxLogger := zerolog.Ctx(c.Request().Context())
		if ctxLogger.GetLevel() == zerolog.Disabled {
			t.Error("zerolog.Ctx returned the disabled logger")
		}
		ctxLogger.Info().Msg("from request context")
		GetLogger(c).Info().Msg("from echo context")
		return c.NoContent(http.StatusOK)
	}, RequestID(), NewContextEnhancer(s).EnhanceContext())

	req := httptest.NewRequest(http.MethodGet, "/dropdown-search?keyword=aus", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		for _, field := range []string{`"request_id":"req-123"`, `"method":"GET"`, `"path":"/dropdown-search"`} {
			if !strings.Contains(line, field) {
				t.Errorf("log line %s missing %s", line, field)
			}
		}
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "08006"}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantType string
	}{
		{
			name:     "string body",
			err:      errs.NewBadRequestError("bad", false, nil, nil).WithBody("Keyword is required"),
			wantCode: http.StatusBadRequest,
			wantBody: "Keyword is required",
			wantType: echo.MIMETextPlain,
		},
		{
			name:     "json body",
			err:      errs.NewInternalServerError().WithBody(map[string]string{"message": "Failed to save enquiry"}),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Failed to save enquiry"}`,
			wantType: echo.MIMEApplicationJSON,
		},
		{
			name:     "standard shape",
			err:      errs.NewTooManyRequestsError("slow down"),
			wantCode: http.StatusTooManyRequests,
			wantBody: `"code":"TOO_MANY_REQUESTS"`,
			wantType: echo.MIMEApplicationJSON,
		},
		{
			name:     "database error is classified",
			err:      pgErr,
			wantCode: http.StatusInternalServerError,
			wantBody: `"code":"DATABASE_UNAVAILABLE"`,
			wantType: echo.MIMEApplicationJSON,
		},
		{
			name:     "unknown error hides details",
			err:      errors.New("secret detail"),
			wantCode: http.StatusInternalServerError,
			wantBody: `"message":"Internal Server Error"`,
			wantType: echo.MIMEApplicationJSON,
		},
		{
			name:     "echo not found",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `"message":"Route not found"`,
			wantType: echo.MIMEApplicationJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			if strings.Contains(rec.Body.String(), "secret detail") {
				t.Error("internal error detail leaked to the client")
			}
			if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, tt.wantType) {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestRateLimit_MemoryStore(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/enquiry", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit("enquiry", 2))

	codes := make([]int, 0, 3)
	var lastBody string
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/enquiry", nil))
		codes = append(codes, rec.Code)
		lastBody = rec.Body.String()
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("status codes = %v, want %v", codes, want)
		}
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(lastBody), &body); err != nil {
		t.Fatalf("429 body is not JSON: %q", lastBody)
	}
	if body["message"] != "Too many requests" {
		t.Errorf("message = %q, want Too many requests", body["message"])
	}
}

type fakeCounter struct {
	counts map[string]int64
	err    error
	ttl    time.Duration
}

func (f *fakeCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.ttl = ttl
	f.counts[key]++
	return f.counts[key], nil
}

func TestWindowStore(t *testing.T) {
	logger := zerolog.Nop()
	now := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	counter := &fakeCounter{counts: map[string]int64{}}

	store := &windowStore{
		counter: counter,
		prefix:  "ratelimit:enquiry",
		limit:   2,
		window:  time.Minute,
		now:     func() time.Time { return now },
		logger:  &logger,
	}

	for i, want := range []bool{true, true, false} {
		allowed, err := store.Allow("10.0.0.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if allowed != want {
			t.Errorf("request %d allowed = %v, want %v", i+1, allowed, want)
		}
	}

	if allowed, _ := store.Allow("10.0.0.2"); !allowed {
		t.Error("other client limited by first client's counter")
	}

	now = now.Add(time.Minute)
	if allowed, _ := store.Allow("10.0.0.1"); !allowed {
		t.Error("counter not reset in the next window")
	}

	if counter.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", counter.ttl)
	}
	wantKey := "ratelimit:enquiry:10.0.0.1:" + "1767268800"
	if _, ok := counter.counts[wantKey]; !ok {
		t.Errorf("counter keys = %v, want %s", counter.counts, wantKey)
	}
}

func TestWindowStore_FailsOpen(t *testing.T) {
	logger := zerolog.Nop()
	store := &windowStore{
		counter: &fakeCounter{err: errors.New("connection refused")},
		prefix:  "ratelimit:enquiry",
		limit:   1,
		window:  time.Minute,
		now:     time.Now,
		logger:  &logger,
	}

	allowed, err := store.Allow("10.0.0.1")
	if err != nil || !allowed {
		t.Errorf("Allow() = %v, %v, want true, nil", allowed, err)
	}
}
