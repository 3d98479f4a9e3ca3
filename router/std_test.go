package router

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewAllowsMiddlewareOverride(t *testing.T) {
	var order []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	mux := New(handler, WithMiddlewareChain(
		recordingMiddleware("one", &order),
		recordingMiddleware("two", &order),
	))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := []string{"one-before", "two-before", "handler", "two-after", "one-after"}
	if !reflect.DeepEqual(order, expected) {
		t.Fatalf("unexpected middleware order: got %v, want %v", order, expected)
	}
	if rr.Code != http.StatusTeapot {
		t.Fatalf("unexpected response code: got %d want %d", rr.Code, http.StatusTeapot)
	}
}

func TestNewSupportsPrependAndAppendMiddlewares(t *testing.T) {
	var order []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	})

	mux := New(
		handler,
		WithoutOpenAPIValidation(),
		WithoutCORSMiddleware(),
		WithoutTimeoutMiddleware(),
		WithoutLoggingMiddleware(),
		WithMiddlewares(recordingMiddleware("outer", &order)),
		WithTrailingMiddlewares(recordingMiddleware("inner", &order)),
	)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := []string{"outer-before", "inner-before", "handler", "inner-after", "outer-after"}
	if !reflect.DeepEqual(order, expected) {
		t.Fatalf("unexpected middleware order: got %v want %v", order, expected)
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected response code: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestNewAppliesCORSEnforcementFromConfig(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux := New(
		handler,
		WithConfigMutator(func(cfg *Config) {
			cfg.CORS = CORSConfig{
				Origins:          []string{"https://example.com"},
				Methods:          []string{http.MethodGet, http.MethodOptions},
				Headers:          []string{"Content-Type"},
				AllowCredentials: true,
			}
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/docs", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("unexpected access-control-allow-origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET,OPTIONS" {
		t.Fatalf("unexpected access-control-allow-methods: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Fatalf("unexpected access-control-allow-headers: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("unexpected access-control-allow-credentials: got %q", got)
	}
}

func TestWithoutCORSMiddlewareSkipsHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux := New(
		handler,
		WithConfigMutator(func(cfg *Config) {
			cfg.CORS = CORSConfig{Origins: []string{"*"}}
		}),
		WithoutCORSMiddleware(),
	)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected CORS headers to be skipped when middleware disabled")
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status code: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestTimeoutMiddlewareCanBeDisabled(t *testing.T) {
	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	withTimeout := New(slowHandler, WithConfig(Config{Timeout: time.Millisecond}))
	withoutTimeout := New(slowHandler, WithConfig(Config{Timeout: time.Millisecond}), WithoutTimeoutMiddleware())

	rrTimeout := httptest.NewRecorder()
	withTimeout.ServeHTTP(rrTimeout, httptest.NewRequest(http.MethodGet, "/", nil))
	if rrTimeout.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected timeout handler to fire, got %d", rrTimeout.Code)
	}

	rrNoTimeout := httptest.NewRecorder()
	withoutTimeout.ServeHTTP(rrNoTimeout, httptest.NewRequest(http.MethodGet, "/", nil))
	if rrNoTimeout.Code != http.StatusOK {
		t.Fatalf("expected handler to complete when timeout disabled, got %d", rrNoTimeout.Code)
	}
}

func TestLoggingMiddlewareRecordsStatusAndRedacts(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := New(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "File not found", http.StatusNotFound)
		}),
		WithLogger(logger),
		WithConfig(Config{HideHeaders: []string{"authorization"}, QuietdownRoutes: []string{"/healthz"}}),
	)

	req := httptest.NewRequest(http.MethodGet, "/docs/missing.js", nil)
	req.Header.Set("Authorization", "Bearer secret")
	mux.ServeHTTP(httptest.NewRecorder(), req)

	logged := logs.String()
	if !strings.Contains(logged, `"status":404`) {
		t.Fatalf("expected status to be logged, got %s", logged)
	}
	if strings.Contains(logged, "secret") {
		t.Fatalf("expected authorization header to be redacted, got %s", logged)
	}
	if !strings.Contains(logged, "[REDACTED - 13 bytes]") {
		t.Fatalf("expected redaction marker, got %s", logged)
	}

	logs.Reset()
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if strings.Contains(logs.String(), "request served") {
		t.Fatalf("expected quiet route to skip logging, got %s", logs.String())
	}
}

func TestShouldQuietRoute(t *testing.T) {
	quiet := []string{"/healthz", "/docs/"}

	testCases := map[string]bool{
		"/healthz":              true,
		"/healthz/extra":        false,
		"/docs/swagger-ui.css":  true,
		"/docs/fonts/a.woff2":   true,
		"/docs":                 false,
		"/swagger-ui-bundle.js": false,
	}
	for path, want := range testCases {
		if got := shouldQuietRoute(path, quiet); got != want {
			t.Errorf("shouldQuietRoute(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNewPanicsWhenHandlerNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when handler is nil")
		}
	}()

	New(nil)
}

func recordingMiddleware(label string, sink *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*sink = append(*sink, label+"-before")
			next.ServeHTTP(w, r)
			*sink = append(*sink, label+"-after")
		})
	}
}
