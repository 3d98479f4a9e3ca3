package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"
)

// New mounts handler, wrapped in the configured middleware chain, at the
// root of a fresh http.ServeMux.
func New(handler http.Handler, opts ...Option) *http.ServeMux {
	if handler == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", applyMiddlewares(handler, settings.middlewareChain()))
	return mux
}

func applyMiddlewares(handler http.Handler, middlewares []Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		handler = middlewares[i](handler)
	}
	return handler
}

// oapiMiddleware validates requests for operations the document describes
// and passes every other request, such as UI assets, straight through.
func oapiMiddleware(swagger *openapi3.T) Middleware {
	// Server entries would pin matching to the hosts in the document.
	swagger.Servers = nil

	routes, err := gorillamux.NewRouter(swagger)
	if err != nil {
		panic(fmt.Sprintf("router: build openapi routes: %v", err))
	}

	validatorOptions := &oapiMW.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
	}
	validate := oapiMW.OapiRequestValidatorWithOptions(swagger, validatorOptions)

	return func(next http.Handler) http.Handler {
		validated := validate(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, _, err := routes.FindRoute(r); err != nil {
				next.ServeHTTP(w, r)
				return
			}
			validated.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func loggingMiddleware(logger *slog.Logger, quietdownRoutes []string, hideHeaders []string) Middleware {
	logger.Debug("logging middleware configured",
		"quietdownRoutes", quietdownRoutes,
		"hideHeaders", hideHeaders,
	)

	quietRoutesCopy := cloneStrings(quietdownRoutes)
	redactedCopy := cloneStrings(hideHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldQuietRoute(r.URL.Path, quietRoutesCopy) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			headers := cloneHeaders(r.Header)
			redactHeaders(headers, redactedCopy)

			level := slog.LevelDebug
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request served",
				"path", r.URL.Path,
				"method", r.Method,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
				"header", headers,
			)
		})
	}
}

// corsMiddleware answers preflight requests and tags responses for allowed
// origins.
func corsMiddleware(cfg CORSConfig) Middleware {
	headers := strings.Join(cfg.Headers, ",")
	methods := strings.Join(cfg.Methods, ",")
	origins := cloneStrings(cfg.Origins)

	return func(next http.Handler) http.Handler {
		if len(origins) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allowedOrigin(origin, origins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Timeout")
	}
}

func allowedOrigin(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

func shouldQuietRoute(path string, quietdownRoutes []string) bool {
	for _, quiet := range quietdownRoutes {
		if path == quiet {
			return true
		}
		if strings.HasSuffix(quiet, "/") && strings.HasPrefix(path, quiet) {
			return true
		}
	}
	return false
}

func cloneHeaders(src http.Header) http.Header {
	return src.Clone()
}

func redactHeaders(headers http.Header, hideHeaders []string) {
	for _, header := range hideHeaders {
		canonical := http.CanonicalHeaderKey(header)
		values, exists := headers[canonical]
		if !exists {
			continue
		}

		redactedLen := 0
		for _, value := range values {
			redactedLen += len(value)
		}

		headers[canonical] = []string{fmt.Sprintf("[REDACTED - %d bytes]", redactedLen)}
	}
}
