package swaggerui

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/drblury/swaggerui/assets"
	"github.com/drblury/swaggerui/probe"
	"github.com/drblury/swaggerui/public"
	"github.com/drblury/swaggerui/responder"
)

// DefaultDocumentURL is the API document the bundled entry page loads until
// it is rewritten.
const DefaultDocumentURL = "http://petstore.swagger.io/v2/swagger.json"

const (
	defaultDocsPath     = "/openapi.json"
	defaultProbeTimeout = 2 * time.Second
)

// SwaggerProvider returns the raw API document the UI should display. It is
// usually backed by an embedded or pre-loaded JSON file.
type SwaggerProvider func() ([]byte, error)

// BasePathFunc reports the prefix the application is mounted under for a
// request. It is prepended to the docs path when the entry page is rewritten.
type BasePathFunc func(r *http.Request) string

// Option configures a Handler built by NewHandler.
type Option func(*Handler)

// ProbeFunc is executed by the liveness and readiness endpoints.
type ProbeFunc = probe.Func

// Handler serves the Swagger UI bundle and points its entry page at the
// configured API document.
type Handler struct {
	*responder.Responder
	resolver        *assets.Resolver
	docsPath        string
	basePath        BasePathFunc
	swaggerProvider SwaggerProvider
	probeTimeout    time.Duration
	livenessChecks  []ProbeFunc
	readinessChecks []ProbeFunc
}

// NewHandler returns a Handler serving the embedded bundle with the default
// docs path.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		Responder:    responder.NewResponder(),
		resolver:     assets.NewResolver(public.FS),
		docsPath:     defaultDocsPath,
		basePath:     noBasePath,
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// WithResponder replaces the responder used for asset bodies and errors.
func WithResponder(r *responder.Responder) Option {
	return func(h *Handler) {
		if r != nil {
			h.Responder = r
		}
	}
}

// WithResolver serves assets from resolver instead of the embedded bundle.
func WithResolver(resolver *assets.Resolver) Option {
	return func(h *Handler) {
		if resolver != nil {
			h.resolver = resolver
		}
	}
}

// WithDocsPath sets the location of the API document, relative to the
// request base path, that the entry page loads.
func WithDocsPath(docsPath string) Option {
	return func(h *Handler) {
		h.docsPath = docsPath
	}
}

// WithBasePathFunc sets how the request base path is derived.
func WithBasePathFunc(fn BasePathFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.basePath = fn
		}
	}
}

// WithSwaggerProvider serves the API document itself at the docs path.
func WithSwaggerProvider(provider SwaggerProvider) Option {
	return func(h *Handler) {
		h.swaggerProvider = provider
	}
}

// WithProbeTimeout bounds the total time of a probe endpoint.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		if timeout > 0 {
			h.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the liveness checks.
func WithLivenessChecks(checks ...ProbeFunc) Option {
	return func(h *Handler) {
		h.livenessChecks = filterProbes(checks)
	}
}

// WithReadinessChecks replaces the readiness checks.
func WithReadinessChecks(checks ...ProbeFunc) Option {
	return func(h *Handler) {
		h.readinessChecks = filterProbes(checks)
	}
}

// DocsPath returns the configured docs path.
func (h *Handler) DocsPath() string {
	return h.docsPath
}

// Resolver returns the resolver assets are served from.
func (h *Handler) Resolver() *assets.Resolver {
	return h.resolver
}

// ForwardedPrefix reads the mount prefix set by a reverse proxy in the
// X-Forwarded-Prefix header.
func ForwardedPrefix(r *http.Request) string {
	return strings.TrimSuffix(strings.TrimSpace(r.Header.Get("X-Forwarded-Prefix")), "/")
}

func noBasePath(*http.Request) string {
	return ""
}

var errSwaggerNotConfigured = errors.New("api document provider not configured")
