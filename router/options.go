package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures New via the functional options pattern.
type Option func(*options)

type options struct {
	config        Config
	logger        *slog.Logger
	swagger       *openapi3.T
	prepend       []Middleware
	append        []Middleware
	override      []Middleware
	enableOpenAPI bool
	enableCORS    bool
	enableTimeout bool
	enableLogging bool
}

func defaultOptions() *options {
	return &options{
		config: Config{
			Timeout: 30 * time.Second,
		},
		logger:        slog.Default(),
		enableOpenAPI: true,
		enableCORS:    true,
		enableTimeout: true,
		enableLogging: true,
	}
}

// middlewareChain orders the chain outermost first: prepended middlewares,
// then the defaults, then the trailing ones. An override replaces all three.
func (o *options) middlewareChain() []Middleware {
	if len(o.override) > 0 {
		return slices.Clone(o.override)
	}

	chain := make([]Middleware, 0, len(o.prepend)+len(o.append)+4)
	chain = append(chain, o.prepend...)
	chain = append(chain, o.defaultMiddlewares()...)
	chain = append(chain, o.append...)
	return chain
}

func (o *options) defaultMiddlewares() []Middleware {
	chain := make([]Middleware, 0, 4)

	if o.enableLogging && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}

	if o.enableCORS && shouldApplyCORS(o.config.CORS) {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}

	if o.enableTimeout && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}

	if o.enableOpenAPI && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger))
	}

	return chain
}

// WithConfig replaces the router configuration.
func WithConfig(cfg Config) Option {
	configCopy := sanitizeConfig(cfg)
	return func(o *options) {
		o.config = configCopy
	}
}

// WithConfigMutator edits the configuration after defaults are applied.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the logger used by the request logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSwagger enables request validation against the given OpenAPI
// document. Requests for paths the document does not describe are rejected,
// so only use it in front of the API the document covers.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithMiddlewares prepends middlewares ahead of the default chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.prepend = append(o.prepend, middlewares...)
	}
}

// WithTrailingMiddlewares appends middlewares after the default chain.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.append = append(o.append, middlewares...)
	}
}

// WithMiddlewareChain replaces the whole chain with middlewares.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	cloned := slices.Clone(middlewares)
	return func(o *options) {
		o.override = cloned
	}
}

// WithoutOpenAPIValidation disables request validation.
func WithoutOpenAPIValidation() Option {
	return func(o *options) {
		o.enableOpenAPI = false
	}
}

// WithoutCORSMiddleware disables CORS handling regardless of configuration.
func WithoutCORSMiddleware() Option {
	return func(o *options) {
		o.enableCORS = false
	}
}

// WithoutTimeoutMiddleware disables the per-request timeout.
func WithoutTimeoutMiddleware() Option {
	return func(o *options) {
		o.enableTimeout = false
	}
}

// WithoutLoggingMiddleware disables request logging.
func WithoutLoggingMiddleware() Option {
	return func(o *options) {
		o.enableLogging = false
	}
}

func sanitizeConfig(cfg Config) Config {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	return cfg
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return slices.Clone(values)
}

func shouldApplyCORS(cfg CORSConfig) bool {
	return len(cfg.Origins) > 0
}
