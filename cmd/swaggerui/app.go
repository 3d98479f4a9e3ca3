package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drblury/swaggerui/assets"
	"github.com/drblury/swaggerui/config"
	"github.com/drblury/swaggerui/probe"
	"github.com/drblury/swaggerui/public"
	"github.com/drblury/swaggerui/responder"
	"github.com/drblury/swaggerui/router"
	"github.com/drblury/swaggerui/swaggerui"
)

type app struct {
	handler http.Handler
	closers []func(context.Context) error
	logger  *slog.Logger
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(context.Background()); err != nil {
			a.logger.Warn("failed to release dependency", "error", err)
		}
	}
}

// newApp wires the resolver, the UI handler, its probes, and the middleware
// chain from cfg.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger}

	resolver, err := newResolver(cfg.SwaggerUI.Assets)
	if err != nil {
		return nil, err
	}

	opts := []swaggerui.Option{
		swaggerui.WithResponder(responder.NewResponder(responder.WithLogger(logger))),
		swaggerui.WithResolver(resolver),
		swaggerui.WithDocsPath(cfg.SwaggerUI.Docs),
		swaggerui.WithProbeTimeout(cfg.Probes.Timeout),
	}
	if cfg.SwaggerUI.ForwardedPrefix {
		opts = append(opts, swaggerui.WithBasePathFunc(swaggerui.ForwardedPrefix))
	}

	var doc *openapi3.T
	if cfg.SwaggerUI.SpecFile != "" {
		var body []byte
		doc, body, err = loadDocument(ctx, cfg.SwaggerUI.SpecFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, swaggerui.WithSwaggerProvider(func() ([]byte, error) {
			return body, nil
		}))
	}

	readiness := []probe.Func{
		probe.NewFileProbe("bundle", resolver.Root(), public.IndexFile),
	}
	if cfg.Probes.DocsURLCheck && isAbsoluteURL(cfg.SwaggerUI.Docs) {
		readiness = append(readiness, probe.NewHTTPProbe("docs", http.MethodGet, cfg.SwaggerUI.Docs, nil, probe.WithHTTPJSONDocument()))
	}
	if cfg.Probes.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Probes.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)
		readiness = append(readiness, probe.NewMongoPingProbe(client, nil))
	}
	opts = append(opts, swaggerui.WithReadinessChecks(readiness...))

	handler := swaggerui.NewHandler(opts...)

	reg, ok := router.NewRegistrar(cfg.Server.Router)
	if !ok {
		return nil, fmt.Errorf("unknown router %q", cfg.Server.Router)
	}
	// Probes go first so gorilla, which matches in registration order, does
	// not hand them to a root level asset route.
	handler.RegisterProbes(reg, "")
	if err := handler.Register(reg, cfg.SwaggerUI.Path); err != nil {
		return nil, err
	}

	routerOpts := []router.Option{
		router.WithLogger(logger),
		router.WithConfig(cfg.Server.RouterConfig()),
	}
	if doc != nil && cfg.Server.ValidateRequests {
		routerOpts = append(routerOpts, router.WithSwagger(doc))
	}
	a.handler = router.New(reg, routerOpts...)
	return a, nil
}

func newResolver(dir string) (*assets.Resolver, error) {
	if dir == "" {
		return assets.NewResolver(public.FS), nil
	}
	return assets.NewDirResolver(dir)
}

// loadDocument loads and validates an OpenAPI document from disk and
// returns its JSON encoding for the docs route.
func loadDocument(ctx context.Context, path string) (*openapi3.T, []byte, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load api document %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, nil, fmt.Errorf("validate api document %s: %w", path, err)
	}
	body, err := doc.MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("encode api document %s: %w", path, err)
	}
	return doc, body, nil
}

func isAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
