// Command swaggerui serves a Swagger UI bundle pointed at a configured API
// document.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drblury/swaggerui/config"
	"github.com/drblury/swaggerui/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "swaggerui: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("swagger ui listening",
			"addr", cfg.Server.Addr,
			"path", cfg.SwaggerUI.Path,
			"docs", cfg.SwaggerUI.Docs,
			"router", cfg.Server.Router,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadConfig reads the config file named by -config and applies the flags
// that were set on the command line over it.
func loadConfig(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("swaggerui", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	addr := fs.String("addr", "", "listen address")
	path := fs.String("path", "", "route the Swagger UI entry page is mounted at")
	docs := fs.String("docs", "", "API document location loaded by the UI")
	assetsDir := fs.String("assets", "", "directory holding an unpacked Swagger UI bundle")
	spec := fs.String("spec", "", "local OpenAPI document to serve at the docs path")
	routerKind := fs.String("router", "", "router implementation: servemux, chi, gorilla")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "path":
			cfg.SwaggerUI.Path = *path
		case "docs":
			cfg.SwaggerUI.Docs = *docs
		case "assets":
			cfg.SwaggerUI.Assets = *assetsDir
		case "spec":
			cfg.SwaggerUI.SpecFile = *spec
		case "router":
			cfg.Server.Router = router.Kind(*routerKind)
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
