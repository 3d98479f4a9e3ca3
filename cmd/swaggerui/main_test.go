package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drblury/swaggerui/router"
)

const petsDocument = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
`

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("swaggerui:\n  path: /from-file\n  docs: /file.json\nserver:\n  addr: :9000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig([]string{"-config", cfgPath, "-path", "/api/docs", "-router", "chi"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SwaggerUI.Path != "/api/docs" {
		t.Fatalf("expected flag path, got %s", cfg.SwaggerUI.Path)
	}
	if cfg.SwaggerUI.Docs != "/file.json" {
		t.Fatalf("expected docs from file, got %s", cfg.SwaggerUI.Docs)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("expected addr from file, got %s", cfg.Server.Addr)
	}
	if cfg.Server.Router != router.KindChi {
		t.Fatalf("expected chi router, got %s", cfg.Server.Router)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := loadConfig([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if _, err := loadConfig([]string{"-path", "docs"}, io.Discard); err == nil {
		t.Fatal("expected relative path to be rejected")
	}
	if _, err := loadConfig([]string{"-router", "echo"}, io.Discard); err == nil {
		t.Fatal("expected unknown router to be rejected")
	}
}

func TestNewApp_ServesUIAndDocument(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(specPath, []byte(petsDocument), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	for _, kind := range []router.Kind{router.KindServeMux, router.KindChi, router.KindGorilla} {
		t.Run(string(kind), func(t *testing.T) {
			cfg, err := loadConfig([]string{"-spec", specPath, "-router", string(kind)}, io.Discard)
			if err != nil {
				t.Fatalf("load config: %v", err)
			}

			a, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("new app: %v", err)
			}
			defer a.close()

			index := serve(t, a.handler, "/docs")
			if index.Code != http.StatusOK {
				t.Fatalf("expected index 200, got %d", index.Code)
			}
			if !strings.Contains(index.Body.String(), `url: "/openapi.json"`) {
				t.Fatalf("expected rewritten document url, got %s", index.Body.String())
			}

			doc := serve(t, a.handler, "/openapi.json")
			if doc.Code != http.StatusOK || !strings.Contains(doc.Body.String(), `"/pets"`) {
				t.Fatalf("unexpected document response %d %s", doc.Code, doc.Body.String())
			}

			for _, path := range []string{"/healthz", "/readyz"} {
				if rr := serve(t, a.handler, path); rr.Code != http.StatusOK {
					t.Fatalf("expected %s 200, got %d: %s", path, rr.Code, rr.Body.String())
				}
			}

			if rr := serve(t, a.handler, "/missing.js"); rr.Code != http.StatusNotFound {
				t.Fatalf("expected missing asset 404, got %d", rr.Code)
			}
		})
	}
}

func TestNewApp_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(specPath, []byte("openapi: 3.0.3\npaths: {}\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	cfg, err := loadConfig([]string{"-spec", specPath}, io.Discard)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if _, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected document without info to fail validation")
	}
}

func TestNewApp_MissingAssetsDir(t *testing.T) {
	cfg, err := loadConfig([]string{"-assets", filepath.Join(t.TempDir(), "absent")}, io.Discard)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if _, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected missing assets directory to fail")
	}
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}
