package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

const petsDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Pets", "version": "1.0.0"},
  "servers": [{"url": "https://pets.example.com"}],
  "paths": {
    "/pets": {
      "get": {
        "parameters": [
          {"name": "limit", "in": "query", "required": true, "schema": {"type": "integer"}}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func loadPetsDocument(t *testing.T) *openapi3.T {
	t.Helper()

	doc, err := openapi3.NewLoader().LoadFromData([]byte(petsDocument))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("validate document: %v", err)
	}
	return doc
}

func TestWithSwaggerValidatesDescribedOperations(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux := New(handler, WithSwagger(loadPetsDocument(t)), WithoutLoggingMiddleware())

	testCases := []struct {
		name   string
		target string
		want   int
	}{
		{"valid request", "/pets?limit=10", http.StatusOK},
		{"invalid parameter", "/pets?limit=many", http.StatusBadRequest},
		{"missing parameter", "/pets", http.StatusBadRequest},
		{"undescribed ui asset", "/swagger-ui.css", http.StatusOK},
		{"undescribed entry page", "/docs", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d (%s)", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestWithoutOpenAPIValidationSkipsChecks(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux := New(handler, WithSwagger(loadPetsDocument(t)), WithoutOpenAPIValidation())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pets?limit=many", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected validation to be skipped, got %d", rr.Code)
	}
}
