package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
)

// Registrar is the part of a host router a UI provider needs: somewhere to
// register (method, pattern, handler) triples and a way to read back the
// single-segment {name} captures of a matched pattern.
type Registrar interface {
	Handle(method, pattern string, handler http.Handler)
	Param(r *http.Request, name string) string
}

// ServeMux adapts a Go 1.22+ http.ServeMux.
type ServeMux struct {
	mux *http.ServeMux
}

// NewServeMux wraps mux, allocating one when nil.
func NewServeMux(mux *http.ServeMux) *ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}
	return &ServeMux{mux: mux}
}

// Handle registers handler for method and pattern. Patterns ending in a
// slash are anchored with {$} so they do not act as a subtree catch-all.
func (s *ServeMux) Handle(method, pattern string, handler http.Handler) {
	if strings.HasSuffix(pattern, "/") {
		pattern += "{$}"
	}
	s.mux.Handle(strings.TrimSpace(method+" "+pattern), handler)
}

// Param returns the wildcard value captured for name.
func (s *ServeMux) Param(r *http.Request, name string) string {
	return r.PathValue(name)
}

// ServeHTTP dispatches to the wrapped mux.
func (s *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Chi adapts a go-chi router.
type Chi struct {
	router chi.Router
}

// NewChi wraps router, allocating one when nil.
func NewChi(router chi.Router) *Chi {
	if router == nil {
		router = chi.NewRouter()
	}
	return &Chi{router: router}
}

// Handle registers handler for method and pattern.
func (c *Chi) Handle(method, pattern string, handler http.Handler) {
	c.router.Method(method, pattern, handler)
}

// Param returns the URL parameter captured for name.
func (c *Chi) Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// ServeHTTP dispatches to the wrapped router.
func (c *Chi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

// Gorilla adapts a gorilla/mux router.
type Gorilla struct {
	router *mux.Router
}

// NewGorilla wraps router, allocating one when nil.
func NewGorilla(router *mux.Router) *Gorilla {
	if router == nil {
		router = mux.NewRouter()
	}
	return &Gorilla{router: router}
}

// Handle registers handler for method and pattern.
func (g *Gorilla) Handle(method, pattern string, handler http.Handler) {
	g.router.Handle(pattern, handler).Methods(method)
}

// Param returns the route variable captured for name.
func (g *Gorilla) Param(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// ServeHTTP dispatches to the wrapped router.
func (g *Gorilla) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.router.ServeHTTP(w, r)
}

// Kind names a supported Registrar implementation.
type Kind string

const (
	KindServeMux Kind = "servemux"
	KindChi      Kind = "chi"
	KindGorilla  Kind = "gorilla"
)

// RoutingHandler is a Registrar that can also serve the routes it holds.
type RoutingHandler interface {
	Registrar
	http.Handler
}

// NewRegistrar builds an empty router of the given kind. It returns false
// for unknown kinds.
func NewRegistrar(kind Kind) (RoutingHandler, bool) {
	switch kind {
	case KindServeMux, "":
		return NewServeMux(nil), true
	case KindChi:
		return NewChi(nil), true
	case KindGorilla:
		return NewGorilla(nil), true
	default:
		return nil, false
	}
}
