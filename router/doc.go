// Package router connects a UI provider to a host router.
//
// Registrar is the capability a provider registers its routes against;
// ServeMux, Chi, and Gorilla adapt the standard library mux, go-chi, and
// gorilla/mux to it. New wraps the resulting handler in the default
// middleware chain: request logging, CORS, a per-request timeout, and
// optional OpenAPI request validation.
package router
