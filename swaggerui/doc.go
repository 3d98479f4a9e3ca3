// Package swaggerui mounts a Swagger UI bundle on a host router.
//
// A Handler registers three GET routes through a router.Registrar: the
// entry page at the configured base path, and root and one-level nested
// bundle assets under the parent of that path. The entry page has the
// default petstore document URL replaced with the request base path joined
// to the configured docs path, so the UI opens the deployment's own API
// document.
//
// See ExampleHandler_Register for a complete wiring.
package swaggerui
