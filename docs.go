// Package swaggerui serves a Swagger UI bundle from a fixed asset root and
// points it at a configurable API document.
//
// The entry page carries the stock petstore URL as a placeholder. Every
// request for the entry page replaces it with the request base path followed
// by the configured docs location, so one bundle serves any mount point.
// Remaining bundle files are served as-is with a Content-Type taken from an
// explicit extension table.
//
// # Packages
//
//   - assets: resolves bundle files below a root and negotiates their
//     content type.
//   - swaggerui: the HTTP handler, its route layout, and the optional API
//     document and probe endpoints.
//   - router: a Registrar abstraction over net/http, chi, and gorilla/mux,
//     plus the logging, CORS, timeout, and OpenAPI validation middleware.
//   - responder: JSON rendering and RFC 9457 problem details.
//   - probe: readiness checks for files, Mongo, and HTTP dependencies.
//   - config: YAML and environment configuration for the command.
//   - public: the embedded default bundle.
//
// # Quick Start
//
//	handler := swaggerui.NewHandler(
//	    swaggerui.WithDocsPath("/openapi.json"),
//	    swaggerui.WithResponder(responder.NewResponder(responder.WithLogger(logger))),
//	)
//
//	reg := router.NewServeMux(nil)
//	if err := handler.Register(reg, "/api/docs"); err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", router.New(reg, router.WithLogger(logger)))
//
// With that mount the entry page answers at /api/docs and the bundle files
// below /api.
package swaggerui
