// Package public embeds the Swagger UI bundle served by default.
package public

import "embed"

// IndexFile names the entry document of the bundle.
const IndexFile = "index.html"

// FS holds the bundle files at its root.
//
//go:embed *.html *.js *.css
var FS embed.FS
