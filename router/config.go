package router

import "time"

// Config tunes the default middleware chain.
type Config struct {
	// Timeout bounds each request. Zero disables the timeout middleware.
	Timeout time.Duration
	CORS    CORSConfig
	// QuietdownRoutes are excluded from request logging. An entry ending in
	// "/" silences every path below it.
	QuietdownRoutes []string
	// HideHeaders are redacted from request logs.
	HideHeaders []string
}

// CORSConfig lists what the CORS middleware allows. The middleware is only
// installed when Origins is non-empty; "*" allows any origin.
type CORSConfig struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}
