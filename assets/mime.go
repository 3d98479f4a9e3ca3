package assets

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrNoMimeType reports a bundle file whose extension is missing from the
// MimeTable. It marks a deployment defect rather than a client error.
var ErrNoMimeType = errors.New("no mime type")

const (
	fontMimeType = "font/opentype"
	jsMimeType   = "text/javascript"
	cssMimeType  = "text/css"
	pngMimeType  = "image/png"
	gifMimeType  = "image/gif"
	htmlMimeType = "text/html"
)

// MimeTable maps lowercase file extensions, without the leading dot, to the
// Content-Type served for them. A table never changes once built.
type MimeTable struct {
	types map[string]string
}

// NewMimeTable copies entries into a new table.
func NewMimeTable(entries map[string]string) MimeTable {
	return MimeTable{types: maps.Clone(entries)}
}

// DefaultMimeTable returns the table covering the bundled Swagger UI files.
func DefaultMimeTable() MimeTable {
	return NewMimeTable(map[string]string{
		"eot":   fontMimeType,
		"svg":   fontMimeType,
		"ttf":   fontMimeType,
		"woff":  fontMimeType,
		"woff2": fontMimeType,
		"js":    jsMimeType,
		"css":   cssMimeType,
		"png":   pngMimeType,
		"gif":   gifMimeType,
		"html":  htmlMimeType,
	})
}

// Lookup returns the MIME type registered for ext. Unknown extensions yield
// an error wrapping ErrNoMimeType.
func (t MimeTable) Lookup(ext string) (string, error) {
	mimeType, ok := t.types[ext]
	if !ok {
		return "", fmt.Errorf("%w for file extension %s was found", ErrNoMimeType, ext)
	}
	return mimeType, nil
}

// Extensions lists the registered extensions in sorted order.
func (t MimeTable) Extensions() []string {
	return slices.Sorted(maps.Keys(t.types))
}

// Len reports the number of entries.
func (t MimeTable) Len() int {
	return len(t.types)
}
