package assets

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultCharset is attached to every successful asset response.
	DefaultCharset = "UTF-8"

	notFoundBody        = "File not found"
	notFoundContentType = "text/plain"
)

// Response is the resolved form of a bundle file, ready to be written by an
// HTTP handler.
type Response struct {
	Status      int
	ContentType string
	Charset     string
	Body        []byte
}

// ContentTypeHeader renders the Content-Type header value. The charset is
// only attached to text types.
func (r *Response) ContentTypeHeader() string {
	if r.Charset == "" || !strings.HasPrefix(r.ContentType, "text/") {
		return r.ContentType
	}
	return r.ContentType + "; charset=" + r.Charset
}

// Found reports whether the response carries a bundle file.
func (r *Response) Found() bool {
	return r.Status == http.StatusOK
}

// NotFound builds the response returned for every absent asset.
func NotFound() *Response {
	return &Response{
		Status:      http.StatusNotFound,
		ContentType: notFoundContentType,
		Charset:     DefaultCharset,
		Body:        []byte(notFoundBody),
	}
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMimeTable replaces the default extension table.
func WithMimeTable(table MimeTable) ResolverOption {
	return func(r *Resolver) {
		r.mimes = table
	}
}

// Resolver maps asset names below a fixed root to responses. The root and
// the MIME table are read-only after construction, so a Resolver is safe for
// concurrent use.
type Resolver struct {
	root  fs.FS
	mimes MimeTable
}

// NewResolver builds a resolver over root.
func NewResolver(root fs.FS, opts ...ResolverOption) *Resolver {
	if root == nil {
		panic("assets: root filesystem cannot be nil")
	}
	r := &Resolver{
		root:  root,
		mimes: DefaultMimeTable(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// NewDirResolver builds a resolver over a directory on disk. The directory is
// made absolute once and must exist.
func NewDirResolver(dir string, opts ...ResolverOption) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: stat root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: root %q is not a directory", abs)
	}
	return NewResolver(os.DirFS(abs), opts...), nil
}

// Root exposes the filesystem the resolver reads from.
func (r *Resolver) Root() fs.FS {
	return r.root
}

// MimeTable returns the table used for content negotiation.
func (r *Resolver) MimeTable() MimeTable {
	return r.mimes
}

// Resolve loads the file addressed by segments below the root.
//
// Absent files, directories and names escaping the root all resolve to the
// NotFound response. A file whose extension has no MIME type yields an error
// wrapping ErrNoMimeType and no response.
func (r *Resolver) Resolve(segments ...string) (*Response, error) {
	name, ok := containedName(segments)
	if !ok {
		return NotFound(), nil
	}

	info, err := fs.Stat(r.root, name)
	if err != nil || !info.Mode().IsRegular() {
		return NotFound(), nil
	}

	mimeType, err := r.mimes.Lookup(Extension(name))
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}

	body, err := fs.ReadFile(r.root, name)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}

	return &Response{
		Status:      http.StatusOK,
		ContentType: mimeType,
		Charset:     DefaultCharset,
		Body:        body,
	}, nil
}

// Extension returns the part of the base name after its last dot, with case
// preserved. Names without a dot have no extension.
func Extension(name string) string {
	base := path.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx+1:]
}

// containedName joins route segments into an fs.FS name that cannot leave
// the root.
func containedName(segments []string) (string, bool) {
	if len(segments) == 0 {
		return "", false
	}
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
			return "", false
		}
	}
	name := path.Join(segments...)
	return name, fs.ValidPath(name)
}
