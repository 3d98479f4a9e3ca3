// Package assets resolves files of a static UI bundle and negotiates their
// content type from an explicit extension table.
//
// The Resolver never invents a response for a misconfigured bundle: a file
// whose extension is absent from the MimeTable surfaces as ErrNoMimeType so
// the caller decides how loudly to fail.
package assets
