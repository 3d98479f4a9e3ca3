package swaggerui

import (
	"bytes"
	"net/http"

	"github.com/drblury/swaggerui/assets"
	"github.com/drblury/swaggerui/public"
)

// RenderIndex resolves the entry page and replaces every occurrence of
// DefaultDocumentURL with basePath followed by the docs path. A missing entry
// page comes back as the NotFound response, untouched.
func (h *Handler) RenderIndex(basePath string) (*assets.Response, error) {
	resp, err := h.resolver.Resolve(public.IndexFile)
	if err != nil {
		return nil, err
	}
	if resp.Found() {
		resp.Body = bytes.ReplaceAll(resp.Body, []byte(DefaultDocumentURL), []byte(basePath+h.docsPath))
	}
	return resp, nil
}

// GetIndex serves the rewritten entry page.
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	resp, err := h.RenderIndex(h.basePath(r))
	h.writeAsset(w, r, resp, err)
}

// GetAsset serves a file at the root of the bundle.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request, asset string) {
	resp, err := h.resolver.Resolve(asset)
	h.writeAsset(w, r, resp, err)
}

// GetAssetFromDirectory serves a file one directory below the bundle root.
func (h *Handler) GetAssetFromDirectory(w http.ResponseWriter, r *http.Request, directory, asset string) {
	resp, err := h.resolver.Resolve(directory, asset)
	h.writeAsset(w, r, resp, err)
}

// GetOpenAPIJSON serves the document returned by the SwaggerProvider.
func (h *Handler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	if h.swaggerProvider == nil {
		h.HandleInternalServerError(w, r, errSwaggerNotConfigured, "failed to load api document")
		return
	}

	body, err := h.swaggerProvider()
	if err != nil {
		h.HandleInternalServerError(w, r, err, "failed to load api document")
		return
	}
	h.RespondWithContent(w, r, http.StatusOK, "application/json", body)
}

// GetHealthz reports liveness.
func (h *Handler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.runChecks(r.Context(), h.livenessChecks); err != nil {
		h.HandleServiceUnavailableError(w, r, err, "liveness probe failed")
		return
	}
	h.respondProbe(w, r, "ok")
}

// GetReadyz reports readiness.
func (h *Handler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.runChecks(r.Context(), h.readinessChecks); err != nil {
		h.HandleServiceUnavailableError(w, r, err, "readiness probe failed")
		return
	}
	h.respondProbe(w, r, "ready")
}

// writeAsset answers a resolved asset. A resolution error means the bundle
// holds a file the MIME table does not cover; it is reported as a 500.
func (h *Handler) writeAsset(w http.ResponseWriter, r *http.Request, resp *assets.Response, err error) {
	if err != nil {
		h.HandleInternalServerError(w, r, err, "asset bundle is misconfigured")
		return
	}
	h.RespondWithContent(w, r, resp.Status, resp.ContentTypeHeader(), resp.Body)
}
