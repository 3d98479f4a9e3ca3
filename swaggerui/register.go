package swaggerui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/drblury/swaggerui/router"
)

// AssetsPath derives the prefix bundle assets are served under from the
// path the UI is mounted at: the base path up to its last slash, or "/" when
// that would be empty. "/a/docs" gives "/a" and both "/docs" and "/" give
// "/". A base path without a leading slash is returned unchanged.
func AssetsPath(basePath string) string {
	if !strings.HasPrefix(basePath, "/") {
		return basePath
	}
	idx := strings.LastIndexByte(basePath, '/')
	if idx == 0 {
		return "/"
	}
	return basePath[:idx]
}

// Routes lists the patterns Register installs for basePath.
type Routes struct {
	Index     string
	Asset     string
	Directory string
	Document  string
}

// RoutesFor computes the patterns for basePath without registering them.
func (h *Handler) RoutesFor(basePath string) Routes {
	assetsPath := strings.TrimSuffix(AssetsPath(basePath), "/")
	routes := Routes{
		Index:     basePath,
		Asset:     assetsPath + "/{asset}",
		Directory: assetsPath + "/{directory}/{asset}",
	}
	if h.servesDocument() && h.docsPath != basePath {
		routes.Document = h.docsPath
	}
	return routes
}

// Register installs the UI routes on reg:
//
//	GET <basePath>                          entry page
//	GET <assetsPath>/{asset}                root asset
//	GET <assetsPath>/{directory}/{asset}    nested asset
//
// When a SwaggerProvider is configured and the docs path is local, GET
// <docsPath> serves the API document. Register is meant to run once at
// startup.
func (h *Handler) Register(reg router.Registrar, basePath string) error {
	if reg == nil {
		return errors.New("swaggerui: registrar cannot be nil")
	}
	if !strings.HasPrefix(basePath, "/") {
		return fmt.Errorf("swaggerui: base path %q must start with /", basePath)
	}

	routes := h.RoutesFor(basePath)

	reg.Handle(http.MethodGet, routes.Index, http.HandlerFunc(h.GetIndex))
	if routes.Document != "" {
		reg.Handle(http.MethodGet, routes.Document, http.HandlerFunc(h.GetOpenAPIJSON))
	}
	reg.Handle(http.MethodGet, routes.Asset, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.GetAsset(w, r, reg.Param(r, "asset"))
	}))
	reg.Handle(http.MethodGet, routes.Directory, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.GetAssetFromDirectory(w, r, reg.Param(r, "directory"), reg.Param(r, "asset"))
	}))

	h.Logger().Debug("swagger ui routes registered",
		"index", routes.Index,
		"asset", routes.Asset,
		"directory", routes.Directory,
		"document", routes.Document,
	)
	return nil
}

// RegisterProbes installs GET <prefix>/healthz and GET <prefix>/readyz.
func (h *Handler) RegisterProbes(reg router.Registrar, prefix string) {
	prefix = strings.TrimSuffix(prefix, "/")
	reg.Handle(http.MethodGet, prefix+"/healthz", http.HandlerFunc(h.GetHealthz))
	reg.Handle(http.MethodGet, prefix+"/readyz", http.HandlerFunc(h.GetReadyz))
}

func (h *Handler) servesDocument() bool {
	return h.swaggerProvider != nil && strings.HasPrefix(h.docsPath, "/")
}
