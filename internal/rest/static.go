package rest

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dfryer1193/qrstore/gallery/domain"
	"github.com/gin-gonic/gin"
)

// StaticHandler serves the frontend from a content root directory
type StaticHandler struct {
	root      string
	indexFile string
}

func NewStaticHandler(root, indexFile string) *StaticHandler {
	return &StaticHandler{root: root, indexFile: indexFile}
}

// Index handles GET / with the entry document
func (h *StaticHandler) Index(c *gin.Context) {
	h.serve(c, h.indexFile)
}

// Serve handles every path without a dedicated route
func (h *StaticHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		writeError(c, domain.ErrNotFound)
		return
	}
	h.serve(c, c.Request.URL.Path)
}

func (h *StaticHandler) serve(c *gin.Context, urlPath string) {
	name, ok := h.resolve(urlPath)
	if !ok {
		writeError(c, domain.ErrNotFound)
		return
	}
	c.File(name)
}

// resolve maps a URL path to a regular file under the root. Paths cannot
// climb out of the root, and dot-prefixed segments are never served.
func (h *StaticHandler) resolve(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" {
		return "", false
	}

	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	name := filepath.Join(h.root, filepath.FromSlash(rel))
	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return name, true
}
