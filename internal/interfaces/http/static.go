package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// staticHandler serves a built single-page frontend. Unknown paths fall back
// to index.html so client-side routes resolve; API paths never do.
type staticHandler struct {
	root string
}

func newStaticHandler(root string) *staticHandler {
	return &staticHandler{root: root}
}

func (s *staticHandler) serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		notFound(c)
		return
	}

	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") || p == "/api" || p == "/health" {
		notFound(c)
		return
	}

	// Clean against "/" so ".." cannot climb out of root
	name := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+p)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		c.File(name)
		return
	}

	index := filepath.Join(s.root, indexFile)
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}

	notFound(c)
}
