package http

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	apiPrefix = "/api"
	indexFile = "index.html"
)

// staticSite serves a built single page frontend from disk.
type staticSite struct {
	root string
}

// newStaticSite returns nil when dir is empty or missing so the API can run
// without a bundled frontend.
func newStaticSite(dir string, logger *slog.Logger) *staticSite {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Info("static directory not found, frontend disabled", "dir", dir)
		return nil
	}
	return &staticSite{root: dir}
}

// resolve maps a URL path to an existing file, or to index.html otherwise.
func (s *staticSite) resolve(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	candidate := filepath.Join(s.root, filepath.FromSlash(clean))
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return filepath.Join(s.root, indexFile)
}

// fallbackHandler answers every unmatched route. API paths and requests
// without a frontend get a structured 404; other GET/HEAD paths get the SPA.
func fallbackHandler(site *staticSite) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		isAPI := p == apiPrefix || strings.HasPrefix(p, apiPrefix+"/")
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if isAPI || site == nil || !isRead {
			abortWithError(c, NewHTTPError(http.StatusNotFound, codeNotFound, "Not Found", nil))
			return
		}
		c.File(site.resolve(p))
	}
}
