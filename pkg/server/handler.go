package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/middleware"
	"github.com/zyte-go/zyte/pkg/router"
)

// errorHTML is the generic 500 document for render failures (missing
// template, unloadable component). The detail stays in the server log.
const errorHTML = `<!DOCTYPE html>
<html>
<head><title>500 - Internal Server Error</title></head>
<body>
<h1>500</h1>
<p>Something went wrong rendering this page.</p>
</body>
</html>
`

// handlePage serves a rendered page, consulting the response cache first.
// Only idempotent reads with no query string are cacheable.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if s.serveStatic(w, r) {
		return
	}

	urlPath := r.URL.Path
	cacheable := s.cfg.CacheEnabled && r.Method == http.MethodGet && r.URL.RawQuery == ""

	// Cache keys are normalized so warmed entries (stored by discovered
	// route path) match incoming request paths.
	cacheKey := router.Normalize(urlPath)

	if cacheable {
		if html, ok := s.cache.Get(cacheKey); ok {
			middleware.RecordCacheHit()
			writeHTML(w, http.StatusOK, html)
			return
		}
		middleware.RecordCacheMiss()
	}

	res, err := s.renderer.Render(r.Context(), urlPath, component.FromRequest(r))
	if err != nil {
		// Misconfiguration: the route exists but cannot produce output.
		// Never retried; the caller gets a generic error page.
		s.log.Error("render failed", "path", urlPath, "error", err)
		middleware.RecordRender("error")
		writeHTML(w, http.StatusInternalServerError, errorHTML)
		if s.cfg.OnRenderError != nil {
			s.cfg.OnRenderError(urlPath, err)
		}
		return
	}

	if res.NotFound {
		middleware.RecordRender("not_found")
		writeHTML(w, http.StatusNotFound, res.HTML)
		return
	}

	middleware.RecordRender("ok")
	if cacheable {
		s.cache.Set(cacheKey, res.HTML)
		middleware.RecordCacheSize(s.cache.Len())
	}
	writeHTML(w, http.StatusOK, res.HTML)
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}

// =============================================================================
// Static File Serving
// =============================================================================

// servableRouteAsset reports whether a route-adjacent file may be served to
// the browser. Component sources (.js without the client marker) never leave
// the server.
func servableRouteAsset(name string) bool {
	return strings.HasSuffix(name, ".css") || strings.HasSuffix(name, ".client.js")
}

// serveStatic serves extension-bearing request paths from the public
// directory, or route-adjacent stylesheets and client companions from the
// routes tree. Returns true if the request was handled.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if path.Ext(r.URL.Path) == "" {
		return false
	}

	rel, ok := staticRelPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return true
	}

	if s.cfg.PublicDir != "" {
		full := filepath.Join(s.cfg.PublicDir, filepath.FromSlash(rel))
		if isRegularFile(full) {
			http.ServeFile(w, r, full)
			return true
		}
	}

	if servableRouteAsset(rel) {
		full := filepath.Join(s.cfg.RoutesDir, filepath.FromSlash(rel))
		if isRegularFile(full) {
			http.ServeFile(w, r, full)
			return true
		}
		// Root-path assets (e.g. /app.css) live next to the app component.
		if !strings.Contains(rel, "/") && s.cfg.AppComponent != "" {
			full := filepath.Join(filepath.Dir(s.cfg.AppComponent), filepath.FromSlash(rel))
			if isRegularFile(full) {
				http.ServeFile(w, r, full)
				return true
			}
		}
	}

	http.NotFound(w, r)
	return true
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// staticRelPath returns a sanitized relative path for a static file request.
// It rejects traversal and absolute-path tricks so static serving cannot
// escape the configured directories.
func staticRelPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return "", false
	}

	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}

	// Reject platform-dependent separators.
	if strings.Contains(rel, "\\") {
		return "", false
	}

	// After prefix stripping, a leading "/" indicates an absolute-path
	// attempt (e.g. "//etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning to avoid "cleaning away"
	// traversal attempts and changing the meaning of the request path.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	// Defense-in-depth: reject OS-absolute/volume paths after slash
	// conversion.
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}

	return clean, true
}

// =============================================================================
// Sitemap and robots
// =============================================================================

func (s *Server) siteURL() string {
	if s.cfg.SiteURL != "" {
		return strings.TrimSuffix(s.cfg.SiteURL, "/")
	}
	return "http://" + s.cfg.Address
}

// handleSitemap lists the root plus every discovered route, one URL per
// line.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.siteURL()
	var b strings.Builder
	b.WriteString(base + "/\n")
	for _, p := range s.Routes().Paths() {
		b.WriteString(base + "/" + p + "\n")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(b.String()))
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("User-agent: *\nAllow: /\nSitemap: " + s.siteURL() + "/sitemap.txt\n"))
}
