package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zyte-go/zyte/pkg/cache"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/middleware"
	"github.com/zyte-go/zyte/pkg/render"
	"github.com/zyte-go/zyte/pkg/router"
)

// Config holds everything the HTTP layer needs to serve a project.
type Config struct {
	// Address is the host:port to bind.
	Address string

	// RoutesDir is the routes directory to discover.
	RoutesDir string

	// AppComponent is the component module serving the root path.
	AppComponent string

	// PublicDir is the static files directory.
	PublicDir string

	// SiteURL is the canonical site URL for sitemap generation. Optional.
	SiteURL string

	// CacheEnabled turns the response cache on.
	CacheEnabled bool

	// CacheMaxAge is the response cache TTL.
	CacheMaxAge time.Duration

	// Prewarm renders every discovered route into the cache on Start.
	Prewarm bool

	// ReloadPolicy controls component module reloading.
	ReloadPolicy component.ReloadPolicy

	// Middleware is appended to the standard stack (recoverer, metrics,
	// tracing, compression).
	Middleware []func(http.Handler) http.Handler

	// OnRenderError, when set, is called after a page render fails with a
	// hard error (the caller already received the 500 page). The dev server
	// uses it to push error overlays to connected browsers.
	OnRenderError func(path string, err error)
}

// Server serves rendered pages over HTTP: response cache in front, page
// renderer behind, static assets and operational endpoints on the side.
type Server struct {
	cfg      Config
	log      *slog.Logger
	loader   *component.Loader
	renderer *render.PageRenderer
	cache    *cache.Cache
	mux      *chi.Mux
	http     *http.Server
}

// New discovers routes and assembles the server.
func New(cfg Config) *Server {
	if cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = time.Minute
	}

	loader := component.NewLoader(cfg.ReloadPolicy)
	table := router.Discover(cfg.RoutesDir)

	s := &Server{
		cfg:      cfg,
		log:      slog.Default().With("component", "server"),
		loader:   loader,
		renderer: render.NewPageRenderer(table, loader, cfg.AppComponent),
		cache:    cache.New(cfg.CacheMaxAge),
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Prometheus())
	mux.Use(middleware.OTel())
	mux.Use(chimw.Compress(5))
	for _, mw := range cfg.Middleware {
		mux.Use(mw)
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/sitemap.txt", s.handleSitemap)
	mux.Get("/robots.txt", s.handleRobots)
	mux.Handle("/*", http.HandlerFunc(s.handlePage))

	s.mux = mux
	return s
}

// Handler returns the assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Renderer returns the page renderer, for embedding callers.
func (s *Server) Renderer() *render.PageRenderer {
	return s.renderer
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Routes returns the current route table.
func (s *Server) Routes() *router.Table {
	return s.renderer.Table()
}

// Mount attaches an extra handler (e.g. the dev reload endpoint) under the
// given pattern. Must be called before Start.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// Warm pre-renders every discovered route with an empty context into the
// cache. Individual failures are skipped; it returns the number of entries
// stored.
func (s *Server) Warm(ctx context.Context) int {
	paths := s.Routes().Paths()
	warmed := s.cache.Warm(ctx, paths, func(ctx context.Context, path string) (string, error) {
		res, err := s.renderer.Render(ctx, path, component.NewContext())
		if err != nil {
			return "", err
		}
		return res.HTML, nil
	})
	middleware.RecordCacheSize(s.cache.Len())
	s.log.Info("response cache warmed", "routes", len(paths), "warmed", warmed)
	return warmed
}

// Reload rebuilds the route table from disk and clears the response cache.
// The dev watcher calls this when route files change.
func (s *Server) Reload() {
	s.renderer.SetTable(router.Discover(s.cfg.RoutesDir))
	s.cache.Clear()
	middleware.RecordCacheSize(0)
	s.log.Info("routes reloaded", "routes", s.Routes().Len())
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.CacheEnabled && s.cfg.Prewarm {
		s.Warm(ctx)
	}

	s.http = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("listening", "address", s.cfg.Address, "routes", s.Routes().Len())
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
