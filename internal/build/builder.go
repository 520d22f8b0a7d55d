package build

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zyte-go/zyte/internal/config"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/render"
	"github.com/zyte-go/zyte/pkg/router"
)

// Result contains the static export output.
type Result struct {
	// Duration is how long the export took.
	Duration time.Duration

	// Output is the export directory.
	Output string

	// Pages is the number of pages written.
	Pages int

	// Skipped lists routes that failed to render and were left out.
	Skipped []string

	// Assets is the number of copied static files.
	Assets int
}

// Options configures the exporter.
type Options struct {
	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Exporter renders every discovered route with an empty context and writes
// the result as a static site: dist/index.html for the root, and
// dist/<route>/index.html per route, plus copied public assets, sitemap.txt
// and robots.txt.
type Exporter struct {
	config  *config.Config
	options Options
}

// New creates an exporter.
func New(cfg *config.Config, options Options) *Exporter {
	return &Exporter{config: cfg, options: options}
}

func (e *Exporter) progress(step string) {
	if e.options.OnProgress != nil {
		e.options.OnProgress(step)
	}
}

// Export runs the full static export.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	start := time.Now()
	out := e.config.OutputPath()

	e.progress("Discovering routes")
	table := router.Discover(e.config.RoutesPath())
	loader := component.NewLoader(component.ReloadOnce)
	renderer := render.NewPageRenderer(table, loader, e.config.AppComponentPath())

	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}

	res := &Result{Output: out}

	e.progress("Rendering pages")
	paths := append([]string{""}, table.Paths()...)
	for _, p := range paths {
		page, err := renderer.Render(ctx, p, component.NewContext())
		if err != nil {
			// Same contract as cache warming: individual failures are
			// skipped, the export is best-effort.
			res.Skipped = append(res.Skipped, "/"+p)
			continue
		}
		dir := filepath.Join(out, filepath.FromSlash(p))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page.HTML), 0o644); err != nil {
			return nil, err
		}
		res.Pages++
	}

	e.progress("Copying assets")
	assets, err := e.copyAssets(table)
	if err != nil {
		return nil, err
	}
	res.Assets = assets

	e.progress("Writing sitemap")
	if err := e.writeSitemap(table); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	return res, nil
}

// copyAssets copies the public directory plus route-adjacent stylesheets
// and client companions into the export.
func (e *Exporter) copyAssets(table *router.Table) (int, error) {
	count := 0
	out := e.config.OutputPath()

	publicDir := e.config.PublicPath()
	if _, err := os.Stat(publicDir); err == nil {
		n, err := copyTree(publicDir, out)
		if err != nil {
			return count, err
		}
		count += n
	}

	routesDir := e.config.RoutesPath()
	for _, entry := range table.Entries() {
		for _, ext := range []string{router.StyleExt, ".client.js"} {
			src := strings.TrimSuffix(entry.ComponentPath, router.ComponentExt) + ext
			if _, err := os.Stat(src); err != nil {
				continue
			}
			rel, err := filepath.Rel(routesDir, src)
			if err != nil {
				continue
			}
			dst := filepath.Join(out, rel)
			if err := copyFile(src, dst); err != nil {
				return count, err
			}
			count++
		}
	}

	// Root stylesheet sits next to the app component.
	appCSS := strings.TrimSuffix(e.config.AppComponentPath(), router.ComponentExt) + router.StyleExt
	if _, err := os.Stat(appCSS); err == nil {
		if err := copyFile(appCSS, filepath.Join(out, filepath.Base(appCSS))); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// writeSitemap emits sitemap.txt and robots.txt into the export directory.
func (e *Exporter) writeSitemap(table *router.Table) error {
	base := strings.TrimSuffix(e.config.SiteURL, "/")
	if base == "" {
		base = "http://" + e.config.Address()
	}

	var b strings.Builder
	b.WriteString(base + "/\n")
	for _, p := range table.Paths() {
		b.WriteString(base + "/" + p + "\n")
	}
	out := e.config.OutputPath()
	if err := os.WriteFile(filepath.Join(out, "sitemap.txt"), []byte(b.String()), 0o644); err != nil {
		return err
	}

	robots := "User-agent: *\nAllow: /\nSitemap: " + base + "/sitemap.txt\n"
	return os.WriteFile(filepath.Join(out, "robots.txt"), []byte(robots), 0o644)
}

// copyTree copies all regular files under src into dst, preserving layout.
func copyTree(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
