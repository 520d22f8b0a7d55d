package render

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zyte-go/zyte/internal/errors"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/router"
)

// NotFoundHTML is the fixed document rendered for unknown routes. Route
// misses are a terminal rendering outcome, not an error.
const NotFoundHTML = `<!DOCTYPE html>
<html>
<head><title>404 - Page Not Found</title></head>
<body>
<h1>404</h1>
<p>Page not found.</p>
</body>
</html>
`

// Result is the outcome of a page render.
type Result struct {
	// HTML is the final document.
	HTML string

	// NotFound marks the fixed 404 document for unknown routes.
	NotFound bool
}

// PageRenderer resolves a request path to a component module and template
// and produces the final HTML.
type PageRenderer struct {
	mu           sync.RWMutex
	table        *router.Table
	loader       *component.Loader
	appComponent string
	templates    *TemplateRenderer
	log          *slog.Logger
	tracer       trace.Tracer
}

// NewPageRenderer creates a page renderer. appComponent is the path to the
// app-level component module that serves the root path; it lives outside
// the discovered routes tree.
func NewPageRenderer(table *router.Table, loader *component.Loader, appComponent string) *PageRenderer {
	return &PageRenderer{
		table:        table,
		loader:       loader,
		appComponent: appComponent,
		templates:    NewTemplateRenderer(),
		log:          slog.Default().With("component", "render"),
		tracer:       otel.Tracer("zyte/render"),
	}
}

// SetTable swaps the route table. The dev server calls this after a rebuild;
// tables themselves stay immutable.
func (p *PageRenderer) SetTable(table *router.Table) {
	p.mu.Lock()
	p.table = table
	p.mu.Unlock()
}

// Table returns the current route table.
func (p *PageRenderer) Table() *router.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Render produces the final HTML for a request path.
//
// Unknown routes yield the fixed 404 document with a nil error. A known
// route with a missing template or an unloadable component module is a
// misconfiguration and returns an error (codes E101 and E102 respectively).
func (p *PageRenderer) Render(ctx context.Context, urlPath string, rc *component.Context) (*Result, error) {
	norm := router.Normalize(urlPath)

	ctx, span := p.tracer.Start(ctx, "render.page",
		trace.WithAttributes(attribute.String("zyte.route", norm)))
	defer span.End()

	componentPath := p.appComponent
	if norm != "" {
		entry, ok := p.Table().Lookup(norm)
		if !ok {
			span.SetAttributes(attribute.Bool("zyte.not_found", true))
			return &Result{HTML: NotFoundHTML, NotFound: true}, nil
		}
		componentPath = entry.ComponentPath
	}

	tpl, err := p.readTemplate(componentPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template missing")
		return nil, err
	}

	tpl = p.injectStylesheet(tpl, componentPath, norm)

	mod, err := p.loader.Load(componentPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "component load failed")
		return nil, err
	}

	html := p.templates.Render(ctx, tpl, mod, rc)
	return &Result{HTML: html}, nil
}

// readTemplate loads the HTML template that shares the component's base
// path. Its absence is a hard configuration error, distinct from a route
// miss.
func (p *PageRenderer) readTemplate(componentPath string) (string, error) {
	templatePath := swapExt(componentPath, router.TemplateExt)
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return "", errors.New(errors.CodeTemplateMissing).
			WithLocation(templatePath, 0).
			WithSuggestion("Create " + filepath.Base(templatePath) + " next to " + filepath.Base(componentPath) + ".").
			Wrap(err)
	}
	return string(raw), nil
}

// injectStylesheet adds a stylesheet link before the closing head marker
// when a same-named .css file exists. The injection is purely textual and
// happens before expression evaluation; templates without a head section
// are left untouched.
func (p *PageRenderer) injectStylesheet(tpl, componentPath, norm string) string {
	stylePath := swapExt(componentPath, router.StyleExt)
	if _, err := os.Stat(stylePath); err != nil {
		return tpl
	}

	idx := strings.Index(strings.ToLower(tpl), "</head>")
	if idx == -1 {
		return tpl
	}

	href := "/" + path.Join(norm, filepath.Base(stylePath))
	link := `<link rel="stylesheet" href="` + href + `">`
	return tpl[:idx] + link + tpl[idx:]
}

// swapExt replaces the extension of p with ext.
func swapExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}
