package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/zyte-go/zyte/internal/errors"
)

// Config contains scaffold configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Description is a short project description.
	Description string
}

// Template represents a project scaffold.
type Template struct {
	// Name is the scaffold name.
	Name string

	// Description describes the scaffold.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available scaffolds.
var templates = map[string]*Template{
	"default": defaultTemplate(),
}

// Get returns a scaffold by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "template %q not found", name).
			WithSuggestion("Available templates: default")
	}
	return tmpl, nil
}

// Create generates a project from the scaffold.
func (t *Template) Create(dir string, cfg Config) error {
	for rel, content := range t.Files {
		rendered, err := renderFile(rel, content, cfg)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, rendered, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(name, content string, cfg Config) ([]byte, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RouteFiles returns the scaffold for a single new route directory, used by
// `zyte add`.
func RouteFiles(route string) map[string]string {
	return map[string]string{
		"page.js": `exports.title = ` + jsString(route) + `;

exports.greeting = function (name, ctx) {
    return "Hello, " + name + "!";
};
`,
		"page.html": `<!DOCTYPE html>
<html>
<head>
  <title>{{ title }}</title>
</head>
<body>
  <h1>{{ title }}</h1>
  <p>{{ greeting('visitor') }}</p>
</body>
</html>
`,
	}
}

func jsString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}

// defaultTemplate is the standard project scaffold: config, app shell, one
// sample route with a stylesheet and a client companion.
func defaultTemplate() *Template {
	return &Template{
		Name:        "default",
		Description: "App shell plus a sample about route",
		Files: map[string]string{
			"zyte.json": `{
  "name": "{{.ProjectName}}",
  "version": "0.1.0",
  "port": 3000,
  "cache": {
    "enabled": true,
    "maxAge": "60s",
    "prewarm": true
  }
}
`,

			"app/app.js": `exports.title = "{{.ProjectName}}";

exports.year = function (ctx) {
    return new Date().getFullYear();
};
`,

			"app/app.html": `<!DOCTYPE html>
<html>
<head>
  <title>{{ "{{ title }}" }}</title>
</head>
<body>
  <h1>{{ "{{ title }}" }}</h1>
  <p>Welcome! Edit app/app.html to get started.</p>
  <footer>&copy; {{ "{{ year() }}" }}</footer>
</body>
</html>
`,

			"app/app.css": `body {
  font-family: sans-serif;
  margin: 2rem auto;
  max-width: 42rem;
}
`,

			"app/routes/about/page.js": `exports.title = "About";

exports.visitor = function (ctx) {
    return ctx.query.name || "friend";
};
`,

			"app/routes/about/page.html": `<!DOCTYPE html>
<html>
<head>
  <title>{{ "{{ title }}" }}</title>
</head>
<body>
  <h1>{{ "{{ title }}" }}</h1>
  <p>Nice to meet you, {{ "{{ visitor() }}" }}.</p>
</body>
</html>
`,

			"app/routes/about/page.css": `h1 {
  color: #335;
}
`,

			"app/routes/about/page.client.js": `// Runs in the browser only; never part of server rendering.
console.log("about page loaded");
`,

			"public/favicon.svg": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16"><text y="13">z</text></svg>
`,

			".gitignore": `dist/
`,
		},
	}
}
