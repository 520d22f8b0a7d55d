package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	tmpl, err := Get("default")
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Name != "default" {
		t.Errorf("Name = %q", tmpl.Name)
	}

	if _, err := Get("nope"); err == nil {
		t.Error("unknown template should error")
	}
}

func TestCreate(t *testing.T) {
	tmpl, err := Get("default")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := tmpl.Create(dir, Config{ProjectName: "my-site"}); err != nil {
		t.Fatal(err)
	}

	for _, rel := range []string{
		"zyte.json",
		"app/app.js",
		"app/app.html",
		"app/app.css",
		"app/routes/about/page.js",
		"app/routes/about/page.html",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing scaffold file %s: %v", rel, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "zyte.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"name": "my-site"`) {
		t.Errorf("zyte.json not parameterized: %s", raw)
	}

	// The template placeholders must survive scaffolding: the app shell's
	// own {{ ... }} units belong to the page template, not the scaffolder.
	html, err := os.ReadFile(filepath.Join(dir, "app", "app.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "{{ title }}") {
		t.Errorf("app.html lost its expression units: %s", html)
	}
}

func TestRouteFiles(t *testing.T) {
	files := RouteFiles("about")
	if _, ok := files["page.js"]; !ok {
		t.Error("RouteFiles missing page.js")
	}
	if _, ok := files["page.html"]; !ok {
		t.Error("RouteFiles missing page.html")
	}
	if !strings.Contains(files["page.html"], "{{ title }}") {
		t.Errorf("page.html = %s", files["page.html"])
	}
}
