package router

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Table is an immutable mapping from URL paths to route entries, built once
// by Discover. File watching does not mutate a Table; the dev server builds
// a fresh one on change.
type Table struct {
	entries map[string]Entry
}

// Discover walks rootDir recursively and builds the route table. Every
// subdirectory containing at least one component module (a .js file that is
// not a .client.js companion) becomes a route; the first qualifying file in
// directory listing order names the component. Directories that fail to read
// are logged and skipped, and discovery continues with their siblings.
func Discover(rootDir string) *Table {
	log := slog.Default().With("component", "router")
	t := &Table{entries: make(map[string]Entry)}
	t.scanDir(rootDir, "", log)
	return t
}

func (t *Table) scanDir(dir, urlPath string, log *slog.Logger) {
	files, err := os.ReadDir(dir)
	if err != nil {
		// Best-effort discovery: a broken directory must not abort startup.
		log.Error("skipping unreadable route directory", "dir", dir, "error", err)
		return
	}

	if urlPath != "" {
		for _, f := range files {
			if f.IsDir() || !isComponentFile(f.Name()) {
				continue
			}
			t.entries[urlPath] = Entry{
				URLPath:       urlPath,
				ComponentPath: filepath.Join(dir, f.Name()),
			}
			break
		}
	}

	// Recurse regardless of whether this directory qualified, so nested
	// routes are found at any depth.
	for _, f := range files {
		if !f.IsDir() {
			continue
		}
		child := f.Name()
		childURL := child
		if urlPath != "" {
			childURL = urlPath + "/" + child
		}
		t.scanDir(filepath.Join(dir, child), childURL, log)
	}
}

// isComponentFile reports whether name is a route component module.
func isComponentFile(name string) bool {
	return strings.HasSuffix(name, ComponentExt) && !strings.HasSuffix(name, ClientSuffix)
}

// Normalize strips leading and trailing slashes from a request path so it
// matches discovered URL paths.
func Normalize(path string) string {
	return strings.Trim(path, "/")
}

// Lookup returns the entry for the given request path by exact normalized
// match.
func (t *Table) Lookup(path string) (Entry, bool) {
	e, ok := t.entries[Normalize(path)]
	return e, ok
}

// Len returns the number of discovered routes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Paths returns all discovered URL paths in sorted order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for p := range t.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns all entries in sorted URL path order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.entries))
	for _, p := range t.Paths() {
		entries = append(entries, t.entries[p])
	}
	return entries
}
