package router

// File naming conventions inside the routes directory.
const (
	// ComponentExt is the extension of route component modules.
	ComponentExt = ".js"

	// ClientSuffix marks client-only companion files, which never become
	// route components.
	ClientSuffix = ".client.js"

	// TemplateExt is the extension of the HTML template that sits next to
	// a component module.
	TemplateExt = ".html"

	// StyleExt is the extension of the optional stylesheet next to a
	// component module.
	StyleExt = ".css"
)

// Entry represents one discoverable route.
type Entry struct {
	// URLPath is the normalized slash-separated path with no leading
	// slash, e.g. "about" or "blog/post".
	URLPath string

	// ComponentPath is the path to the component module implementing the
	// route, relative to the project root.
	ComponentPath string
}
