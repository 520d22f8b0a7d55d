// Package errors provides structured, actionable error messages for Zyte.
//
// Each framework failure carries a stable code (e.g. "E101") and a category
// so callers can distinguish a misconfigured route from an unloadable
// component without string matching.
//
// # Error Categories
//
//   - config: project configuration errors (missing/invalid zyte.json)
//   - scan: route discovery errors (unreadable directories)
//   - render: page-level rendering errors (missing template)
//   - expression: template expression evaluation errors
//   - component: component module load/dispatch errors
//   - cli, deploy: tooling errors
//
// # Usage
//
//	err := errors.New(errors.CodeTemplateMissing).
//	    WithLocation("app/routes/about/page.html", 0).
//	    WithSuggestion("Create about/page.html next to about/page.js")
//
//	fmt.Println(errors.Format(err))
package errors
