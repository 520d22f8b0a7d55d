package component

import (
	"net/http"
	"strings"
)

// Context is the per-request input available to templates and component
// functions. It is constructed fresh per incoming request and treated as
// read-only during rendering.
type Context struct {
	// Query holds URL query string values (first value per key).
	Query map[string]string

	// Params holds path pattern captures. Reserved for dynamic segments;
	// empty for all statically discovered routes.
	Params map[string]string

	// Headers holds request headers keyed by lower-cased name.
	Headers map[string]string
}

// NewContext returns an empty render context, as used for pre-warming.
func NewContext() *Context {
	return &Context{
		Query:   map[string]string{},
		Params:  map[string]string{},
		Headers: map[string]string{},
	}
}

// FromRequest builds a render context from an incoming HTTP request.
func FromRequest(r *http.Request) *Context {
	rc := NewContext()
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			rc.Query[key] = vals[0]
		}
	}
	for key, vals := range r.Header {
		if len(vals) > 0 {
			rc.Headers[strings.ToLower(key)] = vals[0]
		}
	}
	return rc
}

// Namespace returns the named reserved namespace (query, params, headers),
// or nil if the name is not reserved.
func (c *Context) Namespace(name string) map[string]string {
	switch name {
	case "query":
		return c.Query
	case "params":
		return c.Params
	case "headers":
		return c.Headers
	}
	return nil
}

// toNative converts the context to the plain object shape passed as the
// trailing argument of component function calls.
func (c *Context) toNative() map[string]interface{} {
	return map[string]interface{}{
		"query":   stringMapToNative(c.Query),
		"params":  stringMapToNative(c.Params),
		"headers": stringMapToNative(c.Headers),
	}
}

func stringMapToNative(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
