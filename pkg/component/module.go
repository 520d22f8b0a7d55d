package component

import (
	"context"

	"github.com/zyte-go/zyte/pkg/data"
)

// Kind discriminates the two shapes a component export can take.
type Kind int

const (
	// KindValue is a plain exported value (string, number, nested object...).
	KindValue Kind = iota

	// KindFunc is an exported callable.
	KindFunc
)

// Func is a callable component export. It receives the positional arguments
// already parsed from the template expression, followed by the per-request
// render context. A blocking implementation is how asynchronous work is
// modeled; the evaluator waits for the call to return.
type Func func(ctx context.Context, args []data.Value, rc *Context) (data.Value, error)

// Export is one entry in a component's export table: either a callable or a
// plain value. The evaluator only ever dispatches through this explicit
// shape, never through reflection on arbitrary objects.
type Export struct {
	Kind  Kind
	Value data.Value
	Func  Func
}

// ValueExport wraps a plain value as an export.
func ValueExport(v data.Value) Export {
	return Export{Kind: KindValue, Value: v}
}

// FuncExport wraps a callable as an export.
func FuncExport(f Func) Export {
	return Export{Kind: KindFunc, Func: f}
}

// Module is a loaded component: a lookup-by-name view of its exports.
type Module interface {
	// Lookup returns the export under the given name, if present.
	Lookup(name string) (Export, bool)
}

// MapModule is a Module backed by a plain map. Used for components defined
// in Go and throughout the test suites.
type MapModule map[string]Export

// Lookup implements Module.
func (m MapModule) Lookup(name string) (Export, bool) {
	e, ok := m[name]
	return e, ok
}
