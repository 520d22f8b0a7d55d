package component

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/robertkrimen/otto"

	"github.com/zyte-go/zyte/internal/errors"
	"github.com/zyte-go/zyte/pkg/data"
)

// ReloadPolicy controls whether component modules are re-read from disk on
// every render or loaded once and cached for the process lifetime.
type ReloadPolicy int

const (
	// ReloadOnce loads each component a single time and caches it.
	ReloadOnce ReloadPolicy = iota

	// ReloadAlways re-reads and re-evaluates the component on every load,
	// so edits are observed without a restart. Development only.
	ReloadAlways
)

// Loader loads JavaScript component modules. Each module file runs in its
// own VM with CommonJS-style module.exports/exports bindings; exported
// functions become callables and everything else becomes a plain value.
type Loader struct {
	policy ReloadPolicy
	log    *slog.Logger

	mu    sync.Mutex
	cache map[string]Module
}

// NewLoader creates a component loader with the given reload policy.
func NewLoader(policy ReloadPolicy) *Loader {
	return &Loader{
		policy: policy,
		log:    slog.Default().With("component", "loader"),
		cache:  make(map[string]Module),
	}
}

// Policy returns the loader's reload policy.
func (l *Loader) Policy() ReloadPolicy {
	return l.policy
}

// Load reads and evaluates the component module at path. Under ReloadOnce
// the evaluated module is cached per path; under ReloadAlways every call
// produces a fresh module.
func (l *Loader) Load(path string) (Module, error) {
	if l.policy == ReloadOnce {
		l.mu.Lock()
		if mod, ok := l.cache[path]; ok {
			l.mu.Unlock()
			return mod, nil
		}
		l.mu.Unlock()
	}

	mod, err := l.load(path)
	if err != nil {
		return nil, err
	}

	if l.policy == ReloadOnce {
		l.mu.Lock()
		l.cache[path] = mod
		l.mu.Unlock()
	}
	return mod, nil
}

// Invalidate drops any cached module for path. The dev watcher calls this
// when a component file changes.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}

func (l *Loader) load(path string) (Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeComponentLoad).
			WithLocation(path, 0).
			Wrap(err)
	}

	vm := otto.New()
	if _, err := vm.Run("var module = { exports: {} }; var exports = module.exports;"); err != nil {
		return nil, errors.New(errors.CodeComponentLoad).WithLocation(path, 0).Wrap(err)
	}
	if _, err := vm.Run(string(src)); err != nil {
		return nil, errors.New(errors.CodeComponentLoad).
			WithLocation(path, 0).
			WithSuggestion("Check the component for JavaScript syntax errors or uncaught exceptions at load time.").
			Wrap(err)
	}

	moduleVal, err := vm.Get("module")
	if err != nil || moduleVal.Object() == nil {
		return nil, errors.New(errors.CodeComponentLoad).
			WithLocation(path, 0).
			WithDetail("the module binding was removed or replaced by the component source")
	}
	exportsVal, err := moduleVal.Object().Get("exports")
	if err != nil || exportsVal.Object() == nil {
		// A component may legitimately export nothing; its template then
		// relies on context namespaces and literals only.
		return MapModule{}, nil
	}

	mod := &jsModule{path: path, vm: vm, exports: make(map[string]Export)}
	obj := exportsVal.Object()
	for _, key := range obj.Keys() {
		val, err := obj.Get(key)
		if err != nil {
			l.log.Warn("skipping unreadable export", "path", path, "export", key, "error", err)
			continue
		}
		if val.IsFunction() {
			mod.exports[key] = FuncExport(mod.callable(key, val))
			continue
		}
		native, err := val.Export()
		if err != nil {
			l.log.Warn("skipping unconvertible export", "path", path, "export", key, "error", err)
			continue
		}
		mod.exports[key] = ValueExport(data.New(native))
	}
	return mod, nil
}

// jsModule is a Module backed by an otto VM. The VM is not safe for
// concurrent use, so calls are serialized; within a single render the
// evaluator is sequential anyway.
type jsModule struct {
	path    string
	vm      *otto.Otto
	exports map[string]Export

	callMu sync.Mutex
}

// Lookup implements Module.
func (m *jsModule) Lookup(name string) (Export, bool) {
	e, ok := m.exports[name]
	return e, ok
}

// callable wraps an exported JS function as a component Func. The render
// context is appended as a trailing plain object with query/params/headers
// fields.
func (m *jsModule) callable(name string, fn otto.Value) Func {
	return func(ctx context.Context, args []data.Value, rc *Context) (data.Value, error) {
		if err := ctx.Err(); err != nil {
			return data.Undefined{}, err
		}

		callArgs := make([]interface{}, 0, len(args)+1)
		for _, a := range args {
			callArgs = append(callArgs, toNativeValue(a))
		}
		if rc == nil {
			rc = NewContext()
		}
		callArgs = append(callArgs, rc.toNative())

		m.callMu.Lock()
		result, err := fn.Call(otto.UndefinedValue(), callArgs...)
		m.callMu.Unlock()
		if err != nil {
			return data.Undefined{}, errors.Newf(errors.CategoryComponent,
				"%s() threw: %v", name, err).WithLocation(m.path, 0).Wrap(err)
		}
		if result.IsUndefined() {
			return data.Undefined{}, nil
		}
		native, err := result.Export()
		if err != nil {
			return data.Undefined{}, errors.Newf(errors.CategoryComponent,
				"%s() returned an unconvertible value", name).WithLocation(m.path, 0).Wrap(err)
		}
		return data.New(native), nil
	}
}

// toNativeValue converts a data.Value into the Go shape otto marshals into
// JS arguments.
func toNativeValue(v data.Value) interface{} {
	switch v := v.(type) {
	case nil, data.Undefined:
		return otto.UndefinedValue()
	case data.Null:
		return nil
	case data.Bool:
		return bool(v)
	case data.Int:
		return int64(v)
	case data.Float:
		return float64(v)
	case data.String:
		return string(v)
	case data.List:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = toNativeValue(item)
		}
		return out
	case data.Map:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = toNativeValue(item)
		}
		return out
	default:
		return nil
	}
}
