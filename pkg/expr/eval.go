package expr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zyte-go/zyte/internal/errors"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/data"
)

// ErrUnknownFunction is wrapped by errors returned when a template calls a
// name the component does not export as a callable.
var ErrUnknownFunction = fmt.Errorf("unknown function")

// ErrMalformed is wrapped by errors returned for expressions that match no
// rule of the grammar.
var ErrMalformed = fmt.Errorf("malformed expression")

// Evaluator evaluates the contents of a single {{ ... }} unit against a
// component module and a render context.
//
// The grammar is deliberately small: function calls with literal or
// namespace arguments, dotted property access, top-level || fallback chains,
// reserved query/params/headers namespaces, and self-evaluating literals.
type Evaluator struct {
	log *slog.Logger
}

// New creates an evaluator.
func New() *Evaluator {
	return &Evaluator{log: slog.Default().With("component", "expr")}
}

// Eval evaluates src (the trimmed contents of one expression unit). Missing
// properties and namespace keys resolve to Undefined rather than failing;
// unknown functions, throwing functions, and malformed input return errors
// for the caller to absorb per expression.
func (e *Evaluator) Eval(ctx context.Context, src string, mod component.Module, rc *component.Context) (data.Value, error) {
	if rc == nil {
		rc = component.NewContext()
	}

	// Top-level || chain: first truthy operand wins; if every operand is
	// falsy the last operand's value is the result, not an error.
	operands := splitTop(src, "||")
	if len(operands) > 1 {
		var last data.Value = data.Undefined{}
		for _, op := range operands {
			v, err := e.evalSingle(ctx, strings.TrimSpace(op), mod, rc)
			if err != nil {
				return nil, err
			}
			if v.Truthy() {
				return v, nil
			}
			last = v
		}
		return last, nil
	}

	return e.evalSingle(ctx, strings.TrimSpace(src), mod, rc)
}

// evalSingle evaluates one expression with no top-level fallback chain.
func (e *Evaluator) evalSingle(ctx context.Context, src string, mod component.Module, rc *component.Context) (data.Value, error) {
	if src == "" {
		return data.Undefined{}, nil
	}

	if v, ok := literal(src); ok {
		return v, nil
	}

	if v, ok := namespaceValue(src, rc); ok {
		return v, nil
	}

	if name, rawArgs, ok := matchCall(src); ok {
		return e.call(ctx, name, rawArgs, mod, rc)
	}

	if isIdentPath(src) {
		return modulePath(src, mod), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrMalformed, src)
}

// call resolves and invokes a component function. Arguments are parsed with
// parseArg, then the render context is appended as the final positional
// argument.
func (e *Evaluator) call(ctx context.Context, name, rawArgs string, mod component.Module, rc *component.Context) (v data.Value, err error) {
	var export component.Export
	var ok bool
	if mod != nil {
		export, ok = mod.Lookup(name)
	}
	if !ok {
		e.log.Warn("template calls a function the component does not export", "function", name)
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	if export.Kind != component.KindFunc {
		e.log.Warn("template calls an export that is not callable", "export", name)
		return nil, errors.New(errors.CodeExportNotCallable).
			WithDetail("%s is exported as a plain value", name).
			Wrap(ErrUnknownFunction)
	}

	args := parseArgs(rawArgs, rc)

	// A user-authored function may panic; contain it to this expression.
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%s() panicked: %v", name, r)
		}
	}()

	result, err := export.Func(ctx, args, rc)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = data.Undefined{}
	}
	return result, nil
}

// parseArgs splits the raw argument substring on top-level commas and
// classifies each token. Tokens that are neither literals nor reserved
// namespace paths are passed through as bare strings; they are never
// re-evaluated as nested expressions.
func parseArgs(rawArgs string, rc *component.Context) []data.Value {
	if strings.TrimSpace(rawArgs) == "" {
		return nil
	}
	tokens := splitTop(rawArgs, ",")
	args := make([]data.Value, 0, len(tokens))
	for _, tok := range tokens {
		args = append(args, parseArg(strings.TrimSpace(tok), rc))
	}
	return args
}

func parseArg(tok string, rc *component.Context) data.Value {
	if v, ok := literal(tok); ok {
		return v
	}
	if v, ok := namespaceValue(tok, rc); ok {
		return v
	}
	return data.String(tok)
}

// literal classifies self-evaluating constants: quoted strings, numbers,
// true/false, null and undefined.
func literal(tok string) (data.Value, bool) {
	if len(tok) >= 2 {
		if (tok[0] == '\'' && tok[len(tok)-1] == '\'') ||
			(tok[0] == '"' && tok[len(tok)-1] == '"') {
			return data.String(unescape(tok[1:len(tok)-1], tok[0])), true
		}
	}
	switch tok {
	case "true":
		return data.Bool(true), true
	case "false":
		return data.Bool(false), true
	case "null":
		return data.Null{}, true
	case "undefined":
		return data.Undefined{}, true
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return data.Int(i), true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return data.Float(f), true
	}
	return nil, false
}

// unescape removes backslash escapes of the surrounding quote character.
func unescape(s string, quote byte) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == quote || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// namespaceValue resolves query.x / params.x / headers.x against the render
// context. A reserved prefix always resolves here, bypassing the component;
// missing keys (and paths deeper than one key) are Undefined.
func namespaceValue(tok string, rc *component.Context) (data.Value, bool) {
	dot := strings.IndexByte(tok, '.')
	if dot <= 0 {
		return nil, false
	}
	ns := rc.Namespace(tok[:dot])
	if ns == nil {
		return nil, false
	}
	key := tok[dot+1:]
	if !isNamespaceKey(key) {
		return data.Undefined{}, true
	}
	v, ok := ns[key]
	if !ok {
		return data.Undefined{}, true
	}
	return data.String(v), true
}

// modulePath resolves a dotted identifier path against the component's
// exports. Any missing segment resolves to Undefined, silently. A bare
// reference to an exported function (without calling it) is also Undefined:
// callables are only reachable through calls.
func modulePath(path string, mod component.Module) data.Value {
	parts := strings.Split(path, ".")
	if mod == nil {
		return data.Undefined{}
	}
	export, ok := mod.Lookup(parts[0])
	if !ok || export.Kind != component.KindValue {
		return data.Undefined{}
	}
	v := export.Value
	for _, part := range parts[1:] {
		m, ok := v.(data.Map)
		if !ok {
			return data.Undefined{}
		}
		v = m.Key(part)
	}
	if v == nil {
		return data.Undefined{}
	}
	return v
}
