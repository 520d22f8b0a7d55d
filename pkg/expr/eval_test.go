package expr

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/data"
)

// testModule exports a mix of values and functions used across the tests.
func testModule() component.MapModule {
	return component.MapModule{
		"title": component.ValueExport(data.String("Home")),
		"emptyTitle": component.ValueExport(data.String("")),
		"site": component.ValueExport(data.Map{
			"name": data.String("zyte"),
			"nested": data.Map{
				"deep": data.Int(7),
			},
		}),
		"greet": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			if len(args) != 1 {
				return data.Undefined{}, nil
			}
			return data.String("Hello, " + data.Stringify(args[0]) + "!"), nil
		}),
		"echo": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			return data.List(args), nil
		}),
		"boom": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			return nil, fmt.Errorf("kaboom")
		}),
		"panics": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			panic("oops")
		}),
	}
}

func testContext() *component.Context {
	rc := component.NewContext()
	rc.Query["name"] = "World"
	rc.Query["empty"] = ""
	rc.Headers["user-agent"] = "test/1.0"
	rc.Headers["x-forwarded-for"] = "10.0.0.1"
	rc.Params["id"] = "42"
	return rc
}

func eval(t *testing.T, src string) (data.Value, error) {
	t.Helper()
	return New().Eval(context.Background(), src, testModule(), testContext())
}

func mustEval(t *testing.T, src string) data.Value {
	t.Helper()
	v, err := eval(t, src)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", src, err)
	}
	return v
}

func TestEvalLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want data.Value
	}{
		{`42`, data.Int(42)},
		{`-7`, data.Int(-7)},
		{`2.5`, data.Float(2.5)},
		{`true`, data.Bool(true)},
		{`false`, data.Bool(false)},
		{`null`, data.Null{}},
		{`undefined`, data.Undefined{}},
		{`'single'`, data.String("single")},
		{`"double"`, data.String("double")},
		{`'it\'s'`, data.String("it's")},
		{`''`, data.String("")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, tt.src); !got.Equals(tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalNamespaces(t *testing.T) {
	tests := []struct {
		src  string
		want data.Value
	}{
		{`query.name`, data.String("World")},
		{`query.missing`, data.Undefined{}},
		{`params.id`, data.String("42")},
		// Header names keep their dashes after lower-casing.
		{`headers.user-agent`, data.String("test/1.0")},
		{`headers.x-forwarded-for`, data.String("10.0.0.1")},
		{`headers.missing`, data.Undefined{}},
		// Namespaces are one key deep; anything deeper is Undefined.
		{`query.name.sub`, data.Undefined{}},
		{`headers.-agent`, data.Undefined{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, tt.src); !got.Equals(tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalPropertyAccess(t *testing.T) {
	tests := []struct {
		src  string
		want data.Value
	}{
		{`title`, data.String("Home")},
		{`site.name`, data.String("zyte")},
		{`site.nested.deep`, data.Int(7)},
		{`site.missing`, data.Undefined{}},
		{`site.missing.deeper`, data.Undefined{}},
		{`nosuch`, data.Undefined{}},
		{`title.sub`, data.Undefined{}}, // strings have no properties
		{`greet`, data.Undefined{}},     // bare function reference
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, tt.src); !got.Equals(tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalCalls(t *testing.T) {
	if got := mustEval(t, `greet('World')`); !got.Equals(data.String("Hello, World!")) {
		t.Errorf("greet('World') = %v", got)
	}
	if got := mustEval(t, `greet(query.name)`); !got.Equals(data.String("Hello, World!")) {
		t.Errorf("greet(query.name) = %v", got)
	}
	if got := mustEval(t, `greet(headers.user-agent)`); !got.Equals(data.String("Hello, test/1.0!")) {
		t.Errorf("greet(headers.user-agent) = %v", got)
	}
}

func TestEvalCallArgumentTypes(t *testing.T) {
	got := mustEval(t, `echo(42, true, null, "str", query.missing)`)
	list, ok := got.(data.List)
	if !ok {
		t.Fatalf("echo(...) = %T, want List", got)
	}
	want := []data.Value{data.Int(42), data.Bool(true), data.Null{}, data.String("str"), data.Undefined{}}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i := range want {
		if !list[i].Equals(want[i]) {
			t.Errorf("arg %d = %v, want %v", i, list[i], want[i])
		}
	}
}

func TestEvalBareTokenArgument(t *testing.T) {
	// An argument that is neither a literal nor a namespace path passes
	// through as a bare string, never re-evaluated.
	got := mustEval(t, `echo(title)`)
	list := got.(data.List)
	if !list[0].Equals(data.String("title")) {
		t.Errorf("bare token arg = %v, want 'title'", list[0])
	}
}

func TestEvalUnknownFunction(t *testing.T) {
	_, err := eval(t, `nosuchfn()`)
	if !stderrors.Is(err, ErrUnknownFunction) {
		t.Errorf("error = %v, want ErrUnknownFunction", err)
	}
}

func TestEvalValueCalledAsFunction(t *testing.T) {
	_, err := eval(t, `title()`)
	if !stderrors.Is(err, ErrUnknownFunction) {
		t.Errorf("error = %v, want ErrUnknownFunction", err)
	}
}

func TestEvalFunctionError(t *testing.T) {
	if _, err := eval(t, `boom()`); err == nil {
		t.Error("expected error from throwing function")
	}
}

func TestEvalFunctionPanic(t *testing.T) {
	if _, err := eval(t, `panics()`); err == nil {
		t.Error("a panicking function must surface as an error, not crash")
	}
}

func TestEvalFallbackChains(t *testing.T) {
	tests := []struct {
		src  string
		want data.Value
	}{
		{`title || 'fallback'`, data.String("Home")},
		{`emptyTitle || 'fallback'`, data.String("fallback")},
		{`query.missing || query.name`, data.String("World")},
		{`query.missing || emptyTitle || 'last'`, data.String("last")},
		// Every operand falsy: the last value, not an error.
		{`query.missing || emptyTitle`, data.String("")},
		{`false || 0 || null`, data.Null{}},
		// Short-circuit: the first truthy operand wins.
		{`greet('a') || boom()`, data.String("Hello, a!")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, tt.src); !got.Equals(tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalFallbackPropagatesErrors(t *testing.T) {
	if _, err := eval(t, `query.missing || boom()`); err == nil {
		t.Error("an erroring operand inside a chain must fail the expression")
	}
}

func TestEvalMalformed(t *testing.T) {
	for _, src := range []string{`1 +`, `(((`, `a b`, `foo(`, `a(1)(2)`} {
		t.Run(src, func(t *testing.T) {
			_, err := eval(t, src)
			if err == nil {
				t.Fatalf("Eval(%q) succeeded, want error", src)
			}
		})
	}
}

func TestEvalEmpty(t *testing.T) {
	if got := mustEval(t, ``); !got.Equals(data.Undefined{}) {
		t.Errorf("empty expression = %v, want Undefined", got)
	}
}

func TestEvalNilContext(t *testing.T) {
	v, err := New().Eval(context.Background(), `query.name`, testModule(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equals(data.Undefined{}) {
		t.Errorf("nil context namespace access = %v, want Undefined", v)
	}
}
