package render

import (
	"context"
	"fmt"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/data"
)

func renderModule() component.MapModule {
	return component.MapModule{
		"title": component.ValueExport(data.String("Home")),
		"greet": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			return data.String("Hello, " + data.Stringify(args[0]) + "!"), nil
		}),
		"boom": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			return nil, fmt.Errorf("kaboom")
		}),
	}
}

func TestRenderTemplate(t *testing.T) {
	rc := component.NewContext()
	rc.Query["name"] = "World"

	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{
			"plain text passes through",
			`<p>no expressions here</p>`,
			`<p>no expressions here</p>`,
		},
		{
			"value substitution",
			`<title>{{ title }}</title>`,
			`<title>Home</title>`,
		},
		{
			"function call",
			`<p>{{ greet(query.name) }}</p>`,
			`<p>Hello, World!</p>`,
		},
		{
			"fallback chain",
			`<p>{{ query.missing || 'anonymous' }}</p>`,
			`<p>anonymous</p>`,
		},
		{
			"undefined stringifies to empty",
			`<p>{{ query.missing }}</p>`,
			`<p></p>`,
		},
		{
			"multiple units in document order",
			`{{ title }}-{{ greet('x') }}-{{ 42 }}`,
			`Home-Hello, x!-42`,
		},
		{
			"failing unit emits its literal text",
			`<p>{{ nosuchfn() }}</p>`,
			`<p>{{ nosuchfn() }}</p>`,
		},
		{
			"failure does not abort surrounding units",
			`{{ title }} {{ boom() }} {{ title }}`,
			`Home {{ boom() }} Home`,
		},
		{
			"malformed unit emits its literal text",
			`<p>{{ 1 + }}</p>`,
			`<p>{{ 1 + }}</p>`,
		},
		{
			"unterminated unit is literal text",
			`<p>{{ title </p>`,
			`<p>{{ title </p>`,
		},
		{
			"empty unit",
			`a{{}}b`,
			`ab`,
		},
	}

	r := NewTemplateRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(context.Background(), tt.tpl, renderModule(), rc)
			if got != tt.want {
				t.Errorf("Render mismatch:\n%s", diff.LineDiff(tt.want, got))
			}
		})
	}
}

func TestRenderSequentialEffects(t *testing.T) {
	var calls []string
	mod := component.MapModule{
		"record": component.FuncExport(func(ctx context.Context, args []data.Value, rc *component.Context) (data.Value, error) {
			calls = append(calls, data.Stringify(args[0]))
			return data.Undefined{}, nil
		}),
	}

	NewTemplateRenderer().Render(context.Background(),
		`{{ record('a') }}{{ record('b') }}{{ record('c') }}`, mod, component.NewContext())

	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Errorf("calls = %v, want strict document order", calls)
	}
}
