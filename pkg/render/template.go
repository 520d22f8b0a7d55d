package render

import (
	"context"
	"log/slog"
	"strings"

	stderrors "errors"

	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/data"
	"github.com/zyte-go/zyte/pkg/expr"
	"github.com/zyte-go/zyte/pkg/middleware"
)

// Expression unit delimiters.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// TemplateRenderer finds every {{ ... }} unit in a template, evaluates each
// against the component module and render context, and assembles the final
// string.
type TemplateRenderer struct {
	eval *expr.Evaluator
	log  *slog.Logger
}

// NewTemplateRenderer creates a template renderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		eval: expr.New(),
		log:  slog.Default().With("component", "render"),
	}
}

// Render processes tpl in a single left-to-right pass. Expressions are
// evaluated strictly sequentially, so side effects in component functions
// happen in document order. A failing expression is logged and emitted as
// its original literal text; it never aborts the rest of the page.
func (t *TemplateRenderer) Render(ctx context.Context, tpl string, mod component.Module, rc *component.Context) string {
	var b strings.Builder
	b.Grow(len(tpl))

	rest := tpl
	for {
		start := strings.Index(rest, openDelim)
		if start == -1 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end == -1 {
			// Unterminated unit: everything from here on is literal text.
			b.WriteString(rest)
			break
		}
		end += start + len(openDelim)

		b.WriteString(rest[:start])

		unit := rest[start : end+len(closeDelim)]
		inner := strings.TrimSpace(rest[start+len(openDelim) : end])

		v, err := t.eval.Eval(ctx, inner, mod, rc)
		if err != nil {
			if stderrors.Is(err, expr.ErrUnknownFunction) {
				// Already warned by the evaluator with the function name.
				t.log.Warn("expression left as literal text", "expression", inner)
			} else {
				t.log.Error("expression evaluation failed", "expression", inner, "error", err)
			}
			middleware.RecordExpressionFailure()
			b.WriteString(unit)
		} else {
			b.WriteString(data.Stringify(v))
		}

		rest = rest[end+len(closeDelim):]
	}

	return b.String()
}
