package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// functions available to every expression.
var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
	"upper": stdlib.UpperFunc,
	"lower": stdlib.LowerFunc,
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// newEvalContext exposes the resolved locals as `local.<name>`.
func newEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(locals)},
		Functions: functions,
	}
}

// resolveLocals evaluates local attributes in dependency order. A local may
// reference any other local regardless of declaration order; references
// that can never be satisfied are reported as an error.
func resolveLocals(ctx context.Context, attrs map[string]*hcl.Attribute) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	resolved := make(map[string]cty.Value, len(attrs))

	pending := make([]string, 0, len(attrs))
	for name := range attrs {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for pass := 1; len(pending) > 0; pass++ {
		var next []string
		for _, name := range pending {
			if !localsReady(attrs[name].Expr, resolved) {
				next = append(next, name)
				continue
			}
			val, diags := attrs[name].Expr.Value(newEvalContext(resolved))
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate local '%s': %w", name, diags)
			}
			resolved[name] = val
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("cannot resolve locals %v: unknown or circular reference", next)
		}
		logger.Debug("Resolved locals pass.", "pass", pass, "resolved", len(resolved), "pending", len(next))
		pending = next
	}
	return resolved, nil
}

// localsReady reports whether every `local.*` reference of expr is resolved.
func localsReady(expr hcl.Expression, resolved map[string]cty.Value) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "local" || len(traversal) < 2 {
			continue
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, done := resolved[attr.Name]; !done {
			return false
		}
	}
	return true
}

// evalInt evaluates expr to a whole number.
func evalInt(expr hcl.Expression, evalCtx *hcl.EvalContext, what string) (int64, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%s: %w", what, diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return 0, fmt.Errorf("%s: value must not be null", what)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%s: cannot convert %s to number: %w", what, val.Type().FriendlyName(), err)
	}
	var out int64
	if err := gocty.FromCtyValue(num, &out); err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}

// evalString evaluates expr to a string.
func evalString(expr hcl.Expression, evalCtx *hcl.EvalContext, what string) (string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %w", what, diags)
	}
	if val.IsNull() {
		return "", nil
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: cannot convert %s to string: %w", what, val.Type().FriendlyName(), err)
	}
	var out string
	if err := gocty.FromCtyValue(str, &out); err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}
