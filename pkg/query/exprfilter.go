package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-relationfield/pkg/render"
)

// ExprFilter compiles a boolean expr-lang expression into a Transform so
// resource definitions can declare candidate filters as data instead of code.
// The expression sees:
//
//	record  — the candidate's attributes (map access, e.g. record.role)
//	attr(n) — attribute lookup that tolerates non-map records
//	actor   — render context actor
//	params  — render context path parameters
//	assigns — render context assigns
//
// Compilation errors surface immediately; evaluation errors propagate out of
// the repository call, matching the contract that a failing transform is a
// field-configuration bug.
func ExprFilter(code string) (Transform, error) {
	program, err := expr.Compile(code, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query: compile filter expression: %w", err)
	}
	return func(q Builder, rctx render.Context) Builder {
		return q.Filter(exprPredicate(program, rctx))
	}, nil
}

func exprPredicate(program *vm.Program, rctx render.Context) Predicate {
	return func(rec Record) (bool, error) {
		env := map[string]any{
			"record":  recordAttrs(rec),
			"actor":   rctx.Actor,
			"params":  rctx.Params,
			"assigns": rctx.Assigns,
			"attr": func(name string) any {
				value, _ := rec.Attr(name)
				return value
			},
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return false, fmt.Errorf("query: run filter expression: %w", err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return false, fmt.Errorf("query: filter expression returned %T, want bool", out)
		}
		return ok, nil
	}
}

func recordAttrs(rec Record) map[string]any {
	type attrMapper interface {
		Attrs() map[string]any
	}
	if mapper, ok := rec.(attrMapper); ok {
		return mapper.Attrs()
	}
	return nil
}
