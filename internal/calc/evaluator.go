package calc

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/rcliao/redstone-calc/internal/model"
)

// Evaluator computes the value of an infix expression.
type Evaluator interface {
	Eval(ctx context.Context, expr string) (model.Value, error)
}

// maxSteps bounds a single evaluation.
const maxSteps = 10000

// StarlarkEvaluator evaluates expressions as Starlark expressions, so
// integer arithmetic stays exact and "/" divides to a float.
type StarlarkEvaluator struct{}

func (StarlarkEvaluator) Eval(ctx context.Context, expr string) (model.Value, error) {
	expr = strings.ReplaceAll(expr, "×", "*")
	if strings.TrimSpace(expr) == "" {
		return model.Value{}, fmt.Errorf("empty expression")
	}
	if i := strings.IndexFunc(expr, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == ' ' || strings.ContainsRune(operators, r))
	}); i >= 0 {
		r, _ := utf8.DecodeRuneInString(expr[i:])
		return model.Value{}, fmt.Errorf("unexpected character %q", r)
	}

	thread := &starlark.Thread{Name: "calc"}
	thread.SetMaxExecutionSteps(maxSteps)
	if done := ctx.Done(); done != nil {
		stop := context.AfterFunc(ctx, func() { thread.Cancel(ctx.Err().Error()) })
		defer stop()
	}

	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "expr", expr, nil)
	if err != nil {
		return model.Value{}, err
	}

	switch v := v.(type) {
	case starlark.Int:
		if n, ok := v.Int64(); ok {
			return model.IntValue(n), nil
		}
		// Beyond int64: keep sign and magnitude so the ceiling still applies.
		return model.FloatValue(float64(v.Float())), nil
	case starlark.Float:
		return model.FloatValue(float64(v)), nil
	}
	return model.Value{}, fmt.Errorf("non-numeric result %s", v.Type())
}
