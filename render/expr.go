package render

import (
	"maps"

	"github.com/expr-lang/expr"
)

// Env returns the expression environment for vars: the builtins, the env
// function over the process environment, and vars, which shadow both.
func Env(vars map[string]any) map[string]any {
	env := Builtins()
	env["env"] = environ()
	maps.Copy(env, vars)

	return env
}

// Eval compiles and runs an expr-lang expression against [Env] of vars.
func Eval(source string, vars map[string]any) (any, error) {
	env := Env(vars)

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrExprCompile.Wrap(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err)
	}

	return result, nil
}
