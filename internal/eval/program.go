package eval

import "github.com/sunholo/noolang/internal/ast"

// EvalProgram evaluates every statement of prog in order against baseEnv
// (expected to already carry the effectful builtins and the loaded
// stdlib), returning the value of the final statement — the runtime
// counterpart of infer.TypeProgram, sharing the same traits.Registry so
// `implement` bodies registered during type-checking are ready to dispatch
// against by the time evaluation reaches a trait call.
func (ev *Evaluator) EvalProgram(prog *ast.Program, baseEnv *Environment) (Value, error) {
	env := baseEnv
	ev.Global = env
	var last Value = &UnitValue{}
	for _, stmt := range prog.Statements {
		var err error
		env, last, err = ev.evalStatement(env, stmt)
		if err != nil {
			return nil, err
		}
		ev.Global = env
	}
	return last, nil
}
