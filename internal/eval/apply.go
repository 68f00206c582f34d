package eval

import "github.com/sunholo/noolang/internal/ast"

// apply implements Noolang's curried-by-consumption application: a
// multi-param function can be applied to fewer arguments than it declares
// (producing a new closure over the remaining params) or to more (the
// result of the first call is itself applied to the rest) — the runtime
// mirror of inferApplication's per-argument curried-arity-reduction.
func (ev *Evaluator) apply(loc ast.Location, fn Value, args []Value) (Value, error) {
	for len(args) > 0 {
		switch f := fn.(type) {

		case *ClosureValue:
			if len(f.Params) == 0 {
				return nil, runtimeErrorf(loc, "cannot apply a function with no parameters")
			}
			if len(args) < len(f.Params) {
				callEnv := f.Env
				for i, a := range args {
					callEnv = callEnv.Extend(f.Params[i], a)
				}
				return &ClosureValue{Params: f.Params[len(args):], Body: f.Body, Env: callEnv}, nil
			}
			callEnv := f.Env
			n := len(f.Params)
			for i := 0; i < n; i++ {
				callEnv = callEnv.Extend(f.Params[i], args[i])
			}
			result, err := ev.Eval(callEnv, f.Body)
			if err != nil {
				return nil, err
			}
			args = args[n:]
			fn = result

		case *BuiltinValue:
			if len(args) < f.Arity {
				captured := append([]Value{}, args...)
				inner := f.Fn
				remaining := f.Arity - len(args)
				return &BuiltinValue{
					Name:  f.Name,
					Arity: remaining,
					Fn: func(more []Value) (Value, error) {
						return inner(append(append([]Value{}, captured...), more...))
					},
				}, nil
			}
			result, err := f.Fn(args[:f.Arity])
			if err != nil {
				return nil, err
			}
			args = args[f.Arity:]
			fn = result

		default:
			return nil, runtimeErrorf(loc, "cannot apply a non-function value of type %s", fn.TypeName())
		}
	}
	return fn, nil
}
