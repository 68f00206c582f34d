package eval

import (
	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

// traitFunctionName reports whether funcExpr is a bare reference to a
// trait-declared function name with no ordinary binding shadowing it —
// the case inferThrush's type-level cousin never has to worry about
// because Instantiate always has a scheme to work from, but the evaluator
// has no value bound to e.g. `show` until an argument's runtime type
// picks which implementation to run.
func traitFunctionName(env *Environment, reg *traits.Registry, funcExpr ast.Expr) (string, bool) {
	v, ok := funcExpr.(*ast.Variable)
	if !ok || !reg.IsTraitFunction(v.Name) {
		return "", false
	}
	if _, bound := env.Get(v.Name); bound {
		return "", false
	}
	return v.Name, true
}

// resolveTraitFunction dispatches name by the runtime type tag of the
// argument at its trait's DispatchArg position — args[0] for most trait
// functions (spec §4.7/§9: dictionary-less dispatch), but args[1] for
// Functor's `map`/Monad's `andThen`, whose first argument is the mapping
// function, not the container being dispatched on — then evaluates the
// winning implementation's body in the current top-level environment.
func (ev *Evaluator) resolveTraitFunction(name string, args []Value, loc ast.Location) (Value, error) {
	idx := ev.Traits.DispatchArgIndex(name)
	if idx < 0 || idx >= len(args) {
		return nil, runtimeErrorf(loc, "trait function %s requires at least %d argument(s) to dispatch on", name, idx+1)
	}
	typeName := args[idx].TypeName()
	res, err := ev.Traits.ResolveTraitFunction(name, typeName)
	if err != nil {
		return nil, runtimeErrorf(loc, "%s", err.Error())
	}
	methodExpr, ok := res.Impl.Functions[name]
	if !ok {
		return nil, runtimeErrorf(loc, "implementation of %s for %s is missing method %s", res.TraitName, typeName, name)
	}
	return ev.Eval(ev.Global, methodExpr)
}
