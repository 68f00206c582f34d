package infer

import "github.com/sunholo/noolang/internal/ast"

// InitializeBuiltins seeds env with the handful of effectful primitives
// that can't be written in Noolang itself, grounded on the teacher's
// NewTypeEnvWithBuiltins but renamed onto Noolang's own closed effect set
// {log, read, write, state, time, rand, ffi, async} (spec §4.2/§9), plus
// True/False, numberToString, not/and/or and the mapList/andThenList List
// instances below. Option, Result, Show and their instances are Noolang
// source loaded by LoadStdlib; the Functor and Monad traits are
// registered by LoadStdlib in Go (stdlib.registerFunctorMonad).
func InitializeBuiltins(env *Environment) *Environment {
	a := func() ast.Type { return &ast.VariableType{Name: "a"} }

	env = env.Extend("True", &ast.TypeScheme{Type: ast.BoolType()})
	env = env.Extend("False", &ast.TypeScheme{Type: ast.BoolType()})

	env = env.Extend("numberToString", &ast.TypeScheme{
		Type: ast.FunctionTypeOf([]ast.Type{ast.FloatType()}, ast.StringType(), ast.EffectSet{}),
	})

	env = env.Extend("print", &ast.TypeScheme{
		QuantifiedVars: []string{"a"},
		Type:     ast.FunctionTypeOf([]ast.Type{a()}, &ast.UnitType{}, ast.NewEffectSet("log")),
	})
	env = env.Extend("readLine", &ast.TypeScheme{
		Type: ast.FunctionTypeOf([]ast.Type{&ast.UnitType{}}, ast.StringType(), ast.NewEffectSet("read")),
	})
	env = env.Extend("writeLine", &ast.TypeScheme{
		Type: ast.FunctionTypeOf([]ast.Type{ast.StringType()}, &ast.UnitType{}, ast.NewEffectSet("write")),
	})
	env = env.Extend("now", &ast.TypeScheme{
		Type: ast.FunctionTypeOf([]ast.Type{&ast.UnitType{}}, ast.FloatType(), ast.NewEffectSet("time")),
	})
	env = env.Extend("random", &ast.TypeScheme{
		Type: ast.FunctionTypeOf([]ast.Type{&ast.UnitType{}}, ast.FloatType(), ast.NewEffectSet("rand")),
	})
	env = env.Extend("ffiCall", &ast.TypeScheme{
		QuantifiedVars: []string{"a", "b"},
		Type:     ast.FunctionTypeOf([]ast.Type{ast.StringType(), &ast.VariableType{Name: "a"}}, &ast.VariableType{Name: "b"}, ast.NewEffectSet("ffi")),
	})
	env = env.Extend("spawn", &ast.TypeScheme{
		QuantifiedVars: []string{"a"},
		Type:     ast.FunctionTypeOf([]ast.Type{ast.FunctionTypeOf(nil, a(), ast.EffectSet{})}, a(), ast.NewEffectSet("async")),
	})

	// Pure boolean builtins not covered by the parser's operator grammar
	// (the operators themselves are handled directly in inferBinary).
	env = env.Extend("not", &ast.TypeScheme{Type: ast.FunctionTypeOf([]ast.Type{ast.BoolType()}, ast.BoolType(), ast.EffectSet{})})
	env = env.Extend("and", &ast.TypeScheme{Type: ast.FunctionTypeOf([]ast.Type{ast.BoolType(), ast.BoolType()}, ast.BoolType(), ast.EffectSet{})})
	env = env.Extend("or", &ast.TypeScheme{Type: ast.FunctionTypeOf([]ast.Type{ast.BoolType(), ast.BoolType()}, ast.BoolType(), ast.EffectSet{})})

	// mapList/andThenList back the Functor/Monad `List` instances
	// (internal/stdlib registers them against the trait registry): Noolang
	// has no list/cons pattern to deconstruct a List in source, so List's
	// instance, unlike Option/Result's, has to be a host builtin.
	b := func() ast.Type { return &ast.VariableType{Name: "b"} }
	env = env.Extend("mapList", &ast.TypeScheme{
		QuantifiedVars: []string{"a", "b"},
		Type: ast.FunctionTypeOf([]ast.Type{
			ast.FunctionTypeOf([]ast.Type{a()}, b(), ast.EffectSet{}),
			ast.ListTypeOf(a()),
		}, ast.ListTypeOf(b()), ast.EffectSet{}),
	})
	env = env.Extend("andThenList", &ast.TypeScheme{
		QuantifiedVars: []string{"a", "b"},
		Type: ast.FunctionTypeOf([]ast.Type{
			ast.FunctionTypeOf([]ast.Type{a()}, ast.ListTypeOf(b()), ast.EffectSet{}),
			ast.ListTypeOf(a()),
		}, ast.ListTypeOf(b()), ast.EffectSet{}),
	})

	return env
}
