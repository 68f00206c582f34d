package stdlib

import (
	_ "embed"
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/infer"
	"github.com/sunholo/noolang/internal/lexer"
	"github.com/sunholo/noolang/internal/parser"
	"github.com/sunholo/noolang/internal/traits"
)

//go:embed prelude.noo
var preludeSource []byte

// ParsePrelude lexes and parses the embedded Noolang prelude, exported so
// cmd/noolang can evaluate the same statements at the runtime level that
// LoadStdlib type-checks here.
func ParsePrelude() (*ast.Program, error) {
	toks := lexer.New(preludeSource, "prelude.noo").Tokenize()
	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("stdlib: parsing embedded prelude: %w", err)
	}
	return prog, nil
}

// LoadStdlib type-checks the embedded prelude into env, registering
// Option, Result, the Show trait and its Float/String/Bool implementations
// against reg along the way, then registers Functor and Monad and their
// List/Option/Result instances directly (registerFunctorMonad), since
// their `map`/`andThen` methods can't be declared through ordinary
// `constraint`/`implement` source — Noolang's type grammar has no way to
// write a container type applied to an element type ("f a"), so the
// parsed-source path that works for Show's single-variable signature
// can't express a signature generic over List/Option/Result uniformly.
// It runs through its own internal/infer.Inferencer (rather than taking
// one in) so this package never needs to import infer's unexported
// internals or create a cyclic dependency back from infer onto stdlib.
func LoadStdlib(env *infer.Environment, reg *traits.Registry) (*infer.Environment, error) {
	prog, err := ParsePrelude()
	if err != nil {
		return nil, err
	}
	inf := infer.New(reg)
	env, err = inf.RunStatements(env, prog.Statements)
	if err != nil {
		return nil, fmt.Errorf("stdlib: type-checking embedded prelude: %w", err)
	}
	if err := registerFunctorMonad(reg); err != nil {
		return nil, fmt.Errorf("stdlib: registering Functor/Monad: %w", err)
	}
	return env, nil
}

// registerFunctorMonad declares Functor (`map`) and Monad (`andThen`)
// directly against reg and points each List/Option/Result instance at the
// matching prelude/builtin function, so resolveTraitFunction's
// dictionary-less dispatch (trait_dispatch.go) picks the right one by the
// container argument's runtime type, the same mechanism Show's instances
// go through.
func registerFunctorMonad(reg *traits.Registry) error {
	av := &ast.VariableType{Name: "a"}
	bv := &ast.VariableType{Name: "b"}
	fv := &ast.VariableType{Name: "f"}

	functor := &traits.Definition{
		Name:        "Functor",
		TypeParam:   "f",
		DispatchArg: 1,
		Functions: map[string]ast.Type{
			"map": ast.FunctionTypeOf([]ast.Type{
				ast.FunctionTypeOf([]ast.Type{av}, bv, ast.EffectSet{}),
				fv,
			}, fv, ast.EffectSet{}),
		},
	}
	if err := reg.AddTraitDefinition(functor); err != nil {
		return err
	}
	for typeName, fn := range map[string]string{"List": "mapList", "Option": "mapOption", "Result": "mapResult"} {
		impl := &traits.Implementation{TypeName: typeName, Functions: map[string]ast.Expr{"map": &ast.Variable{Name: fn}}}
		if err := reg.AddTraitImplementation("Functor", impl); err != nil {
			return err
		}
	}

	monad := &traits.Definition{
		Name:        "Monad",
		TypeParam:   "f",
		DispatchArg: 1,
		Functions: map[string]ast.Type{
			"andThen": ast.FunctionTypeOf([]ast.Type{
				ast.FunctionTypeOf([]ast.Type{av}, fv, ast.EffectSet{}),
				fv,
			}, fv, ast.EffectSet{}),
		},
	}
	if err := reg.AddTraitDefinition(monad); err != nil {
		return err
	}
	for typeName, fn := range map[string]string{"List": "andThenList", "Option": "andThenOption", "Result": "andThenResult"} {
		impl := &traits.Implementation{TypeName: typeName, Functions: map[string]ast.Expr{"andThen": &ast.Variable{Name: fn}}}
		if err := reg.AddTraitImplementation("Monad", impl); err != nil {
			return err
		}
	}
	return nil
}
