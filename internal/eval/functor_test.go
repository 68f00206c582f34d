package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

// newFunctorRegistry wires Functor/Monad with only the List instance, the
// same shape stdlib.registerFunctorMonad builds for all three containers.
func newFunctorRegistry(t *testing.T) *traits.Registry {
	t.Helper()
	reg := traits.New()
	require.NoError(t, reg.AddTraitDefinition(&traits.Definition{
		Name:        "Functor",
		TypeParam:   "f",
		DispatchArg: 1,
		Functions:   map[string]ast.Type{"map": ast.FunctionTypeOf(nil, nil, ast.EffectSet{})},
	}))
	require.NoError(t, reg.AddTraitImplementation("Functor", &traits.Implementation{
		TypeName:  "List",
		Functions: map[string]ast.Expr{"map": &ast.Variable{Name: "mapList"}},
	}))
	require.NoError(t, reg.AddTraitDefinition(&traits.Definition{
		Name:        "Monad",
		TypeParam:   "f",
		DispatchArg: 1,
		Functions:   map[string]ast.Type{"andThen": ast.FunctionTypeOf(nil, nil, ast.EffectSet{})},
	}))
	require.NoError(t, reg.AddTraitImplementation("Monad", &traits.Implementation{
		TypeName:  "List",
		Functions: map[string]ast.Expr{"andThen": &ast.Variable{Name: "andThenList"}},
	}))
	return reg
}

func TestMapList_AppliesFunctionElementwise(t *testing.T) {
	reg := newFunctorRegistry(t)
	ev := New(reg)
	ev.Global = ev.RegisterListInstances(NewEnvironment())

	list := &ast.ListExpr{Elements: []ast.Expr{num(1), num(2), num(3)}}
	plusOne := &ast.FunctionExpr{Params: []string{"x"}, Body: &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: num(1)}}

	result, err := ev.Eval(ev.Global, &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "map"},
		Args:     []ast.Expr{plusOne, list},
	})
	require.NoError(t, err)
	assert.Equal(t, "[2, 3, 4]", result.String())
}

func TestAndThenList_FlattensOneLevel(t *testing.T) {
	reg := newFunctorRegistry(t)
	ev := New(reg)
	ev.Global = ev.RegisterListInstances(NewEnvironment())

	list := &ast.ListExpr{Elements: []ast.Expr{num(1), num(2)}}
	duplicate := &ast.FunctionExpr{
		Params: []string{"x"},
		Body:   &ast.ListExpr{Elements: []ast.Expr{&ast.Variable{Name: "x"}, &ast.Variable{Name: "x"}}},
	}

	result, err := ev.Eval(ev.Global, &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "andThen"},
		Args:     []ast.Expr{duplicate, list},
	})
	require.NoError(t, err)
	assert.Equal(t, "[1, 1, 2, 2]", result.String())
}

func TestResolveTraitFunction_DispatchArgOneUsesSecondArgument(t *testing.T) {
	reg := newFunctorRegistry(t)
	ev := New(reg)
	ev.Global = ev.RegisterListInstances(NewEnvironment())

	fn, err := ev.resolveTraitFunction("map", []Value{
		&ClosureValue{Params: []string{"x"}, Body: &ast.Variable{Name: "x"}, Env: ev.Global},
		&ListValue{Elements: []Value{&NumberValue{Value: 1}}},
	}, ast.Location{})
	require.NoError(t, err)
	assert.Equal(t, "mapList", fn.(*BuiltinValue).Name)
}
