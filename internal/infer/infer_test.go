package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

func num(n float64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: n} }

func addOne() *ast.FunctionExpr {
	return &ast.FunctionExpr{
		Params: []string{"x"},
		Body:   &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: num(1)},
	}
}

func TestInferPlus_FloatOperandsYieldFloat(t *testing.T) {
	inf := New(traits.New())
	env := NewEnvironment()

	ty, _, err := inf.Infer(env, &ast.BinaryExpr{Left: num(1), Operator: "+", Right: num(2)})
	require.NoError(t, err)
	assert.Equal(t, "Float", ty.String())
}

func TestInferPlus_StringOperandsYieldString(t *testing.T) {
	inf := New(traits.New())
	env := NewEnvironment()

	ty, _, err := inf.Infer(env, &ast.BinaryExpr{
		Left: &ast.StringLiteral{Value: "hello"}, Operator: "+", Right: &ast.StringLiteral{Value: " world"},
	})
	require.NoError(t, err)
	assert.Equal(t, "String", ty.String())
}

func TestInferPlus_MixedOperandsIsTypeError(t *testing.T) {
	inf := New(traits.New())
	env := NewEnvironment()

	_, _, err := inf.Infer(env, &ast.BinaryExpr{Left: num(1), Operator: "+", Right: &ast.StringLiteral{Value: "hello"}})
	require.Error(t, err)
}

func TestInferSequence_TypesAsRightOperand(t *testing.T) {
	inf := New(traits.New())
	env := NewEnvironment()

	ty, _, err := inf.Infer(env, &ast.BinaryExpr{
		Left:     &ast.DefinitionExpr{Name: "x", Value: num(1)},
		Operator: ";",
		Right:    &ast.Variable{Name: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Float", ty.String())
}

func TestInferDefinition_HasUnitType(t *testing.T) {
	inf := New(traits.New())
	env := NewEnvironment()

	ty, _, err := inf.Infer(env, &ast.DefinitionExpr{Name: "x", Value: num(5)})
	require.NoError(t, err)
	_, isUnit := ty.(*ast.UnitType)
	assert.True(t, isUnit, "expected DefinitionExpr to type as Unit, got %s", ty.String())

	// the binding lives only in the environment inferStatement returns.
	_, ok := env.Lookup("x")
	assert.False(t, ok, "a bare Infer call must not mutate the caller's env")
}

func TestInferFunctorCall_MapOverListYieldsListFloat(t *testing.T) {
	inf := New(traits.New())
	env := InitializeBuiltins(NewEnvironment())

	call := &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "map"},
		Args: []ast.Expr{
			addOne(),
			&ast.ListExpr{Elements: []ast.Expr{num(1), num(2), num(3)}},
		},
	}
	ty, _, err := inf.Infer(env, call)
	require.NoError(t, err)

	list, ok := ty.(*ast.ListType)
	require.True(t, ok, "expected a List type, got %T", ty)
	assert.Equal(t, "Float", list.Element.String())
}

func TestInferFunctorCall_MapOverOptionYieldsOption(t *testing.T) {
	inf := New(traits.New())
	env := InitializeBuiltins(NewEnvironment())
	env = env.Extend("opt", &ast.TypeScheme{Type: ast.VariantTypeOf("Option", ast.FloatType())})

	call := &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "map"},
		Args:     []ast.Expr{addOne(), &ast.Variable{Name: "opt"}},
	}
	ty, _, err := inf.Infer(env, call)
	require.NoError(t, err)

	variant, ok := ty.(*ast.VariantType)
	require.True(t, ok, "expected a Variant type, got %T", ty)
	assert.Equal(t, "Option", variant.Name)
	require.Len(t, variant.Args, 1)
	assert.Equal(t, "Float", variant.Args[0].String())
}

func TestInferFunctorCall_AndThenOverResultPreservesErrorType(t *testing.T) {
	inf := New(traits.New())
	env := InitializeBuiltins(NewEnvironment())
	resultType := ast.VariantTypeOf("Result", ast.StringType(), ast.FloatType())
	env = env.Extend("res", &ast.TypeScheme{Type: resultType})

	fn := &ast.FunctionExpr{
		Params: []string{"x"},
		Body: &ast.ApplicationExpr{
			Function: &ast.Variable{Name: "Ok"},
			Args:     []ast.Expr{&ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: num(1)}},
		},
	}
	env = env.Extend("Ok", &ast.TypeScheme{
		QuantifiedVars: []string{"a"},
		Type: ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}},
			ast.VariantTypeOf("Result", ast.StringType(), &ast.VariableType{Name: "a"}), ast.EffectSet{}),
	})

	call := &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "andThen"},
		Args:     []ast.Expr{fn, &ast.Variable{Name: "res"}},
	}
	ty, _, err := inf.Infer(env, call)
	require.NoError(t, err)

	variant, ok := ty.(*ast.VariantType)
	require.True(t, ok, "expected a Variant type, got %T", ty)
	assert.Equal(t, "Result", variant.Name)
	require.Len(t, variant.Args, 2)
	assert.Equal(t, "String", variant.Args[0].String())
	assert.Equal(t, "Float", variant.Args[1].String())
}

func TestInferFunctorCall_NonContainerArgumentIsTypeError(t *testing.T) {
	inf := New(traits.New())
	env := InitializeBuiltins(NewEnvironment())

	call := &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "map"},
		Args:     []ast.Expr{addOne(), num(5)},
	}
	_, _, err := inf.Infer(env, call)
	require.Error(t, err)
}
