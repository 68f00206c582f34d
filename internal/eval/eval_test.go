package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

func newTestEvaluator() *Evaluator {
	return New(traits.New())
}

func num(n float64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: n} }

func TestEval_Literals(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	v, err := ev.Eval(env, num(3))
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())

	v, err = ev.Eval(env, &ast.StringLiteral{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", v.String())
}

func TestEval_FunctionClosureCapturesEnv(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment().Extend("x", &NumberValue{Value: 10})

	fn := &ast.FunctionExpr{Params: []string{"y"}, Body: &ast.BinaryExpr{
		Left: &ast.Variable{Name: "x"}, Operator: "+", Right: &ast.Variable{Name: "y"},
	}}
	result, err := ev.Eval(env, &ast.ApplicationExpr{Function: fn, Args: []ast.Expr{num(5)}})
	require.NoError(t, err)
	assert.Equal(t, "15", result.String())
}

func TestEval_PartialApplication(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	add3 := &ast.FunctionExpr{Params: []string{"a", "b", "c"}, Body: &ast.BinaryExpr{
		Left: &ast.BinaryExpr{Left: &ast.Variable{Name: "a"}, Operator: "+", Right: &ast.Variable{Name: "b"}},
		Operator: "+", Right: &ast.Variable{Name: "c"},
	}}
	fnVal, err := ev.Eval(env, add3)
	require.NoError(t, err)

	partial, err := ev.apply(ast.Location{}, fnVal, []Value{&NumberValue{Value: 1}})
	require.NoError(t, err)
	closure, ok := partial.(*ClosureValue)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, closure.Params)

	final, err := ev.apply(ast.Location{}, closure, []Value{&NumberValue{Value: 2}, &NumberValue{Value: 3}})
	require.NoError(t, err)
	assert.Equal(t, "6", final.String())
}

func TestEval_OverApplication(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	// makeAdder x = fn y => x + y ; (makeAdder 1) 2 fed as a single over-application.
	makeAdder := &ast.FunctionExpr{Params: []string{"x"}, Body: &ast.FunctionExpr{
		Params: []string{"y"},
		Body:   &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: &ast.Variable{Name: "y"}},
	}}
	fnVal, err := ev.Eval(env, makeAdder)
	require.NoError(t, err)

	result, err := ev.apply(ast.Location{}, fnVal, []Value{&NumberValue{Value: 1}, &NumberValue{Value: 2}})
	require.NoError(t, err)
	assert.Equal(t, "3", result.String())
}

func TestEvalStatement_LetrecSelfRecursion(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	// countdown = fn n => if n == 0 then 0 else countdown (n - 1)
	countdown := &ast.FunctionExpr{
		Params: []string{"n"},
		Body: &ast.IfExpr{
			Condition: &ast.BinaryExpr{Left: &ast.Variable{Name: "n"}, Operator: "==", Right: num(0)},
			Then:      num(0),
			Else: &ast.ApplicationExpr{
				Function: &ast.Variable{Name: "countdown"},
				Args:     []ast.Expr{&ast.BinaryExpr{Left: &ast.Variable{Name: "n"}, Operator: "-", Right: num(1)}},
			},
		},
	}
	def := &ast.DefinitionExpr{Name: "countdown", Value: countdown}
	newEnv, _, err := ev.evalStatement(env, def)
	require.NoError(t, err)

	result, err := ev.Eval(newEnv, &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "countdown"}, Args: []ast.Expr{num(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, "0", result.String())
}

func TestEvalStatement_MutationVisibleThroughCapturedClosure(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	env, _, err := ev.evalStatement(env, &ast.MutableDefinitionExpr{Name: "counter", Value: num(1)})
	require.NoError(t, err)

	reader := &ast.FunctionExpr{Params: []string{"_"}, Body: &ast.Variable{Name: "counter"}}
	readerVal, err := ev.Eval(env, reader)
	require.NoError(t, err)

	env, _, err = ev.evalStatement(env, &ast.MutationExpr{Name: "counter", Value: num(99)})
	require.NoError(t, err)

	result, err := ev.apply(ast.Location{}, readerVal, []Value{&UnitValue{}})
	require.NoError(t, err)
	assert.Equal(t, "99", result.String())
}

func TestEvalMatch_ConstructorPatternsAndWildcard(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	some := &ConstructorValue{TypeName_: "Option", CtorName: "Some", Args: []Value{&NumberValue{Value: 7}}}

	match := &ast.MatchExpr{
		Scrutinee: &ast.Variable{Name: "opt"},
		Cases: []ast.MatchCase{
			{
				Pattern: &ast.ConstructorPattern{Name: "Some", Args: []ast.Pattern{&ast.VariablePattern{Name: "x"}}},
				Body:    &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: num(1)},
			},
			{Pattern: &ast.WildcardPattern{}, Body: num(0)},
		},
	}
	result, err := ev.Eval(env.Extend("opt", some), match)
	require.NoError(t, err)
	assert.Equal(t, "8", result.String())
}

func TestEvalBinary_PlusConcatenatesStrings(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	result, err := ev.Eval(env, &ast.BinaryExpr{
		Left: &ast.StringLiteral{Value: "hello"}, Operator: "+", Right: &ast.StringLiteral{Value: " world"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", result.String())
}

func TestEvalBinary_PlusAddsNumbers(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	result, err := ev.Eval(env, &ast.BinaryExpr{Left: num(1), Operator: "+", Right: num(2)})
	require.NoError(t, err)
	assert.Equal(t, "3", result.String())
}

func TestEvalBinary_PlusRejectsMixedOperands(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	_, err := ev.Eval(env, &ast.BinaryExpr{Left: num(1), Operator: "+", Right: &ast.StringLiteral{Value: "hello"}})
	require.Error(t, err)
}

func TestEvalBinary_SequenceEvaluatesBothSidesInOrder(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	def := &ast.DefinitionExpr{Name: "x", Value: num(41)}
	result, err := ev.Eval(env, &ast.BinaryExpr{
		Left: def, Operator: ";",
		Right: &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "+", Right: num(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "42", result.String())
}

func TestResolveTraitFunction_DispatchesByRuntimeType(t *testing.T) {
	reg := traits.New()
	require.NoError(t, reg.AddTraitDefinition(&traits.Definition{
		Name:      "Show",
		TypeParam: "a",
		Functions: map[string]ast.Type{"show": ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}}, ast.StringType(), nil)},
	}))
	require.NoError(t, reg.AddTraitImplementation("Show", &traits.Implementation{
		TypeName: "Float",
		Functions: map[string]ast.Expr{
			"show": &ast.FunctionExpr{Params: []string{"x"}, Body: &ast.Variable{Name: "x"}},
		},
	}))

	ev := New(reg)
	ev.Global = NewEnvironment()

	result, err := ev.Eval(ev.Global, &ast.ApplicationExpr{
		Function: &ast.Variable{Name: "show"},
		Args:     []ast.Expr{num(42)},
	})
	require.NoError(t, err)
	assert.Equal(t, "42", result.String())
}

func TestEvalThrush_SafeShortCircuitsOnNone(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	none := &ConstructorValue{TypeName_: "Option", CtorName: "None"}
	double := &ast.FunctionExpr{Params: []string{"x"}, Body: &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "*", Right: num(2)}}

	result, err := ev.evalThrush(env.Extend("opt", none), &ast.BinaryExpr{
		Left: &ast.Variable{Name: "opt"}, Operator: "|?", Right: double,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "None", result.String())
}

func TestEvalThrush_SafeAppliesOnSome(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	some := &ConstructorValue{TypeName_: "Option", CtorName: "Some", Args: []Value{&NumberValue{Value: 4}}}
	double := &ast.FunctionExpr{Params: []string{"x"}, Body: &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Operator: "*", Right: num(2)}}

	result, err := ev.evalThrush(env.Extend("opt", some), &ast.BinaryExpr{
		Left: &ast.Variable{Name: "opt"}, Operator: "|?", Right: double,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "Some 8", result.String())
}

func TestTypeDefinitionExpr_BindsConstructors(t *testing.T) {
	ev := newTestEvaluator()
	env := NewEnvironment()

	typeDef := &ast.TypeDefinitionExpr{
		Name: "Option",
		Constructors: []ast.ConstructorDecl{
			{Name: "None"},
			{Name: "Some", Args: []ast.Type{&ast.VariableType{Name: "a"}}},
		},
	}
	env, _, err := ev.evalStatement(env, typeDef)
	require.NoError(t, err)

	noneVal, ok := env.Get("None")
	require.True(t, ok)
	assert.Equal(t, "None", noneVal.String())

	someCtor, ok := env.Get("Some")
	require.True(t, ok)
	someVal, err := ev.apply(ast.Location{}, someCtor, []Value{&NumberValue{Value: 5}})
	require.NoError(t, err)
	assert.Equal(t, "Some 5", someVal.String())
}
