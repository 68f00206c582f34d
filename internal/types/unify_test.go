package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

func TestUnify_PrimitiveSuccess(t *testing.T) {
	sub, err := Unify(ast.FloatType(), ast.FloatType(), Substitution{}, nil)
	require.NoError(t, err)
	assert.Empty(t, sub)
}

func TestUnify_PrimitiveMismatch(t *testing.T) {
	_, err := Unify(ast.FloatType(), ast.StringType(), Substitution{}, nil)
	require.Error(t, err)
	var uerr *UnifyError
	require.ErrorAs(t, err, &uerr)
}

func TestUnify_VariableBindsToConcrete(t *testing.T) {
	v := &ast.VariableType{Name: "a"}
	sub, err := Unify(v, ast.FloatType(), Substitution{}, nil)
	require.NoError(t, err)
	bound, ok := sub["a"]
	require.True(t, ok)
	assert.True(t, ast.TypesEqual(bound, ast.FloatType()))
}

func TestUnify_OccursCheck(t *testing.T) {
	v := &ast.VariableType{Name: "a"}
	listOfA := ast.ListTypeOf(v)
	_, err := Unify(v, listOfA, Substitution{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infinite type")
}

func TestUnify_FunctionStructural(t *testing.T) {
	fn1 := ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}}, ast.FloatType(), nil)
	fn2 := ast.FunctionTypeOf([]ast.Type{ast.StringType()}, &ast.VariableType{Name: "b"}, nil)
	sub, err := Unify(fn1, fn2, Substitution{}, nil)
	require.NoError(t, err)
	assert.True(t, ast.TypesEqual(Substitute(&ast.VariableType{Name: "a"}, sub), ast.StringType()))
	assert.True(t, ast.TypesEqual(Substitute(&ast.VariableType{Name: "b"}, sub), ast.FloatType()))
}

func TestUnify_RecordMissingField(t *testing.T) {
	r1 := ast.RecordTypeOf(map[string]ast.Type{"name": ast.StringType()})
	r2 := ast.RecordTypeOf(map[string]ast.Type{"name": ast.StringType(), "age": ast.FloatType()})
	_, err := Unify(r1, r2, Substitution{}, nil)
	require.Error(t, err)
}

func TestUnify_IsConstraintDischarged(t *testing.T) {
	reg := traits.New()
	require.NoError(t, reg.AddTraitDefinition(&traits.Definition{
		Name:      "Show",
		TypeParam: "a",
		Functions: map[string]ast.Type{"show": ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}}, ast.StringType(), nil)},
	}))
	require.NoError(t, reg.AddTraitImplementation("Show", &traits.Implementation{TypeName: "Float"}))

	v := &ast.VariableType{Name: "a", Constraints: []ast.Constraint{&ast.IsConstraint{TypeVar: "a", ConstraintName: "Show"}}}
	_, err := Unify(v, ast.FloatType(), Substitution{}, reg)
	require.NoError(t, err)
}

func TestUnify_IsConstraintUnsatisfied(t *testing.T) {
	reg := traits.New()
	require.NoError(t, reg.AddTraitDefinition(&traits.Definition{Name: "Show", TypeParam: "a", Functions: map[string]ast.Type{}}))

	v := &ast.VariableType{Name: "a", Constraints: []ast.Constraint{&ast.IsConstraint{TypeVar: "a", ConstraintName: "Show"}}}
	_, err := Unify(v, ast.StringType(), Substitution{}, reg)
	require.Error(t, err)
	var noImpl *traits.NoImplementationError
	require.ErrorAs(t, err, &noImpl)
}

func TestToString_VariableAliasing(t *testing.T) {
	fn := ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "α7"}}, &ast.VariableType{Name: "α9"}, nil)
	assert.Equal(t, "(α) -> β", ToString(fn))
}

func TestSubstitute_ChainIsCycleSafe(t *testing.T) {
	sub := Substitution{"a": &ast.VariableType{Name: "b"}, "b": &ast.VariableType{Name: "a"}}
	// Must terminate instead of looping forever.
	result := Substitute(&ast.VariableType{Name: "a"}, sub)
	require.NotNil(t, result)
}
