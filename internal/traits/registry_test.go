package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
)

func showTrait() *Definition {
	return &Definition{
		Name:      "Show",
		TypeParam: "a",
		Functions: map[string]ast.Type{
			"show": ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}}, ast.StringType(), nil),
		},
	}
}

func TestRegistry_AddAndResolve(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTraitDefinition(showTrait()))
	require.NoError(t, r.AddTraitImplementation("Show", &Implementation{TypeName: "Float"}))

	assert.True(t, r.IsTraitFunction("show"))
	res, err := r.ResolveTraitFunction("show", "Float")
	require.NoError(t, err)
	assert.Equal(t, "Show", res.TraitName)
}

func TestRegistry_DuplicateImplementationRejected(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTraitDefinition(showTrait()))
	require.NoError(t, r.AddTraitImplementation("Show", &Implementation{TypeName: "Float"}))
	err := r.AddTraitImplementation("Show", &Implementation{TypeName: "Float"})
	require.Error(t, err)
}

func TestRegistry_AmbiguousCall(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTraitDefinition(showTrait()))
	require.NoError(t, r.AddTraitDefinition(&Definition{
		Name:      "Describe",
		TypeParam: "a",
		Functions: map[string]ast.Type{
			"show": ast.FunctionTypeOf([]ast.Type{&ast.VariableType{Name: "a"}}, ast.StringType(), nil),
		},
	}))
	require.NoError(t, r.AddTraitImplementation("Show", &Implementation{TypeName: "Float"}))
	require.NoError(t, r.AddTraitImplementation("Describe", &Implementation{TypeName: "Float"}))

	_, err := r.ResolveTraitFunction("show", "Float")
	require.Error(t, err)
	var ambig *AmbiguousCallError
	require.ErrorAs(t, err, &ambig)
	assert.ElementsMatch(t, []string{"Describe", "Show"}, ambig.Traits)
}

func TestRegistry_NoImplementation(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTraitDefinition(showTrait()))
	_, err := r.ResolveTraitFunction("show", "String")
	require.Error(t, err)
	var noImpl *NoImplementationError
	require.ErrorAs(t, err, &noImpl)
}

func TestGetTypeName(t *testing.T) {
	assert.Equal(t, "Float", GetTypeName(ast.FloatType()))
	assert.Equal(t, "List", GetTypeName(ast.ListTypeOf(ast.FloatType())))
	assert.Equal(t, "Option", GetTypeName(ast.VariantTypeOf("Option", ast.FloatType())))
	assert.Equal(t, "Function", GetTypeName(ast.FunctionTypeOf(nil, ast.FloatType(), nil)))
}
