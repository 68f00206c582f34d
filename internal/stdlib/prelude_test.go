package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/infer"
	"github.com/sunholo/noolang/internal/traits"
)

func TestLoadStdlib_RegistersOptionResultAndShow(t *testing.T) {
	reg := traits.New()
	env, err := LoadStdlib(infer.InitializeBuiltins(infer.NewEnvironment()), reg)
	require.NoError(t, err)

	for _, name := range []string{"None", "Some", "Ok", "Err", "mapOption", "unwrapOr", "isSome", "isOk", "id", "compose"} {
		_, ok := env.Lookup(name)
		assert.Truef(t, ok, "expected prelude to bind %s", name)
	}

	assert.True(t, reg.HasImplementation("Show", "Float"))
	assert.True(t, reg.HasImplementation("Show", "String"))
	assert.True(t, reg.HasImplementation("Show", "Bool"))
}

func TestLoadStdlib_RegistersFunctorAndMonad(t *testing.T) {
	reg := traits.New()
	env, err := LoadStdlib(infer.InitializeBuiltins(infer.NewEnvironment()), reg)
	require.NoError(t, err)

	for _, name := range []string{"andThenOption", "andThenResult"} {
		_, ok := env.Lookup(name)
		assert.Truef(t, ok, "expected prelude to bind %s", name)
	}

	for _, typeName := range []string{"List", "Option", "Result"} {
		assert.Truef(t, reg.HasImplementation("Functor", typeName), "Functor should implement %s", typeName)
		assert.Truef(t, reg.HasImplementation("Monad", typeName), "Monad should implement %s", typeName)
	}
	assert.True(t, reg.IsTraitFunction("map"))
	assert.True(t, reg.IsTraitFunction("andThen"))
	assert.Equal(t, 1, reg.DispatchArgIndex("map"))
	assert.Equal(t, 1, reg.DispatchArgIndex("andThen"))
}

func TestLoadStdlib_SomeConstructorType(t *testing.T) {
	reg := traits.New()
	env, err := LoadStdlib(infer.InitializeBuiltins(infer.NewEnvironment()), reg)
	require.NoError(t, err)

	scheme, ok := env.Lookup("Some")
	require.True(t, ok)
	got := infer.Instantiate(scheme, infer.New(reg).State)
	fn, ok := got.(*ast.FunctionType)
	require.True(t, ok, "Some should be a constructor function, got %T", got)
	assert.Len(t, fn.Params, 1)
}
