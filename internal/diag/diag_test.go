package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/noolang/internal/ast"
)

func TestNew_BuildsLocatedMessage(t *testing.T) {
	loc := ast.Location{Start: ast.Position{Line: 3, Col: 7, File: "a.noo"}}
	d := New(KindType, loc, "cannot unify %s with %s", "Float", "String")
	assert.Equal(t, KindType, d.Kind)
	assert.Equal(t, "cannot unify Float with String", d.Message)
	assert.Contains(t, d.Error(), "cannot unify Float with String")
}

func TestWithContextAndSuggestion_Chain(t *testing.T) {
	d := New(KindParse, ast.Location{}, "unexpected token").
		WithContext("1 + ").
		WithSuggestion("add a right-hand operand")
	assert.Equal(t, "1 + ", d.Context)
	assert.Equal(t, "add a right-hand operand", d.Suggestion)
}

func TestFormat_IncludesContextAndSuggestionWhenPresent(t *testing.T) {
	d := New(KindRuntime, ast.Location{}, "division by zero").
		WithContext("x / 0").
		WithSuggestion("check the divisor first")
	out := Format(d)
	assert.Contains(t, out, "division by zero")
	assert.Contains(t, out, "x / 0")
	assert.Contains(t, out, "check the divisor first")
}

func TestAsDiagnostic_WrapsPlainError(t *testing.T) {
	d := AsDiagnostic(errors.New("boom"))
	require.NotNil(t, d)
	assert.Equal(t, KindInternal, d.Kind)
	assert.Equal(t, "boom", d.Message)
}

func TestAsDiagnostic_PassesThroughExistingDiagnostic(t *testing.T) {
	orig := New(KindTrait, ast.Location{}, "ambiguous")
	d := AsDiagnostic(orig)
	assert.Same(t, orig, d)
}

func TestAsDiagnostic_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, AsDiagnostic(nil))
}
