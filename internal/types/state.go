// Package types implements Substitution & Helpers (C5, spec §4.5) and the
// Unifier (C6, spec §4.6) on top of the ast.Type/ast.Constraint tagged
// unions, grounded on the teacher's internal/types/typechecker_substitution.go
// and internal/types/unification.go but rebuilt around Noolang's own
// constraint-carrying VariableType instead of the teacher's separate
// Row/RowVar machinery.
package types

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
)

// Substitution maps unification-variable names to their resolved types.
type Substitution map[string]ast.Type

// State is the fresh-variable counter shared by the unifier and the type
// inferencer (spec §4.8: "a counter held in the type-inference state").
// It carries no substitution of its own — callers thread a Substitution
// value explicitly, the way the teacher's Unify(t1, t2, sub) does.
type State struct {
	counter int
}

// NewState returns a zeroed fresh-variable counter.
func NewState() *State { return &State{} }

// Fresh returns a new unification variable named αN and advances the
// counter (spec §4.5).
func (s *State) Fresh() *ast.VariableType {
	name := fmt.Sprintf("α%d", s.counter)
	s.counter++
	return &ast.VariableType{Name: name}
}

// FreshN returns n distinct fresh variables, in order.
func (s *State) FreshN(n int) []ast.Type {
	out := make([]ast.Type, n)
	for i := range out {
		out[i] = s.Fresh()
	}
	return out
}
