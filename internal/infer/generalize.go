package infer

import (
	"sort"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/types"
)

// Generalize quantifies t over every variable free in t but not free in
// env — the let-polymorphism step applied at Definition boundaries (spec
// §4.8, property P4).
func Generalize(env *Environment, t ast.Type) *ast.TypeScheme {
	envFree := env.FreeTypeVars()
	tFree := freeVars(t)
	var vars []string
	for v := range tFree {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	sort.Strings(vars)
	return &ast.TypeScheme{QuantifiedVars: vars, Type: t}
}

// Instantiate replaces every one of scheme's quantified variables with a
// fresh one, carrying across any constraints attached to the original
// variable node (spec §4.8: instantiation at Variable use sites, property
// P4's other half).
func Instantiate(scheme *ast.TypeScheme, state *types.State) ast.Type {
	if len(scheme.QuantifiedVars) == 0 {
		return scheme.Type
	}
	sub := types.Substitution{}
	for _, v := range scheme.QuantifiedVars {
		sub[v] = state.Fresh()
	}
	return types.Substitute(scheme.Type, sub)
}
