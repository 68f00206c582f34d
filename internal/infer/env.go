// Package infer implements the Type Inferencer (C8, spec §4.8): a
// let-polymorphic Hindley-Milner pass over the AST that threads a shared
// internal/types.Substitution and internal/traits.Registry through every
// expression kind, grounded on the teacher's internal/types/env.go
// (parent-chained TypeEnv) and internal/types/inference.go driver, adapted
// to Noolang's tagged-union AST and constraint-carrying variables instead
// of the teacher's row-polymorphic effect/record system.
package infer

import (
	"github.com/sunholo/noolang/internal/ast"
)

// Environment is a parent-chained map from name to ast.TypeScheme, mirroring the
// teacher's TypeEnv. Mutable bindings are tracked in a side set so
// MutationExpr can reject mutating an unmutable name without needing a
// separate binding kind.
type Environment struct {
	bindings map[string]*ast.TypeScheme
	mutable  map[string]bool
	parent   *Environment
}

// NewEnvironment returns an empty root environment.
func NewEnvironment() *Environment {
	return &Environment{bindings: map[string]*ast.TypeScheme{}, mutable: map[string]bool{}}
}

// Extend returns a child environment with name bound to scheme.
func (env *Environment) Extend(name string, scheme *ast.TypeScheme) *Environment {
	return &Environment{
		bindings: map[string]*ast.TypeScheme{name: scheme},
		mutable:  map[string]bool{},
		parent:   env,
	}
}

// ExtendMutable is Extend but also marks name as a mutable binding.
func (env *Environment) ExtendMutable(name string, scheme *ast.TypeScheme) *Environment {
	child := env.Extend(name, scheme)
	child.mutable[name] = true
	return child
}

// Lookup walks the parent chain for name.
func (env *Environment) Lookup(name string) (*ast.TypeScheme, bool) {
	for e := env; e != nil; e = e.parent {
		if s, ok := e.bindings[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// IsMutable reports whether name was bound via ExtendMutable anywhere in
// the chain (and not subsequently shadowed by a non-mutable binding).
func (env *Environment) IsMutable(name string) bool {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.bindings[name]; ok {
			return e.mutable[name]
		}
	}
	return false
}

// FreeTypeVars collects the names free in env's bindings, i.e. not bound by
// any scheme's own QuantifiedVars — the set Generalize must not quantify over.
func (env *Environment) FreeTypeVars() map[string]bool {
	free := map[string]bool{}
	for e := env; e != nil; e = e.parent {
		for _, scheme := range e.bindings {
			quantified := map[string]bool{}
			for _, v := range scheme.QuantifiedVars {
				quantified[v] = true
			}
			for v := range freeVars(scheme.Type) {
				if !quantified[v] {
					free[v] = true
				}
			}
		}
	}
	return free
}

func freeVars(t ast.Type) map[string]bool {
	out := map[string]bool{}
	var walk func(ast.Type)
	walk = func(t ast.Type) {
		switch tt := t.(type) {
		case *ast.VariableType:
			out[tt.Name] = true
		case *ast.FunctionType:
			for _, p := range tt.Params {
				walk(p)
			}
			walk(tt.Return)
		case *ast.ListType:
			walk(tt.Element)
		case *ast.TupleType:
			for _, e := range tt.Elements {
				walk(e)
			}
		case *ast.RecordType:
			for _, ft := range tt.Fields {
				walk(ft)
			}
		case *ast.VariantType:
			for _, a := range tt.Args {
				walk(a)
			}
		case *ast.ConstrainedType:
			walk(tt.BaseType)
		}
	}
	walk(t)
	return out
}
