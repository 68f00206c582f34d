package infer

import (
	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

// Result is the per-statement typing outcome returned by TypeProgram,
// mirroring the teacher's practice of surfacing every top-level type rather
// than only the program's final one (useful for `noolang check` and the REPL).
type Result struct {
	Type    ast.Type
	Effects ast.EffectSet
}

// RunStatements folds inferStatement over stmts in order, starting from
// env. internal/stdlib uses this (through its own Inferencer, to keep the
// import graph acyclic) to type the embedded prelude source the same way
// TypeProgram types a user program.
func (inf *Inferencer) RunStatements(env *Environment, stmts []ast.Expr) (*Environment, error) {
	for _, stmt := range stmts {
		var err error
		env, _, _, err = inf.inferStatement(env, stmt)
		if err != nil {
			return env, err
		}
	}
	return env, nil
}

// TypeProgram type-checks every statement of prog in order, threading the
// environment left to right the same way inferStatement threads it through
// a WhereExpr or a `;` sequence. baseEnv is expected to already carry
// InitializeBuiltins plus the embedded stdlib (Option, Result, Show and
// friends) — the internal/stdlib package builds that env without importing
// this package back, so the caller (cmd/noolang, or a test) wires the two
// together rather than TypeProgram doing it itself.
func TypeProgram(prog *ast.Program, reg *traits.Registry, baseEnv *Environment) (*Inferencer, *Environment, []Result, error) {
	inf := New(reg)
	env := baseEnv

	results := make([]Result, 0, len(prog.Statements))
	for _, stmt := range prog.Statements {
		var t ast.Type
		var eff ast.EffectSet
		var err error
		env, t, eff, err = inf.inferStatement(env, stmt)
		if err != nil {
			return inf, env, results, err
		}
		results = append(results, Result{Type: inf.apply(t), Effects: eff})
	}
	return inf, env, results, nil
}
