package infer

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/types"
)

// inferMatch implements spec §4.8's MatchExpr rule: the scrutinee's type is
// checked against every case's pattern shape, each case's body is inferred
// in an environment extended with that pattern's bindings, and all bodies
// are unified together (first-match-wins is a runtime property, not a
// typing one — every arm must still agree on a type).
func (inf *Inferencer) inferMatch(env *Environment, e *ast.MatchExpr) (ast.Type, ast.EffectSet, error) {
	scrutType, scrutEff, err := inf.Infer(env, e.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	effs := scrutEff
	result := ast.Type(inf.fresh())
	for _, c := range e.Cases {
		caseEnv, err := inf.matchPattern(env, c.Pattern, inf.apply(scrutType))
		if err != nil {
			return nil, nil, err
		}
		bodyT, bodyEff, err := inf.Infer(caseEnv, c.Body)
		if err != nil {
			return nil, nil, err
		}
		if err := inf.unify(result, bodyT, types.HintPatternMatching); err != nil {
			return nil, nil, err
		}
		effs = effs.Union(bodyEff)
	}
	return inf.apply(result), effs, nil
}

// matchPattern returns an environment extended with the pattern's variable
// bindings, after unifying scrutType against the pattern's implied shape.
func (inf *Inferencer) matchPattern(env *Environment, pat ast.Pattern, scrutType ast.Type) (*Environment, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return env, nil

	case *ast.VariablePattern:
		return env.Extend(p.Name, &ast.TypeScheme{Type: scrutType}), nil

	case *ast.LiteralPattern:
		var litType ast.Type
		switch p.Value.(type) {
		case float64:
			litType = ast.FloatType()
		case string:
			litType = ast.StringType()
		case bool:
			litType = ast.BoolType()
		default:
			return nil, fmt.Errorf("infer: unsupported literal pattern value %v", p.Value)
		}
		if err := inf.unify(scrutType, litType, types.HintPatternMatching); err != nil {
			return nil, err
		}
		return env, nil

	case *ast.TuplePattern:
		elemVars := make([]ast.Type, len(p.Elements))
		for i := range elemVars {
			elemVars[i] = inf.fresh()
		}
		if err := inf.unify(scrutType, &ast.TupleType{Elements: elemVars}, types.HintPatternMatching); err != nil {
			return nil, err
		}
		cur := env
		for i, sub := range p.Elements {
			var err error
			cur, err = inf.matchPattern(cur, sub, inf.apply(elemVars[i]))
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *ast.RecordPattern:
		fieldVars := map[string]ast.Type{}
		for name := range p.Fields {
			fieldVars[name] = inf.fresh()
		}
		if err := inf.unify(scrutType, &ast.RecordType{Fields: fieldVars}, types.HintPatternMatching); err != nil {
			return nil, err
		}
		cur := env
		for name, sub := range p.Fields {
			var err error
			cur, err = inf.matchPattern(cur, sub, inf.apply(fieldVars[name]))
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *ast.ConstructorPattern:
		scheme, ok := env.Lookup(p.Name)
		if !ok {
			return nil, fmt.Errorf("unbound constructor: %s", p.Name)
		}
		ctorType := Instantiate(scheme, inf.State)
		fn, isFn := ctorType.(*ast.FunctionType)
		if !isFn {
			if len(p.Args) != 0 {
				return nil, fmt.Errorf("constructor %s takes no arguments", p.Name)
			}
			if err := inf.unify(scrutType, ctorType, types.HintPatternMatching); err != nil {
				return nil, err
			}
			return env, nil
		}
		if len(fn.Params) != len(p.Args) {
			return nil, fmt.Errorf("constructor %s expects %d arguments, got %d", p.Name, len(fn.Params), len(p.Args))
		}
		if err := inf.unify(scrutType, fn.Return, types.HintPatternMatching); err != nil {
			return nil, err
		}
		cur := env
		for i, sub := range p.Args {
			var err error
			cur, err = inf.matchPattern(cur, sub, inf.apply(fn.Params[i]))
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	default:
		return nil, fmt.Errorf("infer: unsupported pattern %T", pat)
	}
}
