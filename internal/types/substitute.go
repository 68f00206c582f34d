package types

import "github.com/sunholo/noolang/internal/ast"

// Substitute walks t, replacing every unification variable with its
// resolved binding in sub. Variable chains (α -> β -> Float) are followed
// with a seen-set so a cyclic or self-referential substitution map can
// never loop forever (spec §4.5) — it simply stops at the first repeat and
// returns the last type reached.
func Substitute(t ast.Type, sub Substitution) ast.Type {
	return substitute(t, sub, map[string]bool{})
}

func substitute(t ast.Type, sub Substitution, seen map[string]bool) ast.Type {
	switch tt := t.(type) {
	case *ast.VariableType:
		if seen[tt.Name] {
			return tt
		}
		bound, ok := sub[tt.Name]
		if !ok {
			return tt
		}
		seen[tt.Name] = true
		return substitute(bound, sub, seen)

	case *ast.FunctionType:
		params := make([]ast.Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = substitute(p, sub, seen)
		}
		return &ast.FunctionType{
			Params:      params,
			Return:      substitute(tt.Return, sub, seen),
			Effects:     tt.Effects,
			Constraints: substituteConstraints(tt.Constraints, sub, seen),
			Location:    tt.Location,
		}

	case *ast.ListType:
		return &ast.ListType{Element: substitute(tt.Element, sub, seen), Location: tt.Location}

	case *ast.TupleType:
		elems := make([]ast.Type, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = substitute(e, sub, seen)
		}
		return &ast.TupleType{Elements: elems, Location: tt.Location}

	case *ast.RecordType:
		fields := make(map[string]ast.Type, len(tt.Fields))
		for name, ft := range tt.Fields {
			fields[name] = substitute(ft, sub, seen)
		}
		return &ast.RecordType{Fields: fields, Location: tt.Location}

	case *ast.VariantType:
		args := make([]ast.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = substitute(a, sub, seen)
		}
		return &ast.VariantType{Name: tt.Name, Args: args, Location: tt.Location}

	case *ast.ConstrainedType:
		base := substitute(tt.BaseType, sub, seen)
		constraints := map[string][]ast.Constraint{}
		for varName, cs := range tt.Constraints {
			// The obligations belonged to varName; if varName itself resolved
			// to a different variable, re-key under that name so the
			// obligation keeps tracking the same unification variable.
			key := varName
			if bound, ok := sub[varName]; ok {
				if v, ok := bound.(*ast.VariableType); ok {
					key = v.Name
				}
			}
			rewritten := make([]ast.Constraint, len(cs))
			for i, c := range cs {
				rewritten[i] = SubstituteConstraint(c, sub, seen)
			}
			constraints[key] = append(constraints[key], rewritten...)
		}
		for k := range constraints {
			constraints[k] = ast.DedupeConstraints(constraints[k])
		}
		return ast.NewConstrained(base, constraints)

	default:
		// Primitive, Unit, Unknown: no children to substitute into.
		return t
	}
}

func substituteConstraints(cs []ast.Constraint, sub Substitution, seen map[string]bool) []ast.Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := make([]ast.Constraint, len(cs))
	for i, c := range cs {
		out[i] = SubstituteConstraint(c, sub, seen)
	}
	return ast.DedupeConstraints(out)
}

// SubstituteConstraint pushes a substitution into one constraint's embedded
// types (and, for Is/HasField/HasConstraint/Implements, its TypeVar when
// that variable itself resolves to another variable).
func SubstituteConstraint(c ast.Constraint, sub Substitution, seen map[string]bool) ast.Constraint {
	rename := func(name string) string {
		if bound, ok := sub[name]; ok {
			if v, ok := bound.(*ast.VariableType); ok {
				return v.Name
			}
		}
		return name
	}
	switch cc := c.(type) {
	case *ast.IsConstraint:
		return &ast.IsConstraint{TypeVar: rename(cc.TypeVar), ConstraintName: cc.ConstraintName}
	case *ast.HasFieldConstraint:
		return &ast.HasFieldConstraint{TypeVar: rename(cc.TypeVar), Field: cc.Field, FieldType: substitute(cc.FieldType, sub, seen)}
	case *ast.HasConstraint:
		fields := make(map[string]ast.Type, len(cc.Structure.Fields))
		for n, ft := range cc.Structure.Fields {
			fields[n] = substitute(ft, sub, seen)
		}
		return &ast.HasConstraint{TypeVar: rename(cc.TypeVar), Structure: ast.RecordStructure{Fields: fields}}
	case *ast.ImplementsConstraint:
		return &ast.ImplementsConstraint{TypeVar: rename(cc.TypeVar), Trait: cc.Trait}
	case *ast.AndConstraint:
		return &ast.AndConstraint{Left: SubstituteConstraint(cc.Left, sub, seen), Right: SubstituteConstraint(cc.Right, sub, seen)}
	case *ast.OrConstraint:
		return &ast.OrConstraint{Left: SubstituteConstraint(cc.Left, sub, seen), Right: SubstituteConstraint(cc.Right, sub, seen)}
	case *ast.ParenConstraint:
		return &ast.ParenConstraint{Inner: SubstituteConstraint(cc.Inner, sub, seen)}
	default:
		return c
	}
}

// Compose builds the substitution equivalent to applying `second` after
// `first`: every binding in first gets `second` pushed through it, then any
// binding in second for a variable not already in first is added.
func Compose(first, second Substitution) Substitution {
	out := make(Substitution, len(first)+len(second))
	for k, v := range first {
		out[k] = Substitute(v, second)
	}
	for k, v := range second {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// IsGround reports whether t contains no unification variables at all.
// The unifier's constraint collapse does not call it: an obligation is
// discharged as soon as its variable resolves to any non-variable type.
func IsGround(t ast.Type) bool {
	switch tt := t.(type) {
	case *ast.VariableType:
		return false
	case *ast.FunctionType:
		for _, p := range tt.Params {
			if !IsGround(p) {
				return false
			}
		}
		return IsGround(tt.Return)
	case *ast.ListType:
		return IsGround(tt.Element)
	case *ast.TupleType:
		for _, e := range tt.Elements {
			if !IsGround(e) {
				return false
			}
		}
		return true
	case *ast.RecordType:
		for _, ft := range tt.Fields {
			if !IsGround(ft) {
				return false
			}
		}
		return true
	case *ast.VariantType:
		for _, a := range tt.Args {
			if !IsGround(a) {
				return false
			}
		}
		return true
	case *ast.ConstrainedType:
		return false
	default:
		return true
	}
}
