package types

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

// UnifyError is a structured unification failure (spec §4.6/§7). Hint
// categorizes the call site so the CLI-adjacent diagnostics layer
// (internal/diag, out of this component's scope) can render a targeted
// suggestion instead of a bare type mismatch.
type UnifyError struct {
	Left, Right ast.Type
	Hint        string
	Detail      string
}

func (e *UnifyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot unify %s with %s: %s", ToString(e.Left), ToString(e.Right), e.Detail)
	}
	return fmt.Sprintf("cannot unify %s with %s", ToString(e.Left), ToString(e.Right))
}

// Hint categories named in spec §4.6.
const (
	HintConcreteVsVariable = "concrete_vs_variable"
	HintFunctionApp        = "function_application"
	HintOperatorApp        = "operator_application"
	HintIfBranches         = "if_branches"
	HintPatternMatching    = "pattern_matching"
	HintConstructorApp     = "constructor_application"
)

// Unify implements component C6 (spec §4.6): the occurs-checked,
// constraint-discharging unifier grounded on the teacher's
// internal/types/unification.go type-switch dispatch, adapted to unify
// constraint obligations carried directly on VariableType nodes instead of
// a separate Row/RowVar system.
func Unify(t1, t2 ast.Type, sub Substitution, reg *traits.Registry) (Substitution, error) {
	return unifyWithHint(t1, t2, sub, reg, "")
}

// UnifyHinted is Unify but threading an explicit hint category through to
// any resulting UnifyError, for call sites that know their context (e.g.
// the inferencer unifying an if-expression's two branches).
func UnifyHinted(t1, t2 ast.Type, sub Substitution, reg *traits.Registry, hint string) (Substitution, error) {
	return unifyWithHint(t1, t2, sub, reg, hint)
}

func unifyWithHint(t1, t2 ast.Type, sub Substitution, reg *traits.Registry, hint string) (Substitution, error) {
	// Step 1: apply the accumulated substitution to both sides before doing
	// anything else — stale variable names must never leak into a decision.
	rt1 := Substitute(t1, sub)
	rt2 := Substitute(t2, sub)

	// Step 2: fast path. Already-identical concrete types need no work.
	if ast.TypesEqual(rt1, rt2) {
		return sub, nil
	}

	// Step 3: Constrained bridge. A ConstrainedType unifies through its
	// base, then its outstanding obligations are re-attached to whatever
	// the base's type variables resolved to (or discharged immediately if
	// the other side was already concrete).
	if c1, ok := rt1.(*ast.ConstrainedType); ok {
		next, err := unifyWithHint(c1.BaseType, rt2, sub, reg, hint)
		if err != nil {
			return nil, err
		}
		return collapseConstrainedObligations(c1, next, reg, hint)
	}
	if c2, ok := rt2.(*ast.ConstrainedType); ok {
		next, err := unifyWithHint(rt1, c2.BaseType, sub, reg, hint)
		if err != nil {
			return nil, err
		}
		return collapseConstrainedObligations(c2, next, reg, hint)
	}

	// Step 4: variable on either side.
	if v1, ok := rt1.(*ast.VariableType); ok {
		return bindVariable(v1, rt2, sub, reg, hint)
	}
	if v2, ok := rt2.(*ast.VariableType); ok {
		return bindVariable(v2, rt1, sub, reg, hint)
	}

	// Step 5: structural recursion over matching concrete head shapes.
	switch a := rt1.(type) {
	case *ast.FunctionType:
		b, ok := rt2.(*ast.FunctionType)
		if !ok || len(a.Params) != len(b.Params) {
			return nil, mismatch(rt1, rt2, hint)
		}
		cur := sub
		for i := range a.Params {
			var err error
			cur, err = unifyWithHint(a.Params[i], b.Params[i], cur, reg, HintFunctionApp)
			if err != nil {
				return nil, err
			}
		}
		return unifyWithHint(a.Return, b.Return, cur, reg, hint)

	case *ast.ListType:
		b, ok := rt2.(*ast.ListType)
		if !ok {
			return nil, mismatch(rt1, rt2, hint)
		}
		return unifyWithHint(a.Element, b.Element, sub, reg, hint)

	case *ast.TupleType:
		b, ok := rt2.(*ast.TupleType)
		if !ok || len(a.Elements) != len(b.Elements) {
			return nil, mismatch(rt1, rt2, hint)
		}
		cur := sub
		for i := range a.Elements {
			var err error
			cur, err = unifyWithHint(a.Elements[i], b.Elements[i], cur, reg, hint)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *ast.RecordType:
		b, ok := rt2.(*ast.RecordType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return nil, mismatch(rt1, rt2, hint)
		}
		cur := sub
		for name, ft := range a.Fields {
			bft, ok := b.Fields[name]
			if !ok {
				return nil, &UnifyError{Left: rt1, Right: rt2, Hint: hint, Detail: fmt.Sprintf("missing field @%s", name)}
			}
			var err error
			cur, err = unifyWithHint(ft, bft, cur, reg, hint)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *ast.VariantType:
		b, ok := rt2.(*ast.VariantType)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, mismatch(rt1, rt2, hint)
		}
		cur := sub
		for i := range a.Args {
			var err error
			cur, err = unifyWithHint(a.Args[i], b.Args[i], cur, reg, hint)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *ast.UnitType:
		if _, ok := rt2.(*ast.UnitType); ok {
			return sub, nil
		}
		return nil, mismatch(rt1, rt2, hint)

	case *ast.UnknownType:
		return sub, nil
	}
	if _, ok := rt2.(*ast.UnknownType); ok {
		return sub, nil
	}

	// Step 6: nothing matched.
	return nil, mismatch(rt1, rt2, hint)
}

func mismatch(a, b ast.Type, hint string) error {
	return &UnifyError{Left: a, Right: b, Hint: hint}
}

// bindVariable binds v to other, occurs-checking first, then either
// transferring v's outstanding constraints onto other (if other is itself
// a variable — the obligation just moves to a different name) or
// discharging them against other's concrete head (if other is ground
// enough to have one).
func bindVariable(v *ast.VariableType, other ast.Type, sub Substitution, reg *traits.Registry, hint string) (Substitution, error) {
	if same, ok := other.(*ast.VariableType); ok && same.Name == v.Name {
		return sub, nil
	}
	if occurs(v.Name, other) {
		return nil, &UnifyError{Left: v, Right: other, Hint: hint, Detail: "infinite type"}
	}

	if otherVar, ok := other.(*ast.VariableType); ok {
		otherVar.Constraints = ast.DedupeConstraints(append(otherVar.Constraints, v.Constraints...))
	} else if len(v.Constraints) > 0 {
		for _, c := range v.Constraints {
			if err := dischargeConstraint(c, other, reg); err != nil {
				return nil, err
			}
		}
	}

	next := Substitution{v.Name: other}
	return Compose(sub, next), nil
}

// dischargeConstraint checks one of v's obligations against the concrete
// type it just unified with — spec §4.6's constraint-collapse rule. Is and
// Implements check the trait registry by head type name; HasField/Has check
// record shape directly.
func dischargeConstraint(c ast.Constraint, concrete ast.Type, reg *traits.Registry) error {
	switch cc := c.(type) {
	case *ast.IsConstraint:
		typeName := traits.GetTypeName(concrete)
		if reg == nil || !reg.HasImplementation(cc.ConstraintName, typeName) {
			return &traits.NoImplementationError{FuncName: cc.ConstraintName, TypeName: typeName}
		}
		return nil
	case *ast.ImplementsConstraint:
		typeName := traits.GetTypeName(concrete)
		if reg == nil || !reg.HasImplementation(cc.Trait, typeName) {
			return &traits.NoImplementationError{FuncName: cc.Trait, TypeName: typeName}
		}
		return nil
	case *ast.HasFieldConstraint:
		rec, ok := concrete.(*ast.RecordType)
		if !ok {
			return &UnifyError{Left: concrete, Hint: HintPatternMatching, Detail: fmt.Sprintf("expected a record with field @%s", cc.Field)}
		}
		ft, ok := rec.Fields[cc.Field]
		if !ok {
			return &UnifyError{Left: concrete, Hint: HintPatternMatching, Detail: fmt.Sprintf("record has no field @%s", cc.Field)}
		}
		if !ast.TypesEqual(ft, cc.FieldType) {
			return &UnifyError{Left: ft, Right: cc.FieldType, Hint: HintPatternMatching, Detail: fmt.Sprintf("field @%s has a different type", cc.Field)}
		}
		return nil
	case *ast.HasConstraint:
		rec, ok := concrete.(*ast.RecordType)
		if !ok {
			return &UnifyError{Left: concrete, Hint: HintPatternMatching, Detail: "expected a record"}
		}
		for name, ft := range cc.Structure.Fields {
			rft, ok := rec.Fields[name]
			if !ok {
				return &UnifyError{Left: concrete, Hint: HintPatternMatching, Detail: fmt.Sprintf("record has no field @%s", name)}
			}
			if !ast.TypesEqual(rft, ft) {
				return &UnifyError{Left: rft, Right: ft, Hint: HintPatternMatching, Detail: fmt.Sprintf("field @%s has a different type", name)}
			}
		}
		return nil
	case *ast.AndConstraint:
		if err := dischargeConstraint(cc.Left, concrete, reg); err != nil {
			return err
		}
		return dischargeConstraint(cc.Right, concrete, reg)
	case *ast.OrConstraint:
		if dischargeConstraint(cc.Left, concrete, reg) == nil {
			return nil
		}
		return dischargeConstraint(cc.Right, concrete, reg)
	case *ast.ParenConstraint:
		return dischargeConstraint(cc.Inner, concrete, reg)
	default:
		return nil
	}
}

// collapseConstrainedObligations re-attaches a ConstrainedType's per-variable
// obligations onto whatever each variable resolved to under sub, discharging
// any that are now ground (spec §4.6: constraint collapse).
func collapseConstrainedObligations(c *ast.ConstrainedType, sub Substitution, reg *traits.Registry, hint string) (Substitution, error) {
	for varName, obligations := range c.Constraints {
		resolved := Substitute(&ast.VariableType{Name: varName}, sub)
		if v, ok := resolved.(*ast.VariableType); ok {
			v.Constraints = ast.DedupeConstraints(append(v.Constraints, obligations...))
			continue
		}
		for _, ob := range obligations {
			if err := dischargeConstraint(ob, resolved, reg); err != nil {
				if _, isHint := err.(*UnifyError); isHint {
					err.(*UnifyError).Hint = hint
				}
				return nil, err
			}
		}
	}
	return sub, nil
}

// occurs is the classic occurs check, extended to walk ConstrainedType and
// the constraint payloads so a variable can't escape into its own
// obligations either.
func occurs(name string, t ast.Type) bool {
	switch tt := t.(type) {
	case *ast.VariableType:
		return tt.Name == name
	case *ast.FunctionType:
		for _, p := range tt.Params {
			if occurs(name, p) {
				return true
			}
		}
		return occurs(name, tt.Return)
	case *ast.ListType:
		return occurs(name, tt.Element)
	case *ast.TupleType:
		for _, e := range tt.Elements {
			if occurs(name, e) {
				return true
			}
		}
		return false
	case *ast.RecordType:
		for _, ft := range tt.Fields {
			if occurs(name, ft) {
				return true
			}
		}
		return false
	case *ast.VariantType:
		for _, a := range tt.Args {
			if occurs(name, a) {
				return true
			}
		}
		return false
	case *ast.ConstrainedType:
		return occurs(name, tt.BaseType)
	default:
		return false
	}
}
