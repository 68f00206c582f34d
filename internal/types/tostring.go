package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sunholo/noolang/internal/ast"
)

var greekLetters = []string{
	"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
	"ν", "ξ", "ο", "π", "ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω",
}

// ToString renders t for diagnostics with consistent variable aliasing:
// the first distinct variable encountered in a left-to-right traversal is
// named α, the second β, and so on, regardless of the internal αN counter
// names minted by State.Fresh (spec §4.5 — "typeToString with consistent
// variable aliasing").
func ToString(t ast.Type) string {
	alias := map[string]string{}
	var walk func(ast.Type)
	walk = func(t ast.Type) {
		switch tt := t.(type) {
		case *ast.VariableType:
			if _, ok := alias[tt.Name]; !ok {
				idx := len(alias)
				if idx < len(greekLetters) {
					alias[tt.Name] = greekLetters[idx]
				} else {
					alias[tt.Name] = fmt.Sprintf("t%d", idx)
				}
			}
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
			names := sortedKeys(tt.Fields)
			for _, n := range names {
				walk(tt.Fields[n])
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
	return render(t, alias)
}

func sortedKeys(m map[string]ast.Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func render(t ast.Type, alias map[string]string) string {
	switch tt := t.(type) {
	case *ast.VariableType:
		return alias[tt.Name]
	case *ast.FunctionType:
		parts := make([]string, len(tt.Params))
		for i, p := range tt.Params {
			parts[i] = render(p, alias)
		}
		eff := tt.Effects.String()
		if eff != "" {
			eff = " " + eff
		}
		return fmt.Sprintf("(%s) -> %s%s", strings.Join(parts, ", "), render(tt.Return, alias), eff)
	case *ast.ListType:
		return "List " + render(tt.Element, alias)
	case *ast.TupleType:
		parts := make([]string, len(tt.Elements))
		for i, e := range tt.Elements {
			parts[i] = render(e, alias)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.RecordType:
		names := sortedKeys(tt.Fields)
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = fmt.Sprintf("@%s %s", n, render(tt.Fields[n], alias))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.VariantType:
		if len(tt.Args) == 0 {
			return tt.Name
		}
		parts := make([]string, len(tt.Args))
		for i, a := range tt.Args {
			parts[i] = render(a, alias)
		}
		return tt.Name + " " + strings.Join(parts, " ")
	case *ast.ConstrainedType:
		base := render(tt.BaseType, alias)
		keys := make([]string, 0, len(tt.Constraints))
		for k := range tt.Constraints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			for _, c := range tt.Constraints[k] {
				parts = append(parts, renderConstraint(c, alias))
			}
		}
		if len(parts) == 0 {
			return base
		}
		return fmt.Sprintf("%s given %s", base, strings.Join(parts, " and "))
	default:
		return t.String()
	}
}

func renderConstraint(c ast.Constraint, alias map[string]string) string {
	name := func(v string) string {
		if a, ok := alias[v]; ok {
			return a
		}
		return v
	}
	switch cc := c.(type) {
	case *ast.IsConstraint:
		return fmt.Sprintf("%s is %s", name(cc.TypeVar), cc.ConstraintName)
	case *ast.HasFieldConstraint:
		return fmt.Sprintf("%s has {@%s %s}", name(cc.TypeVar), cc.Field, render(cc.FieldType, alias))
	case *ast.HasConstraint:
		names := sortedKeys(cc.Structure.Fields)
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = fmt.Sprintf("@%s %s", n, render(cc.Structure.Fields[n], alias))
		}
		return fmt.Sprintf("%s has {%s}", name(cc.TypeVar), strings.Join(parts, ", "))
	case *ast.ImplementsConstraint:
		return fmt.Sprintf("%s implements %s", name(cc.TypeVar), cc.Trait)
	case *ast.AndConstraint:
		return fmt.Sprintf("%s and %s", renderConstraint(cc.Left, alias), renderConstraint(cc.Right, alias))
	case *ast.OrConstraint:
		return fmt.Sprintf("%s or %s", renderConstraint(cc.Left, alias), renderConstraint(cc.Right, alias))
	case *ast.ParenConstraint:
		return fmt.Sprintf("(%s)", renderConstraint(cc.Inner, alias))
	default:
		return c.String()
	}
}
