package eval

import "github.com/sunholo/noolang/internal/ast"

// matchPattern reports whether pat matches val and, if so, returns env
// extended with the pattern's bindings. Cases are tried in source order by
// evalMatch's caller, first-match-wins (spec §4.9/§8 property boundary).
func matchPattern(env *Environment, pat ast.Pattern, val Value) (*Environment, bool) {
	switch p := pat.(type) {

	case *ast.WildcardPattern:
		return env, true

	case *ast.VariablePattern:
		return env.Extend(p.Name, val), true

	case *ast.LiteralPattern:
		switch want := p.Value.(type) {
		case float64:
			got, ok := val.(*NumberValue)
			return env, ok && got.Value == want
		case string:
			got, ok := val.(*StringValue)
			return env, ok && got.Value == want
		case bool:
			got, ok := val.(*BoolValue)
			return env, ok && got.Value == want
		}
		return env, false

	case *ast.TuplePattern:
		tup, ok := val.(*TupleValue)
		if !ok || len(tup.Elements) != len(p.Elements) {
			return env, false
		}
		cur := env
		for i, sub := range p.Elements {
			var matched bool
			cur, matched = matchPattern(cur, sub, tup.Elements[i])
			if !matched {
				return env, false
			}
		}
		return cur, true

	case *ast.RecordPattern:
		rec, ok := val.(*RecordValue)
		if !ok {
			return env, false
		}
		cur := env
		for name, sub := range p.Fields {
			fv, ok := rec.Fields[name]
			if !ok {
				return env, false
			}
			var matched bool
			cur, matched = matchPattern(cur, sub, fv)
			if !matched {
				return env, false
			}
		}
		return cur, true

	case *ast.ConstructorPattern:
		ctor, ok := val.(*ConstructorValue)
		if !ok || ctor.CtorName != p.Name || len(ctor.Args) != len(p.Args) {
			return env, false
		}
		cur := env
		for i, sub := range p.Args {
			var matched bool
			cur, matched = matchPattern(cur, sub, ctor.Args[i])
			if !matched {
				return env, false
			}
		}
		return cur, true
	}
	return env, false
}
