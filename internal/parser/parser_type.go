package parser

import (
	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/lexer"
)

// parseType implements the C3 grammar from spec §4.3:
//
//	type       := funcType
//	funcType   := atom | atom '->' funcType effects?
//	effects    := ('!' effectName)+
//	atom       := primitive | 'List' atom? | 'Tuple' atom*
//	            | '{' recordOrTupleBody '}' | '(' type ')'
//	            | upperName atom*      (variant constructor application)
//	            | lowerName            (type variable)
//
// Function arrows are right-associative; effects bind to the outermost
// function type only.
func (p *Parser) parseType() (ast.Type, error) {
	start := p.cur().Location
	atomType, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	if !p.isOp("->") {
		return atomType, nil
	}
	p.advance()
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	effects, err := p.parseOptionalEffects()
	if err != nil {
		return nil, err
	}
	// In an unparenthesised chain `a -> b -> c !e` the recursive call for
	// the tail consumed the trailing effects (the token just read is the
	// effect name, not a `)`); lift them off the nested function.
	if inner, ok := ret.(*ast.FunctionType); ok && len(effects) == 0 && len(inner.Effects) > 0 && p.toks[p.pos-1].Kind == lexer.IDENTIFIER {
		effects, inner.Effects = inner.Effects, ast.EffectSet{}
	}
	// If the return type is itself a FunctionType and effects were parsed
	// here, they bind to THIS (outermost) function, not to the nested one —
	// spec: "Effects bind to the outermost function type only."
	ft := &ast.FunctionType{
		Params:  []ast.Type{atomType},
		Return:  ret,
		Effects: effects,
	}
	ft.Location = ast.Merge(start, p.cur().Location)
	return ft, nil
}

func (p *Parser) parseOptionalEffects() (ast.EffectSet, error) {
	if !p.isOp("!") {
		return ast.EffectSet{}, nil
	}
	names := []ast.Effect{}
	for p.isOp("!") {
		p.advance()
		if p.cur().Kind != lexer.IDENTIFIER {
			return nil, p.errorf("Expected effect name after !")
		}
		name := p.advance().Value
		if !lexer.EffectNames[name] {
			return nil, p.errorf("Invalid effect: %s", name)
		}
		names = append(names, ast.Effect(name))
	}
	return ast.NewEffectSet(names...), nil
}

func (p *Parser) parseTypeAtom() (ast.Type, error) {
	start := p.cur().Location
	tok := p.cur()

	switch {
	case tok.Kind == lexer.PUNCTUATION && tok.Value == "(":
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil

	case tok.Kind == lexer.PUNCTUATION && tok.Value == "{":
		return p.parseRecordOrTupleType()

	case tok.Kind == lexer.IDENTIFIER && isUpperIdent(tok.Value):
		p.advance()
		switch tok.Value {
		case "Float", "String", "Bool":
			t := &ast.PrimitiveType{Name: tok.Value}
			t.Location = ast.Merge(start, p.cur().Location)
			return t, nil
		case "List":
			// `List` alone is the bare primitive head; `List atom` applies it.
			if p.canStartTypeAtom() {
				elem, err := p.parseTypeAtom()
				if err != nil {
					return nil, err
				}
				t := &ast.ListType{Element: elem}
				t.Location = ast.Merge(start, p.cur().Location)
				return t, nil
			}
			t := &ast.PrimitiveType{Name: "List"}
			t.Location = start
			return t, nil
		case "Tuple":
			var elems []ast.Type
			for p.canStartTypeAtom() {
				e, err := p.parseTypeAtom()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			t := &ast.TupleType{Elements: elems}
			t.Location = ast.Merge(start, p.cur().Location)
			return t, nil
		default:
			var args []ast.Type
			for p.canStartTypeAtom() {
				a, err := p.parseTypeAtom()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			t := &ast.VariantType{Name: tok.Value, Args: args}
			t.Location = ast.Merge(start, p.cur().Location)
			return t, nil
		}

	case tok.Kind == lexer.IDENTIFIER:
		p.advance()
		t := &ast.VariableType{Name: tok.Value}
		t.Location = start
		return t, nil
	}

	return nil, p.errorf("Expected type atom")
}

// canStartTypeAtom is a one-token lookahead used to decide whether more
// arguments follow a type-constructor application (`List atom?`, `Tuple
// atom+`, `Ctor atom*`) without committing to consuming them.
func (p *Parser) canStartTypeAtom() bool {
	t := p.cur()
	if t.Kind == lexer.IDENTIFIER {
		return true
	}
	if t.Kind == lexer.PUNCTUATION && (t.Value == "(" || t.Value == "{") {
		return true
	}
	return false
}

func isUpperIdent(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}

// parseRecordOrTupleType applies the same named-vs-positional rule as
// expression record/tuple literals (spec §3.5, §4.4): all `@f T` fields ->
// record type; all bare `T` fields -> tuple type; zero fields -> Unit;
// mixing the two is a parse error attributed to the first offending token.
func (p *Parser) parseRecordOrTupleType() (ast.Type, error) {
	start := p.cur().Location
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	if p.isPunct("}") {
		p.advance()
		t := &ast.UnitType{}
		t.Location = ast.Merge(start, p.cur().Location)
		return t, nil
	}

	type field struct {
		name string
		typ  ast.Type
	}
	var fields []field
	named, positional := false, false

	for {
		if p.cur().Kind == lexer.ACCESSOR {
			fname := p.advance().Value
			ftyp, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if positional {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			named = true
			fields = append(fields, field{name: fname, typ: ftyp})
		} else {
			ftyp, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if named {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			positional = true
			fields = append(fields, field{typ: ftyp})
		}
		if p.isPunct(",") {
			p.advance()
			if p.isPunct("}") {
				break // trailing comma
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	end := p.cur().Location

	if named {
		m := make(map[string]ast.Type, len(fields))
		for _, f := range fields {
			m[f.name] = f.typ
		}
		t := &ast.RecordType{Fields: m}
		t.Location = ast.Merge(start, end)
		return t, nil
	}
	elems := make([]ast.Type, len(fields))
	for i, f := range fields {
		elems[i] = f.typ
	}
	t := &ast.TupleType{Elements: elems}
	t.Location = ast.Merge(start, end)
	return t, nil
}
