package parser

import (
	"github.com/sunholo/noolang/internal/ast"
)

// parseVariantDecl parses `variant Name params = Ctor args | Ctor args | …`
// (spec §3.3/§4.4: ADT declaration).
func (p *Parser) parseVariantDecl() (ast.Expr, error) {
	start := p.advance().Location // 'variant'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if !isUpperIdent(nameTok.Value) {
		return nil, p.errorf("variant name must start with an uppercase letter, got %q", nameTok.Value)
	}
	typeParams := p.parseLowerIdentList()
	if _, err := p.expectOp("="); err != nil {
		return nil, err
	}
	var ctors []ast.ConstructorDecl
	for {
		ctorTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if !isUpperIdent(ctorTok.Value) {
			return nil, p.errorf("constructor name must start with an uppercase letter, got %q", ctorTok.Value)
		}
		var args []ast.Type
		for p.canStartTypeAtom() {
			a, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		ctors = append(ctors, ast.ConstructorDecl{Name: ctorTok.Value, Args: args})
		if p.isOp("|") {
			p.advance()
			continue
		}
		break
	}
	return &ast.TypeDefinitionExpr{
		Name:         nameTok.Value,
		TypeParams:   typeParams,
		Constructors: ctors,
		Location:     ast.Merge(start, p.cur().Location),
	}, nil
}

// parseTypeDecl parses `type Name params = typeExpr` (record/tuple/union
// alias that introduces no new runtime constructors).
func (p *Parser) parseTypeDecl() (ast.Expr, error) {
	start := p.advance().Location // 'type'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	typeParams := p.parseLowerIdentList()
	if _, err := p.expectOp("="); err != nil {
		return nil, err
	}
	def, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.UserDefinedTypeExpr{
		Name:       nameTok.Value,
		TypeParams: typeParams,
		Definition: def,
		Location:   ast.Merge(start, p.cur().Location),
	}, nil
}

// parseConstraintDecl parses `constraint Name params (fn : type; fn : type)`
// — a trait definition (spec §3.3, §4.8 component C7).
func (p *Parser) parseConstraintDecl() (ast.Expr, error) {
	start := p.advance().Location // 'constraint'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	typeParams := p.parseLowerIdentList()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var sigs []ast.TraitSignature
	for !p.isPunct(")") {
		fnTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, ast.TraitSignature{Name: fnTok.Value, Type: t})
		if p.isPunct(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.ConstraintDefinitionExpr{
		Name:       nameTok.Value,
		TypeParams: typeParams,
		Signatures: sigs,
		Location:   ast.Merge(start, p.cur().Location),
	}, nil
}

// parseImplementDecl parses `implement Trait TargetType [given constraint]
// (fn = expr; fn = expr)` — a (possibly conditional) trait implementation.
func (p *Parser) parseImplementDecl() (ast.Expr, error) {
	start := p.advance().Location // 'implement'
	traitTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	target, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	var given ast.Constraint
	if p.isKeyword("given") {
		p.advance()
		given, err = p.parseConstraint()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var methods []ast.TraitMethodImpl
	for !p.isPunct(")") {
		fnTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp("="); err != nil {
			return nil, err
		}
		val, err := p.parseDollar()
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.TraitMethodImpl{Name: fnTok.Value, Value: val})
		if p.isPunct(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.ImplementDefinitionExpr{
		Trait:      traitTok.Value,
		TargetType: target,
		Given:      given,
		Methods:    methods,
		Location:   ast.Merge(start, p.cur().Location),
	}, nil
}
