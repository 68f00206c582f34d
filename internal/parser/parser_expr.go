package parser

import (
	"strconv"
	"strings"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/lexer"
)

// parseExpression is the full C4 grammar entry point (spec §4.4),
// including the `;` sequence operator and the trailing `where` clause.
// Nested contexts (parenthesised groups, lambda bodies, list/record
// elements, match arms) call this; the top-level statement loop and the
// `where`-defs list call parseStatementExpr instead so a bare top-level
// `;` always separates statements rather than being absorbed into one.
func (p *Parser) parseExpression() (ast.Expr, error) {
	start := p.cur().Location
	e, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("where") {
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		defs, err := p.parseDefList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.WhereExpr{Main: e, Defs: defs, Location: ast.Merge(start, p.cur().Location)}, nil
	}
	return e, nil
}

// parseStatementExpr parses one statement: a Definition/MutableDefinition/
// Mutation/destructuring form, or a plain expression one level below the
// `;` sequence operator so bare top-level `;` stays a statement separator.
func (p *Parser) parseStatementExpr() (ast.Expr, error) {
	start := p.cur().Location

	if p.destructuringFollows() {
		return p.parseDestructuring()
	}
	if p.isKeyword("mut") {
		return p.parseMut()
	}
	if p.cur().Kind == lexer.IDENTIFIER && p.peekAt(1).Kind == lexer.OPERATOR && p.peekAt(1).Value == "=" {
		name := p.advance().Value
		p.advance() // '='
		val, err := p.parseDollar()
		if err != nil {
			return nil, err
		}
		loc := ast.Merge(start, p.cur().Location)
		if p.isKeyword("where") {
			p.advance()
			if _, err := p.expectPunct("("); err != nil {
				return nil, err
			}
			defs, err := p.parseDefList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			val = &ast.WhereExpr{Main: val, Defs: defs, Location: loc}
		}
		return &ast.DefinitionExpr{Name: name, Value: val, Location: loc}, nil
	}

	e, err := p.parseDollar()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("where") {
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		defs, err := p.parseDefList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.WhereExpr{Main: e, Defs: defs, Location: ast.Merge(start, p.cur().Location)}, nil
	}
	return e, nil
}

func (p *Parser) parseDefList() ([]ast.Expr, error) {
	var defs []ast.Expr
	for {
		for p.isPunct(";") {
			p.advance()
		}
		if p.isPunct(")") {
			break
		}
		d, err := p.parseStatementExpr()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
		if p.isPunct(";") {
			p.advance()
			continue
		}
		break
	}
	return defs, nil
}

// --- mut / mut! -----------------------------------------------------------

func (p *Parser) parseMut() (ast.Expr, error) {
	start := p.advance().Location // 'mut'
	isMutation := false
	if p.isOp("!") && !p.cur().SpaceBefore {
		p.advance()
		isMutation = true
	}
	nameTok, err := p.expectIdent()
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
	loc := ast.Merge(start, p.cur().Location)
	if isMutation {
		return &ast.MutationExpr{Name: nameTok.Value, Value: val, Location: loc}, nil
	}
	return &ast.MutableDefinitionExpr{Name: nameTok.Value, Value: val, Location: loc}, nil
}

// --- destructuring ---------------------------------------------------------

// destructuringFollows is the lookahead named in spec §4.4: a `{ … }`
// followed by `=` at the matching close brace parses as a destructuring
// pattern for a definition, not a record/tuple literal.
func (p *Parser) destructuringFollows() bool {
	if !p.isPunct("{") {
		return false
	}
	depth := 0
	i := p.pos
	for i < len(p.toks) {
		t := p.toks[i]
		if t.Kind == lexer.PUNCTUATION && t.Value == "{" {
			depth++
		}
		if t.Kind == lexer.PUNCTUATION && t.Value == "}" {
			depth--
			if depth == 0 {
				if i+1 < len(p.toks) {
					nt := p.toks[i+1]
					return nt.Kind == lexer.OPERATOR && nt.Value == "="
				}
				return false
			}
		}
		i++
	}
	return false
}

func (p *Parser) parseDestructuring() (ast.Expr, error) {
	start := p.advance().Location // '{'
	named := p.cur().Kind == lexer.ACCESSOR

	var names []string
	for {
		if named {
			if p.cur().Kind != lexer.ACCESSOR {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			names = append(names, p.advance().Value)
		} else {
			if p.cur().Kind != lexer.IDENTIFIER {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			names = append(names, p.advance().Value)
		}
		if p.isPunct(",") {
			p.advance()
			if p.isPunct("}") {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	if _, err := p.expectOp("="); err != nil {
		return nil, err
	}
	val, err := p.parseDollar()
	if err != nil {
		return nil, err
	}
	loc := ast.Merge(start, p.cur().Location)
	if named {
		return &ast.RecordDestructuringExpr{Fields: names, Value: val, Location: loc}, nil
	}
	return &ast.TupleDestructuringExpr{Names: names, Value: val, Location: loc}, nil
}

// --- precedence chain (spec §4.4, loosest to tightest) ---------------------

func (p *Parser) parseSequence() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parseDollar()
	if err != nil {
		return nil, err
	}
	if !p.isPunct(";") {
		return left, nil
	}
	p.advance()
	right, err := p.parseSequence() // right-associative
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Operator: ";", Right: right, Location: ast.Merge(start, p.cur().Location)}, nil
}

func (p *Parser) parseDollar() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parseThrush()
	if err != nil {
		return nil, err
	}
	if !p.isOp("$") {
		return left, nil
	}
	p.advance()
	right, err := p.parseDollar() // right-associative
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Operator: "$", Right: right, Location: ast.Merge(start, p.cur().Location)}, nil
}

func (p *Parser) parseThrush() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	for p.isOp("|") || p.isOp("|?") {
		op := p.advance().Value
		right, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Location: ast.Merge(start, p.cur().Location)}
	}
	return left, nil
}

func (p *Parser) parsePipeline() (ast.Expr, error) {
	start := p.cur().Location
	first, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if !(p.isOp("|>") || p.isOp("<|")) {
		return first, nil
	}
	var steps []ast.PipelineStep
	for p.isOp("|>") || p.isOp("<|") {
		op := p.advance().Value
		rhs, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		steps = append(steps, ast.PipelineStep{Operator: op, Expr: rhs})
	}
	return &ast.PipelineExpr{Initial: first, Steps: steps, Location: ast.Merge(start, p.cur().Location)}, nil
}

var comparisonOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true}

func (p *Parser) parseComparison() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.OPERATOR && comparisonOps[p.cur().Value] {
		op := p.advance().Value
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Location: ast.Merge(start, p.cur().Location)}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.advance().Value
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Location: ast.Merge(start, p.cur().Location)}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	start := p.cur().Location
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		op := p.advance().Value
		right, err := p.parseApplication()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Location: ast.Merge(start, p.cur().Location)}
	}
	return left, nil
}

// canStartArg decides whether the application (juxtaposition) loop should
// consume one more argument. An adjacent `-` (no space before the
// following token) is included so `f -1` parses as `f` applied to the
// literal `-1`, while `f - 1` (spaced) stops the argument list and lets
// parseAdditive pick up `-` as binary subtraction.
func (p *Parser) canStartArg() bool {
	t := p.cur()
	switch t.Kind {
	case lexer.NUMBER, lexer.STRING, lexer.IDENTIFIER, lexer.ACCESSOR:
		return true
	case lexer.PUNCTUATION:
		return t.Value == "(" || t.Value == "[" || t.Value == "{"
	case lexer.KEYWORD:
		switch t.Value {
		case "fn", "if", "match", "import":
			return true
		}
		return false
	case lexer.OPERATOR:
		if t.Value == "-" {
			return !p.peekAt(1).SpaceBefore
		}
		return false
	}
	return false
}

func (p *Parser) parseApplication() (ast.Expr, error) {
	start := p.cur().Location
	fn, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	for p.canStartArg() {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn, nil
	}
	return &ast.ApplicationExpr{Function: fn, Args: args, Location: ast.Merge(start, p.cur().Location)}, nil
}

// parseUnary implements the lexical-adjacency unary-minus rule from spec
// §4.4/§8: `-123` (no space) is the literal negative number; `- 123`
// (spaced) is binary subtraction missing its left operand, which is a
// ParseError at this position since there is nothing to the left of it
// here; `a - b` never reaches this path as unary because parseAdditive
// only calls here for a *fresh* operand, after already consuming its own
// infix `-`.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.isOp("-") {
		minusTok := p.cur()
		next := p.peekAt(1)
		if next.SpaceBefore || next.Kind == lexer.EOF {
			return nil, p.errorf("expected expression before '-'")
		}
		p.advance() // consume '-'
		if p.cur().Kind == lexer.NUMBER {
			numTok := p.advance()
			val, err := parseNumberLiteral(numTok.Value)
			if err != nil {
				return nil, p.errorf("invalid number literal %q", numTok.Value)
			}
			return &ast.NumberLiteral{Value: -val, Location: ast.Merge(minusTok.Location, numTok.Location)}, nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.NumberLiteral{Value: 0, Location: minusTok.Location}
		return &ast.BinaryExpr{Left: zero, Operator: "-", Right: operand, Location: ast.Merge(minusTok.Location, p.cur().Location)}, nil
	}
	return p.parsePostfixAnnotation()
}

func parseNumberLiteral(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parsePostfixAnnotation handles the `: type [given constraint]` suffix
// that binds to the nearest sub-expression at this (tightest-but-primary)
// precedence level, with one exception: an annotated lambda expression,
// such as `(fn x => x) : Float -> Float`, whose annotation is a function
// type is hoisted onto the lambda itself. In `fn x => x : T` the
// annotation is parsed as part of the body and stays on `x`; it is not
// hoisted.
func (p *Parser) parsePostfixAnnotation() (ast.Expr, error) {
	start := p.cur().Location
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isPunct(":") {
		return e, nil
	}
	p.advance()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var typed ast.Expr
	if p.isKeyword("given") {
		p.advance()
		c, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		typed = &ast.ConstrainedExpr{Expr: e, Type: t, Constraint: c, Location: ast.Merge(start, p.cur().Location)}
	} else {
		typed = &ast.TypedExpr{Expr: e, Type: t, Location: ast.Merge(start, p.cur().Location)}
	}
	return hoistLambdaAnnotation(typed), nil
}

// hoistLambdaAnnotation implements the lambda-body-annotation rule: if the
// thing just annotated is a bare FunctionExpr and the annotation's type is
// a function type, move the annotation onto the lambda (Declared) instead
// of leaving a TypedExpr wrapper around it.
func hoistLambdaAnnotation(e ast.Expr) ast.Expr {
	switch te := e.(type) {
	case *ast.TypedExpr:
		if fn, ok := te.Expr.(*ast.FunctionExpr); ok {
			if _, isFn := te.Type.(*ast.FunctionType); isFn {
				fn.Declared = te.Type
				return fn
			}
		}
	}
	return e
}

// --- given-constraint grammar (spec §4.4) -----------------------------------

func (p *Parser) parseConstraint() (ast.Constraint, error) {
	return p.parseOrConstraint()
}

func (p *Parser) parseOrConstraint() (ast.Constraint, error) {
	left, err := p.parseAndConstraint()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.advance()
		right, err := p.parseAndConstraint()
		if err != nil {
			return nil, err
		}
		left = &ast.OrConstraint{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndConstraint() (ast.Constraint, error) {
	left, err := p.parseAtomConstraint()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.advance()
		right, err := p.parseAtomConstraint()
		if err != nil {
			return nil, err
		}
		left = &ast.AndConstraint{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAtomConstraint() (ast.Constraint, error) {
	if p.isPunct("(") {
		p.advance()
		inner, err := p.parseOrConstraint()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.ParenConstraint{Inner: inner}, nil
	}
	varTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isKeyword("is"):
		p.advance()
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.IsConstraint{TypeVar: varTok.Value, ConstraintName: nameTok.Value}, nil

	case p.isKeyword("has"):
		p.advance()
		if p.isKeyword("field") {
			p.advance()
			if p.cur().Kind != lexer.STRING {
				return nil, p.errorf("expected field name string after 'has field'")
			}
			fieldName := p.advance().Value
			if _, err := p.expectKeyword("of"); err != nil {
				return nil, err
			}
			if _, err := p.expectKeyword("type"); err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return &ast.HasFieldConstraint{TypeVar: varTok.Value, Field: fieldName, FieldType: t}, nil
		}
		if _, err := p.expectPunct("{"); err != nil {
			return nil, err
		}
		fields := map[string]ast.Type{}
		for p.cur().Kind == lexer.ACCESSOR {
			fname := p.advance().Value
			ftyp, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fields[fname] = ftyp
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		return &ast.HasConstraint{TypeVar: varTok.Value, Structure: ast.RecordStructure{Fields: fields}}, nil

	case p.cur().Kind == lexer.IDENTIFIER && p.cur().Value == "implements":
		p.advance()
		traitTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.ImplementsConstraint{TypeVar: varTok.Value, Trait: traitTok.Value}, nil
	}
	return nil, p.errorf("expected 'is', 'has', or 'implements' in constraint")
}

// --- primary dispatch (spec §4.4) -------------------------------------------

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.NUMBER:
		p.advance()
		val, err := parseNumberLiteral(tok.Value)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", tok.Value)
		}
		return &ast.NumberLiteral{Value: val, Location: tok.Location}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Value, Location: tok.Location}, nil

	case lexer.ACCESSOR:
		p.advance()
		name := strings.TrimSuffix(tok.Value, "?")
		safe := strings.HasSuffix(tok.Value, "?")
		return &ast.AccessorExpr{Field: name, Safe: safe, Location: tok.Location}, nil

	case lexer.IDENTIFIER:
		p.advance()
		switch tok.Value {
		case "true":
			return &ast.Variable{Name: "True", Location: tok.Location}, nil
		case "false":
			return &ast.Variable{Name: "False", Location: tok.Location}, nil
		}
		return &ast.Variable{Name: tok.Value, Location: tok.Location}, nil

	case lexer.KEYWORD:
		switch tok.Value {
		case "true":
			p.advance()
			return &ast.Variable{Name: "True", Location: tok.Location}, nil
		case "false":
			p.advance()
			return &ast.Variable{Name: "False", Location: tok.Location}, nil
		case "fn":
			return p.parseLambda()
		case "if":
			return p.parseIf()
		case "match":
			return p.parseMatch()
		case "import":
			return p.parseImport()
		case "variant":
			return p.parseVariantDecl()
		case "type":
			return p.parseTypeDecl()
		case "constraint":
			return p.parseConstraintDecl()
		case "implement":
			return p.parseImplementDecl()
		case "mut":
			return p.parseMut()
		}
		return nil, p.errorf("unexpected keyword %q", tok.Value)

	case lexer.PUNCTUATION:
		switch tok.Value {
		case "(":
			return p.parseParenGroup()
		case "[":
			return p.parseList()
		case "{":
			return p.parseRecordOrTupleOrUnit()
		}
	}
	return nil, p.errorf("Expected type atom")
}

func (p *Parser) parseParenGroup() (ast.Expr, error) {
	p.advance() // '('
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) parseList() (ast.Expr, error) {
	start := p.advance().Location // '['
	var elems []ast.Expr
	for !p.isPunct("]") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return &ast.ListExpr{Elements: elems, Location: ast.Merge(start, p.cur().Location)}, nil
}

// parseRecordOrTupleOrUnit applies the disambiguation rule from spec §3.5/
// §4.4: all-named fields -> Record; all-positional -> Tuple; zero fields
// -> Unit; mixing the two is a ParseError attributed to the offending
// token.
func (p *Parser) parseRecordOrTupleOrUnit() (ast.Expr, error) {
	start := p.advance().Location // '{'
	if p.isPunct("}") {
		p.advance()
		return &ast.UnitExpr{Location: ast.Merge(start, p.cur().Location)}, nil
	}

	var recordFields []ast.RecordField
	var tupleElems []ast.Expr
	named, positional := false, false

	for {
		if p.cur().Kind == lexer.ACCESSOR {
			fname := p.advance().Value
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if positional {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			named = true
			recordFields = append(recordFields, ast.RecordField{Name: fname, Value: val})
		} else {
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if named {
				return nil, p.errorf("Cannot mix named and positional fields")
			}
			positional = true
			tupleElems = append(tupleElems, val)
		}
		if p.isPunct(",") {
			p.advance()
			if p.isPunct("}") {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	loc := ast.Merge(start, p.cur().Location)
	if named {
		return &ast.RecordExpr{Fields: recordFields, Location: loc}, nil
	}
	return &ast.TupleExpr{Elements: tupleElems, Location: loc}, nil
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	start := p.advance().Location // 'fn'
	params := p.parseLowerIdentList()
	if _, err := p.expectOp("=>"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpr{Params: params, Body: body, Location: ast.Merge(start, p.cur().Location)}, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	start := p.advance().Location // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	thenE, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	elseE, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{Condition: cond, Then: thenE, Else: elseE, Location: ast.Merge(start, p.cur().Location)}, nil
}

func (p *Parser) parseMatch() (ast.Expr, error) {
	start := p.advance().Location // 'match'
	scrutinee, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("with"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var cases []ast.MatchCase
	for !p.isPunct(")") {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp("=>"); err != nil {
			return nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
		if p.isPunct(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.MatchExpr{Scrutinee: scrutinee, Cases: cases, Location: ast.Merge(start, p.cur().Location)}, nil
}

func (p *Parser) parseImport() (ast.Expr, error) {
	start := p.advance().Location // 'import'
	if p.cur().Kind != lexer.STRING {
		return nil, p.errorf("expected string path after 'import'")
	}
	path := p.advance().Value
	return &ast.ImportExpr{Path: path, Location: ast.Merge(start, p.cur().Location)}, nil
}
