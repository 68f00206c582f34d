// Package parser implements the Type Parser (C3) and Expression Parser
// (C4) from spec §4.3–§4.4. The top-level grammar is driven by an
// imperative cursor over the token slice — spec §9 explicitly recommends
// this for the hot paths (primary dispatch, type atoms) to avoid deep
// combinator call overhead — while identifier lists (type parameters and
// lambda parameter names, via parseLowerIdentList) are built from
// internal/parser/combinator. Record fields, list elements and the other
// separated lists are parsed by the cursor directly.
package parser

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/lexer"
	"github.com/sunholo/noolang/internal/parser/combinator"
)

// ParseError is the structured failure the parser raises on its first
// unrecoverable syntax error (spec §1, §4.4, §7). Error recovery is a
// non-goal: the first ParseError aborts parsing.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error: %s at line %d", e.Message, e.Line)
}

// Parser is the imperative cursor over a token slice.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New builds a Parser over a token stream that already ends in an EOF
// token (as produced by lexer.Lexer.Tokenize). COMMENT tokens are
// filtered out up front — they carry no grammatical meaning once past the
// lexer boundary, matching spec §6's token-kind list where COMMENT only
// exists to be skipped.
func New(tokens []lexer.Token) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != lexer.COMMENT {
			filtered = append(filtered, t)
		}
	}
	return &Parser{toks: filtered}
}

// Parse is the top-level driver named in spec §6: parse(tokens) -> Program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := New(tokens)
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == lexer.EOF }

func (p *Parser) curLine() int { return p.cur().Location.Start.Line }

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: p.curLine()}
}

func (p *Parser) isKeyword(word string) bool {
	return p.cur().Kind == lexer.KEYWORD && p.cur().Value == word
}

func (p *Parser) isPunct(value string) bool {
	return p.cur().Kind == lexer.PUNCTUATION && p.cur().Value == value
}

func (p *Parser) isOp(value string) bool {
	return p.cur().Kind == lexer.OPERATOR && p.cur().Value == value
}

func (p *Parser) expectPunct(value string) (lexer.Token, error) {
	if !p.isPunct(value) {
		return lexer.Token{}, p.errorf("expected '%s', got %q", value, p.cur().Value)
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(word string) (lexer.Token, error) {
	if !p.isKeyword(word) {
		return lexer.Token{}, p.errorf("expected keyword '%s', got %q", word, p.cur().Value)
	}
	return p.advance(), nil
}

func (p *Parser) expectOp(value string) (lexer.Token, error) {
	if !p.isOp(value) {
		return lexer.Token{}, p.errorf("expected '%s', got %q", value, p.cur().Value)
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	if p.cur().Kind != lexer.IDENTIFIER {
		return lexer.Token{}, p.errorf("expected identifier, got %q", p.cur().Value)
	}
	return p.advance(), nil
}

func loc(t lexer.Token) ast.Location { return t.Location }

// runCombinator applies a combinator.Parser to the remaining token slice
// and, on success, advances the cursor by however much it consumed. This is
// the bridge between the imperative driver and the pure Parser[T] grammar
// used for the naturally-iterative sub-grammars named in spec §4.2
// (parameter lists, identifier lists) — combinators compose cleanly there
// without the cursor threading needed for the mutually-recursive
// expression/type grammar.
func runCombinator[T any](p *Parser, cp combinator.Parser[T]) (T, bool) {
	sub := p.toks[p.pos:]
	r := cp(sub)
	var zero T
	if !r.Success {
		return zero, false
	}
	p.pos += len(sub) - len(r.Remaining)
	return r.Value, true
}

func isLowerIdentTok(t lexer.Token) bool {
	return t.Kind == lexer.IDENTIFIER && !isUpperIdent(t.Value) && t.Value != "_"
}

// parseLowerIdentList parses zero or more lowercase identifier tokens
// (variant/type/constraint type parameters, lambda parameter names) via
// the combinator library.
func (p *Parser) parseLowerIdentList() []string {
	toks, _ := runCombinator(p, combinator.Many(combinator.Satisfy(isLowerIdentTok, "identifier")))
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.Value
	}
	return names
}

// parseProgram parses a `;`-separated list of top-level statements.
// Empty input, and input containing only `;` separators, both yield an
// empty statement list (spec §8 boundary behaviours).
func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.cur().Location
	var stmts []ast.Expr
	for !p.atEOF() {
		for p.isPunct(";") {
			p.advance()
		}
		if p.atEOF() {
			break
		}
		stmt, err := p.parseStatementExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		for p.isPunct(";") {
			p.advance()
		}
	}
	if !p.atEOF() {
		return nil, p.errorf("Unexpected token after expression: %q", p.cur().Value)
	}
	end := p.cur().Location
	return &ast.Program{Statements: stmts, Location: ast.Merge(start, end)}, nil
}
