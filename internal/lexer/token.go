// Package lexer is the external collaborator that turns Noolang source text
// into the token stream the parser consumes (spec §6). It is explicitly
// out of scope for the CORE — the parser's contract is only "a token
// stream with IDENTIFIER/NUMBER/STRING/KEYWORD/OPERATOR/PUNCTUATION/
// ACCESSOR/COMMENT/EOF kinds, each carrying value and location" — but a
// module with no way to produce that stream cannot be run or tested, so a
// small lexer lives here the way the teacher ships one in internal/lexer.
package lexer

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
)

// Kind is the token category named in spec §6.
type Kind int

const (
	EOF Kind = iota
	IDENTIFIER
	NUMBER
	STRING
	KEYWORD
	OPERATOR
	PUNCTUATION
	ACCESSOR
	COMMENT
	ILLEGAL
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case KEYWORD:
		return "KEYWORD"
	case OPERATOR:
		return "OPERATOR"
	case PUNCTUATION:
		return "PUNCTUATION"
	case ACCESSOR:
		return "ACCESSOR"
	case COMMENT:
		return "COMMENT"
	default:
		return "ILLEGAL"
	}
}

// Keywords is the fixed keyword set from spec §6.
var Keywords = map[string]bool{
	"fn": true, "if": true, "then": true, "else": true,
	"match": true, "with": true, "where": true,
	"mut": true, "import": true, "variant": true, "type": true,
	"constraint": true, "implement": true, "given": true,
	"is": true, "has": true, "field": true, "of": true,
	"and": true, "or": true, "true": true, "false": true,
}

// Operators is the fixed operator set from spec §6, longest-match first
// so the lexer never needs backtracking.
var Operators = []string{
	"->", "=>", "|>", "<|", "|?", "<=", ">=", "==", "!=",
	"+", "-", "*", "/", "%", "<", ">", "|", "$", "=", "!",
}

// EffectNames is the closed effect set from spec §3.2, hard-coded here; it
// is the set the type parser validates `!effect` names against.
// internal/stdlib.EffectNames holds the same names parsed from the embedded
// effects.yaml, and nothing checks that the two lists agree.
var EffectNames = map[string]bool{
	"log": true, "read": true, "write": true, "state": true,
	"time": true, "rand": true, "ffi": true, "async": true,
}

// Token is one lexical unit: a kind, its literal value, and its location.
// SpaceBefore records whether whitespace or a comment separated this token
// from the previous one — the parser's unary-minus rule (spec §4.4) needs
// exactly this bit to tell `-123` (adjacent, unary) from `- 123` (spaced,
// binary with a missing left operand).
type Token struct {
	Kind        Kind
	Value       string
	Location    ast.Location
	SpaceBefore bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Value, t.Location)
}

// Is reports whether the token is punctuation/operator/keyword matching
// value — the common case for parser primitives.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}
