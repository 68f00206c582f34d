// Package combinator is the small parser-combinator library described in
// spec §4.2 (component C2): a Parser[T] is a pure function from a token
// slice to either a successful {value, remaining} pair or a {error,
// position} failure. The type and expression parsers are an imperative
// cursor (internal/parser); of these primitives they use only Many and
// Satisfy, for identifier lists (parseLowerIdentList).
//
// The grammar above this package is mutually recursive (expressions refer
// to types, types refer to expressions' record syntax, patterns refer to
// expressions), so Lazy exists purely to break Go's eager initialization
// order: it defers building the underlying Parser until first use.
package combinator

import "github.com/sunholo/noolang/internal/lexer"

// Result is what a Parser produces: either a value and the unconsumed
// remainder of the token slice, or a failure with a message and position.
type Result[T any] struct {
	Success   bool
	Value     T
	Remaining []lexer.Token
	Err       *Error
}

// Error is a parser failure: a message and the line it was detected at.
// The top-level driver (spec §4.4 "Error reporting") prefixes this with
// "Parse error:" and appends "at line N".
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string { return e.Message }

func ok[T any](v T, rest []lexer.Token) Result[T] {
	return Result[T]{Success: true, Value: v, Remaining: rest}
}

func fail[T any](msg string, line int) Result[T] {
	return Result[T]{Success: false, Err: &Error{Message: msg, Line: line}}
}

// Fail builds a failed Result of type T, for combinators implemented
// outside this package.
func Fail[T any](msg string, line int) Result[T] { return fail[T](msg, line) }

func lineOf(toks []lexer.Token) int {
	if len(toks) == 0 {
		return 0
	}
	return toks[0].Location.Start.Line
}

// Parser is a pure function from a token slice to a Result.
type Parser[T any] func(toks []lexer.Token) Result[T]

// Token succeeds consuming exactly one token of the given kind, regardless
// of value, returning the token itself.
func Token(kind lexer.Kind) Parser[lexer.Token] {
	return func(toks []lexer.Token) Result[lexer.Token] {
		if len(toks) == 0 {
			return fail[lexer.Token]("unexpected end of input", 0)
		}
		if toks[0].Kind != kind {
			return fail[lexer.Token]("unexpected token "+toks[0].Value, lineOf(toks))
		}
		return ok(toks[0], toks[1:])
	}
}

// Satisfy succeeds consuming one token for which pred returns true.
func Satisfy(pred func(lexer.Token) bool, expected string) Parser[lexer.Token] {
	return func(toks []lexer.Token) Result[lexer.Token] {
		if len(toks) == 0 || !pred(toks[0]) {
			return fail[lexer.Token]("expected "+expected, lineOf(toks))
		}
		return ok(toks[0], toks[1:])
	}
}

// Keyword succeeds consuming one KEYWORD token with the given literal value.
func Keyword(word string) Parser[lexer.Token] {
	return Satisfy(func(t lexer.Token) bool { return t.Kind == lexer.KEYWORD && t.Value == word }, "keyword '"+word+"'")
}

// Punctuation succeeds consuming one PUNCTUATION token with the given value.
func Punctuation(value string) Parser[lexer.Token] {
	return Satisfy(func(t lexer.Token) bool { return t.Kind == lexer.PUNCTUATION && t.Value == value }, "'"+value+"'")
}

// Operator succeeds consuming one OPERATOR token with the given value.
func Operator(value string) Parser[lexer.Token] {
	return Satisfy(func(t lexer.Token) bool { return t.Kind == lexer.OPERATOR && t.Value == value }, "'"+value+"'")
}

// Map transforms a successful result's value, leaving failures untouched.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(toks []lexer.Token) Result[B] {
		r := p(toks)
		if !r.Success {
			return Result[B]{Success: false, Err: r.Err}
		}
		return ok(f(r.Value), r.Remaining)
	}
}

// MapErr is Map, but f may itself fail (e.g. a semantic check on the
// parsed value), in which case msg replaces the ok result.
func MapErr[A, B any](p Parser[A], f func(A) (B, string)) Parser[B] {
	return func(toks []lexer.Token) Result[B] {
		r := p(toks)
		if !r.Success {
			return Result[B]{Success: false, Err: r.Err}
		}
		b, errMsg := f(r.Value)
		if errMsg != "" {
			return fail[B](errMsg, lineOf(toks))
		}
		return ok(b, r.Remaining)
	}
}

// Seq2 runs two parsers in sequence, combining their results with f.
func Seq2[A, B, C any](pa Parser[A], pb Parser[B], f func(A, B) C) Parser[C] {
	return func(toks []lexer.Token) Result[C] {
		ra := pa(toks)
		if !ra.Success {
			return Result[C]{Success: false, Err: ra.Err}
		}
		rb := pb(ra.Remaining)
		if !rb.Success {
			return Result[C]{Success: false, Err: rb.Err}
		}
		return ok(f(ra.Value, rb.Value), rb.Remaining)
	}
}

// Seq3 is Seq2 for three parsers.
func Seq3[A, B, C, D any](pa Parser[A], pb Parser[B], pc Parser[C], f func(A, B, C) D) Parser[D] {
	return func(toks []lexer.Token) Result[D] {
		ra := pa(toks)
		if !ra.Success {
			return Result[D]{Success: false, Err: ra.Err}
		}
		rb := pb(ra.Remaining)
		if !rb.Success {
			return Result[D]{Success: false, Err: rb.Err}
		}
		rc := pc(rb.Remaining)
		if !rc.Success {
			return Result[D]{Success: false, Err: rc.Err}
		}
		return ok(f(ra.Value, rb.Value, rc.Value), rc.Remaining)
	}
}

// Choice tries each alternative in order, returning the first success. If
// all fail, it returns the first alternative's failure: a failed Result
// carries no Remaining, so every failure measures as the same distance
// and a later one never replaces it.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(toks []lexer.Token) Result[T] {
		var best Result[T]
		bestConsumed := -1
		for _, p := range ps {
			r := p(toks)
			if r.Success {
				return r
			}
			consumed := len(toks) - len(r.Remaining)
			if consumed > bestConsumed {
				best = r
				bestConsumed = consumed
			}
		}
		if bestConsumed < 0 {
			return fail[T]("no alternative matched", lineOf(toks))
		}
		return best
	}
}

// Optional succeeds with (value, true) if p succeeds, or (zero, false)
// without consuming input if p fails.
func Optional[T any](p Parser[T]) Parser[struct {
	Value T
	Found bool
}] {
	return func(toks []lexer.Token) Result[struct {
		Value T
		Found bool
	}] {
		r := p(toks)
		if r.Success {
			return ok(struct {
				Value T
				Found bool
			}{r.Value, true}, r.Remaining)
		}
		var zero T
		return ok(struct {
			Value T
			Found bool
		}{zero, false}, toks)
	}
}

// Many applies p zero or more times, collecting results until it fails.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(toks []lexer.Token) Result[[]T] {
		var out []T
		rest := toks
		for {
			r := p(rest)
			if !r.Success {
				return ok(out, rest)
			}
			out = append(out, r.Value)
			rest = r.Remaining
		}
	}
}

// Many1 is Many but requires at least one success.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(toks []lexer.Token) Result[[]T] {
		r := Many(p)(toks)
		if len(r.Value) == 0 {
			return fail[[]T]("expected at least one occurrence", lineOf(toks))
		}
		return r
	}
}

// SepBy parses zero or more occurrences of p separated by sep, permitting
// a trailing separator (spec §4.4: "trailing commas are permitted").
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(toks []lexer.Token) Result[[]T] {
		first := p(toks)
		if !first.Success {
			return ok[[]T](nil, toks)
		}
		out := []T{first.Value}
		rest := first.Remaining
		for {
			sr := sep(rest)
			if !sr.Success {
				return ok(out, rest)
			}
			ir := p(sr.Remaining)
			if !ir.Success {
				// Trailing separator: consume it; no further item follows.
				return ok(out, sr.Remaining)
			}
			out = append(out, ir.Value)
			rest = ir.Remaining
		}
	}
}

// Lazy defers construction of the underlying parser until first use,
// breaking the initialization cycle in a mutually recursive grammar.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var cached Parser[T]
	return func(toks []lexer.Token) Result[T] {
		if cached == nil {
			cached = build()
		}
		return cached(toks)
	}
}

// Label replaces a failing parser's error message, keeping its position —
// used to produce the spec's named diagnostics ("Expected type atom",
// "Expected effect name after !").
func Label[T any](p Parser[T], message string) Parser[T] {
	return func(toks []lexer.Token) Result[T] {
		r := p(toks)
		if r.Success {
			return r
		}
		return fail[T](message, lineOf(toks))
	}
}

// Peek reports whether p would succeed at toks, without consuming input —
// the lookahead primitive the record-vs-destructuring and lambda-vs-group
// disambiguation rules (spec §4.4) are built on.
func Peek[T any](p Parser[T]) Parser[bool] {
	return func(toks []lexer.Token) Result[bool] {
		r := p(toks)
		return ok(r.Success, toks)
	}
}
