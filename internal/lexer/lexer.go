package lexer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sunholo/noolang/internal/ast"
)

// Lexer turns normalized source text into a Token slice. It is a simple
// single-pass scanner; error recovery is not attempted here, mirroring the
// parser's own fail-fast policy (spec §1, §4.4).
type Lexer struct {
	src    []byte
	file   string
	pos    int
	line   int
	col    int
}

// New creates a Lexer over src, NFC-normalizing it first.
func New(src []byte, file string) *Lexer {
	return &Lexer{src: Normalize(src), file: file, line: 1, col: 1}
}

// Tokenize scans the entire input and returns its token stream, always
// terminated with a single EOF token.
func (l *Lexer) Tokenize() []Token {
	var out []Token
	for {
		sawSpace := l.skipSpaceAndComments(&out)
		if l.pos >= len(l.src) {
			out = append(out, Token{Kind: EOF, Value: "", Location: l.here(), SpaceBefore: sawSpace})
			return out
		}
		tok := l.next()
		tok.SpaceBefore = sawSpace
		out = append(out, tok)
	}
}

func (l *Lexer) here() ast.Location {
	p := ast.Position{Line: l.line, Col: l.col, File: l.file}
	return ast.Location{Start: p, End: p}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// skipSpaceAndComments advances past whitespace and `--` line comments,
// appending COMMENT tokens for the latter. Returns whether anything was
// skipped (used by the parser's adjacency rule for unary minus).
func (l *Lexer) skipSpaceAndComments(out *[]Token) bool {
	skipped := false
	for l.pos < len(l.src) {
		b := l.peekByte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance()
			skipped = true
			continue
		}
		if b == '-' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '-' {
			start := l.here()
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
			*out = append(*out, Token{Kind: COMMENT, Value: "", Location: start})
			skipped = true
			continue
		}
		break
	}
	return skipped
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

func (l *Lexer) next() Token {
	start := l.here()
	b := l.peekByte()

	switch {
	case b >= '0' && b <= '9':
		return l.lexNumber(start)
	case b == '"':
		return l.lexString(start)
	case b == '@':
		return l.lexAccessor(start)
	case isIdentStart(rune(b)):
		return l.lexIdentOrKeyword(start)
	}

	// Operators, longest match first.
	rest := string(l.src[l.pos:])
	ops := append([]string(nil), Operators...)
	sort.Slice(ops, func(i, j int) bool { return len(ops[i]) > len(ops[j]) })
	for _, op := range ops {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			return Token{Kind: OPERATOR, Value: op, Location: spanFrom(start, l.here())}
		}
	}

	switch b {
	case '(', ')', '{', '}', '[', ']', ',', ';', ':':
		l.advance()
		return Token{Kind: PUNCTUATION, Value: string(b), Location: spanFrom(start, l.here())}
	}

	// Unknown byte: still consume to make progress; parser will report the
	// illegal token as a parse error with location.
	l.advance()
	return Token{Kind: ILLEGAL, Value: string(b), Location: spanFrom(start, l.here())}
}

func spanFrom(start, end ast.Location) ast.Location {
	return ast.Location{Start: start.Start, End: end.Start}
}

func (l *Lexer) lexNumber(start ast.Location) Token {
	var sb strings.Builder
	for l.pos < len(l.src) {
		b := l.peekByte()
		if b >= '0' && b <= '9' {
			sb.WriteByte(l.advance())
		} else if b == '_' {
			l.advance() // digit-group separator, dropped from the literal value
		} else {
			break
		}
	}
	if l.peekByte() == '.' && l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9' {
		sb.WriteByte(l.advance())
		for l.pos < len(l.src) {
			b := l.peekByte()
			if b >= '0' && b <= '9' {
				sb.WriteByte(l.advance())
			} else if b == '_' {
				l.advance()
			} else {
				break
			}
		}
	}
	return Token{Kind: NUMBER, Value: sb.String(), Location: spanFrom(start, l.here())}
}

func (l *Lexer) lexString(start ast.Location) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) && l.peekByte() != '"' {
		b := l.advance()
		if b == '\\' && l.pos < len(l.src) {
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(b)
	}
	if l.pos < len(l.src) {
		l.advance() // closing quote
	}
	return Token{Kind: STRING, Value: sb.String(), Location: spanFrom(start, l.here())}
}

func (l *Lexer) lexAccessor(start ast.Location) Token {
	l.advance() // '@'
	var sb strings.Builder
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if !isIdentCont(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
		sb.WriteRune(r)
	}
	if l.peekByte() == '?' {
		l.advance()
		sb.WriteByte('?')
	}
	return Token{Kind: ACCESSOR, Value: sb.String(), Location: spanFrom(start, l.here())}
}

func (l *Lexer) lexIdentOrKeyword(start ast.Location) Token {
	var sb strings.Builder
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if !isIdentCont(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	if Keywords[name] {
		return Token{Kind: KEYWORD, Value: name, Location: spanFrom(start, l.here())}
	}
	return Token{Kind: IDENTIFIER, Value: name, Location: spanFrom(start, l.here())}
}
