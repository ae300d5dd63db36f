// Package lexer provides the structural scanner that feeds the
// renderers. It recognizes shape rather than any particular language:
// words, numbers, comments, escapes, operators, assigners and the
// paired delimiter categories. Whitespace is never tokenized; it lives
// in the gaps between tokens and is reproduced verbatim by the
// renderers.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/lexstorm/internal/token"
)

// Result is what a scan produces: the source it consumed, the tokens
// recognized in order, and any errors. A clean scan is terminated by
// an EOF token at {Start: len(Source), Len: 0}. A failed scan carries
// the tokens recovered before the failing point, at least one error,
// and no EOF terminator.
type Result struct {
	Source string
	Tokens []token.Token
	Errs   ErrorList
}

// Failed reports whether the scan hit an error.
func (r Result) Failed() bool {
	return len(r.Errs) > 0
}

// Scan tokenizes source in a single left-to-right pass.
func Scan(source string) Result {
	s := scanner{src: source}
	s.run()
	return Result{Source: source, Tokens: s.tokens, Errs: s.errs}
}

type scanner struct {
	src    string
	pos    int
	tokens []token.Token
	errs   ErrorList
	failed bool

	// quote is the opener category of the active quote scope, or
	// token.Invalid when no quote is open. quoteStart positions the
	// unterminated-quote error.
	quote      token.Category
	quoteStart int
}

func (s *scanner) run() {
	for s.pos < len(s.src) && !s.failed {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])

		if s.quote != token.Invalid {
			s.scanInQuote(r, size)
			continue
		}

		switch {
		case unicode.IsSpace(r):
			s.pos += size
		case isWordStart(r):
			s.scanWord()
		case isDigit(r):
			s.scanNumber()
		case r == '/' && s.peekByte(s.pos+1) == '/':
			s.scanLineComment()
		case r == '#':
			s.scanLineComment()
		case r == '/' && s.peekByte(s.pos+1) == '*':
			s.scanBlockComment()
		default:
			s.scanPunct(r, size)
		}
	}

	if s.failed {
		return
	}
	if s.quote != token.Invalid {
		s.errs.Add(s.quoteStart, "unterminated "+quoteName(s.quote))
		return
	}
	s.emit(token.EOF, len(s.src), len(s.src))
}

// emit appends a token covering src[start:end] and moves the cursor
// past it.
func (s *scanner) emit(cat token.Category, start, end int) {
	s.tokens = append(s.tokens, token.Token{Category: cat, Start: start, Len: end - start})
	s.pos = end
}

// fail records an error and stops the scan. No token is emitted for
// the failing fragment.
func (s *scanner) fail(offset int, msg string) {
	s.errs.Add(offset, msg)
	s.failed = true
}

// peekByte returns the byte at i, or 0 past the end.
func (s *scanner) peekByte(i int) byte {
	if i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// scanInQuote scans one token while a quote scope is open. Only the
// active quote's own rune closes the scope; comments and multi-rune
// operators are not recognized here, and quote runes of other kinds
// are plain single-rune operators.
func (s *scanner) scanInQuote(r rune, size int) {
	switch {
	case r == quoteRune(s.quote):
		s.emit(closerOf(s.quote), s.pos, s.pos+size)
		s.quote = token.Invalid
	case r == '\\' && s.quote != token.BacktickOpen:
		s.scanEscape()
	case unicode.IsSpace(r):
		s.pos += size
	case isWordStart(r):
		s.scanWord()
	case isDigit(r):
		s.scanNumber()
	default:
		s.emit(token.Operator, s.pos, s.pos+size)
	}
}

func (s *scanner) scanWord() {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isWordPart(r) {
			break
		}
		s.pos += size
	}
	s.emit(token.Word, start, s.pos)
}

// scanNumber consumes a numeric literal: decimal with optional
// fraction and exponent, or a 0x/0b/0o prefixed form. A prefix with
// no digits after it still scans as a Number; this is a playground,
// not a validator.
func (s *scanner) scanNumber() {
	start := s.pos

	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) {
		switch s.src[s.pos+1] {
		case 'x', 'X':
			s.pos += 2
			for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
				s.pos++
			}
			s.emit(token.Number, start, s.pos)
			return
		case 'b', 'B':
			s.pos += 2
			for s.pos < len(s.src) && isBinDigit(s.src[s.pos]) {
				s.pos++
			}
			s.emit(token.Number, start, s.pos)
			return
		case 'o', 'O':
			s.pos += 2
			for s.pos < len(s.src) && isOctalDigit(s.src[s.pos]) {
				s.pos++
			}
			s.emit(token.Number, start, s.pos)
			return
		}
	}

	for s.pos < len(s.src) && isDigitByte(s.src[s.pos]) {
		s.pos++
	}

	// Fraction only when a digit follows the dot, so "1..2" scans as
	// number, operator, operator, number.
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && isDigitByte(s.src[s.pos+1]) {
		s.pos++
		for s.pos < len(s.src) && isDigitByte(s.src[s.pos]) {
			s.pos++
		}
	}

	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		next := s.pos + 1
		if next < len(s.src) && (s.src[next] == '+' || s.src[next] == '-') {
			next++
		}
		if next < len(s.src) && isDigitByte(s.src[next]) {
			s.pos = next
			for s.pos < len(s.src) && isDigitByte(s.src[s.pos]) {
				s.pos++
			}
		}
	}

	s.emit(token.Number, start, s.pos)
}

func (s *scanner) scanLineComment() {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	s.emit(token.CommentLine, start, s.pos)
}

// scanBlockComment consumes a /* ... */ comment, newlines included.
// An unterminated comment fails the scan with the error positioned at
// the opening offset.
func (s *scanner) scanBlockComment() {
	start := s.pos
	s.pos += 2
	for s.pos+1 < len(s.src) {
		if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
			s.emit(token.CommentBlock, start, s.pos+2)
			return
		}
		s.pos++
	}
	s.fail(start, "unterminated block comment")
}

// scanEscape consumes a backslash escape inside a quote scope: \xHH,
// \u{...}, \uHHHH, or a single escaped rune. A backslash with nothing
// after it fails the scan.
func (s *scanner) scanEscape() {
	start := s.pos
	s.pos++
	if s.pos >= len(s.src) {
		s.fail(start, "dangling escape at end of input")
		return
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	switch r {
	case 'x', 'X':
		s.pos += size
		for n := 0; n < 2 && s.pos < len(s.src) && isHexDigit(s.src[s.pos]); n++ {
			s.pos++
		}
	case 'u', 'U':
		s.pos += size
		if s.pos < len(s.src) && s.src[s.pos] == '{' {
			s.pos++
			for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
				s.pos++
			}
			if s.pos < len(s.src) && s.src[s.pos] == '}' {
				s.pos++
			}
		} else {
			for n := 0; n < 4 && s.pos < len(s.src) && isHexDigit(s.src[s.pos]); n++ {
				s.pos++
			}
		}
	default:
		s.pos += size
	}

	s.emit(token.Escape, start, s.pos)
}

// Multi-rune assigners and operators, grouped by length so maximal
// munch falls out of the match order.
var (
	assigners3 = []string{"<<=", ">>="}
	assigners2 = []string{":=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^="}
	operators2 = []string{"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "->", "=>", "::", "++", "--"}
)

// scanPunct scans operators, assigners and delimiters: three-rune
// assigners first, then two-rune forms, then the single rune. Any
// printable rune with no rule of its own is a single-rune Operator.
func (s *scanner) scanPunct(r rune, size int) {
	rest := s.src[s.pos:]

	for _, op := range assigners3 {
		if strings.HasPrefix(rest, op) {
			s.emit(token.Assigner, s.pos, s.pos+len(op))
			return
		}
	}
	for _, op := range assigners2 {
		if strings.HasPrefix(rest, op) {
			s.emit(token.Assigner, s.pos, s.pos+len(op))
			return
		}
	}
	for _, op := range operators2 {
		if strings.HasPrefix(rest, op) {
			s.emit(token.Operator, s.pos, s.pos+len(op))
			return
		}
	}

	end := s.pos + size
	switch r {
	case '=':
		s.emit(token.Assigner, s.pos, end)
	case '(':
		s.emit(token.ParenOpen, s.pos, end)
	case ')':
		s.emit(token.ParenClose, s.pos, end)
	case '[':
		s.emit(token.BracketOpen, s.pos, end)
	case ']':
		s.emit(token.BracketClose, s.pos, end)
	case '{':
		s.emit(token.BraceOpen, s.pos, end)
	case '}':
		s.emit(token.BraceClose, s.pos, end)
	case '<':
		s.emit(token.AngleOpen, s.pos, end)
	case '>':
		s.emit(token.AngleClose, s.pos, end)
	case '"':
		s.openQuote(token.DoubleQuoteOpen, end)
	case '\'':
		s.openQuote(token.SingleQuoteOpen, end)
	case '`':
		s.openQuote(token.BacktickOpen, end)
	default:
		s.emit(token.Operator, s.pos, end)
	}
}

func (s *scanner) openQuote(open token.Category, end int) {
	s.quote = open
	s.quoteStart = s.pos
	s.emit(open, s.pos, end)
}

func quoteRune(open token.Category) rune {
	switch open {
	case token.DoubleQuoteOpen:
		return '"'
	case token.SingleQuoteOpen:
		return '\''
	default:
		return '`'
	}
}

func closerOf(open token.Category) token.Category {
	switch open {
	case token.DoubleQuoteOpen:
		return token.DoubleQuoteClose
	case token.SingleQuoteOpen:
		return token.SingleQuoteClose
	default:
		return token.BacktickClose
	}
}

func quoteName(open token.Category) string {
	switch open {
	case token.DoubleQuoteOpen:
		return "double-quoted string"
	case token.SingleQuoteOpen:
		return "single-quoted string"
	default:
		return "backtick string"
	}
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func isBinDigit(b byte) bool {
	return b == '0' || b == '1'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}
