package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrSyntax is the kind of every error returned by Parse.
var ErrSyntax = errors.New("syntax error")

// Error is a parse failure at a byte offset of the source.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Unwrap returns ErrSyntax.
func (e *Error) Unwrap() error { return ErrSyntax }

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokDot
	tokComma
	tokLParen
	tokRParen
	tokPlus
	tokMinus
	tokStar
	tokSlash
)

var tokenNames = [...]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokNumber: "number",
	tokDot:    "'.'",
	tokComma:  "','",
	tokLParen: "'('",
	tokRParen: "')'",
	tokPlus:   "'+'",
	tokMinus:  "'-'",
	tokStar:   "'*'",
	tokSlash:  "'/'",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	pos  int
	text string
}

func (t token) describe() string {
	switch t.kind {
	case tokIdent, tokNumber:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}

var punct = map[rune]tokenKind{
	'.': tokDot,
	',': tokComma,
	'(': tokLParen,
	')': tokRParen,
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
}

// lex splits src into tokens. Identifiers are normalized to NFC so that
// precomposed and decomposed spellings of the same name compare equal.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, &Error{Pos: i, Msg: "invalid UTF-8 encoding"}

		case unicode.IsSpace(r):
			i += size

		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			end := scanNumber(src, i)
			text := src[i:end]
			if _, err := strconv.ParseFloat(text, 64); errors.Is(err, strconv.ErrRange) {
				return nil, &Error{Pos: i, Msg: fmt.Sprintf("number %s is out of range", text)}
			}
			toks = append(toks, token{kind: tokNumber, pos: i, text: text})
			i = end

		case isIdentStart(r):
			end := i + size
			for end < len(src) {
				r, size := utf8.DecodeRuneInString(src[end:])
				if !isIdentPart(r) {
					break
				}
				end += size
			}
			toks = append(toks, token{kind: tokIdent, pos: i, text: norm.NFC.String(src[i:end])})
			i = end

		default:
			kind, ok := punct[r]
			if !ok {
				return nil, &Error{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			toks = append(toks, token{kind: kind, pos: i, text: string(r)})
			i += size
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

// scanNumber returns the end of the literal starting at i:
// digits [ "." digits ] [ ("e"|"E") ["+"|"-"] digits ], or "." digits.
// A dot not followed by a digit ends the literal so that 2.r reads as a
// member access.
func scanNumber(src string, i int) int {
	i = skipDigits(src, i)
	if i+1 < len(src) && src[i] == '.' && isDigit(rune(src[i+1])) {
		i = skipDigits(src, i+1)
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			i = skipDigits(src, j)
		}
	}
	return i
}

func skipDigits(src string, i int) int {
	for i < len(src) && isDigit(rune(src[i])) {
		i++
	}
	return i
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}
