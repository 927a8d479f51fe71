package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// #region tokens
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokLParen
	tokRParen
	tokComma
)

var tokenNames = map[tokenKind]string{
	tokEOF:     "end of expression",
	tokNumber:  "number",
	tokIdent:   "identifier",
	tokPlus:    "'+'",
	tokMinus:   "'-'",
	tokStar:    "'*'",
	tokSlash:   "'/'",
	tokPercent: "'%'",
	tokLParen:  "'('",
	tokRParen:  "')'",
	tokComma:   "','",
}

func (k tokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

var punct = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'%': tokPercent,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

// #endregion tokens

// #region lexer
// lex splits src into tokens. The returned slice always ends with tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			tok, next, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isIdentStart(c):
			next := lexIdent(src, i)
			toks = append(toks, token{kind: tokIdent, text: src[i:next], pos: i})
			i = next
		default:
			k, ok := punct[c]
			if !ok {
				return nil, syntaxErr(i, "unexpected character %q", rune(c))
			}
			toks = append(toks, token{kind: k, text: src[i : i+1], pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

// lexNumber scans digits with at most one decimal point: "12", "1.5", ".5", "5.".
func lexNumber(src string, start int) (token, int, error) {
	i := start
	seenDot := false
	digits := 0
	for i < len(src) {
		c := src[i]
		if isDigit(c) {
			digits++
			i++
			continue
		}
		if c == '.' {
			if seenDot {
				return token{}, 0, syntaxErr(i, "malformed number %q", src[start:i+1])
			}
			seenDot = true
			i++
			continue
		}
		break
	}
	if digits == 0 {
		return token{}, 0, syntaxErr(start, "decimal point without digits")
	}
	text := src[start:i]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token{}, 0, syntaxErr(start, "malformed number %q", text)
	}
	return token{kind: tokNumber, text: text, num: v, pos: start}, i, nil
}

// lexIdent scans an identifier. A dot joins two identifier segments so that
// qualified names like Math.sin arrive as a single token.
func lexIdent(src string, start int) int {
	i := start
	for i < len(src) {
		c := src[i]
		if isIdentStart(c) || isDigit(c) {
			i++
			continue
		}
		if c == '.' && i+1 < len(src) && isIdentStart(src[i+1]) {
			i++
			continue
		}
		break
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// #endregion lexer
