package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type token int

const (
	tokenEOF token = iota
	tokenString
	tokenIdent
	tokenNumber
	tokenLBrace
	tokenRBrace
	tokenLBrack
	tokenRBrack
	tokenColon
	tokenComma
)

func (t token) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return "string"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBrack:
		return "'['"
	case tokenRBrack:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	}
	return "invalid token"
}

type lexer struct {
	filename string
	src      []byte
	off      int
}

func (l *lexer) errf(off int, format string, args ...any) *SyntaxError {
	line, col := 1, 1
	for i := 0; i < off && i < len(l.src); i++ {
		if l.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{
		Filename: l.filename,
		Offset:   off,
		Line:     line,
		Column:   col,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// next returns the next token, its decoded literal, and the offset where
// it began.
func (l *lexer) next() (token, string, int, error) {
	if err := l.skipSpace(); err != nil {
		return tokenEOF, "", l.off, err
	}
	start := l.off
	if l.off >= len(l.src) {
		return tokenEOF, "", start, nil
	}

	c := l.src[l.off]
	switch c {
	case '{':
		l.off++
		return tokenLBrace, "", start, nil
	case '}':
		l.off++
		return tokenRBrace, "", start, nil
	case '[':
		l.off++
		return tokenLBrack, "", start, nil
	case ']':
		l.off++
		return tokenRBrack, "", start, nil
	case ':':
		l.off++
		return tokenColon, "", start, nil
	case ',':
		l.off++
		return tokenComma, "", start, nil
	case '"', '\'':
		lit, err := l.scanString(c)
		return tokenString, lit, start, err
	}

	if c == '+' || c == '-' || c == '.' || isDigit(c) {
		lit, err := l.scanNumber()
		return tokenNumber, lit, start, err
	}
	if isIdentStart(c) {
		return tokenIdent, l.scanIdent(), start, nil
	}

	return tokenEOF, "", start, l.errf(start, "unexpected character %q", rune(c))
}

// skipSpace consumes whitespace, // line comments, and /* block */
// comments.
func (l *lexer) skipSpace() error {
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.off++
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '/':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.off++
			}
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '*':
			start := l.off
			l.off += 2
			for {
				if l.off+1 >= len(l.src) {
					return l.errf(start, "unterminated block comment")
				}
				if l.src[l.off] == '*' && l.src[l.off+1] == '/' {
					l.off += 2
					break
				}
				l.off++
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) scanString(quote byte) (string, error) {
	start := l.off
	l.off++
	var buf strings.Builder
	for {
		if l.off >= len(l.src) {
			return "", l.errf(start, "unterminated string")
		}
		c := l.src[l.off]
		if c == quote {
			l.off++
			return buf.String(), nil
		}
		if c == '\n' {
			return "", l.errf(start, "unterminated string")
		}
		if c != '\\' {
			buf.WriteByte(c)
			l.off++
			continue
		}

		l.off++
		if l.off >= len(l.src) {
			return "", l.errf(start, "unterminated string")
		}
		switch e := l.src[l.off]; e {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case '"', '\'', '\\':
			buf.WriteByte(e)
		case '\n':
			// line continuation, the break is dropped
		case '\r':
			if l.off+1 < len(l.src) && l.src[l.off+1] == '\n' {
				l.off++
			}
		default:
			return "", l.errf(l.off-1, "invalid escape sequence \\%c", e)
		}
		l.off++
	}
}

func (l *lexer) scanIdent() string {
	start := l.off
	for l.off < len(l.src) && isIdentPart(l.src[l.off]) {
		l.off++
	}
	return string(l.src[start:l.off])
}

// scanNumber accepts an optional sign, a hex literal, or digits with an
// optional fractional part (either side of the point may be empty) and an
// optional exponent. Hex literals are reduced to their decimal digits so
// that downstream code only ever sees decimal literals.
func (l *lexer) scanNumber() (string, error) {
	start := l.off
	neg := false
	if c := l.src[l.off]; c == '+' || c == '-' {
		neg = c == '-'
		l.off++
	}

	if l.off+1 < len(l.src) && l.src[l.off] == '0' && (l.src[l.off+1] == 'x' || l.src[l.off+1] == 'X') {
		l.off += 2
		hexStart := l.off
		for l.off < len(l.src) && isHexDigit(l.src[l.off]) {
			l.off++
		}
		if l.off == hexStart {
			return "", l.errf(start, "malformed hex literal")
		}
		i, err := strconv.ParseInt(string(l.src[hexStart:l.off]), 16, 64)
		if err != nil {
			return "", l.errf(start, "malformed hex literal %q: %v", string(l.src[start:l.off]), err)
		}
		if neg {
			i = -i
		}
		return strconv.FormatInt(i, 10), nil
	}

	intDigits := l.countDigits()
	fracDigits := 0
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		fracDigits = l.countDigits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return "", l.errf(start, "malformed number")
	}
	if l.off < len(l.src) && (l.src[l.off] == 'e' || l.src[l.off] == 'E') {
		l.off++
		if l.off < len(l.src) && (l.src[l.off] == '+' || l.src[l.off] == '-') {
			l.off++
		}
		if l.countDigits() == 0 {
			return "", l.errf(start, "malformed exponent in number")
		}
	}
	return string(l.src[start:l.off]), nil
}

func (l *lexer) countDigits() (n int) {
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
		n++
	}
	return
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
