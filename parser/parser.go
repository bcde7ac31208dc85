// Package parser turns relaxed JSON text into a generic value tree. The
// grammar accepts what standard JSON accepts plus line and block
// comments, single-quoted strings, unquoted object keys, trailing
// commas, signed and bare-decimal-point numbers, and hex integers.
package parser

import (
	"fmt"
	"io"

	"github.com/ibuildthecloud/rjson/value"
)

// Parse parses a complete document: an object, a list, or a bare scalar.
// Input the parser cannot accept is reported as a *SyntaxError.
func Parse(src []byte) (value.Value, error) {
	return parse("", src)
}

// ParseFile is Parse with a source name attached to error positions.
func ParseFile(filename string, input io.Reader) (value.Value, error) {
	src, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return parse(filename, src)
}

func parse(filename string, src []byte) (value.Value, error) {
	p := &parser{
		lex: &lexer{filename: filename, src: src},
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok == tokenEOF {
		return nil, p.lex.errf(p.off, "empty document")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok != tokenEOF {
		return nil, p.lex.errf(p.off, "unexpected %s after document", p.tok)
	}
	return v, nil
}

type parser struct {
	lex *lexer

	// one token look-ahead
	tok token
	lit string
	off int
}

func (p *parser) next() error {
	tok, lit, off, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok, p.lit, p.off = tok, lit, off
	return nil
}

func (p *parser) parseValue() (value.Value, error) {
	switch p.tok {
	case tokenLBrace:
		return p.parseObject()
	case tokenLBrack:
		return p.parseArray()
	case tokenString:
		s := value.String(p.lit)
		return s, p.next()
	case tokenNumber:
		n := value.Number(p.lit)
		return n, p.next()
	case tokenIdent:
		switch p.lit {
		case "true":
			return value.True, p.next()
		case "false":
			return value.False, p.next()
		case "null":
			return value.NewNull(), p.next()
		}
		return nil, p.lex.errf(p.off, "unexpected identifier %q, expected a value", p.lit)
	}
	return nil, p.lex.errf(p.off, "unexpected %s, expected a value", p.tok)
}

func (p *parser) parseObject() (*value.Object, error) {
	obj := &value.Object{}
	if err := p.next(); err != nil {
		return nil, err
	}
	for {
		if p.tok == tokenRBrace {
			return obj, p.next()
		}

		var key string
		switch p.tok {
		case tokenString, tokenIdent:
			key = p.lit
		default:
			return nil, p.lex.errf(p.off, "unexpected %s, expected an object key", p.tok)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok != tokenColon {
			return nil, p.lex.errf(p.off, "unexpected %s, expected ':' after object key %q", p.tok, key)
		}
		if err := p.next(); err != nil {
			return nil, err
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// repeated keys fold, last occurrence wins
		obj.Set(key, v)

		switch p.tok {
		case tokenComma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case tokenRBrace:
		default:
			return nil, p.lex.errf(p.off, "unexpected %s, expected ',' or '}'", p.tok)
		}
	}
}

func (p *parser) parseArray() (value.Array, error) {
	arr := value.Array{}
	if err := p.next(); err != nil {
		return nil, err
	}
	for {
		if p.tok == tokenRBrack {
			return arr, p.next()
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		switch p.tok {
		case tokenComma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case tokenRBrack:
		default:
			return nil, p.lex.errf(p.off, "unexpected %s, expected ',' or ']'", p.tok)
		}
	}
}
