// Package writer renders a value tree back to text. Strict mode emits
// standard JSON any reader can consume. Relaxed mode emits the same
// grammar the parser accepts: bare identifier keys and single-quoted
// strings.
package writer

import (
	"strconv"
	"strings"

	"github.com/ibuildthecloud/rjson/value"
)

type Mode int

const (
	Strict Mode = iota
	Relaxed
)

const indent = "  "

// Write renders v. Output is deterministic per mode: entries appear in
// the object's insertion order, collections are printed one element per
// line with two-space indentation.
func Write(v value.Value, mode Mode) []byte {
	w := &writer{mode: mode}
	w.write(v, 0)
	w.buf.WriteByte('\n')
	return []byte(w.buf.String())
}

type writer struct {
	mode Mode
	buf  strings.Builder
}

func (w *writer) write(v value.Value, depth int) {
	switch n := v.(type) {
	case *value.Null:
		w.buf.WriteString("null")
	case value.Boolean:
		w.buf.WriteString(strconv.FormatBool((bool)(n)))
	case value.Number:
		w.writeNumber(n)
	case value.String:
		w.writeString((string)(n))
	case value.Array:
		w.writeArray(n, depth)
	case *value.Object:
		w.writeObject(n, depth)
	}
}

// writeNumber canonicalizes relaxed spellings down to standard JSON in
// strict mode. The rewrite is textual so no digits are lost: a leading
// '+' is dropped and a bare leading or trailing decimal point gains a
// zero. The decimal-vs-integral class of the literal survives the
// rewrite.
func (w *writer) writeNumber(n value.Number) {
	lit := (string)(n)
	if w.mode == Relaxed {
		w.buf.WriteString(lit)
		return
	}
	lit = strings.TrimPrefix(lit, "+")
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	} else if strings.HasPrefix(lit, "-.") {
		lit = "-0" + lit[1:]
	}
	// an empty fractional part needs a zero whether the literal ends at
	// the point or continues with an exponent: 5. and 5.e3
	if i := strings.IndexByte(lit, '.'); i >= 0 {
		if i+1 == len(lit) || lit[i+1] == 'e' || lit[i+1] == 'E' {
			lit = lit[:i+1] + "0" + lit[i+1:]
		}
	}
	w.buf.WriteString(lit)
}

func (w *writer) writeString(s string) {
	if w.mode == Strict {
		w.writeStrictString(s)
		return
	}
	w.buf.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			w.buf.WriteString(`\'`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\t':
			w.buf.WriteString(`\t`)
		default:
			w.buf.WriteRune(r)
		}
	}
	w.buf.WriteByte('\'')
}

const hexDigits = "0123456789abcdef"

// writeStrictString escapes per RFC 8259. strconv.Quote is close but
// emits Go escapes like \a and \v that JSON readers reject.
func (w *writer) writeStrictString(s string) {
	w.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.buf.WriteString(`\"`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\b':
			w.buf.WriteString(`\b`)
		case '\f':
			w.buf.WriteString(`\f`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\r':
			w.buf.WriteString(`\r`)
		case '\t':
			w.buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				w.buf.WriteString(`\u00`)
				w.buf.WriteByte(hexDigits[r>>4])
				w.buf.WriteByte(hexDigits[r&0xf])
			} else {
				w.buf.WriteRune(r)
			}
		}
	}
	w.buf.WriteByte('"')
}

func (w *writer) writeKey(key string) {
	if w.mode == Relaxed && isIdent(key) {
		w.buf.WriteString(key)
		return
	}
	w.writeString(key)
}

func (w *writer) writeArray(a value.Array, depth int) {
	if len(a) == 0 {
		w.buf.WriteString("[]")
		return
	}
	w.buf.WriteString("[\n")
	for i, v := range a {
		w.buf.WriteString(strings.Repeat(indent, depth+1))
		w.write(v, depth+1)
		if i != len(a)-1 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('\n')
	}
	w.buf.WriteString(strings.Repeat(indent, depth))
	w.buf.WriteByte(']')
}

func (w *writer) writeObject(o *value.Object, depth int) {
	if len(o.Entries) == 0 {
		w.buf.WriteString("{}")
		return
	}
	w.buf.WriteString("{\n")
	for i, e := range o.Entries {
		w.buf.WriteString(strings.Repeat(indent, depth+1))
		w.writeKey(e.Key)
		w.buf.WriteString(": ")
		w.write(e.Value, depth+1)
		if i != len(o.Entries)-1 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('\n')
	}
	w.buf.WriteString(strings.Repeat(indent, depth))
	w.buf.WriteByte('}')
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
