// Package rjson reads and writes a relaxed JSON dialect and binds
// documents onto typed Go objects. Decoding merges: only the members
// present in the document are written, everything else on the target
// keeps its value.
package rjson

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ibuildthecloud/rjson/bind"
	"github.com/ibuildthecloud/rjson/convert"
	"github.com/ibuildthecloud/rjson/parser"
	"github.com/ibuildthecloud/rjson/value"
)

type Option struct {
	// SourceName appears in syntax error positions.
	SourceName string

	// Registry overrides convert.Default for member conversion.
	Registry *convert.Registry
}

func (o Option) Complete() Option {
	if o.SourceName == "" {
		o.SourceName = "<inline>"
	}
	return o
}

type Options []Option

func (o Options) Merge() (result Option) {
	for _, opt := range o {
		if opt.SourceName != "" {
			result.SourceName = opt.SourceName
		}
		if opt.Registry != nil {
			result.Registry = opt.Registry
		}
	}
	return
}

type Decoder struct {
	opts  Option
	input io.Reader
}

func NewDecoder(input io.Reader, opts ...Option) *Decoder {
	return &Decoder{
		opts:  Options(opts).Merge().Complete(),
		input: input,
	}
}

// Decode parses the input and binds it to out. A *value.Value receives
// the raw tree, a *map[string]any the native projection; any struct
// pointer is merge-decoded in place.
func (d *Decoder) Decode(out any) error {
	parsed, err := parser.ParseFile(d.opts.SourceName, d.input)
	if err != nil {
		return err
	}

	switch n := out.(type) {
	case *value.Value:
		*n = parsed
		return nil
	case *map[string]any:
		native, ok := parsed.NativeValue().(map[string]any)
		if !ok {
			return fmt.Errorf("source <%s> is not an object document", d.opts.SourceName)
		}
		*n = native
		return nil
	case *[]any:
		native, ok := parsed.NativeValue().([]any)
		if !ok {
			return fmt.Errorf("source <%s> is not a list document", d.opts.SourceName)
		}
		*n = native
		return nil
	}

	binder := bind.Binder{Registry: d.opts.Registry}
	return binder.Decode(parsed, out)
}

// Unmarshal merge-decodes data into v. Members of v whose keys are
// absent from data are untouched.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
