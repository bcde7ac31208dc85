package rjson

import (
	"reflect"

	"github.com/ibuildthecloud/rjson/bind"
	"github.com/ibuildthecloud/rjson/parser"
	"github.com/ibuildthecloud/rjson/value"
	"github.com/ibuildthecloud/rjson/writer"
)

// Marshal renders v as strict JSON: double-quoted keys and strings, no
// comments or trailing commas, every non-transient member included.
func Marshal(v any, opts ...Option) ([]byte, error) {
	return marshal(v, writer.Strict, bind.EncodeOptions{}, opts)
}

// MarshalRelaxed renders v in the relaxed dialect. Driven from a typed
// object it is a projection: members still holding their type's default
// are left out.
func MarshalRelaxed(v any, opts ...Option) ([]byte, error) {
	return marshal(v, writer.Relaxed, bind.EncodeOptions{OmitDefaults: true}, opts)
}

func marshal(v any, mode writer.Mode, encOpts bind.EncodeOptions, opts []Option) ([]byte, error) {
	opt := Options(opts).Merge().Complete()

	tree, err := toTree(v, opt, encOpts)
	if err != nil {
		return nil, err
	}
	return writer.Write(tree, mode), nil
}

// toTree picks the bound encoder only for struct shapes. Scalars,
// slices, and maps already have a direct tree form.
func toTree(v any, opt Option, encOpts bind.EncodeOptions) (value.Value, error) {
	switch n := v.(type) {
	case value.Value:
		return n, nil
	case map[string]any:
		return value.NewValue(n), nil
	case []any:
		return value.NewValue(n), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return value.NewNull(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		binder := bind.Binder{Registry: opt.Registry}
		return binder.Encode(v, encOpts)
	}
	return value.NewValue(v), nil
}

// Format reparses data and writes it back in relaxed form, normalizing
// layout while keeping entry order.
func Format(data []byte) ([]byte, error) {
	tree, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return writer.Write(tree, writer.Relaxed), nil
}
