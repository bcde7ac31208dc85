package convert

import (
	"errors"
	"fmt"

	"github.com/ibuildthecloud/rjson/value"
)

// ErrUnknownSymbol marks text that matched no symbol of an enum
// converter. The binder skips the member instead of failing the
// document, so a newer writer can add symbols without breaking older
// readers.
var ErrUnknownSymbol = errors.New("unknown symbolic value")

// Enum builds a converter over a closed set of symbolic text values.
func Enum[T comparable](symbols map[string]T) Converter {
	names := make(map[T]string, len(symbols))
	for name, v := range symbols {
		names[v] = name
	}
	return Converter{
		Encode: func(v any) (value.Value, error) {
			t, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("expected %T, got %T", *new(T), v)
			}
			name, ok := names[t]
			if !ok {
				return nil, fmt.Errorf("value %v has no symbolic name", t)
			}
			return value.String(name), nil
		},
		Decode: func(v value.Value) (any, error) {
			if v.Kind() == value.NullKind {
				return *new(T), nil
			}
			s, err := value.ToString(v)
			if err != nil {
				return nil, err
			}
			t, ok := symbols[s]
			if !ok {
				return nil, fmt.Errorf("%q: %w", s, ErrUnknownSymbol)
			}
			return t, nil
		},
	}
}
