package convert

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ibuildthecloud/rjson/value"
	"golang.org/x/text/language"
)

// Layouts tried on decode, in order. A timestamp without an offset is
// read as UTC rather than rejected.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func registerBuiltin(r *Registry) {
	r.Register(reflect.TypeOf([]byte(nil)), Bytes)
	r.Register(reflect.TypeOf([][]byte(nil)), ByteSlices)
	r.Register(reflect.TypeOf(time.Time{}), Time)
	r.Register(reflect.TypeOf(language.Tag{}), Language)
	r.Register(reflect.TypeOf(uuid.UUID{}), UUIDString)
	r.Register(reflect.TypeOf((*url.URL)(nil)), URL)
}

var Bytes = Converter{
	Encode: func(v any) (value.Value, error) {
		b, err := toBytes(v)
		if err != nil || b == nil {
			return value.NewNull(), err
		}
		return value.String(FormatBytes(b)), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return []byte(nil), nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		return ParseBytes(s)
	},
}

// ByteSlices joins the per-element base64 forms with commas. The base64
// alphabet never produces a comma, so elements that came from Bytes
// always split back apart; text from other sources with embedded commas
// is split blindly, there is no escaping.
var ByteSlices = Converter{
	Encode: func(v any) (value.Value, error) {
		bs, ok := v.([][]byte)
		if !ok && v != nil {
			return nil, fmt.Errorf("expected [][]byte, got %T", v)
		}
		if bs == nil {
			return value.NewNull(), nil
		}
		parts := make([]string, 0, len(bs))
		for _, b := range bs {
			parts = append(parts, FormatBytes(b))
		}
		return value.String(strings.Join(parts, ",")), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return [][]byte(nil), nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return [][]byte(nil), nil
		}
		var result [][]byte
		for _, part := range strings.Split(s, ",") {
			b, err := ParseBytes(part)
			if err != nil {
				return nil, err
			}
			result = append(result, b)
		}
		return result, nil
	},
}

var Time = Converter{
	Encode: func(v any) (value.Value, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time, got %T", v)
		}
		return value.String(t.Format(time.RFC3339Nano)), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return time.Time{}, nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("invalid timestamp %q", s)
	},
}

// Language keeps only the primary language subtag in both directions:
// "en-US" encodes as "en", and decoding "pt_BR" yields the tag for "pt".
// The round trip is lossy on purpose.
var Language = Converter{
	Encode: func(v any) (value.Value, error) {
		t, ok := v.(language.Tag)
		if !ok {
			return nil, fmt.Errorf("expected language.Tag, got %T", v)
		}
		if t == (language.Tag{}) {
			return value.NewNull(), nil
		}
		base, _ := t.Base()
		return value.String(base.String()), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return language.Tag{}, nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		first := strings.FieldsFunc(s, func(r rune) bool {
			return r == '-' || r == '_'
		})
		if len(first) == 0 {
			return language.Tag{}, nil
		}
		return language.Parse(first[0])
	},
}

// UUIDString is the canonical textual form. UUIDBase64 is the compact
// wire form, the 16 raw bytes as unpadded URL-safe base64; it is a
// distinct converter identity and is only used as an explicit member
// override.
var UUIDString = Converter{
	Encode: func(v any) (value.Value, error) {
		u, ok := v.(uuid.UUID)
		if !ok {
			return nil, fmt.Errorf("expected uuid.UUID, got %T", v)
		}
		return value.String(u.String()), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return uuid.Nil, nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		return uuid.Parse(s)
	},
}

var UUIDBase64 = Converter{
	Encode: func(v any) (value.Value, error) {
		u, ok := v.(uuid.UUID)
		if !ok {
			return nil, fmt.Errorf("expected uuid.UUID, got %T", v)
		}
		return value.String(FormatBytes(u[:])), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return uuid.Nil, nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		b, err := ParseBytes(s)
		if err != nil {
			return nil, err
		}
		return uuid.FromBytes(b)
	},
}

// URL treats blank text as absence, never as an error.
var URL = Converter{
	Encode: func(v any) (value.Value, error) {
		u, ok := v.(*url.URL)
		if !ok && v != nil {
			return nil, fmt.Errorf("expected *url.URL, got %T", v)
		}
		if u == nil {
			return value.NewNull(), nil
		}
		return value.String(u.String()), nil
	},
	Decode: func(v value.Value) (any, error) {
		if v.Kind() == value.NullKind {
			return (*url.URL)(nil), nil
		}
		s, err := value.ToString(v)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return (*url.URL)(nil), nil
		}
		return url.Parse(s)
	},
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	}
	return nil, fmt.Errorf("expected []byte, got %T", v)
}
