package bind

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/ibuildthecloud/rjson/convert"
	"github.com/ibuildthecloud/rjson/value"
)

// BindingError reports a present value that could not be coerced onto
// its member. The first failing member aborts the decode.
type BindingError struct {
	Member string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding member %q: %v", e.Member, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

type Binder struct {
	// Registry resolves member converters. Nil means convert.Default.
	Registry *convert.Registry
}

func (b *Binder) registry() *convert.Registry {
	if b.Registry != nil {
		return b.Registry
	}
	return convert.Default
}

// Decode merges doc into target, a non-nil struct pointer. Members whose
// wire key is absent from doc keep their current value; a present null
// moves an absence-capable member to its absent state; keys with no
// matching member are ignored.
func (b *Binder) Decode(doc value.Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil struct pointer, got %T", target)
	}
	obj, ok := doc.(*value.Object)
	if !ok {
		return fmt.Errorf("can not decode kind %s into %T", doc.Kind(), target)
	}
	return b.decodeStruct(obj, rv.Elem())
}

func (b *Binder) decodeStruct(obj *value.Object, sv reflect.Value) error {
	info, err := describe(sv.Type())
	if err != nil {
		return err
	}
	for _, m := range info.members {
		if m.Transient {
			continue
		}
		v, present := obj.LookupValue(m.Name)
		if !present {
			continue
		}
		if err := b.decodeMember(m, v, sv); err != nil {
			if errors.Is(err, convert.ErrUnknownSymbol) {
				// leniency: unknown symbolic text skips the member
				continue
			}
			return &BindingError{Member: m.Name, Err: err}
		}
	}
	return nil
}

func (b *Binder) decodeMember(m *member, v value.Value, sv reflect.Value) error {
	if m.fieldAccess() {
		return b.decodeInto(v, sv.FieldByIndex(m.index), m.Converter)
	}

	// accessor members work on a copy, written back through the setter
	tmp := reflect.New(m.typ).Elem()
	tmp.Set(m.value(sv))
	if err := b.decodeInto(v, tmp, m.Converter); err != nil {
		return err
	}
	m.set(sv, tmp)
	return nil
}

// decodeInto coerces v onto the addressable destination dst. Resolution
// order: explicit converter, exact registry entry, then structural
// handling by shape.
func (b *Binder) decodeInto(v value.Value, dst reflect.Value, conv *convert.Converter) error {
	if conv == nil {
		if c, ok := b.registry().Lookup(dst.Type()); ok {
			conv = &c
		}
	}
	if conv != nil {
		result, err := conv.Decode(v)
		if err != nil {
			return err
		}
		return assign(dst, result)
	}

	if v.Kind() == value.NullKind {
		if nullable(dst.Type()) {
			dst.SetZero()
		}
		// a member that can not represent absence keeps its value
		return nil
	}

	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return b.decodeInto(v, dst.Elem(), nil)
	case reflect.Struct:
		obj, ok := v.(*value.Object)
		if !ok {
			return fmt.Errorf("can not decode kind %s into %s", v.Kind(), dst.Type())
		}
		return b.decodeStruct(obj, dst)
	case reflect.Map:
		return b.decodeMap(v, dst)
	case reflect.Slice:
		return b.decodeSlice(v, dst)
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return &convert.NoConverterError{Type: dst.Type()}
		}
		dst.Set(reflect.ValueOf(v.NativeValue()))
		return nil
	}

	return assignScalar(dst, v)
}

func (b *Binder) decodeMap(v value.Value, dst reflect.Value) error {
	obj, ok := v.(*value.Object)
	if !ok {
		return fmt.Errorf("can not decode kind %s into %s", v.Kind(), dst.Type())
	}
	t := dst.Type()
	if t.Key().Kind() != reflect.String {
		return &convert.NoConverterError{Type: t}
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMapWithSize(t, len(obj.Entries)))
	}
	for _, e := range obj.Entries {
		ev := reflect.New(t.Elem()).Elem()
		if err := b.decodeInto(e.Value, ev, nil); err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		dst.SetMapIndex(reflect.ValueOf(e.Key).Convert(t.Key()), ev)
	}
	return nil
}

func (b *Binder) decodeSlice(v value.Value, dst reflect.Value) error {
	arr, ok := v.(value.Array)
	if !ok {
		return fmt.Errorf("can not decode kind %s into %s", v.Kind(), dst.Type())
	}
	t := dst.Type()
	result := reflect.MakeSlice(t, len(arr), len(arr))
	for i, ev := range arr {
		if err := b.decodeInto(ev, result.Index(i), nil); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	dst.Set(result)
	return nil
}

// assign places a converter result onto dst, converting across
// compatible named types.
func assign(dst reflect.Value, result any) error {
	if result == nil {
		dst.SetZero()
		return nil
	}
	rv := reflect.ValueOf(result)
	if rv.Type() != dst.Type() {
		if !rv.Type().ConvertibleTo(dst.Type()) {
			return fmt.Errorf("converter produced %s, member is %s", rv.Type(), dst.Type())
		}
		rv = rv.Convert(dst.Type())
	}
	dst.Set(rv)
	return nil
}

func assignScalar(dst reflect.Value, v value.Value) error {
	switch dst.Kind() {
	case reflect.String:
		s, err := value.ToString(v)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Bool:
		t, err := value.ToBool(v)
		if err != nil {
			return err
		}
		dst.SetBool(t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := value.ToInt(v)
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return fmt.Errorf("value %d overflows %s", i, dst.Type())
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := value.ToInt(v)
		if err != nil {
			return err
		}
		if i < 0 || dst.OverflowUint(uint64(i)) {
			return fmt.Errorf("value %d overflows %s", i, dst.Type())
		}
		dst.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, err := value.ToFloat(v)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return &convert.NoConverterError{Type: dst.Type()}
	}
	return nil
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

type EncodeOptions struct {
	// OmitDefaults drops members whose value is the declared type's
	// default, producing a projection of the object rather than a full
	// dump.
	OmitDefaults bool
}

// Encode reads obj's non-transient members into a value tree, preserving
// declaration order. Encode never mutates obj.
func (b *Binder) Encode(obj any, opts ...EncodeOptions) (value.Value, error) {
	var opt EncodeOptions
	for _, o := range opts {
		if o.OmitDefaults {
			opt.OmitDefaults = true
		}
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return value.NewNull(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("can not encode %T, not a bound type", obj)
	}
	return b.encodeStruct(rv, opt)
}

func (b *Binder) encodeStruct(sv reflect.Value, opt EncodeOptions) (value.Value, error) {
	info, err := describe(sv.Type())
	if err != nil {
		return nil, err
	}

	// accessor getters need an addressable receiver
	if !sv.CanAddr() {
		tmp := reflect.New(sv.Type()).Elem()
		tmp.Set(sv)
		sv = tmp
	}

	obj := &value.Object{}
	for _, m := range info.members {
		if m.Transient {
			continue
		}
		mv := m.value(sv)
		if opt.OmitDefaults && mv.IsZero() {
			continue
		}
		v, err := b.encodeValue(mv, m.Converter, opt)
		if err != nil {
			return nil, &BindingError{Member: m.Name, Err: err}
		}
		obj.Set(m.Name, v)
	}
	return obj, nil
}

func (b *Binder) encodeValue(rv reflect.Value, conv *convert.Converter, opt EncodeOptions) (value.Value, error) {
	if conv == nil {
		if c, ok := b.registry().Lookup(rv.Type()); ok {
			conv = &c
		}
	}
	if conv != nil {
		return conv.Encode(rv.Interface())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.NewNull(), nil
		}
		return b.encodeValue(rv.Elem(), nil, opt)
	case reflect.Struct:
		return b.encodeStruct(rv, opt)
	case reflect.Map:
		if rv.IsNil() {
			return value.NewNull(), nil
		}
		return b.encodeMap(rv, opt)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.NewNull(), nil
		}
		arr := make(value.Array, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := b.encodeValue(rv.Index(i), nil, opt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Bool:
		return value.Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value.NewValue(rv.Interface()), nil
	}

	return nil, &convert.NoConverterError{Type: rv.Type()}
}

func (b *Binder) encodeMap(rv reflect.Value, opt EncodeOptions) (value.Value, error) {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return nil, &convert.NoConverterError{Type: t}
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	obj := &value.Object{}
	for _, key := range keys {
		ev, err := b.encodeValue(rv.MapIndex(reflect.ValueOf(key).Convert(t.Key())), nil, opt)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(key, ev)
	}
	return obj, nil
}
