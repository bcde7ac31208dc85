// Package bind moves data between value trees and typed Go objects. A
// bound type exposes its participating members through Member
// descriptors, resolved once per type from struct tags or an explicit
// Define table and cached for the life of the process. Decoding merges:
// only members whose wire key is present in the document are touched.
package bind

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ibuildthecloud/rjson/convert"
)

// TagName is the struct tag consulted when no explicit Define table
// exists for a type: `rjson:"wireName"`, or `rjson:"-"` to exclude the
// field.
const TagName = "rjson"

// Member describes one participating member of a bound type. Exactly one
// access mode applies: Field names a struct field, or Getter/Setter name
// an accessor method pair on the pointer type.
type Member struct {
	// Name is the wire key.
	Name string

	// Field is the Go struct field backing the member.
	Field string

	// Getter and Setter are method names used when Field is empty. The
	// getter takes no arguments and returns the member value; the setter
	// takes the member value.
	Getter string
	Setter string

	// Transient members never encode or decode.
	Transient bool

	// Converter overrides registry resolution for this member.
	Converter *convert.Converter
}

// member is a resolved descriptor with access machinery attached.
type member struct {
	Member
	typ       reflect.Type
	index     []int
	getterIdx int
	setterIdx int
}

func (m *member) fieldAccess() bool {
	return m.index != nil
}

// value reads the member from an addressable struct value.
func (m *member) value(sv reflect.Value) reflect.Value {
	if m.fieldAccess() {
		return sv.FieldByIndex(m.index)
	}
	return sv.Addr().Method(m.getterIdx).Call(nil)[0]
}

func (m *member) set(sv reflect.Value, v reflect.Value) {
	if m.fieldAccess() {
		sv.FieldByIndex(m.index).Set(v)
		return
	}
	sv.Addr().Method(m.setterIdx).Call([]reflect.Value{v})
}

type typeInfo struct {
	members []*member
}

func (t *typeInfo) byName(name string) *member {
	for _, m := range t.members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

var (
	definitions sync.Map // reflect.Type -> []Member
	infoCache   sync.Map // reflect.Type -> *infoEntry
)

type infoEntry struct {
	info *typeInfo
	err  error
}

// Define registers an explicit member table for the type of prototype,
// replacing tag-based resolution. Call it before the first decode or
// encode of that type; a table defined after the type's descriptors were
// cached is not picked up.
func Define(prototype any, members ...Member) {
	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	definitions.Store(t, members)
}

// describe resolves (or fetches the cached) descriptor set for t.
// Concurrent first uses converge on a single cached entry.
func describe(t reflect.Type) (*typeInfo, error) {
	if cached, ok := infoCache.Load(t); ok {
		e := cached.(*infoEntry)
		return e.info, e.err
	}
	info, err := makeTypeInfo(t)
	cached, _ := infoCache.LoadOrStore(t, &infoEntry{info: info, err: err})
	e := cached.(*infoEntry)
	return e.info, e.err
}

func makeTypeInfo(t reflect.Type) (*typeInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a bound type", t)
	}

	var members []*member
	if defined, ok := definitions.Load(t); ok {
		for _, d := range defined.([]Member) {
			m, err := resolveMember(t, d)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
	} else {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			transient := false
			if tag, ok := f.Tag.Lookup(TagName); ok {
				if tag == "-" {
					transient = true
				} else if tag != "" {
					name = tag
				}
			}
			members = append(members, &member{
				Member: Member{
					Name:      name,
					Field:     f.Name,
					Transient: transient,
				},
				typ:   f.Type,
				index: f.Index,
			})
		}
	}

	seen := map[string]bool{}
	for _, m := range members {
		if seen[m.Name] {
			return nil, fmt.Errorf("type %s declares member name %q more than once", t, m.Name)
		}
		seen[m.Name] = true
	}

	return &typeInfo{members: members}, nil
}

func resolveMember(t reflect.Type, d Member) (*member, error) {
	m := &member{
		Member:    d,
		getterIdx: -1,
		setterIdx: -1,
	}

	if d.Field != "" {
		f, ok := t.FieldByName(d.Field)
		if !ok {
			return nil, fmt.Errorf("type %s has no field %q for member %q", t, d.Field, d.Name)
		}
		m.typ = f.Type
		m.index = f.Index
		return m, nil
	}

	pt := reflect.PointerTo(t)
	getter, ok := pt.MethodByName(d.Getter)
	if !ok || getter.Type.NumIn() != 1 || getter.Type.NumOut() != 1 {
		return nil, fmt.Errorf("type %s has no getter %q for member %q", t, d.Getter, d.Name)
	}
	setter, ok := pt.MethodByName(d.Setter)
	if !ok || setter.Type.NumIn() != 2 || setter.Type.In(1) != getter.Type.Out(0) {
		return nil, fmt.Errorf("type %s has no setter %q matching getter %q for member %q", t, d.Setter, d.Getter, d.Name)
	}
	m.typ = getter.Type.Out(0)
	m.getterIdx = getter.Index
	m.setterIdx = setter.Index
	return m, nil
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
