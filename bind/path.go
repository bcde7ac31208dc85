package bind

import (
	"reflect"
	"strings"

	"github.com/ibuildthecloud/rjson/convert"
	"github.com/ibuildthecloud/rjson/value"
)

const (
	pathSeparator = "/"
	appendSuffix  = "[+]"
)

// SetPath assigns a single value into the object graph rooted at root (a
// non-nil struct pointer) at the slash-delimited path. A plain segment
// resolves a member by wire name; on a list member it targets the first
// element, creating a single-element list when the member is empty. The
// "name[+]" form appends a new element and descends into it. Missing
// intermediate objects are instantiated on the way down. On the final
// segment the raw value is coerced to the member's declared type; when
// no member matches, a SetXxx mutator derived from the segment name is
// tried instead.
//
// SetPath reports whether anything was set. Paths that do not resolve,
// and values that do not coerce, return false rather than failing.
func (b *Binder) SetPath(root any, path string, rawValue any) bool {
	rv := reflect.ValueOf(root)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return false
	}

	cur := rv.Elem()
	segments := strings.Split(path, pathSeparator)
	for i, seg := range segments {
		if seg == "" {
			return false
		}
		last := i == len(segments)-1
		appendElem := strings.HasSuffix(seg, appendSuffix)
		name := strings.TrimSuffix(seg, appendSuffix)

		info, err := describe(cur.Type())
		if err != nil {
			return false
		}
		m := info.byName(name)
		if m == nil {
			if last && !appendElem {
				return b.setViaMutator(cur, name, rawValue)
			}
			return false
		}

		if !m.fieldAccess() {
			// accessor members carry no addressable storage to walk
			// through, so they only work as the leaf
			if !last || appendElem {
				return false
			}
			tmp := reflect.New(m.typ).Elem()
			if !b.coerce(tmp, m, rawValue) {
				return false
			}
			m.set(cur, tmp)
			return true
		}

		target := cur.FieldByIndex(m.index)
		if target.Kind() == reflect.Slice && target.Type() != bytesType {
			elem, ok := b.sliceElement(target, appendElem)
			if !ok {
				return false
			}
			target = elem
		} else if appendElem {
			return false
		}

		if last {
			return b.coerce(target, m, rawValue)
		}

		next, ok := descend(target)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

var bytesType = reflect.TypeOf([]byte(nil))

// sliceElement picks the element a segment addresses: the appended slot
// for the [+] form, otherwise the first element, added if missing.
func (b *Binder) sliceElement(list reflect.Value, appendElem bool) (reflect.Value, bool) {
	if appendElem || list.Len() == 0 {
		list.Set(reflect.Append(list, reflect.Zero(list.Type().Elem())))
		return list.Index(list.Len() - 1), true
	}
	return list.Index(0), true
}

// descend steps into a member on the way to a deeper segment,
// instantiating nil pointers as it goes.
func descend(target reflect.Value) (reflect.Value, bool) {
	if target.Kind() == reflect.Pointer {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return target, true
}

func (b *Binder) setViaMutator(cur reflect.Value, name string, rawValue any) bool {
	mutator := cur.Addr().MethodByName("Set" + upperFirst(name))
	if !mutator.IsValid() || mutator.Type().NumIn() != 1 {
		return false
	}
	arg := reflect.New(mutator.Type().In(0)).Elem()
	if !b.coerce(arg, nil, rawValue) {
		return false
	}
	mutator.Call([]reflect.Value{arg})
	return true
}

// coerce assigns rawValue onto dst, directly when types line up and
// through the converter chain otherwise.
func (b *Binder) coerce(dst reflect.Value, m *member, rawValue any) bool {
	if rawValue == nil {
		if !nullable(dst.Type()) {
			return false
		}
		dst.SetZero()
		return true
	}
	if rv := reflect.ValueOf(rawValue); rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return true
	}
	var conv *convert.Converter
	if m != nil {
		conv = m.Converter
	}
	return b.decodeInto(value.NewValue(rawValue), dst, conv) == nil
}
