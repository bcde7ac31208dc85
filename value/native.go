package value

import (
	"fmt"
	"reflect"
	"strconv"
)

// NewValue converts a native Go value into a Value. Maps get sorted keys,
// matching NewObject; pass an *Object to control entry order.
func NewValue(v any) Value {
	switch n := v.(type) {
	case nil:
		return NewNull()
	case Value:
		return n
	case bool:
		return Boolean(n)
	case string:
		return String(n)
	case float64:
		return Number(strconv.FormatFloat(n, 'f', -1, 64))
	case float32:
		return Number(strconv.FormatFloat(float64(n), 'f', -1, 32))
	case []any:
		return NewArray(n)
	case []Value:
		return Array(n)
	case map[string]any:
		return NewObject(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Slice, reflect.Array:
		a := make(Array, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			a = append(a, NewValue(rv.Index(i).Interface()))
		}
		return a
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			native := map[string]any{}
			for _, k := range rv.MapKeys() {
				native[k.String()] = rv.MapIndex(k).Interface()
			}
			return NewObject(native)
		}
	}

	return String(fmt.Sprint(v))
}
