package value

type Array []Value

func NewArray(objs []any) Array {
	a := make(Array, 0, len(objs))
	for _, obj := range objs {
		a = append(a, NewValue(obj))
	}
	return a
}

func (a Array) Index(idx int64) (Value, bool) {
	if int(idx) >= len(a) || idx < 0 {
		return nil, false
	}
	return a[idx], true
}

func (a Array) ToValues() []Value {
	return a
}

func (a Array) Kind() Kind {
	return ArrayKind
}

func (a Array) Len() int64 {
	return int64(len(a))
}

func (a Array) NativeValue() any {
	result := make([]any, 0, len(a))
	for _, v := range a {
		result = append(result, v.NativeValue())
	}
	return result
}
