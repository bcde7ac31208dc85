package value

import (
	"sort"
)

// Object is an ordered set of key/value entries. Keys are unique; Set
// folds a repeated key onto the existing entry (the first occurrence
// keeps its position, the last occurrence supplies the value).
type Object struct {
	Entries []Entry
}

type Entry struct {
	Key   string
	Value Value
}

func NewObject(data map[string]any) *Object {
	o := &Object{}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		o.Set(key, NewValue(data[key]))
	}

	return o
}

func (n *Object) Set(key string, val Value) {
	for i, e := range n.Entries {
		if e.Key == key {
			n.Entries[i].Value = val
			return
		}
	}
	n.Entries = append(n.Entries, Entry{
		Key:   key,
		Value: val,
	})
}

func (n *Object) LookupValue(key string) (Value, bool) {
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (n *Object) Keys() []string {
	result := make([]string, 0, len(n.Entries))
	for _, entry := range n.Entries {
		result = append(result, entry.Key)
	}
	return result
}

func (n *Object) Kind() Kind {
	return ObjectKind
}

func (n *Object) NativeValue() any {
	result := map[string]any{}
	for _, entry := range n.Entries {
		result[entry.Key] = entry.Value.NativeValue()
	}
	return result
}
