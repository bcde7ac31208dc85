package value

const (
	NullKind   = Kind("null")
	StringKind = Kind("string")
	BoolKind   = Kind("bool")
	NumberKind = Kind("number")
	ArrayKind  = Kind("array")
	ObjectKind = Kind("object")
)

type Kind string

// Value is one node of a parsed document: a scalar, an array, or an
// object. Values are not mutated after the parser produces them.
type Value interface {
	Kind() Kind
	NativeValue() any
}
