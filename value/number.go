package value

import (
	"strconv"
)

// Number holds the literal digits of a numeric value. The literal is kept
// as written (after hex literals are reduced to decimal) so that no
// precision is lost before a caller asks for a native representation.
type Number string

func (n Number) Kind() Kind {
	return NumberKind
}

// IsInt reports whether the literal is an integral value: plain digits
// with an optional sign, fitting a 64-bit signed integer. A literal with
// a decimal point or an exponent is a decimal value even when its
// magnitude is whole, mirroring how it was written.
func (n Number) IsInt() bool {
	_, err := strconv.ParseInt(string(n), 10, 64)
	return err == nil
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n Number) NativeValue() any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, _ := n.Float64()
	return f
}
