package value

// Equal reports structural equality of two Values. Objects compare entry
// by entry in order. Numbers compare numerically within their class, so
// "8675309." and "8675309.0" are equal while "1" and "1.0" are not: an
// integral and a decimal value never compare equal even at the same
// magnitude.
func Equal(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case *Null:
		return true
	case Boolean:
		return l == right.(Boolean)
	case String:
		return l == right.(String)
	case Number:
		r := right.(Number)
		if l.IsInt() != r.IsInt() {
			return false
		}
		if l.IsInt() {
			li, _ := l.Int64()
			ri, _ := r.Int64()
			return li == ri
		}
		lf, err := l.Float64()
		if err != nil {
			return l == r
		}
		rf, err := r.Float64()
		if err != nil {
			return l == r
		}
		return lf == rf
	case Array:
		r := right.(Array)
		if len(l) != len(r) {
			return false
		}
		for i := range l {
			if !Equal(l[i], r[i]) {
				return false
			}
		}
		return true
	case *Object:
		r := right.(*Object)
		if len(l.Entries) != len(r.Entries) {
			return false
		}
		for i := range l.Entries {
			if l.Entries[i].Key != r.Entries[i].Key {
				return false
			}
			if !Equal(l.Entries[i].Value, r.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
