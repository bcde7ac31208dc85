package value

import (
	"fmt"
	"strconv"
)

// Scalar coercions shared by the converters and the path setter. Strings
// holding numeric or boolean text coerce across kinds; collections do not.

func ToString(v Value) (string, error) {
	switch n := v.(type) {
	case String:
		return (string)(n), nil
	case Number:
		return (string)(n), nil
	case Boolean:
		return strconv.FormatBool((bool)(n)), nil
	}
	return "", fmt.Errorf("can not convert kind %s to string", v.Kind())
}

func ToInt(v Value) (int64, error) {
	switch n := v.(type) {
	case Number:
		return n.Int64()
	case String:
		return strconv.ParseInt((string)(n), 10, 64)
	}
	return 0, fmt.Errorf("can not convert kind %s to int", v.Kind())
}

func ToFloat(v Value) (float64, error) {
	switch n := v.(type) {
	case Number:
		return n.Float64()
	case String:
		return strconv.ParseFloat((string)(n), 64)
	}
	return 0, fmt.Errorf("can not convert kind %s to float", v.Kind())
}

func ToBool(v Value) (bool, error) {
	switch n := v.(type) {
	case Boolean:
		return (bool)(n), nil
	case String:
		return strconv.ParseBool((string)(n))
	}
	return false, fmt.Errorf("can not convert kind %s to bool", v.Kind())
}
