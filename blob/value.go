package blob

import "github.com/arloliu/confpack/format"

// Value is one node of a property tree: an integer, a boolean, a string, or
// an ordered heterogeneous array of further values. The zero Value is the
// empty string.
type Value struct {
	kind format.PropertyType
	num  int64
	flag bool
	str  string
	arr  []Value
}

// IntValue returns an integer property. Values must be in [0, 2^63).
func IntValue(v int64) Value {
	return Value{kind: format.TypeInteger, num: v}
}

// BoolValue returns a boolean property.
func BoolValue(v bool) Value {
	return Value{kind: format.TypeBool, flag: v}
}

// StringValue returns a string property.
func StringValue(s string) Value {
	return Value{kind: format.TypeString, str: s}
}

// ArrayValue returns an array property holding elems. The slice is borrowed.
func ArrayValue(elems ...Value) Value {
	return Value{kind: format.TypeArray, arr: elems}
}

// Kind returns the property type tag of the value.
func (v Value) Kind() format.PropertyType {
	return v.kind
}

// Int returns the integer payload; zero for other kinds.
func (v Value) Int() int64 {
	return v.num
}

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool {
	return v.flag
}

// Str returns the string payload; empty for other kinds.
func (v Value) Str() string {
	return v.str
}

// Array returns the element slice; nil for other kinds. The slice is shared,
// not copied.
func (v Value) Array() []Value {
	return v.arr
}

// Equal reports deep structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case format.TypeInteger:
		return v.num == o.num
	case format.TypeBool:
		return v.flag == o.flag
	case format.TypeString:
		return v.str == o.str
	case format.TypeArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
