package recmerge

import "github.com/tidwall/gjson"

// Value is a resolved key value. The zero Value is absent.
type Value struct {
	res gjson.Result
}

// Absent is the value of a key that does not exist on a record.
var Absent = Value{}

// ValueOf wraps a gjson result. Results that do not exist are absent.
func ValueOf(res gjson.Result) Value {
	return Value{res: res}
}

// Present reports whether the key exists. A member holding null is present.
func (v Value) Present() bool {
	return v.res.Exists()
}

// Result returns the underlying gjson result.
func (v Value) Result() gjson.Result {
	return v.res
}

// Equal reports strict equality without coercion.
// Absent values are never equal to anything, including each other.
// Objects and arrays are never equal: two records cannot share one.
func (v Value) Equal(o Value) bool {
	if !v.Present() || !o.Present() {
		return false
	}
	if v.res.Type != o.res.Type {
		return false
	}
	switch v.res.Type {
	case gjson.Null, gjson.True, gjson.False:
		return true
	case gjson.String:
		return v.res.Str == o.res.Str
	case gjson.Number:
		return v.res.Num == o.res.Num
	default:
		return false
	}
}

// String returns the raw JSON of a present value, or "<absent>".
func (v Value) String() string {
	if !v.Present() {
		return "<absent>"
	}
	return v.res.Raw
}
