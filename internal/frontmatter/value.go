package frontmatter

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a front matter value: a boolean, a number, a string, a list of
// strings, or absent (an explicit null).
//
// Values are immutable; List copies its input and Items returns a copy.
type Value struct {
	kind Kind
	b    bool
	num  float64
	text string
	list []string
}

// Absent returns the null value.
func Absent() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer number value.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), text: strconv.FormatInt(i, 10)}
}

// Float returns a floating-point number value.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: f, text: formatFloat(f)}
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// List returns a list-of-strings value.
func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload; false for other kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsString returns the string payload; empty for other kinds.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// AsNumber returns the numeric payload; zero for other kinds.
func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Items returns a copy of the list payload; nil for other kinds.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// Text returns the textual form of v. Absent renders as "None".
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.text
	case KindList:
		return renderList(v.list)
	default:
		return "None"
	}
}

// Truthy reports the natural truthiness of v: absent is false, numbers are
// true when non-zero, strings and lists when non-empty.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.text != ""
	case KindList:
		return len(v.list) > 0
	default:
		return false
	}
}

// formatFloat renders f the way a float literal is usually written: a
// trailing ".0" for integral values and exponent form outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	exp := strconv.FormatFloat(f, 'e', -1, 64)
	e, _ := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
	if f != 0 && (e < -4 || e >= 16) {
		return exp
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
