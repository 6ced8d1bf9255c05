package values

import "fmt"

type Kind uint8

const (
	KindNone Kind = iota
	KindVariable
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindVariable:
		return "Variable"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an immutable script value.
// A Variable value holds only the name; it is resolved on every use.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

func None() Value {
	return Value{}
}

func Variable(name string) Value {
	return Value{
		kind: KindVariable,
		s:    name,
	}
}

func Bool(b bool) Value {
	return Value{
		kind: KindBool,
		b:    b,
	}
}

func Number(n float64) Value {
	return Value{
		kind: KindNumber,
		n:    n,
	}
}

func String(s string) Value {
	return Value{
		kind: KindString,
		s:    s,
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// Raw returns the underlying Go value: nil, bool, float64 or string.
// Variables return their name.
func (v Value) Raw() any {
	switch v.kind {
	case KindVariable, KindString:
		return v.s
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	}
	return nil
}

// Name returns the textual form of the value without resolving it.
// It is how command arguments such as label and scene names are read.
func (v Value) Name() string {
	switch v.kind {
	case KindVariable, KindString:
		return v.s
	case KindBool:
		return FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	}
	return ""
}

func (v Value) String() string {
	if v.kind == KindNone {
		return "None"
	}
	return fmt.Sprintf("'%s' (%s)", v.Name(), v.kind)
}

// FromRaw wraps a stored value.
func FromRaw(raw any) (Value, bool) {
	switch raw := raw.(type) {
	case bool:
		return Bool(raw), true
	case string:
		return String(raw), true
	case float64:
		return Number(raw), true
	case float32:
		return Number(float64(raw)), true
	case int:
		return Number(float64(raw)), true
	case int64:
		return Number(float64(raw)), true
	}
	return None(), false
}
