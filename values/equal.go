package values

import "math"

// Resolver unpacks a Variable into the stored value it names.
// Values it cannot unpack are returned as is.
type Resolver func(Value) Value

// Equal compares with script coercion rules: booleans count as 0/1, two
// strings compare as strings, anything else compares numerically so "10" = 10.
func Equal(a, b Value, resolve Resolver) bool {
	if a.kind == KindNone || b.kind == KindNone {
		return false
	}

	if resolve != nil {
		a = resolve(a)
		b = resolve(b)
	}
	if a.kind == KindVariable || b.kind == KindVariable {
		return a.kind == b.kind && a.s == b.s
	}

	if a.kind == KindBool {
		a = boolToNumber(a.b)
	}
	if b.kind == KindBool {
		b = boolToNumber(b.b)
	}

	if a.kind == KindString && b.kind == KindString {
		return a.s == b.s
	}

	x, err := ToNumber(a.Raw())
	if err != nil {
		return false
	}
	y, err := ToNumber(b.Raw())
	if err != nil {
		return false
	}
	return Approximately(x, y)
}

func boolToNumber(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

const float32Epsilon = 1.401298e-45

// Approximately compares in single precision with a relative tolerance.
func Approximately(a, b float64) bool {
	fa, fb := float32(a), float32(b)
	diff := float32(math.Abs(float64(fb - fa)))
	largest := float32(math.Max(math.Abs(float64(fa)), math.Abs(float64(fb))))
	return diff < max(1e-6*largest, float32Epsilon*8)
}
