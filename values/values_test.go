package values

import (
	"errors"
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  Value
		equal bool
	}{
		{Number(10), String("10"), true},
		{Number(10), String("ten"), false},
		{String("a"), String("a"), true},
		{String("a"), String("A"), false},
		{Bool(true), Number(1), true},
		{Bool(false), Number(0), true},
		{Bool(true), String("1"), true},
		{Number(0.1 + 0.2), Number(0.3), true},
		{Number(1), Number(1.001), false},
		{None(), None(), false},
		{None(), Number(0), false},
		{Variable("a"), Variable("a"), true},
		{Variable("a"), Variable("b"), false},
		{Variable("a"), String("a"), false},
	}
	for _, test := range tests {
		if got := Equal(test.a, test.b, nil); got != test.equal {
			t.Fatalf("%v = %v: got %v", test.a, test.b, got)
		}
	}
}

func TestEqualResolves(t *testing.T) {
	stored := map[string]any{
		"n": 10.0,
		"s": "10",
	}
	resolve := func(v Value) Value {
		if v.Kind() != KindVariable {
			return v
		}
		if value, ok := FromRaw(stored[v.Name()]); ok {
			return value
		}
		return v
	}
	if !Equal(Variable("n"), Variable("s"), resolve) {
		t.Fatal()
	}
	if !Equal(Variable("n"), Number(10), resolve) {
		t.Fatal()
	}
	// unresolvable references compare by name
	if Equal(Variable("missing"), Number(0), resolve) {
		t.Fatal()
	}
}

func TestParseNumber(t *testing.T) {
	for _, n := range []float64{0, 1, 42, 0.5, 123.25, 1e10, 3.14159, 1e21, 1e25, 1e-7, -4.5e30} {
		got, ok := ParseNumber(FormatNumber(n))
		if !ok || got != n {
			t.Fatalf("%v: got %v %v", n, got, ok)
		}
	}
	for _, s := range []string{"", "abc", "1chapter", "0x10", "1_000", "inf", "."} {
		if _, ok := ParseNumber(s); ok {
			t.Fatalf("should not parse %q", s)
		}
	}
	if n, ok := ParseNumber(" -2.5 "); !ok || n != -2.5 {
		t.Fatalf("got %v", n)
	}
	if n, ok := ParseNumber("1e3"); !ok || n != 1000 {
		t.Fatalf("got %v", n)
	}
	if n, ok := ParseNumber("Infinity"); !ok || !math.IsInf(n, 1) {
		t.Fatalf("got %v", n)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		10:    "10",
		-3:    "-3",
		0.5:   "0.5",
		1e21:  "1000000000000000000000",
		1e-7:  "0.0000001",
		0:     "0",
		2.125: "2.125",
	}
	for n, expected := range tests {
		if got := FormatNumber(n); got != expected {
			t.Fatalf("%v: got %q", n, got)
		}
	}
}

func TestConversions(t *testing.T) {
	if b, err := ToBool("True"); err != nil || !b {
		t.Fatalf("got %v %v", b, err)
	}
	if b, err := ToBool(2.0); err != nil || !b {
		t.Fatalf("got %v %v", b, err)
	}
	if _, err := ToBool("yes"); !errors.Is(err, ErrConversion) {
		t.Fatalf("got %v", err)
	}
	if _, err := ToBool(nil); !errors.Is(err, ErrConversion) {
		t.Fatalf("got %v", err)
	}
	if n, err := ToNumber(true); err != nil || n != 1 {
		t.Fatalf("got %v %v", n, err)
	}
	if _, err := ToNumber("ten"); !errors.Is(err, ErrConversion) {
		t.Fatalf("got %v", err)
	}
	if s, err := ToString(false); err != nil || s != "false" {
		t.Fatalf("got %v %v", s, err)
	}
	if s, err := ToString(nil); err != nil || s != "" {
		t.Fatalf("got %v %v", s, err)
	}
	if _, err := ToString([]any{1}); !errors.Is(err, ErrConversion) {
		t.Fatalf("got %v", err)
	}
}

func TestRoundToInt(t *testing.T) {
	tests := map[float64]int{
		1.4: 1,
		1.6: 2,
		2.5: 2,
		3.5: 4,
		-1:  -1,
	}
	for n, expected := range tests {
		if got := RoundToInt(n); got != expected {
			t.Fatalf("%v: got %v", n, got)
		}
	}
}

func TestName(t *testing.T) {
	if got := Number(5).Name(); got != "5" {
		t.Fatalf("got %q", got)
	}
	if got := Variable("foo").Name(); got != "foo" {
		t.Fatalf("got %q", got)
	}
	if got := Bool(true).Name(); got != "true" {
		t.Fatalf("got %q", got)
	}
	if got := None().Name(); got != "" {
		t.Fatalf("got %q", got)
	}
}
