package configs

import (
	"strings"
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue", "test2.cue"}, testSchema)

	if str := First[string](loader, "str"); str != "bar" {
		t.Fatalf("got %v", str)
	}
	if list := First[[]int](loader, "list"); len(list) != 3 {
		t.Fatalf("got %v", list)
	}
	if n := First[int](loader, "missing"); n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestFirstInvalidFile(t *testing.T) {
	loader := NewLoader([]string{"bad.cue"}, testSchema)
	defer func() {
		p := recover()
		err, ok := p.(error)
		if !ok {
			t.Fatalf("got %v", p)
		}
		if !strings.Contains(err.Error(), "bad.cue") {
			t.Fatalf("got %v", err)
		}
	}()
	First[string](loader, "str")
}
