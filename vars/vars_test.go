package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if v := FirstNonZero(0, 3, 50); v != 3 {
		t.Fatalf("got %v", v)
	}
	if v := FirstNonZero("", ""); v != "" {
		t.Fatalf("got %v", v)
	}
}

func TestStrToBool(t *testing.T) {
	for str, expected := range map[string]bool{
		"true": true,
		"Y":    true,
		" on ": true,
		"1":    true,
		"no":   false,
		"OFF":  false,
		"f":    false,
	} {
		v, err := StrToBool(str)
		if err != nil {
			t.Fatal(err)
		}
		if v != expected {
			t.Fatalf("%q: got %v", str, v)
		}
	}
	if _, err := StrToBool("maybe"); err == nil {
		t.Fatal("should fail")
	}
}
