package scripts

import "testing"

func TestIndentation(t *testing.T) {
	tests := map[string]int{
		"foo":     0,
		"\tfoo":   1,
		"\t\tfoo": 2,
		"    foo": 4,
		" \t foo": 3,
		"":        0,
		"   ":     3,
		"　foo":    1,
	}
	for line, expected := range tests {
		if got := Indentation(line); got != expected {
			t.Fatalf("%q: got %v", line, got)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := map[string]bool{
		"":                 true,
		"  \t":             true,
		"\t*comment hello": true,
		"*commentary":      true,
		"hello":            false,
		"*if true":         false,
	}
	for line, expected := range tests {
		if got := IsBlank(line); got != expected {
			t.Fatalf("%q: got %v", line, got)
		}
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		command bool
	}{
		{"*if x > 1", "if", true},
		{"\t*goto_scene chapter2", "goto_scene", true},
		{"*finish", "finish", true},
		{"*", "", false},
		{"* foo", "", true},
		{"plain text", "", false},
		{"#option", "", false},
		{"  *set x (1)", "set", true},
	}
	for _, test := range tests {
		name, ok := Command(test.line)
		if name != test.name || ok != test.command {
			t.Fatalf("%q: got %q %v", test.line, name, ok)
		}
	}
}

func TestIsChoiceOption(t *testing.T) {
	tests := map[string]bool{
		"#Open the door":                      true,
		"\t\t#Leave":                          true,
		"#":                                   false,
		"*if (x = 1) #Option":                 true,
		`*if (name = "#1") #Option`:           true,
		`*if (name = "#1")`:                   false,
		"*selectable_if (x) #Go":              true,
		"*set x 1":                            false,
		"Then the ATM showed #### on screen.": false,
		`*if (s = "a \"#\" b") and ({v} = 1)`: false,
		"*hide_reuse #Again":                  true,
	}
	for line, expected := range tests {
		if got := IsChoiceOption(line); got != expected {
			t.Fatalf("%q: got %v", line, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Class{
		"Hello":             ClassPlain,
		"#Option":           ClassOption,
		"*if x":             ClassCondition,
		"*else":             ClassCondition,
		"*set x 1":          ClassSetter,
		"*temp_array a 2 0": ClassSetter,
		"*choice":           ClassCommand,
		"*if x #Option":     ClassOption,
	}
	for line, expected := range tests {
		if got := Classify(line); got != expected {
			t.Fatalf("%q: got %v", line, got)
		}
	}
	if ShowsValues("else") || !ShowsValues("elsif") || ShowsValues("goto") {
		t.Fatal()
	}
}
