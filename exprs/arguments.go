package exprs

import (
	"unicode/utf8"

	"github.com/reusee/choicepeek/scripts"
	"github.com/reusee/choicepeek/values"
)

// CommandEnd returns the character index just after the command name, or -1.
func CommandEnd(line string) int {
	_, end := scripts.CommandBounds(line)
	if end < 0 {
		return -1
	}
	return utf8.RuneCountInString(line[:end])
}

// Arguments evaluates the arguments following a command name. Each argument is
// read with its entry in flags, StopAtFirstToken past the end of flags.
// Arguments that yield no value are dropped.
func (e *Evaluator) Arguments(line string, flags ...Flags) []values.Value {
	end := CommandEnd(line)
	if end < 0 {
		return nil
	}

	var ret []values.Value
	c := NewCursor(line, end)
	for c.Index < c.Len() {
		f := StopAtFirstToken
		if len(ret) < len(flags) {
			f = flags[len(ret)]
		}
		start := c.Index
		value := e.Evaluate(c, 0, f, "")
		if !value.IsNone() {
			ret = append(ret, value)
		}
		if c.Index == start {
			// nothing consumed, like a stray ')'
			c.Index++
		}
	}
	return ret
}
