package reports

import (
	"fmt"
	"strings"
)

// PosError locates an error at a character column of a script line.
type PosError struct {
	Err    error
	Line   string
	Column int
}

func (p PosError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s at %d", p.Err.Error(), p.Column))
	if p.Line == "" {
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(p.Line)
	sb.WriteString("\n")

	// caret
	for i, r := range []rune(p.Line) {
		if i >= p.Column {
			break
		}
		if r == '\t' {
			sb.WriteString("\t")
		} else {
			sb.WriteString(strings.Repeat(" ", runeWidth(r)))
		}
	}
	sb.WriteString("^")

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

func WithPos(err error, line string, column int) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(PosError); ok {
		return err
	}
	return PosError{
		Err:    err,
		Line:   line,
		Column: column,
	}
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
