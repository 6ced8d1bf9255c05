package exprs

import "strings"

// Cursor is a character position in a line, shared by nested evaluations.
type Cursor struct {
	line  []rune
	Index int
}

func NewCursor(line string, index int) *Cursor {
	return &Cursor{
		line:  []rune(line),
		Index: index,
	}
}

func (c *Cursor) Len() int {
	return len(c.line)
}

// At returns the character at i, or 0 outside the line.
func (c *Cursor) At(i int) rune {
	if i < 0 || i >= len(c.line) {
		return 0
	}
	return c.line[i]
}

func (c *Cursor) Text() string {
	return string(c.line)
}

func (c *Cursor) Slice(from, to int) string {
	from = max(from, 0)
	to = min(to, len(c.line))
	if from >= to {
		return ""
	}
	return string(c.line[from:to])
}

func (c *Cursor) HasPrefixAt(i int, prefix string) bool {
	if i < 0 || i > len(c.line) {
		return false
	}
	return strings.HasPrefix(string(c.line[i:]), prefix)
}

// IndexFrom returns the first index of r at or after i, or -1.
func (c *Cursor) IndexFrom(i int, r rune) int {
	for ; i < len(c.line); i++ {
		if c.line[i] == r {
			return i
		}
	}
	return -1
}

func char(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}
