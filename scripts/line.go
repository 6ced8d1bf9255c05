package scripts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Indentation counts leading whitespace characters.
func Indentation(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// IsBlank reports whether the line holds only whitespace or a *comment.
func IsBlank(line string) bool {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	if rest == "" {
		return true
	}
	return strings.HasPrefix(rest, "*comment")
}

// CommandBounds returns the byte range [start, end) of the command name
// following '*', or -1, -1 when the line is not a command.
func CommandBounds(line string) (start, end int) {
	index := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	if index >= len(line)-1 || line[index] != '*' {
		return -1, -1
	}
	start = index + 1
	end = start
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return start, end
}

// Command returns the command name without '*'.
// A bare '*' followed by a non-word character is a command with an empty name.
func Command(line string) (name string, ok bool) {
	start, end := CommandBounds(line)
	if start < 0 {
		return "", false
	}
	return line[start:end], true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

var optionPrefixCommands = map[string]bool{
	"if":            true,
	"selectable_if": true,
	"hide_reuse":    true,
	"disable_reuse": true,
	"allow_reuse":   true,
}

// IsChoiceOption reports whether the line is a #option, possibly behind
// one of the commands allowed to prefix an option.
func IsChoiceOption(line string) bool {
	index := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	if index >= len(line)-1 {
		// a trailing '#' has no label
		return false
	}
	if line[index] == '#' {
		return true
	}

	command, _ := Command(line)
	if !optionPrefixCommands[command] {
		return false
	}

	insideString := false
	depth := 0
	for index++; index < len(line); index++ {
		switch ch := line[index]; {
		case ch == '"':
			insideString = !insideString
		case ch == '\\':
			index++
		case insideString:
		case ch == '(' || ch == '{' || ch == '[':
			depth++
		case ch == ')' || ch == '}' || ch == ']':
			depth--
		case ch == '#' && depth == 0:
			return true
		}
	}
	return false
}
