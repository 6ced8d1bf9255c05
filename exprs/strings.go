package exprs

import (
	"slices"
	"strings"

	"github.com/reusee/choicepeek/values"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseString reads string text from c.Index+offset up to one of the terminators,
// expanding ${...} interpolation and @{...} multireplace.
// At string depth d a quote is escaped by 2^d-1 backslashes, and (2^d-1)/2
// backslashes before a quote end the string.
func (e *Evaluator) ParseString(c *Cursor, offset int, terminators ...rune) string {
	var sb strings.Builder

	for c.Index += offset; c.Index < c.Len(); c.Index++ {
		ch := c.At(c.Index)

		switch {

		case slices.Contains(terminators, ch):
			return sb.String()

		case ch == '\\':
			escape := 1<<e.depth - 1
			ending := escape / 2
			closing := false
			for {
				escape--
				if escape < 0 {
					break
				}
				if got := c.At(c.Index); got != '\\' {
					e.reporter.Errorf("Expected '\\', found '%s' at %d", char(got), c.Index)
				}
				ending--
				if ending == 0 && c.At(c.Index+1) == '"' {
					closing = true
					break
				}
				c.Index++
			}
			if !closing && c.Index < c.Len() {
				// no escape sequences, "\n" is "n"
				sb.WriteRune(c.At(c.Index))
			}

		case c.HasPrefixAt(c.Index, "${") ||
			c.HasPrefixAt(c.Index, "$!{") ||
			c.HasPrefixAt(c.Index, "$!!{"):
			prefix := c.IndexFrom(c.Index, '{') - c.Index + 1
			value := e.vars.String(e.Evaluate(c, prefix, 0, ""))
			e.expect(c, '}')
			sb.WriteString(capitalizeBy(prefix, value))

		case c.HasPrefixAt(c.Index, "@{") ||
			c.HasPrefixAt(c.Index, "@!{") ||
			c.HasPrefixAt(c.Index, "@!!{"):
			prefix := c.IndexFrom(c.Index, '{') - c.Index + 1
			// the selector may be an expression without spaces, like n+1
			selector := e.vars.Resolve(e.Evaluate(c, prefix, StopAtWhitespace, ""))
			pick := 0
			if selector.Kind() == values.KindBool {
				pick = 2
				if e.vars.Bool(selector) {
					pick = 1
				}
			} else {
				pick = e.vars.Int(selector)
			}
			var value string
			for {
				option := e.ParseString(c, 1, '|', '}')
				pick--
				if pick == 0 {
					value = option
				}
				if c.Index >= c.Len() || c.At(c.Index) == '}' {
					break
				}
			}
			e.expect(c, '}')
			sb.WriteString(capitalizeBy(prefix, value))

		case c.HasPrefixAt(c.Index, "[n/]"):
			sb.WriteByte('\n')
			c.Index += 3

		default:
			sb.WriteRune(ch)

		}
	}

	return sb.String()
}

// capitalizeBy applies the capitalization a ${ / $!{ / $!!{ prefix asks for.
func capitalizeBy(prefixLength int, value string) string {
	if prefixLength <= 2 {
		return value
	}
	return Capitalize(value, prefixLength == 4)
}

// Capitalize upper cases the first letter, or every letter when all is set.
func Capitalize(value string, all bool) string {
	upper := cases.Upper(language.Und)
	runes := []rune(value)
	if all || len(runes) == 1 {
		return upper.String(value)
	}
	if len(runes) == 0 {
		return value
	}
	return upper.String(string(runes[0])) + string(runes[1:])
}
