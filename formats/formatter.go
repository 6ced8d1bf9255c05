package formats

import (
	"strings"
	"unicode"

	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/scripts"
	"github.com/reusee/choicepeek/values"
)

const NoChoiceSuffix = "(No choice found...)"

// Lookuper reads a variable by name.
type Lookuper interface {
	Lookup(name string) (any, bool)
}

// Formatter renders transcript entries. Conditions and setters show the
// current value of each variable they mention.
type Formatter struct {
	renderer Renderer
	vars     Lookuper
}

// New returns a Formatter. vars may be nil to render without values.
func New(renderer Renderer, vars Lookuper) *Formatter {
	if renderer == nil {
		renderer = Plain{}
	}
	return &Formatter{
		renderer: renderer,
		vars:     vars,
	}
}

func (f *Formatter) Renderer() Renderer {
	return f.renderer
}

func (f *Formatter) Line(text string) string {
	return f.renderer.Line(scripts.Classify(text), f.segments(text))
}

// Entry renders one transcript entry as one or more output lines.
func (f *Formatter) Entry(entry reports.Entry) []string {
	switch entry.Kind {
	case reports.EntryHeader:
		return []string{"", f.renderer.Emphasis(entry.Text)}
	case reports.EntryDiagnostic:
		return []string{f.renderer.Emphasis(entry.Text)}
	}
	line := f.Line(entry.Text)
	if entry.NoChoice {
		line += " " + f.renderer.Emphasis(NoChoiceSuffix)
	}
	return []string{line}
}

func (f *Formatter) Entries(entries []reports.Entry) (ret []string) {
	for _, entry := range entries {
		ret = append(ret, f.Entry(entry)...)
	}
	return
}

func (f *Formatter) segments(text string) []Segment {
	command, ok := scripts.Command(text)
	if !ok || f.vars == nil || !scripts.ShowsValues(command) {
		return []Segment{{Text: text}}
	}
	_, end := scripts.CommandBounds(text)

	var segments []Segment
	var b strings.Builder
	b.WriteString(text[:end])
	rest := []rune(text[end:])
	insideString := false
	depth := 0
	for i := 0; i < len(rest); i++ {
		r := rest[i]
		switch {

		case r == '\\':
			b.WriteRune(r)
			if i+1 < len(rest) {
				i++
				b.WriteRune(rest[i])
			}
			continue

		case r == '"':
			insideString = !insideString

		case r == '{':
			depth++

		case r == '}':
			depth = max(depth-1, 0)

		case unicode.IsLetter(r) && (!insideString || depth > 0):
			j := i + 1
			for j < len(rest) && isIdentifierRune(rest[j]) {
				j++
			}
			name := string(rest[i:j])
			b.WriteString(name)
			i = j - 1
			raw, ok := f.vars.Lookup(name)
			if !ok || raw == nil {
				continue
			}
			segments = append(segments,
				Segment{Text: b.String()},
				Segment{Text: "(" + formatValue(raw) + ")", Value: true},
			)
			b.Reset()
			continue

		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		segments = append(segments, Segment{Text: b.String()})
	}
	return segments
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func formatValue(raw any) string {
	if s, ok := raw.(string); ok && s == "" {
		return `""`
	}
	return values.FormatRaw(raw)
}
