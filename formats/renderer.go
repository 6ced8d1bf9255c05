package formats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/reusee/choicepeek/scripts"
	"golang.org/x/term"
)

// Segment is a piece of a rendered line. Value segments hold an inline
// variable value.
type Segment struct {
	Text  string
	Value bool
}

type Renderer interface {
	Line(class scripts.Class, segments []Segment) string
	Emphasis(text string) string
}

type Mode string

const (
	ModeMarkup Mode = "markup"
	ModeANSI   Mode = "ansi"
	ModePlain  Mode = "plain"
	ModeAuto   Mode = "auto"
)

func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeMarkup, ModeANSI, ModePlain, ModeAuto:
		return mode, nil
	case "":
		return ModeAuto, nil
	}
	return "", fmt.Errorf("unknown render mode: %s", s)
}

// NewRenderer returns the renderer of a mode. ModeAuto renders ANSI colours
// when w is a terminal and plain text otherwise.
func NewRenderer(mode Mode, w io.Writer) (Renderer, error) {
	switch mode {
	case ModeMarkup:
		return Markup{}, nil
	case ModePlain:
		return Plain{}, nil
	case ModeANSI:
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.TrueColor)
		return NewANSI(r), nil
	case ModeAuto, "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return NewANSI(lipgloss.NewRenderer(w)), nil
		}
		return Plain{}, nil
	}
	return nil, fmt.Errorf("unknown render mode: %s", mode)
}

const valueColor = "#FF5E00"

var markupColors = map[scripts.Class]string{
	scripts.ClassOption:    "red",
	scripts.ClassCondition: "blue",
	scripts.ClassSetter:    "magenta",
	scripts.ClassCommand:   "#11A200",
}

// Markup renders rich text tags.
type Markup struct{}

var _ Renderer = Markup{}

func (Markup) Line(class scripts.Class, segments []Segment) string {
	var b strings.Builder
	color, colored := markupColors[class]
	if colored {
		b.WriteString("<color=" + color + ">")
	}
	for _, segment := range segments {
		if segment.Value {
			b.WriteString("<color=" + valueColor + ">" + segment.Text + "</color>")
			continue
		}
		b.WriteString(segment.Text)
	}
	if colored {
		b.WriteString("</color>")
	}
	return b.String()
}

func (Markup) Emphasis(text string) string {
	return "<b>" + text + "</b>"
}

// ANSI renders terminal colours.
type ANSI struct {
	classes  map[scripts.Class]lipgloss.Style
	value    lipgloss.Style
	emphasis lipgloss.Style
}

var _ Renderer = new(ANSI)

func NewANSI(r *lipgloss.Renderer) *ANSI {
	style := func(color string) lipgloss.Style {
		return r.NewStyle().
			TabWidth(lipgloss.NoTabConversion).
			Foreground(lipgloss.Color(color))
	}
	return &ANSI{
		classes: map[scripts.Class]lipgloss.Style{
			scripts.ClassOption:    style("9"),
			scripts.ClassCondition: style("12"),
			scripts.ClassSetter:    style("13"),
			scripts.ClassCommand:   style("#11A200"),
		},
		value: style(valueColor),
		emphasis: r.NewStyle().
			TabWidth(lipgloss.NoTabConversion).
			Bold(true),
	}
}

func (a *ANSI) Line(class scripts.Class, segments []Segment) string {
	var b strings.Builder
	style, colored := a.classes[class]
	for _, segment := range segments {
		switch {
		case segment.Text == "":
		case segment.Value:
			b.WriteString(a.value.Render(segment.Text))
		case colored:
			b.WriteString(style.Render(segment.Text))
		default:
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}

func (a *ANSI) Emphasis(text string) string {
	if text == "" {
		return ""
	}
	return a.emphasis.Render(text)
}

type Plain struct{}

var _ Renderer = Plain{}

func (Plain) Line(_ scripts.Class, segments []Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(segment.Text)
	}
	return b.String()
}

func (Plain) Emphasis(text string) string {
	return text
}
