package formats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVars() *variables.Store {
	state := saves.Blank()
	state.Stats["strength"] = float64(50)
	state.Stats["name"] = ""
	state.Stats["brave"] = true
	state.Temps["ratio"] = 0.25
	return variables.New(state, reports.NewReporter(new(reports.Transcript), nil), nil)
}

func TestInlineValues(t *testing.T) {
	f := New(Plain{}, newTestVars())
	tests := []struct {
		line     string
		expected string
	}{
		{"*if strength > 40", "*if strength(50) > 40"},
		{"*if brave", "*if brave(true)"},
		{"*elseif ratio < 1", "*elseif ratio(0.25) < 1"},
		{`*set name "strength"`, `*set name("") "strength"`},
		{`*set msg "hi ${strength}"`, `*set msg "hi ${strength(50)}"`},
		{`*set msg "a\"strength"`, `*set msg "a\"strength"`},
		{"*set strength_2 strength", "*set strength_2 strength(50)"},
		{"*temp unknown 1", "*temp unknown 1"},
		{"*else", "*else"},
		{"*goto strength", "*goto strength"},
		{"strength is shown here", "strength is shown here"},
		{"\t*if (brave) and (strength)", "\t*if (brave(true)) and (strength(50))"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, f.Line(test.line), test.line)
	}
}

func TestMarkup(t *testing.T) {
	f := New(Markup{}, newTestVars())
	assert.Equal(t,
		"<color=blue>*if strength<color=#FF5E00>(50)</color> > 40</color>",
		f.Line("*if strength > 40"),
	)
	assert.Equal(t, "<color=red>#Go left</color>", f.Line("#Go left"))
	assert.Equal(t, "<color=magenta>*temp x</color>", f.Line("*temp x"))
	assert.Equal(t, "<color=#11A200>*page_break</color>", f.Line("*page_break"))
	assert.Equal(t, "Hello there", f.Line("Hello there"))

	transcript := new(reports.Transcript)
	reporter := reports.NewReporter(transcript, nil)
	transcript.AppendLine(0, "*choice")
	reporter.Enter("*set x +")
	reporter.Errorf("bad")
	transcript.AppendNoChoice(3, "Some text")
	lines := f.Entries(transcript.Entries)
	require.Equal(t, []string{
		"<color=#11A200>*choice</color>",
		"",
		"<b>Error(s) while evaluating: *set x +</b>",
		"<b>bad</b>",
		"Some text <b>(No choice found...)</b>",
	}, lines)
}

func TestWithoutVars(t *testing.T) {
	f := New(nil, nil)
	assert.Equal(t, "*if strength > 40", f.Line("*if strength > 40"))
}

func TestANSI(t *testing.T) {
	r := lipgloss.NewRenderer(new(bytes.Buffer))
	r.SetColorProfile(termenv.ANSI256)
	colored := New(NewANSI(r), newTestVars())
	plain := New(Plain{}, newTestVars())

	for _, line := range []string{
		"*if strength > 40",
		"\t#Go left",
		"*set name 1",
		"just text",
	} {
		got := colored.Line(line)
		assert.Equal(t, plain.Line(line), ansi.Strip(got), line)
	}
	assert.NotEqual(t, "#Go left", colored.Line("#Go left"))
	assert.Equal(t, "just text", colored.Line("just text"))
	assert.True(t, strings.Contains(colored.Line("\t#Go left"), "\t"))
	assert.Equal(t, "bad", ansi.Strip(colored.renderer.Emphasis("bad")))
}

func TestModes(t *testing.T) {
	mode, err := ParseMode(" ANSI ")
	require.NoError(t, err)
	assert.Equal(t, ModeANSI, mode)
	mode, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, mode)
	_, err = ParseMode("html")
	require.Error(t, err)

	renderer, err := NewRenderer(ModeAuto, new(bytes.Buffer))
	require.NoError(t, err)
	assert.IsType(t, Plain{}, renderer)
	renderer, err = NewRenderer(ModeMarkup, new(bytes.Buffer))
	require.NoError(t, err)
	assert.IsType(t, Markup{}, renderer)
	renderer, err = NewRenderer(ModeANSI, new(bytes.Buffer))
	require.NoError(t, err)
	assert.IsType(t, new(ANSI), renderer)
}
