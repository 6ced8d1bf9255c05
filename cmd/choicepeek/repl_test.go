package main

import (
	"slices"
	"strings"
	"testing"

	"github.com/reusee/choicepeek/explores"
	"github.com/reusee/choicepeek/exprs"
	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/variables"
)

func TestEvaluate(t *testing.T) {
	state := saves.Blank()
	state.Stats["strength"] = float64(50)
	transcript := new(reports.Transcript)
	transcript.AppendLine(0, "*choice")
	vars := variables.New(state, reports.NewReporter(transcript, nil), nil)
	preview := &explores.Preview{
		State:      state,
		Vars:       vars,
		Transcript: transcript,
	}
	eval := exprs.New(vars, nil)

	if got := evaluate(eval, preview, formats.Plain{}, " strength + 1 "); !slices.Equal(got, []string{"'51' (Number)"}) {
		t.Fatalf("got %q", got)
	}
	if got := evaluate(eval, preview, formats.Plain{}, "strength"); !slices.Equal(got, []string{"'50' (Number)"}) {
		t.Fatalf("got %q", got)
	}
	if got := evaluate(eval, preview, formats.Plain{}, ""); got != nil {
		t.Fatalf("got %q", got)
	}

	for range 2 {
		got := evaluate(eval, preview, formats.Plain{}, "(1 + 2")
		if len(got) != 4 ||
			got[1] != "Error(s) while evaluating: (1 + 2" ||
			!strings.HasPrefix(got[2], "Expected ')'") ||
			got[3] != "'3' (Number)" {
			t.Fatalf("got %q", got)
		}
	}
	if transcript.Len() != 1 {
		t.Fatalf("got %v", transcript.Entries)
	}
}
