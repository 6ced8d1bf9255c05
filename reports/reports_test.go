package reports

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/choicepeek/scripts"
)

func TestReporterGroupsByLine(t *testing.T) {
	var transcript Transcript
	r := NewReporter(&transcript, nil)

	r.Enter("*set x (1")
	r.Errorf("Expected '%c'", ')')
	r.Errorf("Expected '%c'", ')')
	r.Errorf("something else")
	r.Enter("*set y 2")
	r.Errorf("Expected '%c'", ')')

	var kinds []EntryKind
	for _, entry := range transcript.Entries {
		kinds = append(kinds, entry.Kind)
	}
	expected := []EntryKind{
		EntryHeader, EntryDiagnostic, EntryDiagnostic,
		EntryHeader, EntryDiagnostic,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("got %v", kinds)
	}
	for i := range kinds {
		if kinds[i] != expected[i] {
			t.Fatalf("got %v", kinds)
		}
	}
	if r.Count() != 3 {
		t.Fatalf("got %v", r.Count())
	}
	if transcript.Entries[0].Text != "Error(s) while evaluating: *set x (1" {
		t.Fatalf("got %q", transcript.Entries[0].Text)
	}
	if len(transcript.Diagnostics()) != 3 {
		t.Fatalf("got %v", transcript.Diagnostics())
	}
}

func TestReporterWithoutLine(t *testing.T) {
	var transcript Transcript
	r := NewReporter(&transcript, nil)
	if r.Assert(false, "broken %d", 1) {
		t.Fatal()
	}
	if len(transcript.Entries) != 1 || transcript.Entries[0].Text != "broken 1" {
		t.Fatalf("got %+v", transcript.Entries)
	}
	if !r.Assert(true, "fine") {
		t.Fatal()
	}
}

func TestTranscriptClassifies(t *testing.T) {
	var transcript Transcript
	transcript.AppendLine(3, "*choice")
	transcript.AppendLine(4, "\t#Go")
	transcript.AppendNoChoice(9, "*finish")
	lines := transcript.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %v", lines)
	}
	if lines[0].Class != scripts.ClassCommand || lines[1].Class != scripts.ClassOption {
		t.Fatalf("got %+v", lines)
	}
	if !lines[2].NoChoice || lines[2].LineNumber != 9 {
		t.Fatalf("got %+v", lines[2])
	}
}

func TestPosError(t *testing.T) {
	err := WithPos(errors.New("Expected ')'"), "*set x (1 + 2", 13)
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %q", err.Error())
	}
	if lines[0] != "Expected ')' at 13" {
		t.Fatalf("got %q", lines[0])
	}
	if lines[2] != strings.Repeat(" ", 13)+"^" {
		t.Fatalf("got %q", lines[2])
	}
	if WithPos(err, "other", 0) != err {
		t.Fatal("should not rewrap")
	}
	if WithPos(nil, "", 0) != nil {
		t.Fatal()
	}
}
