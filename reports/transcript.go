package reports

import "github.com/reusee/choicepeek/scripts"

type EntryKind uint8

const (
	EntryLine EntryKind = iota
	EntryHeader
	EntryDiagnostic
)

type Entry struct {
	Kind EntryKind
	Text string
	// scene line index, -1 for diagnostics
	LineNumber int
	Class      scripts.Class
	// set on the line a walk stopped at without finding a decision point
	NoChoice bool
}

// Transcript is the ordered output of one explore: script lines passed
// through and the diagnostics reported while producing them.
type Transcript struct {
	Entries []Entry
}

func (t *Transcript) AppendLine(lineNumber int, text string) {
	t.Entries = append(t.Entries, Entry{
		Kind:       EntryLine,
		Text:       text,
		LineNumber: lineNumber,
		Class:      scripts.Classify(text),
	})
}

func (t *Transcript) AppendNoChoice(lineNumber int, text string) {
	t.Entries = append(t.Entries, Entry{
		Kind:       EntryLine,
		Text:       text,
		LineNumber: lineNumber,
		Class:      scripts.Classify(text),
		NoChoice:   true,
	})
}

func (t *Transcript) appendDiagnostic(kind EntryKind, text string) {
	t.Entries = append(t.Entries, Entry{
		Kind:       kind,
		Text:       text,
		LineNumber: -1,
	})
}

func (t *Transcript) Len() int {
	return len(t.Entries)
}

func (t *Transcript) Lines() (ret []Entry) {
	for _, entry := range t.Entries {
		if entry.Kind == EntryLine {
			ret = append(ret, entry)
		}
	}
	return
}

func (t *Transcript) Diagnostics() (ret []string) {
	for _, entry := range t.Entries {
		if entry.Kind == EntryDiagnostic {
			ret = append(ret, entry.Text)
		}
	}
	return
}
