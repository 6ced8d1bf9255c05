package reports

import (
	"fmt"
	"log/slog"
	"strings"
)

// Reporter collects script diagnostics into a Transcript.
// Diagnostics are grouped under one header per source line, and a message
// identical to the previous one for the same line is dropped.
type Reporter struct {
	transcript *Transcript
	logger     *slog.Logger

	current     string
	lastLine    string
	lastMessage string
	count       int
}

func NewReporter(transcript *Transcript, logger *slog.Logger) *Reporter {
	return &Reporter{
		transcript: transcript,
		logger:     logger,
	}
}

// Enter sets the source line that following diagnostics refer to.
func (r *Reporter) Enter(line string) {
	r.current = line
}

func (r *Reporter) Current() string {
	return r.current
}

func (r *Reporter) Errorf(format string, args ...any) {
	r.report(fmt.Sprintf(format, args...))
}

func (r *Reporter) Error(err error) {
	if err == nil {
		return
	}
	r.report(err.Error())
}

// Assert reports when cond is false and returns cond.
func (r *Reporter) Assert(cond bool, format string, args ...any) bool {
	if !cond {
		r.Errorf(format, args...)
	}
	return cond
}

// Forget clears the grouping state, so the next diagnostic starts a new group.
func (r *Reporter) Forget() {
	r.lastLine = ""
	r.lastMessage = ""
}

func (r *Reporter) Count() int {
	return r.count
}

func (r *Reporter) report(message string) {
	if r.current != "" && r.lastLine != r.current {
		r.transcript.appendDiagnostic(
			EntryHeader,
			"Error(s) while evaluating: "+strings.TrimSpace(r.current),
		)
		r.lastLine = r.current
		r.lastMessage = ""
	}
	if message == r.lastMessage {
		return
	}
	r.lastMessage = message
	r.count++
	r.transcript.appendDiagnostic(EntryDiagnostic, message)
	if r.logger != nil {
		r.logger.Warn("script diagnostic",
			"line", r.current,
			"message", message,
		)
	}
}
