package exprs

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reusee/choicepeek/values"
)

func (e *Evaluator) call(name string, c *Cursor, flags Flags) values.Value {
	arg := e.function(c, 1, flags)
	switch name {
	case "log":
		return values.Number(math.Log10(e.vars.Number(arg)))
	case "length":
		return values.Number(float64(utf8.RuneCountInString(e.vars.String(arg))))
	case "round":
		// half away from zero
		return values.Number(math.Round(e.vars.Number(arg)))
	case "timestamp":
		t, err := parseTime(e.vars.String(arg), e.location)
		if err != nil {
			e.fail("timestamp: %w", err)
		}
		return values.Number(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
	}
	e.fail("unknown function %s", name)
	return values.None()
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// parseTime reads a date the way the engine's timestamp() does. Dates
// without a zone are in location.
func parseTime(str string, location *time.Location) (t time.Time, err error) {
	str = strings.TrimSpace(str)
	for _, layout := range timeLayouts {
		t, err = time.ParseInLocation(layout, str, location)
		if err == nil {
			return t, nil
		}
	}
	return
}
