package explores

import (
	"strings"

	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/scripts"
	"github.com/reusee/choicepeek/variables"
	"github.com/reusee/choicepeek/walkers"
)

type Direction uint8

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Preview is the outcome of one explore: the walk output and a window of
// scene lines around it that can be widened.
type Preview struct {
	// nil when the starting scene could not be loaded
	Scene *scenes.Scene
	// state after the walk
	State      *saves.State
	Vars       *variables.Store
	Transcript *reports.Transcript
	Result     walkers.Result

	loadMoreLines int
	top           int
	bottom        int
	above         []reports.Entry
	below         []reports.Entry
}

// Window returns the first and last scene line shown, both -1 when no scene
// line is shown.
func (p *Preview) Window() (top, bottom int) {
	return p.top, p.bottom
}

// Entries returns the lines added above, the walk output, then the lines added below.
func (p *Preview) Entries() []reports.Entry {
	if p.Transcript.Len() == 0 && len(p.above) == 0 && len(p.below) == 0 {
		return []reports.Entry{{
			Kind:       reports.EntryLine,
			Text:       NoChoice,
			LineNumber: -1,
		}}
	}
	ret := make([]reports.Entry, 0, len(p.above)+p.Transcript.Len()+len(p.below))
	ret = append(ret, p.above...)
	ret = append(ret, p.Transcript.Entries...)
	ret = append(ret, p.below...)
	return ret
}

// ExtendLines returns count scene lines: starting at from when going down,
// ending before from when going up. The range is clamped to the scene.
func (p *Preview) ExtendLines(from int, count int, direction Direction) (ret []reports.Entry) {
	if p.Scene == nil || count <= 0 {
		return nil
	}
	start, end := from, from+count
	if direction == Up {
		start, end = from-count, from
	}
	start = max(start, 0)
	end = min(end, p.Scene.Len())
	for i := start; i < end; i++ {
		text := p.Scene.Lines[i]
		ret = append(ret, reports.Entry{
			Kind:       reports.EntryLine,
			Text:       text,
			LineNumber: i,
			Class:      scripts.Classify(text),
		})
	}
	return
}

// LoadMore widens the window by count lines, or by the configured number
// when count is not positive. It returns the number of lines added.
func (p *Preview) LoadMore(direction Direction, count int) int {
	if p.Scene == nil || p.top < 0 {
		return 0
	}
	if count <= 0 {
		count = p.loadMoreLines
	}
	switch direction {
	case Down:
		count = min(p.bottom+count, p.Scene.Len()-1) - p.bottom
		p.below = append(p.below, p.ExtendLines(p.bottom+1, count, Down)...)
		p.bottom += count
	case Up:
		count = p.top - max(p.top-count, 0)
		p.above = append(p.ExtendLines(p.top, count, Up), p.above...)
		p.top -= count
	}
	return count
}

// Reset drops the lines added by LoadMore.
func (p *Preview) Reset() {
	p.above = nil
	p.below = nil
	p.top, p.bottom = p.Result.Top, p.Result.Bottom
}

// Block returns the line range of the block starting at line, clamped to the scene.
func (p *Preview) Block(line int) (start, end int) {
	if p.Scene == nil || p.Scene.Len() == 0 {
		return -1, -1
	}
	line = min(max(line, 0), p.Scene.Len()-1)
	return line, p.Scene.BlockEnd(line)
}

// PlainText returns the shown entries without styling.
func (p *Preview) PlainText() string {
	return strings.Join(formats.New(formats.Plain{}, nil).Entries(p.Entries()), "\n")
}

// SceneText returns every line of the current scene.
func (p *Preview) SceneText() string {
	if p.Scene == nil {
		return ""
	}
	return strings.Join(p.Scene.Lines, "\n")
}

// Render formats the shown entries with the values of the state after the walk.
func (p *Preview) Render(renderer formats.Renderer) []string {
	return formats.New(renderer, p.Vars).Entries(p.Entries())
}
