package scenes

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/reusee/choicepeek/scripts"
	"github.com/tidwall/gjson"
)

// Scene is one named script: its lines and label table.
type Scene struct {
	Name   string
	Lines  []string
	Labels map[string]int
}

func NewScene(name string, lines []string, labels map[string]int) *Scene {
	if labels == nil {
		labels = make(map[string]int)
	}
	return &Scene{
		Name:   name,
		Lines:  lines,
		Labels: labels,
	}
}

// ParseScene decodes a scene blob {"labels": {...}, "lines": [...]},
// appends the implicit *finish and normalizes indentation.
func ParseScene(name string, data []byte) (*Scene, error) {
	if !gjson.ValidBytes(data) {
		return nil, wrap(fmt.Errorf("%w: scene %s", ErrInvalidScene, name))
	}
	root := gjson.ParseBytes(data)

	lines := root.Get("lines")
	if !lines.IsArray() {
		return nil, wrap(fmt.Errorf("%w: scene %s has no lines", ErrInvalidScene, name))
	}
	scene := NewScene(name, nil, nil)
	lines.ForEach(func(_, value gjson.Result) bool {
		scene.Lines = append(scene.Lines, value.String())
		return true
	})
	root.Get("labels").ForEach(func(key, value gjson.Result) bool {
		scene.Labels[key.String()] = int(value.Int())
		return true
	})

	scene.Lines = Autofinish(scene.Lines)
	Normalize(scene.Lines)

	return scene, nil
}

var terminators = map[string]bool{
	"finish":               true,
	"finish_advertisement": true,
	"goto_scene":           true,
	"goto_random_scene":    true,
	"ending":               true,
	"restart":              true,
	"abort":                true,
}

// Autofinish appends *finish unless the last non-blank line is an
// unindented command that already leaves the scene.
func Autofinish(lines []string) []string {
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if scripts.IsBlank(line) {
			continue
		}
		if scripts.Indentation(line) == 0 {
			if command, ok := scripts.Command(line); ok && terminators[command] {
				return lines
			}
		}
		break
	}
	return append(lines, "*finish")
}

// Normalize rewrites space indentation to one tab per level in place.
// Scenes with any tab indented line are left as they are. Widths are tracked
// per depth since authors mix 1 and 2 space indents:
//
//	*if true   [0]
//	  Hello    [0 1 1]
//	 World     [0 1]
//	*else      [0]
func Normalize(lines []string) {
	for _, line := range lines {
		if strings.HasPrefix(line, "\t") {
			return
		}
	}

	tabs := []int{0}
	for i, line := range lines {
		indentation := scripts.Indentation(line)
		rest := strings.TrimLeftFunc(line, unicode.IsSpace)
		if rest == "" {
			continue
		}

		delta := indentation + 1 - len(tabs)
		if delta > 0 {
			tab := tabs[len(tabs)-1] + 1
			for range delta {
				tabs = append(tabs, tab)
			}
		} else if delta < 0 {
			tabs = tabs[:len(tabs)+delta]
		}

		if indentation > 0 {
			lines[i] = strings.Repeat("\t", tabs[indentation]) + rest
		}
	}
}

// Label returns the line index of a label. Names match case-insensitively.
func (s *Scene) Label(name string) (int, error) {
	if line, ok := s.Labels[name]; ok {
		return line, nil
	}
	lower := strings.ToLower(name)
	for label, line := range s.Labels {
		if strings.ToLower(label) == lower {
			return line, nil
		}
	}

	type entry struct {
		name string
		line int
	}
	var entries []entry
	for label, line := range s.Labels {
		entries = append(entries, entry{label, line})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.line, b.line), cmp.Compare(a.name, b.name))
	})
	known := make([]string, 0, len(entries))
	for _, e := range entries {
		known = append(known, strconv.Itoa(e.line)+": "+e.name)
	}
	return 0, wrap(&NotFoundError{
		Kind:  "Label",
		Name:  name,
		Scene: s.Name,
		Known: known,
	})
}

func (s *Scene) Len() int {
	return len(s.Lines)
}

func (s *Scene) Indentation(line int) int {
	return scripts.Indentation(s.Lines[line])
}

func (s *Scene) IsBlank(line int) bool {
	return scripts.IsBlank(s.Lines[line])
}

// BlockEnd returns the last line of the block a line opens: the following
// lines that are blank or indented deeper.
func (s *Scene) BlockEnd(line int) int {
	indentation := s.Indentation(line)
	end := line
	for end+1 < len(s.Lines) && (s.IsBlank(end+1) || s.Indentation(end+1) > indentation) {
		end++
	}
	return end
}

// SceneList reads the scene order from the *scene_list block.
func (s *Scene) SceneList() (names []string, ok bool) {
	start := slices.Index(s.Lines, "*scene_list")
	if start < 0 {
		return nil, false
	}
	for i := start + 1; i < len(s.Lines) && s.Indentation(i) > 0; i++ {
		if s.IsBlank(i) {
			continue
		}
		name := strings.TrimSpace(strings.ReplaceAll(s.Lines[i], "$", ""))
		if name != "" {
			names = append(names, name)
		}
	}
	return names, true
}

// Clone copies the lines and labels so they can be replaced without touching a cached scene.
func (s *Scene) Clone() *Scene {
	return &Scene{
		Name:   s.Name,
		Lines:  slices.Clone(s.Lines),
		Labels: maps.Clone(s.Labels),
	}
}
