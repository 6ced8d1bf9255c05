package saves

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrInvalidSave = errors.New("invalid save")

const (
	StartupScene = "startup"

	// stack keys kept inside the partitions
	SubstackKey      = "choice_substack"
	SubsceneStackKey = "choice_subscene_stack"
	ParamKey         = "param"
)

// State is the mutable game state a walk runs against.
// Map values are the JSON scalars bool, float64 and string, or nested []any / map[string]any.
type State struct {
	Stats     map[string]any
	Temps     map[string]any
	LineNum   int
	SceneName string

	// stats a previous installment handed over, merged on demand
	StartingStats map[string]any

	raw []byte
}

// Blank is the state of a game that has not been played yet.
func Blank() *State {
	return &State{
		Stats:     make(map[string]any),
		Temps:     make(map[string]any),
		SceneName: StartupScene,
	}
}

// Parse reads a save document. Anything before the first '{' is ignored;
// content without any '{' is a blank save.
func Parse(content []byte) (*State, error) {
	start := bytes.IndexByte(content, '{')
	if start < 0 {
		return Blank(), nil
	}
	doc := bytes.Clone(content[start:])

	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, wrap(fmt.Errorf("%w: not an object", ErrInvalidSave))
	}

	state := &State{
		Stats:         object(root.Get("stats")),
		Temps:         object(root.Get("temps")),
		LineNum:       int(root.Get("lineNum").Int()),
		SceneName:     root.Get("stats.sceneName").String(),
		StartingStats: object(root.Get("undeleted.startingStats")),
		raw:           doc,
	}
	if state.SceneName == "" {
		state.SceneName = StartupScene
	}
	if state.LineNum < 0 {
		return nil, wrap(fmt.Errorf("%w: negative lineNum %d", ErrInvalidSave, state.LineNum))
	}

	return state, nil
}

func Load(path string) (*State, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(err)
	}
	state, err := Parse(content)
	if err != nil {
		return nil, wrap(fmt.Errorf("load %s: %w", path, err))
	}
	return state, nil
}

func object(result gjson.Result) map[string]any {
	if m, ok := result.Value().(map[string]any); ok {
		return m
	}
	return make(map[string]any)
}

// Clone returns a state sharing nothing mutable with s.
func (s *State) Clone() *State {
	return &State{
		Stats:         CloneMap(s.Stats),
		Temps:         CloneMap(s.Temps),
		LineNum:       s.LineNum,
		SceneName:     s.SceneName,
		StartingStats: CloneMap(s.StartingStats),
		raw:           s.raw,
	}
}

// Reset clears both partitions, as a restart does.
func (s *State) Reset() {
	clear(s.Stats)
	clear(s.Temps)
}

// Marshal patches the partitions and cursor into the parsed document.
// Fields the state does not model are kept as they were.
func (s *State) Marshal() ([]byte, error) {
	doc := s.raw
	if len(doc) == 0 {
		doc = []byte("{}")
	}

	stats := maps.Clone(s.Stats)
	if stats == nil {
		stats = make(map[string]any)
	}
	stats["sceneName"] = s.SceneName

	var err error
	doc, err = sjson.SetBytes(doc, "stats", stats)
	if err != nil {
		return nil, wrap(err)
	}
	temps := s.Temps
	if temps == nil {
		temps = make(map[string]any)
	}
	doc, err = sjson.SetBytes(doc, "temps", temps)
	if err != nil {
		return nil, wrap(err)
	}
	doc, err = sjson.SetBytes(doc, "lineNum", s.LineNum)
	if err != nil {
		return nil, wrap(err)
	}

	return doc, nil
}

// CloneMap deep copies JSON-like values.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	ret := make(map[string]any, len(m))
	for k, v := range m {
		ret[k] = CloneValue(v)
	}
	return ret
}

func CloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return CloneMap(v)
	case []any:
		ret := make([]any, len(v))
		for i, e := range v {
			ret[i] = CloneValue(e)
		}
		return ret
	}
	return v
}
