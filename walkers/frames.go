package walkers

import (
	"github.com/reusee/choicepeek/saves"
)

// Frame is a call stack entry: a LocalFrame for *gosub, a SceneFrame for *gosub_scene.
type Frame interface {
	isFrame()
}

// LocalFrame returns to the line after Line in the same scene.
type LocalFrame struct {
	Line   int
	Indent int
}

// SceneFrame returns to the line after Line in Scene and restores Temps.
type SceneFrame struct {
	Scene  string
	Line   int
	Indent int
	Temps  map[string]any
}

func (LocalFrame) isFrame() {}

func (SceneFrame) isFrame() {}

// importStack moves the save's stacks into one call stack. A scene entry's
// temps carry the local frames of the scene that made the call.
func importStack(state *saves.State) (stack []Frame) {
	pushLocals := func(temps map[string]any) {
		for _, item := range asList(temps[saves.SubstackKey]) {
			entry := asObject(item)
			stack = append(stack, LocalFrame{
				Line:   asInt(entry["lineNum"]),
				Indent: asInt(entry["indent"]),
			})
		}
		delete(temps, saves.SubstackKey)
	}

	for _, item := range asList(state.Stats[saves.SubsceneStackKey]) {
		entry := asObject(item)
		temps := asObject(entry["temps"])
		pushLocals(temps)
		name, _ := entry["name"].(string)
		stack = append(stack, SceneFrame{
			Scene:  name,
			Line:   asInt(entry["lineNum"]) - 1,
			Indent: asInt(entry["indent"]),
			Temps:  temps,
		})
	}
	delete(state.Stats, saves.SubsceneStackKey)
	pushLocals(state.Temps)

	return stack
}

// exportStack writes a call stack back in the save's layout.
func exportStack(state *saves.State, stack []Frame) {
	var locals []any
	var scenes []any
	for _, frame := range stack {
		switch frame := frame.(type) {
		case LocalFrame:
			locals = append(locals, map[string]any{
				"lineNum": float64(frame.Line),
				"indent":  float64(frame.Indent),
			})
		case SceneFrame:
			temps := saves.CloneMap(frame.Temps)
			if temps == nil {
				temps = make(map[string]any)
			}
			if len(locals) > 0 {
				temps[saves.SubstackKey] = locals
			}
			locals = nil
			scenes = append(scenes, map[string]any{
				"name":    frame.Scene,
				"lineNum": float64(frame.Line + 1),
				"indent":  float64(frame.Indent),
				"temps":   temps,
			})
		}
	}
	if len(scenes) > 0 {
		state.Stats[saves.SubsceneStackKey] = scenes
	}
	if len(locals) > 0 {
		state.Temps[saves.SubstackKey] = locals
	}
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return make(map[string]any)
}

func asInt(v any) int {
	n, _ := v.(float64)
	return int(n)
}
