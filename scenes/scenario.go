package scenes

import (
	"slices"
	"strings"

	"github.com/reusee/choicepeek/scripts"
)

// ParseScenario builds a scene from a plain text script, used to replace the
// current scene with a hand written scenario. A first line of *skip_test
// disables the scenario.
func ParseScenario(name string, content string) (*Scene, bool) {
	content = strings.ReplaceAll(content, "\r", "")
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[0] == "*skip_test" {
		return nil, false
	}

	scene := NewScene(name, lines, nil)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*label ") {
			scene.Labels[strings.TrimSpace(line[len("*label "):])] = i
		}
	}
	return scene, true
}

// Compile builds a scene from script lines the way the container stores
// them: labels indexed by lower cased name, *finish appended when missing,
// indentation normalized.
func Compile(name string, lines []string) *Scene {
	lines = Autofinish(slices.Clone(lines))
	Normalize(lines)
	scene := NewScene(name, lines, nil)
	for i, line := range lines {
		if command, ok := scripts.Command(line); ok && command == "label" {
			_, end := scripts.CommandBounds(line)
			scene.Labels[strings.ToLower(strings.TrimSpace(line[end:]))] = i
		}
	}
	return scene
}
