package peekconfigs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/modes"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/walkers"
	"github.com/reusee/dscope"
)

func newTestScope(t *testing.T, content string) dscope.Scope {
	t.Helper()
	path := filepath.Join(t.TempDir(), "choicepeek.cue")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{path}, schema)
		},
	)
}

func TestConfigValues(t *testing.T) {
	newTestScope(t, `
container: "game.asar"
startup_scene: "intro"
manifest_path: "files.scenes.files"
input_lines: 10
seed: 7
render: "markup"
`).Call(func(
		container ContainerPath,
		save SavePath,
		scenario ScenarioOverride,
		loadMore LoadMoreLines,
		sceneOptions scenes.Options,
		walkOptions walkers.Options,
		mode formats.Mode,
	) {
		if container != "game.asar" || save != "" {
			t.Fatalf("got %v %v", container, save)
		}
		if scenario != "choicepeek_scenario.txt" {
			t.Fatalf("got %v", scenario)
		}
		if loadMore != 50 {
			t.Fatalf("got %v", loadMore)
		}
		if sceneOptions != (scenes.Options{
			ManifestPath: "files.scenes.files",
			Suffix:       ".txt.json",
			Anchor:       "const",
			Startup:      "intro",
		}) {
			t.Fatalf("got %+v", sceneOptions)
		}
		if walkOptions != (walkers.Options{
			InputLines: 10,
			MaxSteps:   walkers.DefaultOptions().MaxSteps,
			Seed:       7,
			Startup:    "intro",
		}) {
			t.Fatalf("got %+v", walkOptions)
		}
		if mode != formats.ModeMarkup {
			t.Fatalf("got %v", mode)
		}
	})
}

func TestFlagsFirst(t *testing.T) {
	cmds.GlobalExecutor.MustExecute([]string{
		"-input-lines", "3",
		"-container", "other.asar",
	})
	defer cmds.GlobalExecutor.MustExecute([]string{
		"-input-lines.",
		"-container.",
	})
	newTestScope(t, `
container: "game.asar"
input_lines: 10
`).Call(func(
		container ContainerPath,
		walkOptions walkers.Options,
	) {
		if container != "other.asar" {
			t.Fatalf("got %v", container)
		}
		if walkOptions.InputLines != 3 {
			t.Fatalf("got %v", walkOptions.InputLines)
		}
	})
}

func TestSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choicepeek.cue")
	if err := os.WriteFile(path, []byte(`render: "html"`), 0644); err != nil {
		t.Fatal(err)
	}
	loader := configs.NewLoader([]string{path}, schema)
	var render string
	if err := loader.AssignFirst("render", &render); err == nil {
		t.Fatal("should fail")
	}
}

func TestFindConfigs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".choicepeek.cue"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	paths := findConfigs([]string{dir, filepath.Join(dir, "none")})
	if len(paths) != 1 || filepath.Base(paths[0]) != ".choicepeek.cue" {
		t.Fatalf("got %v", paths)
	}
}

func TestCompareSaves(t *testing.T) {
	cmds.GlobalExecutor.MustExecute([]string{
		"-compare", "b.sav",
	})
	defer func() {
		*compareFlag = nil
	}()
	newTestScope(t, `
compare: ["c.sav", "d.sav"]
`).Call(func(
		compare CompareSaves,
	) {
		if len(compare) != 3 || compare[0] != "b.sav" || compare[2] != "d.sav" {
			t.Fatalf("got %v", compare)
		}
	})
}

func TestDevelopmentLoader(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		loader configs.Loader,
		save SavePath,
	) {
		if paths := loader.Paths(); len(paths) != 0 {
			t.Fatalf("got %v", paths)
		}
		if save != "" {
			t.Fatalf("got %v", save)
		}
	})
}
