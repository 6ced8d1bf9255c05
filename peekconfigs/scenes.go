package peekconfigs

import (
	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/vars"
)

type StartupScene string

var startupFlag = cmds.Var[string]("-startup", "name of the startup scene")

func (Module) StartupScene(
	loader configs.Loader,
) StartupScene {
	return StartupScene(vars.FirstNonZero(
		*startupFlag,
		configs.First[string](loader, "startup_scene"),
		scenes.DefaultOptions().Startup,
	))
}

// SceneOptions locates scenes in the container.
func (Module) SceneOptions(
	loader configs.Loader,
	startup StartupScene,
) scenes.Options {
	defaults := scenes.DefaultOptions()
	return scenes.Options{
		ManifestPath: vars.FirstNonZero(
			configs.First[string](loader, "manifest_path"),
			defaults.ManifestPath,
		),
		Suffix: vars.FirstNonZero(
			configs.First[string](loader, "scene_suffix"),
			defaults.Suffix,
		),
		Anchor: vars.FirstNonZero(
			configs.First[string](loader, "data_anchor"),
			defaults.Anchor,
		),
		Startup: string(startup),
	}
}
