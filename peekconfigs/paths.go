package peekconfigs

import (
	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/vars"
)

// ContainerPath is the packed game file.
type ContainerPath string

var containerFlag = cmds.Var[string]("-container", "game container file")

func (Module) ContainerPath(
	loader configs.Loader,
) ContainerPath {
	return ContainerPath(vars.FirstNonZero(
		*containerFlag,
		configs.First[string](loader, "container"),
	))
}

type SavePath string

var saveFlag = cmds.Var[string]("-save", "save file")

func (Module) SavePath(
	loader configs.Loader,
) SavePath {
	return SavePath(vars.FirstNonZero(
		*saveFlag,
		configs.First[string](loader, "save"),
	))
}

// ScenarioOverride is a script file that replaces the resumed scene when it exists.
type ScenarioOverride string

var scenarioFlag = cmds.Var[string]("-scenario", "scenario override file")

func (Module) ScenarioOverride(
	loader configs.Loader,
) ScenarioOverride {
	return ScenarioOverride(vars.FirstNonZero(
		*scenarioFlag,
		configs.First[string](loader, "scenario_override"),
		"choicepeek_scenario.txt",
	))
}

// CompareSaves are extra saves explored alongside SavePath. Flags come first,
// then the compare lists of every config file.
type CompareSaves []string

var compareFlag = cmds.Collect[string]("-compare", "explore another save, may repeat")

func (Module) CompareSaves(
	loader configs.Loader,
) (ret CompareSaves) {
	ret = append(ret, *compareFlag...)
	for paths := range configs.All[[]string](loader, "compare") {
		ret = append(ret, paths...)
	}
	return
}
