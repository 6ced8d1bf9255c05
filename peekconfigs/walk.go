package peekconfigs

import (
	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/vars"
	"github.com/reusee/choicepeek/walkers"
)

type LoadMoreLines int

var loadMoreLinesFlag = cmds.Var[int]("-load-more-lines", "default line count for window extension")

func (Module) LoadMoreLines(
	loader configs.Loader,
) LoadMoreLines {
	return LoadMoreLines(vars.FirstNonZero(
		*loadMoreLinesFlag,
		configs.First[int](loader, "load_more_lines"),
		50,
	))
}

// TimeZone is the IANA name timestamp() reads dates in, empty for local time.
type TimeZone string

var timeZoneFlag = cmds.Var[string]("-time-zone", "location for timestamp functions")

func (Module) TimeZone(
	loader configs.Loader,
) TimeZone {
	return TimeZone(vars.FirstNonZero(
		*timeZoneFlag,
		configs.First[string](loader, "time_zone"),
	))
}

var (
	inputLinesFlag = cmds.Var[int]("-input-lines", "lines walked past an input prompt")
	maxStepsFlag   = cmds.Var[int]("-max-steps", "walk step limit")
	seedFlag       = cmds.Var[uint64]("-seed", "random seed")
)

func (Module) WalkOptions(
	loader configs.Loader,
	startup StartupScene,
) walkers.Options {
	defaults := walkers.DefaultOptions()
	return walkers.Options{
		InputLines: vars.FirstNonZero(
			*inputLinesFlag,
			configs.First[int](loader, "input_lines"),
			defaults.InputLines,
		),
		MaxSteps: vars.FirstNonZero(
			*maxStepsFlag,
			configs.First[int](loader, "max_steps"),
			defaults.MaxSteps,
		),
		Seed: vars.FirstNonZero(
			*seedFlag,
			configs.First[uint64](loader, "seed"),
		),
		Startup: string(startup),
	}
}
