package explores

import (
	"time"

	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/choicepeek/peekconfigs"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/walkers"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs peekconfigs.Module
	Logs    logs.Module
}

func (Module) Explorer(
	logger logs.Logger,
	newSpan logs.NewSpan,
	sceneOptions scenes.Options,
	walkOptions walkers.Options,
	loadMoreLines peekconfigs.LoadMoreLines,
	scenario peekconfigs.ScenarioOverride,
	timeZone peekconfigs.TimeZone,
) *Explorer {
	var location *time.Location
	if timeZone != "" {
		var err error
		location, err = time.LoadLocation(string(timeZone))
		if err != nil {
			logger.Warn("load time zone",
				"name", timeZone,
				"error", err,
			)
		}
	}
	return New(
		scenes.NewStore(sceneOptions, logger),
		Options{
			Walk:             walkOptions,
			LoadMoreLines:    int(loadMoreLines),
			ScenarioOverride: string(scenario),
			Location:         location,
		},
		logger,
	).WithSpans(newSpan)
}
