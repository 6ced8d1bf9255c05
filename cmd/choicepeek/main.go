package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/debugs"
	"github.com/reusee/choicepeek/explores"
	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/choicepeek/modes"
	"github.com/reusee/choicepeek/peekconfigs"
	"github.com/reusee/dscope"
)

var (
	moreDown  = cmds.Var[int]("-more-down", "extend the window downwards by n lines")
	moreUp    = cmds.Var[int]("-more-up", "extend the window upwards by n lines")
	dumpState = cmds.Var[string]("-dump-state", "write the post-walk state to a file")
	sceneText = cmds.Switch("-scene-text", "print the scene source instead of the preview")
	tapState  = cmds.Switch("-tap", "inspect the post-walk state in a starlark repl")
	runREPL   = cmds.Switch("-repl", "evaluate expressions against the post-walk state")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	var err error
	scope.Call(func(
		logger logs.Logger,
		explorer *explores.Explorer,
		container peekconfigs.ContainerPath,
		save peekconfigs.SavePath,
		compare peekconfigs.CompareSaves,
		mode formats.Mode,
		tap debugs.Tap,
	) {
		err = run(ctx, logger, explorer, container, save, compare, mode, tap)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	logger logs.Logger,
	explorer *explores.Explorer,
	container peekconfigs.ContainerPath,
	save peekconfigs.SavePath,
	compare peekconfigs.CompareSaves,
	mode formats.Mode,
	tap debugs.Tap,
) error {
	if container == "" || save == "" {
		cmds.GlobalExecutor.PrintUsage()
		return fmt.Errorf("both -container and -save are required")
	}
	mode, err := formats.ParseMode(string(mode))
	if err != nil {
		return err
	}
	renderer, err := formats.NewRenderer(mode, os.Stdout)
	if err != nil {
		return err
	}

	if len(compare) > 0 {
		return runCompare(ctx, explorer, string(container), append([]string{string(save)}, compare...), renderer)
	}

	preview, err := explorer.ExploreFile(ctx, string(container), string(save))
	if err != nil {
		return err
	}
	if *moreUp > 0 {
		preview.LoadMore(explores.Up, *moreUp)
	}
	if *moreDown > 0 {
		preview.LoadMore(explores.Down, *moreDown)
	}

	if *sceneText {
		fmt.Println(preview.SceneText())
	} else {
		for _, line := range preview.Render(renderer) {
			fmt.Println(line)
		}
	}

	if *dumpState != "" {
		data, err := preview.State.Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*dumpState, data, 0644); err != nil {
			return err
		}
		logger.InfoContext(ctx, "state dumped",
			"path", *dumpState,
		)
	}

	if *tapState {
		top, bottom := preview.Window()
		tap(ctx, "state", map[string]any{
			"stats":  preview.State.Stats,
			"temps":  preview.State.Temps,
			"scene":  preview.State.SceneName,
			"line":   preview.State.LineNum,
			"top":    top,
			"bottom": bottom,
			"reason": preview.Result.Reason.String(),
		})
	}

	if *runREPL {
		repl(logger, preview, renderer)
	}

	return nil
}

// runCompare prints the previews of several saves one after another.
func runCompare(
	ctx context.Context,
	explorer *explores.Explorer,
	container string,
	savePaths []string,
	renderer formats.Renderer,
) error {
	previews, err := explorer.ExploreAll(ctx, container, savePaths, 0)
	for i, preview := range previews {
		if preview == nil {
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(renderer.Emphasis("== " + savePaths[i]))
		for _, line := range preview.Render(renderer) {
			fmt.Println(line)
		}
	}
	return err
}
