package explores

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/reusee/choicepeek/exprs"
	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/variables"
	"github.com/reusee/choicepeek/walkers"
	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

const NoChoice = "No choice found..."

type Options struct {
	Walk walkers.Options
	// lines added by one LoadMore call
	LoadMoreLines int
	// a scenario file replacing the resumed scene, empty to disable
	ScenarioOverride string
	// time zone of timestamp()
	Location *time.Location
}

func DefaultOptions() Options {
	return Options{
		Walk:             walkers.DefaultOptions(),
		LoadMoreLines:    50,
		ScenarioOverride: "choicepeek_scenario.txt",
	}
}

// Explorer previews the next decision point of saves. Parsed scenes are
// kept between calls until the save file changes.
type Explorer struct {
	store   *scenes.Store
	options Options
	logger  *slog.Logger
	newSpan logs.NewSpan

	mu   sync.Mutex
	save saveStamp
}

type saveStamp struct {
	path    string
	modTime time.Time
	size    int64
}

func New(store *scenes.Store, options Options, logger *slog.Logger) *Explorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if options.LoadMoreLines <= 0 {
		options.LoadMoreLines = 50
	}
	return &Explorer{
		store:   store,
		options: options,
		logger:  logger,
	}
}

// WithSpans opens a log span for each explore call.
func (e *Explorer) WithSpans(newSpan logs.NewSpan) *Explorer {
	e.newSpan = newSpan
	return e
}

func (e *Explorer) Store() *scenes.Store {
	return e.store
}

// ExploreFile loads a save file and explores it. A save that changed since
// the previous call drops the parsed scenes.
func (e *Explorer) ExploreFile(ctx context.Context, containerPath string, savePath string) (*Preview, error) {
	info, err := os.Stat(savePath)
	if err != nil {
		return nil, wrap(err)
	}
	stamp := saveStamp{
		path:    savePath,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	e.mu.Lock()
	if e.save.path != "" && e.save != stamp {
		e.store.Invalidate()
	}
	e.save = stamp
	e.mu.Unlock()

	state, err := saves.Load(savePath)
	if err != nil {
		return nil, err
	}
	return e.Explore(ctx, containerPath, state)
}

// Explore walks from the cursor of state to the next decision point.
// state is not modified; the returned Preview holds the state after the walk.
// Script problems are reported inside the Preview. Errors are returned only
// when the container can not be read.
func (e *Explorer) Explore(ctx context.Context, containerPath string, state *saves.State) (*Preview, error) {
	if e.newSpan != nil {
		ctx, _ = e.newSpan(ctx, "")
	}

	session, err := e.store.Open(containerPath)
	if err != nil {
		return nil, logs.WrapSpan(ctx, err)
	}
	defer session.Close()

	state = state.Clone()
	transcript := new(reports.Transcript)
	reporter := reports.NewReporter(transcript, e.logger)
	vars := variables.New(state, reporter, e.logger)
	eval := exprs.New(vars, e.logger)
	if e.options.Location != nil {
		eval.WithLocation(e.options.Location)
	}

	preview := &Preview{
		State:         state,
		Vars:          vars,
		Transcript:    transcript,
		loadMoreLines: e.options.LoadMoreLines,
		top:           -1,
		bottom:        -1,
	}

	var source walkers.SceneSource = session
	scene, line, err := e.start(session, state)
	if err == nil {
		if override, ok := e.scenario(state.SceneName); ok {
			e.logger.InfoContext(ctx, "scenario override",
				"path", e.options.ScenarioOverride,
				"scene", override.Name,
			)
			state.Reset()
			scene, line = override, 0
			source = overlay{
				SceneSource: session,
				scene:       override,
			}
		}
	}

	if err == nil {
		e.logger.InfoContext(ctx, "explore",
			"container", containerPath,
			"scene", scene.Name,
			"line", line,
		)
		walker := walkers.New(source, eval, transcript, e.logger, e.options.Walk)
		preview.Result, err = walker.Walk(ctx, scene, line)
		preview.Scene = preview.Result.Scene
		preview.top, preview.bottom = preview.Result.Top, preview.Result.Bottom
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, logs.WrapSpan(ctx, ctxErr)
		}
		e.logger.WarnContext(ctx, "explore failed",
			"error", err,
		)
		preview.Result.Reason = walkers.StopError
		reporter.Enter("")
		reporter.Errorf("Critical error while extracting choices: %s", errorMessage(err))
	}

	e.logger.InfoContext(ctx, "explored",
		"reason", preview.Result.Reason,
		"top", preview.top,
		"bottom", preview.bottom,
		"steps", preview.Result.Steps,
		"diagnostics", reporter.Count(),
	)
	return preview, nil
}

func (e *Explorer) start(session *scenes.Session, state *saves.State) (*scenes.Scene, int, error) {
	scene, err := session.Scene(state.SceneName)
	if err != nil {
		return nil, 0, err
	}
	return scene, state.LineNum, nil
}

// scenario reads the override file when present.
func (e *Explorer) scenario(sceneName string) (*scenes.Scene, bool) {
	if e.options.ScenarioOverride == "" {
		return nil, false
	}
	content, err := os.ReadFile(e.options.ScenarioOverride)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	} else if err != nil {
		e.logger.Warn("read scenario override",
			"path", e.options.ScenarioOverride,
			"error", err,
		)
		return nil, false
	}
	return scenes.ParseScenario(sceneName, string(content))
}

// overlay serves the scenario scene in place of the stored one.
type overlay struct {
	walkers.SceneSource
	scene *scenes.Scene
}

func (o overlay) Scene(name string) (*scenes.Scene, error) {
	if strings.EqualFold(name, o.scene.Name) {
		return o.scene, nil
	}
	return o.SceneSource.Scene(name)
}

// errorMessage is the first line of an error, or the whole message of a
// missing name error listing the known names.
func errorMessage(err error) string {
	var notFound *scenes.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	message, _, _ := strings.Cut(err.Error(), "\n")
	return message
}
