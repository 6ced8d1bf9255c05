package walkers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/reusee/choicepeek/exprs"
	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/scenes"
	"github.com/reusee/choicepeek/scripts"
	"github.com/reusee/choicepeek/variables"
	"github.com/reusee/e5"
)

var (
	wrap = e5.Wrap.With(e5.WrapStacktrace)

	ErrArguments = errors.New("bad command arguments")
)

// SceneSource resolves scene names during a walk.
type SceneSource interface {
	Scene(name string) (*scenes.Scene, error)
	SceneList() ([]string, error)
}

type StopReason uint8

const (
	// choice or fake_choice block
	StopChoice StopReason = iota
	// input_text or input_number
	StopInput
	StopPageBreak
	StopFinish
	// finished the last scene of the scene list
	StopEnd
	// commands a preview can not follow, like *ending
	StopUnsupported
	StopEmptyStack
	StopEndOfScene
	StopStepLimit
	StopError
)

func (s StopReason) String() string {
	switch s {
	case StopChoice:
		return "choice"
	case StopInput:
		return "input"
	case StopPageBreak:
		return "page_break"
	case StopFinish:
		return "finish"
	case StopEnd:
		return "end"
	case StopUnsupported:
		return "unsupported"
	case StopEmptyStack:
		return "empty_stack"
	case StopEndOfScene:
		return "end_of_scene"
	case StopStepLimit:
		return "step_limit"
	case StopError:
		return "error"
	}
	return fmt.Sprintf("StopReason(%d)", s)
}

// IsDecision reports whether the walk reached a point where the player acts.
func (s StopReason) IsDecision() bool {
	return s == StopChoice || s == StopInput
}

type Options struct {
	// lines emitted for an input prompt
	InputLines int
	// commands run before giving up
	MaxSteps int
	// 0 seeds from the clock
	Seed    uint64
	Startup string
}

func DefaultOptions() Options {
	return Options{
		InputLines: 50,
		MaxSteps:   1000000,
		Startup:    "startup",
	}
}

// Result tells where a walk stopped. Top and Bottom bound the emitted
// lines of Scene, both -1 when nothing was emitted.
type Result struct {
	Scene  *scenes.Scene
	Line   int
	Top    int
	Bottom int
	Reason StopReason
	Steps  int
}

// Walker replays script commands against a save state until the next decision point.
type Walker struct {
	source     SceneSource
	eval       *exprs.Evaluator
	vars       *variables.Store
	reporter   *reports.Reporter
	transcript *reports.Transcript
	logger     *slog.Logger
	options    Options
	rand       *rand.Rand

	scene   *scenes.Scene
	line    int
	stack   []Frame
	content bool
	top     int
	bottom  int
	reason  StopReason
	steps   int
}

func New(
	source SceneSource,
	eval *exprs.Evaluator,
	transcript *reports.Transcript,
	logger *slog.Logger,
	options Options,
) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if options.Startup == "" {
		options.Startup = "startup"
	}
	if options.InputLines <= 0 {
		options.InputLines = 50
	}
	seed := options.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Walker{
		source:     source,
		eval:       eval,
		vars:       eval.Vars(),
		reporter:   eval.Vars().Reporter(),
		transcript: transcript,
		logger:     logger,
		options:    options,
		rand:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Walk runs from a line of a scene. The save state's stacks are read before
// the walk and written back after it, with the cursor moved to where it stopped.
func (w *Walker) Walk(ctx context.Context, scene *scenes.Scene, line int) (result Result, err error) {
	state := w.vars.State()
	w.scene = scene
	w.line = line
	w.stack = importStack(state)
	w.content = false
	w.top = -1
	w.bottom = -1
	w.reason = StopEndOfScene
	w.steps = 0

	defer func() {
		exportStack(state, w.stack)
		state.SceneName = w.scene.Name
		state.LineNum = min(max(w.line, 0), max(w.scene.Len()-1, 0))
		if w.top >= 0 {
			state.LineNum = w.top
		}
		if err != nil {
			w.reason = StopError
		}
		result = Result{
			Scene:  w.scene,
			Line:   w.line,
			Top:    w.top,
			Bottom: w.bottom,
			Reason: w.reason,
			Steps:  w.steps,
		}
		w.logger.Debug("walk stopped",
			"scene", w.scene.Name,
			"line", w.line,
			"reason", w.reason,
			"steps", w.steps,
		)
	}()

	defer func() {
		if p := recover(); p != nil {
			err = wrap(fmt.Errorf("line %d of scene %s: %v", w.line, w.scene.Name, p))
		}
	}()

	if w.line < 0 || w.line >= w.scene.Len() {
		return result, wrap(fmt.Errorf("line %d out of scene %s with %d lines", w.line, w.scene.Name, w.scene.Len()))
	}
	w.logger.Debug("walk",
		"scene", w.scene.Name,
		"line", w.line,
		"text", strings.TrimSpace(w.scene.Lines[w.line]),
	)

	for ; w.line < w.scene.Len(); w.line++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if w.options.MaxSteps > 0 && w.steps >= w.options.MaxSteps {
			w.reporter.Enter("")
			w.reporter.Errorf("Stopped after %d steps, the script may loop forever", w.steps)
			w.reason = StopStepLimit
			break
		}
		w.steps++

		stop, err := w.step()
		if err != nil {
			return result, err
		}
		if stop {
			break
		}
	}

	if w.line < w.scene.Len() && w.top < 0 {
		w.transcript.AppendNoChoice(w.line, w.scene.Lines[w.line])
		w.top = w.line
		w.bottom = w.line
	}

	return result, nil
}

// enter makes a line current for diagnostics and returns it trimmed.
func (w *Walker) enter(line int) string {
	text := strings.TrimSpace(w.scene.Lines[line])
	w.eval.Enter(text)
	return text
}

func (w *Walker) stop(reason StopReason) (bool, error) {
	w.reason = reason
	return true, nil
}

// step runs the command at the current line.
func (w *Walker) step() (stop bool, err error) {
	line := w.enter(w.line)

	if scripts.IsChoiceOption(line) {
		w.logger.Debug("skipped choice", "line", w.line, "text", line)
		indentation := w.scene.Indentation(w.line)
		for w.line < w.scene.Len()-1 &&
			(w.scene.IsBlank(w.line+1) || w.scene.Indentation(w.line+1) >= indentation) {
			w.line++
		}
		return false, nil
	}

	command, _ := scripts.Command(line)
	switch command {

	case "":
		if !w.scene.IsBlank(w.line) {
			w.content = true
		}

	case "choice", "fake_choice":
		w.top = w.line
		end := w.scene.BlockEnd(w.line)
		for ; w.line <= end; w.line++ {
			w.transcript.AppendLine(w.line, w.scene.Lines[w.line])
		}
		w.bottom = end
		return w.stop(StopChoice)

	case "input_text", "input_number":
		w.top = w.line
		for i := 0; i < w.options.InputLines && w.line < w.scene.Len(); i++ {
			w.transcript.AppendLine(w.line, w.scene.Lines[w.line])
			w.line++
		}
		w.bottom = w.line - 1
		return w.stop(StopInput)

	case "if", "elseif", "elsif", "else":
		w.conditional()

	case "temp", "create":
		return false, w.declare(line, command == "temp")

	case "temp_array", "create_array":
		return false, w.declareArray(line, command == "temp_array")

	case "set", "setref", "config":
		w.set(line, command == "setref")

	case "rand":
		return false, w.random(line)

	case "params":
		w.params(line)

	case "finish", "finish_advertisement":
		if w.content {
			return w.stop(StopFinish)
		}
		return w.finish()

	case "goto", "gosub", "gotoref":
		return false, w.jump(line, command)

	case "goto_scene", "gosub_scene":
		return false, w.jumpScene(line, command == "gosub_scene")

	case "return":
		return w.ret()

	case "image", "text_image", "youtube", "link", "link_button":
		w.content = true

	case "print":
		value := w.eval.Evaluate(exprs.NewCursor(line, exprs.CommandEnd(line)), 0, 0, "")
		w.logger.Info("print",
			"line", line,
			"value", w.vars.Describe(value),
		)
		w.content = true

	case "achievement", "scene_list":
		// metadata, not page content
		w.line = w.scene.BlockEnd(w.line)

	case "page_break", "page_break_advertisement":
		if w.content {
			return w.stop(StopPageBreak)
		}

	case "restart":
		w.vars.State().Reset()
		w.stack = nil
		scene, err := w.source.Scene(w.options.Startup)
		if err != nil {
			return false, err
		}
		w.changeScene(scene, -1)
		w.content = false

	case "reset":
		w.reporter.Errorf("*reset command isn't supported")

	case "delay_break", "goto_random_scene", "ending", "delay_ending", "abort", "restore_game":
		w.logger.Debug("unsupported command", "command", command)
		return w.stop(StopUnsupported)

	}

	return false, nil
}

// changeScene continues at the line after line of scene.
func (w *Walker) changeScene(scene *scenes.Scene, line int) {
	if scene != w.scene {
		w.logger.Debug("scene changed",
			"from", w.scene.Name,
			"to", scene.Name,
			"line", line+1,
		)
	}
	w.scene = scene
	w.line = line
}
