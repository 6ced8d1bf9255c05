package walkers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reusee/choicepeek/exprs"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/scripts"
	"github.com/reusee/choicepeek/values"
	"github.com/reusee/choicepeek/variables"
	"github.com/samber/lo"
)

// conditional runs an if / elseif / else chain. It leaves the cursor on the
// guard of the branch taken, or on the last line before the chain ends.
func (w *Walker) conditional() {
	indentation := w.scene.Indentation(w.line)
	canElse := false
	for w.line < w.scene.Len() {
		line := w.enter(w.line)
		command, _ := scripts.Command(line)
		switch command {
		case "if":
			if w.eval.Condition(line, exprs.CommandEnd(line)) {
				return
			}
			canElse = true
		case "elseif", "elsif":
			if canElse && w.eval.Condition(line, exprs.CommandEnd(line)) {
				return
			}
		case "else":
			if canElse {
				return
			}
		default:
			w.line--
			return
		}

		if !canElse {
			w.logger.Debug("skipped condition", "line", w.line, "text", line)
		}

		// skip the branch
		w.line++
		for w.line < w.scene.Len() &&
			(w.scene.IsBlank(w.line) || w.scene.Indentation(w.line) > indentation) {
			w.line++
		}
		if w.line < w.scene.Len() && w.scene.Indentation(w.line) != indentation {
			w.line--
			return
		}
	}
}

func (w *Walker) argumentError(line string, format string, args ...any) error {
	return wrap(fmt.Errorf("%w: %s: %s", ErrArguments, line, fmt.Sprintf(format, args...)))
}

func (w *Walker) declare(line string, temp bool) error {
	w.logger.Debug("evaluating expression", "line", w.line, "text", line)
	args := w.eval.Arguments(line, exprs.StopAtFirstToken, 0)
	if len(args) == 0 {
		return w.argumentError(line, "missing variable name")
	}
	// the value is optional
	value := values.None()
	if len(args) > 1 {
		value = args[1]
	}
	w.vars.SetValue(args[0].Name(), value, partition(temp))
	return nil
}

func partition(temp bool) variables.Partition {
	if temp {
		return variables.PartitionTemps
	}
	return variables.PartitionStats
}

func (w *Walker) declareArray(line string, temp bool) error {
	args := w.eval.Arguments(line)
	if len(args) < 2 {
		return w.argumentError(line, "expecting a name and a length")
	}
	name := args[0].Name()
	length := w.vars.Int(args[1])
	w.vars.Set(name+"_count", float64(length), partition(temp))
	for i := range length {
		// a single value is shared by all elements
		index := 2
		if len(args) != 3 {
			index = i + 2
		}
		if index >= len(args) {
			return w.argumentError(line, "%d values for %d elements", len(args)-2, length)
		}
		w.vars.SetValue(name+"_"+strconv.Itoa(i+1), args[index], partition(temp))
	}
	return nil
}

func (w *Walker) set(line string, ref bool) {
	w.logger.Debug("evaluating expression", "line", w.line, "text", line)
	c := exprs.NewCursor(line, exprs.CommandEnd(line))
	target := w.eval.Evaluate(c, 0, exprs.StopAtFirstToken, "")
	name := target.Name()
	if ref {
		name = w.vars.String(target)
	}
	value := w.eval.Evaluate(c, 0, 0, name)
	w.vars.SetValue(name, value, variables.PartitionAuto)
	w.logger.Debug("evaluated expression", "name", name, "value", value)
}

// random draws an integer in [min, max] when both bounds are integers,
// otherwise a number in [min, max).
func (w *Walker) random(line string) error {
	w.logger.Debug("evaluating expression", "line", w.line, "text", line)
	args := w.eval.Arguments(line)
	w.reporter.Assert(len(args) == 3, "*rand has %d argument(s) but it expects 3", len(args))
	if len(args) < 3 {
		return w.argumentError(line, "expecting a name and two bounds")
	}

	low, high := w.vars.Number(args[1]), w.vars.Number(args[2])
	if low > high {
		low, high = high, low
	}
	var n float64
	switch {
	case low == high:
		n = low
	case low == math.Trunc(low) && high == math.Trunc(high) &&
		high-low+1 < math.MaxInt64:
		n = low + float64(w.rand.Int64N(int64(high-low)+1))
	default:
		n = low + w.rand.Float64()*(high-low)
	}
	w.vars.Set(args[0].Name(), n, variables.PartitionAuto)
	w.logger.Debug("evaluated expression", "name", args[0].Name(), "value", n)
	return nil
}

// params binds the values passed by *gosub to param_N and to the given names.
func (w *Walker) params(line string) {
	names := w.eval.Arguments(line)
	params := asList(w.vars.State().Temps[saves.ParamKey])
	w.reporter.Assert(len(names) <= len(params),
		"*params has %d argument(s) but subroutine has %d value(s)", len(names), len(params))

	w.vars.Set("param_count", float64(len(params)), variables.PartitionTemps)
	for i, value := range params {
		w.vars.Set("param_"+strconv.Itoa(i+1), saves.CloneValue(value), variables.PartitionTemps)
		if i < len(names) {
			w.vars.Set(names[i].Name(), saves.CloneValue(value), variables.PartitionTemps)
		}
	}
}

// finish moves to the scene following the current one in the scene list.
func (w *Walker) finish() (bool, error) {
	list, err := w.source.SceneList()
	if err != nil {
		return false, err
	}
	index := lo.IndexOf(list, w.scene.Name)
	// startup may be left out of the list
	w.reporter.Assert(index >= 0 || strings.EqualFold(w.scene.Name, w.options.Startup),
		"*scene_list doesn't contain %s", w.scene.Name)
	if index >= len(list)-1 {
		return w.stop(StopEnd)
	}
	scene, err := w.source.Scene(list[index+1])
	if err != nil {
		return false, err
	}
	w.changeScene(scene, -1)
	return false, nil
}

// label resolves the target of *goto, *gosub and *gotoref.
// Names are taken literally unless they contain '{' or '['. A *gotoref
// result that still contains them is evaluated a second time.
func (w *Walker) label(line string, command string) (label string, args []values.Value) {
	switch command {
	case "goto":
		_, end := scripts.CommandBounds(line)
		label = strings.TrimSpace(line[end:])
	case "gotoref":
		label = w.vars.String(w.eval.Evaluate(exprs.NewCursor(line, exprs.CommandEnd(line)), 0, 0, ""))
	default:
		args = w.eval.Arguments(line, exprs.StopAtFirstWord)
		if len(args) > 0 {
			label = args[0].Name()
		}
	}
	if strings.ContainsAny(label, "{[") {
		label = w.eval.EvaluateString(label).Name()
	}
	return label, args
}

func (w *Walker) jump(line string, command string) error {
	if command == "gosub" {
		w.stack = append(w.stack, LocalFrame{
			Line:   w.line,
			Indent: w.scene.Indentation(w.line),
		})
	}

	label, args := w.label(line, command)
	target, err := w.scene.Label(label)
	if err != nil {
		return err
	}
	w.logger.Debug(command, "label", label, "line", target)
	w.line = target

	if command == "gosub" {
		params := make([]any, 0, max(len(args)-1, 0))
		for _, arg := range lo.Drop(args, 1) {
			params = append(params, w.vars.Raw(arg))
		}
		w.vars.Set(saves.ParamKey, params, variables.PartitionTemps)
	}
	return nil
}

// jumpScene runs *goto_scene and *gosub_scene. The new scene starts with
// fresh temps holding the extra arguments as params.
func (w *Walker) jumpScene(line string, gosub bool) error {
	if gosub {
		w.stack = append(w.stack, SceneFrame{
			Scene:  w.scene.Name,
			Line:   w.line,
			Indent: w.scene.Indentation(w.line),
			Temps:  w.vars.State().Temps,
		})
	} else {
		w.dropLocals()
	}

	flags := exprs.StopAtFirstWord
	if strings.ContainsAny(line, "{[") {
		flags = exprs.StopAtFirstToken
	}
	args := w.eval.Arguments(line, flags, flags)
	if len(args) == 0 {
		return w.argumentError(line, "missing scene name")
	}
	scene, err := w.source.Scene(args[0].Name())
	if err != nil {
		return err
	}
	target := -1
	if len(args) >= 2 {
		target, err = scene.Label(args[1].Name())
		if err != nil {
			return err
		}
	}
	params := make([]any, 0, max(len(args)-2, 0))
	for _, arg := range lo.Drop(args, 2) {
		params = append(params, w.vars.Raw(arg))
	}

	w.vars.ReplaceTemps(map[string]any{
		saves.ParamKey: params,
	})
	w.changeScene(scene, target)
	return nil
}

// dropLocals discards the local frames of the current scene.
func (w *Walker) dropLocals() {
	for len(w.stack) > 0 {
		if _, ok := w.stack[len(w.stack)-1].(LocalFrame); !ok {
			return
		}
		w.stack = w.stack[:len(w.stack)-1]
	}
}

func (w *Walker) ret() (bool, error) {
	if len(w.stack) == 0 {
		w.reporter.Errorf("Reached '*return' command but the stack is empty!")
		return w.stop(StopEmptyStack)
	}
	frame := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	switch frame := frame.(type) {
	case LocalFrame:
		w.line = frame.Line
	case SceneFrame:
		scene, err := w.source.Scene(frame.Scene)
		if err != nil {
			return false, err
		}
		w.vars.ReplaceTemps(frame.Temps)
		w.changeScene(scene, frame.Line)
	}
	return false, nil
}
