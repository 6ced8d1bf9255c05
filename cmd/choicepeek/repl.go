package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/choicepeek/explores"
	"github.com/reusee/choicepeek/exprs"
	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/logs"
)

// repl evaluates expressions against the state after the walk.
func repl(logger logs.Logger, preview *explores.Preview, renderer formats.Renderer) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".choicepeek_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	eval := exprs.New(preview.Vars, logger)
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		for _, output := range evaluate(eval, preview, renderer, line) {
			fmt.Println(output)
		}
	}
}

// evaluate returns the value of an expression, after the diagnostics it caused.
func evaluate(eval *exprs.Evaluator, preview *explores.Preview, renderer formats.Renderer, line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	transcript := preview.Transcript
	before := transcript.Len()
	eval.Vars().Reporter().Forget()
	eval.Enter(line)
	value := eval.Vars().Resolve(eval.EvaluateString(line))
	output := formats.New(renderer, nil).Entries(transcript.Entries[before:])
	// the session transcript keeps only walk output
	transcript.Entries = transcript.Entries[:before]
	return append(output, value.String())
}
