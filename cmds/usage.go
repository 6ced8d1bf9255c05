package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

// WriteUsage lists commands by name. Aliases are shown with the command
// they belong to.
func (p *Executor) WriteUsage(w io.Writer) {
	writeUsage(w, p.commands, 0)
}

func writeUsage(w io.Writer, commands map[string]*Command, depth int) {
	sorted := slices.Sorted(maps.Keys(commands))
	seen := make(map[*Command]bool)
	for _, name := range sorted {
		command := commands[name]
		if command == nil || seen[command] {
			continue
		}
		seen[command] = true
		names := lo.Filter(sorted, func(n string, _ int) bool {
			return commands[n] == command
		})
		line := strings.Repeat("  ", depth) + strings.Join(names, ", ")
		if params := command.Params(); len(params) > 0 {
			line += " " + strings.Join(params, " ")
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeUsage(w, command.Subs, depth+1)
		}
	}
}
