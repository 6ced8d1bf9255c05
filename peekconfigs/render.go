package peekconfigs

import (
	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/formats"
	"github.com/reusee/choicepeek/vars"
)

var renderFlag = cmds.Var[string]("-render", "output mode: markup, ansi, plain or auto")

// RenderMode is checked by formats.ParseMode.
func (Module) RenderMode(
	loader configs.Loader,
) formats.Mode {
	return formats.Mode(vars.FirstNonZero(
		*renderFlag,
		configs.First[string](loader, "render"),
		string(formats.ModeAuto),
	))
}
