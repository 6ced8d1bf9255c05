package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForProduction is installed by the choicepeek command.
type ModuleForProduction struct {
	dscope.Module
}

// ForProduction is passed to dscope.New by cmd/choicepeek, so config
// discovery searches the working dir, the user config dir and /etc.
func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

// T is nil outside tests.
func (ModuleForProduction) T() *testing.T {
	return nil
}

// Mode is read by peekconfigs when deciding which config files to load.
func (ModuleForProduction) Mode() Mode {
	return ModeProduction
}
