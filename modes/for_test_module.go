package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest keeps scopes away from config files of the host. Only files
// given by -config are loaded, so a developer's choicepeek.cue can not change
// walk options or render modes under test.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

// ForTest binds t, for providers that want to register cleanups.
func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

// Mode is always ModeDevelopment.
func (m ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
