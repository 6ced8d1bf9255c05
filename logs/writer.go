package logs

import (
	"io"
	"os"
)

// Writer receives terminal logs, stderr by default. Previews own stdout.
// Tests fork it with a buffer to inspect span attributes.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
