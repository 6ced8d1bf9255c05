package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func() {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	executor.Define("-n", Func(func(n int, s *string) {}).Desc("N"))
	executor.PrintUsage()

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	usage := buf.String()
	for _, expected := range []string{
		"--help, -h, -help, help\tprint this usage\n",
		"-n <int> [string]\tN\n",
		"foo\tFOO\n  bar\tBAR\n  baz\tBAZ\n    qux\tQUX\n",
	} {
		if !strings.Contains(usage, expected) {
			t.Fatalf("got %q", usage)
		}
	}
}
