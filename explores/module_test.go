package explores

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/choicepeek/modes"
	"github.com/reusee/dscope"
)

func TestModule(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() logs.Writer {
			return buf
		},
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
	).Call(func(
		explorer *Explorer,
	) {
		preview, err := explorer.Explore(t.Context(), writeContainer(t), testState("chapter1", 0))
		if err != nil {
			t.Fatal(err)
		}
		if top, _ := preview.Window(); top != 7 {
			t.Fatalf("got %v", top)
		}
		// explore logs carry the span
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.Contains(line, "msg=explored") && !strings.Contains(line, "logs.span=") {
				t.Fatalf("got %v", line)
			}
		}
		if !strings.Contains(buf.String(), "msg=explored") {
			t.Fatalf("got %v", buf.String())
		}
	})
}
