package variables

import (
	"strings"
	"testing"

	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/values"
)

func newTestStore() (*Store, *reports.Transcript) {
	state := saves.Blank()
	state.Stats["strength"] = float64(50)
	state.Stats["name"] = "Ada"
	state.Stats["brave"] = true
	state.Stats["level"] = "7"
	state.Temps["strength"] = float64(10)
	state.Temps["list"] = []any{float64(1)}
	state.StartingStats = map[string]any{
		"legacy":   "old",
		"strength": float64(99),
	}
	transcript := new(reports.Transcript)
	return New(state, reports.NewReporter(transcript, nil), nil), transcript
}

func TestLookupOrder(t *testing.T) {
	store, _ := newTestStore()
	v, ok := store.Lookup("STRENGTH")
	if !ok || v != float64(10) {
		t.Fatalf("got %v %v", v, ok)
	}
	v, ok = store.Lookup("name")
	if !ok || v != "Ada" {
		t.Fatalf("got %v %v", v, ok)
	}
}

func TestTypedReads(t *testing.T) {
	store, transcript := newTestStore()
	if n := store.Number(values.Variable("level")); n != 7 {
		t.Fatalf("got %v", n)
	}
	if n := store.Number(values.Variable("brave")); n != 1 {
		t.Fatalf("got %v", n)
	}
	if s := store.String(values.Variable("strength")); s != "10" {
		t.Fatalf("got %v", s)
	}
	if s := store.String(values.Variable("brave")); s != "true" {
		t.Fatalf("got %v", s)
	}
	if !store.Bool(values.Variable("brave")) {
		t.Fatal()
	}
	if store.Int(values.Number(2.5)) != 2 || store.Int(values.Number(3.5)) != 4 {
		t.Fatal()
	}
	if len(transcript.Diagnostics()) != 0 {
		t.Fatalf("got %v", transcript.Diagnostics())
	}

	// conversion failure yields zero
	if n := store.Number(values.Variable("name")); n != 0 {
		t.Fatalf("got %v", n)
	}
	diags := transcript.Diagnostics()
	if len(diags) != 1 || !strings.HasPrefix(diags[0], "Couldn't convert variable 'name'") {
		t.Fatalf("got %v", diags)
	}

	if store.Bool(values.String("maybe")) {
		t.Fatal()
	}
	if len(transcript.Diagnostics()) != 2 {
		t.Fatalf("got %v", transcript.Diagnostics())
	}
}

func TestMissingVariable(t *testing.T) {
	store, transcript := newTestStore()
	if store.Bool(values.Variable("nothing")) {
		t.Fatal()
	}
	diags := transcript.Diagnostics()
	if len(diags) != 1 || diags[0] != "Variable couldn't be found: 'nothing'" {
		t.Fatalf("got %v", diags)
	}
}

func TestInternalNames(t *testing.T) {
	store, transcript := newTestStore()
	if !store.Bool(values.Variable("choice_purchased_adfree")) {
		t.Fatal()
	}
	if store.Bool(values.Variable("choice_achieved_x")) {
		t.Fatal()
	}
	if n := store.Number(values.Variable("choice_purchased_adfree")); n != 0 {
		t.Fatalf("got %v", n)
	}
	if len(transcript.Diagnostics()) != 0 {
		t.Fatalf("got %v", transcript.Diagnostics())
	}
	// internal misses do not trigger the merge
	if _, ok := store.State().Stats["legacy"]; ok {
		t.Fatal()
	}
}

func TestStartingStatsMerge(t *testing.T) {
	store, _ := newTestStore()
	if s := store.String(values.Variable("legacy")); s != "old" {
		t.Fatalf("got %v", s)
	}
	// additive only
	if store.State().Stats["strength"] != float64(50) {
		t.Fatal()
	}
	// once
	store.State().StartingStats["later"] = true
	if _, ok := store.Lookup("later"); ok {
		t.Fatal()
	}
}

func TestResolve(t *testing.T) {
	store, transcript := newTestStore()
	if v := store.Resolve(values.Variable("name")); v.Kind() != values.KindString || v.Name() != "Ada" {
		t.Fatalf("got %v", v)
	}
	if v := store.Resolve(values.Variable("unknown")); v.Kind() != values.KindVariable {
		t.Fatalf("got %v", v)
	}
	if v := store.Resolve(values.Variable("list")); v.Kind() != values.KindVariable {
		t.Fatalf("got %v", v)
	}
	if len(transcript.Diagnostics()) != 1 {
		t.Fatalf("got %v", transcript.Diagnostics())
	}
	if !store.Equal(values.Variable("level"), values.Number(7)) {
		t.Fatal()
	}
	if store.Equal(values.Variable("unknown"), values.Number(7)) {
		t.Fatal()
	}
}

func TestSet(t *testing.T) {
	store, _ := newTestStore()
	state := store.State()

	store.Set("Name", "Bea", PartitionAuto)
	if state.Stats["name"] != "Bea" {
		t.Fatal()
	}
	store.Set("fresh", float64(1), PartitionAuto)
	if state.Temps["fresh"] != float64(1) {
		t.Fatal()
	}
	store.Set("created", true, PartitionStats)
	if state.Stats["created"] != true {
		t.Fatal()
	}
	store.Set("name", "Cy", PartitionTemps)
	if state.Temps["name"] != "Cy" || state.Stats["name"] != "Bea" {
		t.Fatal()
	}

	store.SetValue("copy", values.Variable("strength"), PartitionAuto)
	if state.Temps["copy"] != float64(10) {
		t.Fatal()
	}
	store.SetValue("empty", values.None(), PartitionTemps)
	if v, ok := state.Temps["empty"]; !ok || v != nil {
		t.Fatal()
	}
}

func TestReplaceTemps(t *testing.T) {
	store, _ := newTestStore()
	old := store.ReplaceTemps(nil)
	if old["strength"] != float64(10) {
		t.Fatal()
	}
	if len(store.State().Temps) != 0 {
		t.Fatal()
	}
}
