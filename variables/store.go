package variables

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/values"
)

type Partition uint8

const (
	// temps, unless stats already holds the name
	PartitionAuto Partition = iota
	PartitionTemps
	PartitionStats
)

const (
	internalPrefix = "choice_"
	purchasePrefix = "choice_purchase"
)

// Store reads and writes script variables of one save state.
// Conversion failures are reported and yield zero values.
type Store struct {
	state    *saves.State
	reporter *reports.Reporter
	logger   *slog.Logger
	merged   bool
}

func New(state *saves.State, reporter *reports.Reporter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		state:    state,
		reporter: reporter,
		logger:   logger,
	}
}

func (s *Store) State() *saves.State {
	return s.state
}

func (s *Store) Reporter() *reports.Reporter {
	return s.reporter
}

func (s *Store) find(name string) (any, bool) {
	key := strings.ToLower(name)
	if v, ok := s.state.Temps[key]; ok {
		return v, true
	}
	if v, ok := s.state.Stats[key]; ok {
		return v, true
	}
	if key != name {
		if v, ok := s.state.Temps[name]; ok {
			return v, true
		}
		if v, ok := s.state.Stats[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// lookup finds a stored value. Engine internal names always exist;
// boolAccepted tells whether the caller can take the purchase flag's true.
func (s *Store) lookup(name string, boolAccepted bool) (any, bool) {
	if v, ok := s.find(name); ok {
		return v, true
	}

	if strings.HasPrefix(strings.ToLower(name), internalPrefix) {
		if boolAccepted && strings.HasPrefix(strings.ToLower(name), purchasePrefix) {
			return true, true
		}
		return nil, true
	}

	if !s.merged {
		s.merged = true
		if len(s.state.StartingStats) > 0 {
			s.logger.Debug("merging starting stats", "count", len(s.state.StartingStats))
			for k, v := range s.state.StartingStats {
				if _, ok := s.state.Stats[k]; !ok {
					s.state.Stats[k] = saves.CloneValue(v)
				}
			}
		}
		return s.lookup(name, boolAccepted)
	}

	return nil, false
}

// Lookup returns the stored value of a name, if any.
func (s *Store) Lookup(name string) (any, bool) {
	return s.lookup(name, true)
}

func (s *Store) variable(name string, kind values.Kind) (any, bool) {
	raw, ok := s.lookup(name, kind == values.KindBool)
	if !ok {
		s.reporter.Errorf("Variable couldn't be found: '%s'", name)
		return nil, false
	}
	if raw == nil && strings.HasPrefix(strings.ToLower(name), internalPrefix) {
		switch kind {
		case values.KindBool:
			return false, true
		case values.KindNumber:
			return float64(0), true
		}
		return "", true
	}
	return raw, true
}

func (s *Store) conversionFailed(name string, raw any, kind values.Kind) {
	s.reporter.Errorf(
		"Couldn't convert variable '%s's value from '%s' (%s) to %s",
		name, values.FormatRaw(raw), typeName(raw), kind,
	)
}

func typeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "Null"
	case bool:
		return "Boolean"
	case float64:
		return "Double"
	case string:
		return "String"
	case []any:
		return "Array"
	case map[string]any:
		return "Object"
	}
	return fmt.Sprintf("%T", raw)
}

func (s *Store) Bool(v values.Value) bool {
	switch v.Kind() {
	case values.KindBool:
		return v.Raw().(bool)
	case values.KindVariable:
		raw, ok := s.variable(v.Name(), values.KindBool)
		if !ok {
			return false
		}
		b, err := values.ToBool(raw)
		if err != nil {
			s.conversionFailed(v.Name(), raw, values.KindBool)
			return false
		}
		return b
	}
	b, err := values.ToBool(v.Raw())
	if err != nil {
		s.reporter.Errorf("Couldn't convert %s to %s", s.Describe(v), values.KindBool)
		return false
	}
	return b
}

func (s *Store) Number(v values.Value) float64 {
	switch v.Kind() {
	case values.KindNumber:
		return v.Raw().(float64)
	case values.KindVariable:
		raw, ok := s.variable(v.Name(), values.KindNumber)
		if !ok {
			return 0
		}
		n, err := values.ToNumber(raw)
		if err != nil {
			s.conversionFailed(v.Name(), raw, values.KindNumber)
			return 0
		}
		return n
	}
	n, err := values.ToNumber(v.Raw())
	if err != nil {
		s.reporter.Errorf("Couldn't convert %s to %s", s.Describe(v), values.KindNumber)
		return 0
	}
	return n
}

// Int rounds in single precision, half to even.
func (s *Store) Int(v values.Value) int {
	return values.RoundToInt(float64(float32(s.Number(v))))
}

func (s *Store) String(v values.Value) string {
	switch v.Kind() {
	case values.KindString:
		return v.Raw().(string)
	case values.KindVariable:
		raw, ok := s.variable(v.Name(), values.KindString)
		if !ok {
			return ""
		}
		str, err := values.ToString(raw)
		if err != nil {
			s.conversionFailed(v.Name(), raw, values.KindString)
			return ""
		}
		return str
	}
	str, err := values.ToString(v.Raw())
	if err != nil {
		s.reporter.Errorf("Couldn't convert %s to %s", s.Describe(v), values.KindString)
		return ""
	}
	return str
}

// Resolve replaces a Variable with the scalar it names.
// Unknown names and null values leave the Variable as is.
func (s *Store) Resolve(v values.Value) values.Value {
	if v.Kind() != values.KindVariable {
		return v
	}
	raw, ok := s.lookup(v.Name(), true)
	if !ok || raw == nil {
		return v
	}
	resolved, ok := values.FromRaw(raw)
	if !ok {
		s.reporter.Errorf("Unrecognized token (%s) value: %v (%s)", v, raw, typeName(raw))
		return v
	}
	return resolved
}

// Raw converts a value to what is stored for it. Variables are resolved,
// None and unknown variables become null.
func (s *Store) Raw(v values.Value) any {
	switch v.Kind() {
	case values.KindNone:
		return nil
	case values.KindVariable:
		raw, ok := s.lookup(v.Name(), true)
		if !ok {
			return nil
		}
		return saves.CloneValue(raw)
	}
	return v.Raw()
}

func (s *Store) Equal(a, b values.Value) bool {
	return values.Equal(a, b, s.Resolve)
}

// Describe renders a value for diagnostics, including a variable's current value.
func (s *Store) Describe(v values.Value) string {
	if v.Kind() == values.KindVariable {
		if raw, ok := s.find(v.Name()); ok {
			return fmt.Sprintf("'%s:%s' (%s<%s>)", v.Name(), values.FormatRaw(raw), v.Kind(), typeName(raw))
		}
	}
	return v.String()
}

// Set stores a raw value under the lower cased name.
func (s *Store) Set(name string, raw any, partition Partition) {
	key := strings.ToLower(name)
	stats := partition == PartitionStats
	if partition == PartitionAuto {
		_, stats = s.state.Stats[key]
	}
	if stats {
		s.state.Stats[key] = raw
	} else {
		s.state.Temps[key] = raw
	}
	s.logger.Debug("set variable",
		"name", key,
		"value", raw,
		"stats", stats,
	)
}

func (s *Store) SetValue(name string, v values.Value, partition Partition) {
	s.Set(name, s.Raw(v), partition)
}

// ReplaceTemps swaps in a new temps partition and returns the old one.
func (s *Store) ReplaceTemps(temps map[string]any) map[string]any {
	old := s.state.Temps
	if temps == nil {
		temps = make(map[string]any)
	}
	s.state.Temps = temps
	return old
}
