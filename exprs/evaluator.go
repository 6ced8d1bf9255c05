package exprs

import (
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode"

	"github.com/reusee/choicepeek/reports"
	"github.com/reusee/choicepeek/values"
	"github.com/reusee/choicepeek/variables"
)

// Evaluator evaluates script expressions against a variable store.
// Errors never escape: they are reported and the failing evaluation yields false.
type Evaluator struct {
	vars     *variables.Store
	reporter *reports.Reporter
	logger   *slog.Logger
	location *time.Location

	// nesting of quoted strings, decides how many backslashes escape a quote
	depth int
}

func New(vars *variables.Store, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{
		vars:     vars,
		reporter: vars.Reporter(),
		logger:   logger,
		location: time.Local,
	}
}

func (e *Evaluator) Vars() *variables.Store {
	return e.vars
}

// WithLocation sets the time zone timestamp() reads dates in.
func (e *Evaluator) WithLocation(location *time.Location) *Evaluator {
	e.location = location
	return e
}

// Enter starts a new source line.
func (e *Evaluator) Enter(line string) {
	e.reporter.Enter(line)
	e.depth = 0
}

// EvaluateString evaluates a whole expression.
func (e *Evaluator) EvaluateString(expr string) values.Value {
	return e.Evaluate(NewCursor(expr, 0), 0, 0, "")
}

// Condition evaluates the rest of a line from index as a boolean.
func (e *Evaluator) Condition(line string, index int) bool {
	e.logger.Debug("evaluating condition", "line", line)
	result := e.vars.Bool(e.Evaluate(NewCursor(line, index), 0, 0, ""))
	e.logger.Debug("evaluated condition", "result", result)
	return result
}

type failure struct {
	err error
}

func (e *Evaluator) fail(format string, args ...any) {
	panic(failure{err: fmt.Errorf(format, args...)})
}

func (e *Evaluator) expect(c *Cursor, want rune) bool {
	got := c.At(c.Index)
	if got == want {
		return true
	}
	e.reporter.Error(reports.WithPos(
		fmt.Errorf("Expected '%c', found '%s'", want, char(got)),
		c.Text(),
		c.Index,
	))
	return false
}

// Evaluate reads one value starting at c.Index+offset and leaves c.Index on the
// last character consumed, or on the closing character that ended the value.
// With implicit set, a leading operator applies to that variable, as in "*set x +1".
func (e *Evaluator) Evaluate(c *Cursor, offset int, flags Flags, implicit string) (ret values.Value) {
	current := values.None()
	if implicit != "" {
		current = values.Variable(implicit)
	}
	c.Index += offset

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if f, ok := p.(failure); ok {
			p = f.err
		}
		e.reporter.Errorf("Exception at index %d (%s): %v", c.Index, e.vars.Describe(current), p)
		ret = values.Bool(false)
	}()

	// a value may only start here when nothing was read yet
	startsValue := func(what string, token any, at int) {
		if !current.IsNone() && implicit == "" {
			e.reporter.Errorf("No value was expected before %s '%v' at %d, found %s",
				what, token, at, e.vars.Describe(current))
		}
	}
	// an operator needs a left hand side
	needsValue := func(token any, at int) {
		if current.IsNone() {
			e.reporter.Errorf("A value was expected before token '%v' at %d", token, at)
		}
	}

	for ; c.Index < c.Len(); c.Index++ {
		ch := c.At(c.Index)
		if unicode.IsSpace(ch) {
			if flags&StopAtWhitespace != 0 && !current.IsNone() {
				break
			}
			continue
		}

		if flags&StopAtFirstToken != 0 && !current.IsNone() && ch != '[' {
			return current
		}

		if flags&StopAtFirstWord != 0 {
			start := c.Index
			c.Index++
			for c.Index < c.Len() && !unicode.IsSpace(c.At(c.Index)) {
				c.Index++
			}
			return values.String(c.Slice(start, c.Index))
		}

		switch {

		case ch == '"':
			start := c.Index
			e.depth++
			str := e.ParseString(c, 1, '"')
			e.depth--
			e.expect(c, '"')
			startsValue("string", str, start)
			current = values.String(str)

		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			start := c.Index
			for {
				next := c.At(c.Index + 1)
				if !unicode.IsLetter(next) && !unicode.IsDigit(next) && next != '_' && next != '.' {
					break
				}
				c.Index++
			}
			token := c.Slice(start, c.Index+1)

			switch token {
			case "and", "or", "modulo":
				needsValue(token, start)
				left := current
				right := e.Evaluate(c, 1, flags, "")
				switch token {
				case "and":
					l, r := e.vars.Bool(left), e.vars.Bool(right)
					return values.Bool(l && r)
				case "or":
					l, r := e.vars.Bool(left), e.vars.Bool(right)
					return values.Bool(l || r)
				}
				l, r := e.vars.Number(left), e.vars.Number(right)
				return values.Number(math.Mod(l, r))

			case "not":
				startsValue("token", token, start)
				current = values.Bool(!e.vars.Bool(e.function(c, 1, flags)))

			case "log", "length", "round", "timestamp":
				startsValue("function", token, start)
				current = e.call(token, c, flags)

			case "true", "false":
				startsValue("boolean", token, start)
				current = values.Bool(token == "true")

			default:
				// scene names like 1chapter read as variables
				if n, ok := values.ParseNumber(token); ok && unicode.IsDigit(ch) {
					startsValue("number", token, start)
					current = values.Number(n)
				} else {
					startsValue("variable", token, start)
					current = values.Variable(token)
				}
			}

		case ch == '{':
			startsValue("token", string(ch), c.Index)
			current = e.vars.Resolve(e.Evaluate(c, 1, flags.block(), ""))
			if current.Kind() == values.KindString {
				// numbers stored as strings are read back as numbers
				if n, ok := values.ParseNumber(current.Name()); ok {
					current = values.Number(n)
				} else {
					current = values.Variable(current.Name())
				}
			}
			e.logger.Debug("reference", "value", current)
			e.expect(c, '}')

		case ch == '[':
			if current.Kind() != values.KindVariable {
				e.reporter.Errorf("'%s' at %d was expected to be a Variable", e.vars.Describe(current), c.Index)
			}
			index := e.vars.String(e.Evaluate(c, 1, flags.block(), ""))
			current = values.Variable(current.Name() + "_" + index)
			e.expect(c, ']')

		case ch == '(':
			startsValue("token", string(ch), c.Index)
			current = e.function(c, 0, flags)

		case ch == ')' || ch == ']' || ch == '}':
			needsValue(string(ch), c.Index)
			return current

		case ch == '=':
			needsValue(string(ch), c.Index)
			return values.Bool(e.vars.Equal(current, e.Evaluate(c, 1, flags, "")))

		case ch == '!':
			needsValue(string(ch), c.Index)
			if next := c.At(c.Index + 1); next != '=' {
				e.reporter.Errorf("Unexpected token '!%s' at %d", char(next), c.Index)
			}
			return values.Bool(!e.vars.Equal(current, e.Evaluate(c, 2, flags, "")))

		case ch == '<' || ch == '>':
			needsValue(string(ch), c.Index)
			l := e.vars.Number(current)
			if c.At(c.Index+1) == '=' {
				r := e.vars.Number(e.Evaluate(c, 2, flags, ""))
				if ch == '<' {
					return values.Bool(l <= r)
				}
				return values.Bool(l >= r)
			}
			r := e.vars.Number(e.Evaluate(c, 1, flags, ""))
			if ch == '<' {
				return values.Bool(l < r)
			}
			return values.Bool(l > r)

		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^':
			needsValue(string(ch), c.Index)
			l := e.vars.Number(current)
			r := e.vars.Number(e.Evaluate(c, 1, flags, ""))
			switch ch {
			case '+':
				return values.Number(l + r)
			case '-':
				return values.Number(l - r)
			case '*':
				return values.Number(l * r)
			case '/':
				return values.Number(l / r)
			}
			return values.Number(math.Pow(l, r))

		case ch == '&':
			needsValue(string(ch), c.Index)
			l := e.vars.String(current)
			r := e.vars.String(e.Evaluate(c, 1, flags, ""))
			return values.String(l + r)

		case ch == '%':
			op := c.At(c.Index + 1)
			if current.IsNone() {
				e.reporter.Errorf("A value was expected before fairmath '%%%s' at %d", char(op), c.Index)
			}
			n := e.vars.Number(current)
			p := e.vars.Number(e.Evaluate(c, 2, flags, "")) / 100
			if result, ok := Fairmath(n, p, op); ok {
				return values.Number(result)
			}
			e.reporter.Errorf("Unexpected token '%%%s' at %d", char(op), c.Index)

		case ch == '#':
			if current.IsNone() {
				e.reporter.Errorf("A value was expected before CharAt '%c' at %d", ch, c.Index)
			}
			at := e.vars.Int(e.Evaluate(c, 1, flags, "")) - 1
			str := []rune(e.vars.String(current))
			if at < 0 || at >= len(str) {
				e.fail("character index %d out of range of %q", at+1, string(str))
			}
			return values.String(string(str[at]))

		case ch == '\\':
			// escapes are resolved by the string parser, skip to the quote
			for c.At(c.Index+1) == '\\' {
				c.Index++
			}
			if next := c.At(c.Index + 1); next != '"' {
				e.reporter.Errorf("Unexpected escape sequence '\\%s' at %d", char(next), c.Index)
			}

		default:
			e.reporter.Errorf("Unexpected character '%c' at %d", ch, c.Index)

		}
	}

	if current.IsNone() {
		e.reporter.Errorf("A value was expected before end of line at %d", c.Index)
	}
	return current
}

// function evaluates a parenthesized argument.
func (e *Evaluator) function(c *Cursor, offset int, flags Flags) values.Value {
	c.Index += offset
	for unicode.IsSpace(c.At(c.Index)) {
		c.Index++
	}
	e.expect(c, '(')
	ret := e.Evaluate(c, 1, flags.block(), "")
	e.expect(c, ')')
	return ret
}

// Fairmath moves n toward 99 (op '+') or 1 (op '-') by the fraction p of the remaining distance.
func Fairmath(n, p float64, op rune) (float64, bool) {
	switch op {
	case '+':
		return math.Min(99, math.Floor(n+(100-n)*p)), true
	case '-':
		return math.Max(1, math.Ceil(n-n*p)), true
	}
	return 0, false
}
