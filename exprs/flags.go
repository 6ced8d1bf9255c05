package exprs

// Flags control how much of a line one evaluation consumes.
// Without flags the rest of the line is evaluated.
type Flags uint8

const (
	// stop after one complete token, "a >= 1" yields a. "a[i]" is one token.
	StopAtFirstToken Flags = 1 << iota
	// return the next whitespace delimited word as a string without evaluating it
	StopAtFirstWord
	// stop at whitespace once a value is read, so "a>=1" is evaluated fully but "a >= 1" yields a
	StopAtWhitespace
)

// block drops the flags that do not apply inside (), {} and [].
func (f Flags) block() Flags {
	return f &^ (StopAtFirstToken | StopAtWhitespace)
}
