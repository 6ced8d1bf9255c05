package vars

// FirstNonZero picks the first value that is set. Flags, config values and
// defaults are passed in that order.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}
