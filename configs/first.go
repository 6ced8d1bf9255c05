package configs

import (
	"errors"
)

// First decodes the value at path from the first file defining it. A missing
// value gives the zero value, which vars.FirstNonZero then skips in favor of
// the default. Invalid files and undecodable values panic with an error
// naming the file.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
