package scenes

import (
	"errors"
	"strings"

	"github.com/reusee/e5"
)

var (
	wrap = e5.Wrap.With(e5.WrapStacktrace)

	ErrSceneNotFound = errors.New("scene not found")
	ErrLabelNotFound = errors.New("label not found")
	ErrManifest      = errors.New("bad container manifest")
	ErrInvalidScene  = errors.New("invalid scene data")
)

// NotFoundError names a missing scene or label and lists what exists.
type NotFoundError struct {
	// "Scene" or "Label"
	Kind  string
	Name  string
	Scene string
	Known []string
}

func (n *NotFoundError) Error() string {
	var sb strings.Builder
	sb.WriteString(n.Kind + " '" + n.Name + "' isn't found")
	if n.Kind == "Label" {
		sb.WriteString(" in scene '" + n.Scene + "'. All labels:")
	} else {
		sb.WriteString(". All scenes:")
	}
	for _, name := range n.Known {
		sb.WriteString("\n- ")
		sb.WriteString(name)
	}
	return sb.String()
}

func (n *NotFoundError) Unwrap() error {
	if n.Kind == "Label" {
		return ErrLabelNotFound
	}
	return ErrSceneNotFound
}
