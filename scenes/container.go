package scenes

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

type Options struct {
	// gjson path of the directory node holding the scene files
	ManifestPath string
	// file name suffix of scene entries, stripped to get the scene name
	Suffix string
	// token marking the start of the data section, entry offsets are relative to it
	Anchor string
	// scene holding the *scene_list block
	Startup string
}

func DefaultOptions() Options {
	return Options{
		ManifestPath: "files.deploy.files.scenes.files",
		Suffix:       ".txt.json",
		Anchor:       "const",
		Startup:      "startup",
	}
}

type entry struct {
	Name   string
	Offset int64
	Size   int64
}

const manifestWindow = 50000

// readManifest locates the manifest document near the start of the container
// and lists the scene entries under opts.ManifestPath in document order.
func readManifest(r io.ReaderAt, size int64, opts Options) ([]entry, error) {
	for window := int64(manifestWindow); ; window *= 2 {
		whole := window >= size
		if whole {
			window = size
		}
		buf := make([]byte, window)
		n, err := r.ReadAt(buf, 0)
		if err != nil && err != io.EOF {
			return nil, wrap(err)
		}
		buf = buf[:n]

		start := bytes.Index(buf, []byte(`{"`))
		if start < 0 {
			if whole {
				return nil, wrap(fmt.Errorf("%w: no manifest", ErrManifest))
			}
			continue
		}
		end, ok := scanManifest(buf, start)
		if !ok {
			if whole {
				return nil, wrap(fmt.Errorf("%w: manifest not closed", ErrManifest))
			}
			continue
		}
		anchor := bytes.Index(buf[end:], []byte(opts.Anchor))
		if anchor < 0 {
			if whole {
				return nil, wrap(fmt.Errorf("%w: anchor %q not found", ErrManifest, opts.Anchor))
			}
			continue
		}
		base := int64(end + anchor)

		manifest := buf[start:end]
		if !gjson.ValidBytes(manifest) {
			return nil, wrap(fmt.Errorf("%w: invalid json", ErrManifest))
		}
		node := gjson.GetBytes(manifest, opts.ManifestPath)
		if !node.IsObject() {
			return nil, wrap(fmt.Errorf("%w: %s not found", ErrManifest, opts.ManifestPath))
		}

		var entries []entry
		node.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if len(name) < len(opts.Suffix) ||
				!strings.EqualFold(name[len(name)-len(opts.Suffix):], opts.Suffix) {
				return true
			}
			entries = append(entries, entry{
				Name: name[:len(name)-len(opts.Suffix)],
				// offsets may be strings
				Offset: value.Get("offset").Int() + base,
				Size:   value.Get("size").Int(),
			})
			return true
		})
		if len(entries) == 0 {
			return nil, wrap(fmt.Errorf("%w: no scenes under %s", ErrManifest, opts.ManifestPath))
		}
		return entries, nil
	}
}

// scanManifest returns the index just past the brace closing the object at start.
func scanManifest(buf []byte, start int) (int, bool) {
	depth := 0
	inString := false
	for i := start; i < len(buf); i++ {
		b := buf[i]
		if inString {
			switch b {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func loadScene(r io.ReaderAt, e entry, logger *slog.Logger) (*Scene, error) {
	buf := make([]byte, e.Size)
	if _, err := r.ReadAt(buf, e.Offset); err != nil && err != io.EOF {
		return nil, wrap(fmt.Errorf("read scene %s: %w", e.Name, err))
	}
	scene, err := ParseScene(e.Name, buf)
	if err != nil {
		return nil, err
	}
	logger.Debug("scene loaded",
		"name", e.Name,
		"lines", len(scene.Lines),
		"labels", len(scene.Labels),
	)
	return scene, nil
}
