package scenes

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
)

// Blob is a named file to be stored in a packed container.
type Blob struct {
	Name string
	Data []byte
}

// EncodeScene renders a scene in the container's scene blob format.
func EncodeScene(lines []string, labels map[string]int) []byte {
	data := []byte(`{"labels":{},"lines":[]}`)
	for name, line := range labels {
		data, _ = sjson.SetBytes(data, "labels."+escapeKey(name), line)
	}
	data, _ = sjson.SetBytes(data, "lines", lines)
	return data
}

// Pack builds a container in the layout Store reads: a binary header, the
// manifest, then the data section starting with the anchor.
// Blob names are file names under the manifest path, like "startup.txt.json".
func Pack(options Options, blobs ...Blob) []byte {
	data := []byte(options.Anchor + " prelude = 1;\n")
	manifest := []byte(`{"files":{}}`)
	for _, blob := range blobs {
		key := options.ManifestPath + "." + escapeKey(blob.Name)
		manifest, _ = sjson.SetBytes(manifest, key+".size", len(blob.Data))
		manifest, _ = sjson.SetBytes(manifest, key+".offset", strconv.Itoa(len(data)))
		data = append(data, blob.Data...)
	}
	manifest, _ = sjson.SetBytes(manifest, "files.package\\.json.size", 2)

	var buf bytes.Buffer
	buf.Write([]byte{4, 0, 0, 0, 0x20, 0, 0, 0})
	buf.Write(manifest)
	buf.Write([]byte{0, 0})
	buf.Write(data)
	return buf.Bytes()
}

func escapeKey(key string) string {
	for _, c := range []string{`\`, ".", "*", "?", "|", "#", "@"} {
		key = strings.ReplaceAll(key, c, `\`+c)
	}
	return key
}
