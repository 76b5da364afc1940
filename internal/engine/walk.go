package engine

import (
	"bytes"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/redactyl/shotredact/internal/types"
)

// Unlisted returns the image files directly inside dir that have no entry
// in t. Subdirectories are not visited.
func Unlisted(dir string, t types.Table) ([]string, error) {
	listed := make(map[string]bool, len(t))
	for _, e := range t {
		listed[e.File] = true
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, d := range ents {
		if d.IsDir() || listed[d.Name()] || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		if looksImage(filepath.Join(dir, d.Name())) {
			out = append(out, d.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// looksImage uses the extension first and falls back to a header sniff
// for PNG and JPEG.
func looksImage(path string) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return strings.HasPrefix(ct, "image/") && !strings.Contains(ct, "svg")
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var head [8]byte
	n, _ := f.Read(head[:])
	b := head[:n]
	return bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) || bytes.HasPrefix(b, []byte{0xff, 0xd8, 0xff})
}
