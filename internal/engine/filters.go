package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/redactyl/shotredact/internal/types"
)

// Select returns the entries of t whose file names match any of the
// comma-separated globs in only (all entries when only is empty). Order
// is preserved. Patterns prefixed with '!' exclude.
func Select(t types.Table, only string) (types.Table, error) {
	includes, excludes, err := parseGlobsList(only)
	if err != nil {
		return nil, err
	}
	if len(includes) == 0 && len(excludes) == 0 {
		return t, nil
	}
	var out types.Table
	for _, e := range t {
		if allowedByGlobs(e.File, includes, excludes) {
			out = append(out, e)
		}
	}
	return out, nil
}

func allowedByGlobs(name string, includes, excludes []string) bool {
	rp := strings.ReplaceAll(name, "\\", "/")
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) (includes, excludes []string, err error) {
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		neg := strings.HasPrefix(p, "!")
		p = trimGlobPrefix(strings.TrimPrefix(p, "!"))
		if !doublestar.ValidatePattern(p) {
			return nil, nil, fmt.Errorf("invalid glob %q", p)
		}
		if neg {
			excludes = append(excludes, p)
		} else {
			includes = append(includes, p)
		}
	}
	return includes, excludes, nil
}

func matchAnyGlob(name string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(name)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
