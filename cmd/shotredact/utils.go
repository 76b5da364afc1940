package shotredact

import (
	"encoding/json"
	"errors"
	"io"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/redactyl/shotredact/internal/config"
	"github.com/redactyl/shotredact/internal/update"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	_, err = selfupdate.UpdateSelf(semver3.MustParse(ver.String()), update.Repo)
	return err
}

func isNoConfig(err error) bool {
	return errors.Is(err, config.ErrNoConfig)
}

func pickString(cli string, layers ...*string) string {
	if cli != "" {
		return cli
	}
	for _, l := range layers {
		if l != nil && *l != "" {
			return *l
		}
	}
	return ""
}

func pickFloat(cli float64, layers ...*float64) float64 {
	if cli != 0 {
		return cli
	}
	for _, l := range layers {
		if l != nil && *l != 0 {
			return *l
		}
	}
	return 0
}

func pickBool(cli bool, layers ...*bool) bool {
	if cli {
		return true
	}
	if b := firstBool(layers...); b != nil {
		return *b
	}
	return false
}

func firstBool(layers ...*bool) *bool {
	for _, l := range layers {
		if l != nil {
			return l
		}
	}
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
