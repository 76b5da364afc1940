package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/redactyl/shotredact/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is wrapped by every validation error returned from this package.
	ErrInvalid = errors.New("invalid config")
	// ErrNoConfig means no config file exists at the searched locations.
	ErrNoConfig = errors.New("no config")
)

// FileConfig is the on-disk YAML configuration shape for shotredact.
type FileConfig struct {
	Dir        *string  `yaml:"dir,omitempty"`
	Mode       *string  `yaml:"mode,omitempty"`
	BlurRadius *float64 `yaml:"blur_radius,omitempty"`
	FillColor  *string  `yaml:"fill_color,omitempty"`
	TextColor  *string  `yaml:"text_color,omitempty"`
	Centering  *string  `yaml:"centering,omitempty"`
	BoxPolicy  *string  `yaml:"box_policy,omitempty"`
	Only       *string  `yaml:"only,omitempty"`
	NoColor    *bool    `yaml:"no_color,omitempty"`
	Audit      *bool    `yaml:"audit,omitempty"`

	// Redactions replaces the built-in table when non-empty.
	Redactions types.Table `yaml:"redactions,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given root.
// It supports .shotredact.yml/.yaml and shotredact.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".shotredact.yml", ".shotredact.yaml", "shotredact.yml", "shotredact.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("%w: no local config in %s", ErrNoConfig, root)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := Dir()
	if base == "" {
		return cfg, fmt.Errorf("%w: no config dir", ErrNoConfig)
	}
	p := filepath.Join(base, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("%w: no global config", ErrNoConfig)
}

// Dir returns the per-user shotredact config directory, or "" if no home
// directory can be determined.
func Dir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "shotredact")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "shotredact")
}

// Validate checks enum fields, colors and the redaction table.
func (fc FileConfig) Validate() error {
	if fc.Mode != nil {
		switch *fc.Mode {
		case "", "fill", "blur":
		default:
			return fmt.Errorf("%w: mode %q", ErrInvalid, *fc.Mode)
		}
	}
	if fc.Centering != nil {
		switch *fc.Centering {
		case "", "measured", "fixed":
		default:
			return fmt.Errorf("%w: centering %q", ErrInvalid, *fc.Centering)
		}
	}
	if fc.BoxPolicy != nil {
		switch *fc.BoxPolicy {
		case "", "clamp", "coerce", "strict":
		default:
			return fmt.Errorf("%w: box_policy %q", ErrInvalid, *fc.BoxPolicy)
		}
	}
	if fc.BlurRadius != nil && *fc.BlurRadius <= 0 {
		return fmt.Errorf("%w: blur_radius must be > 0", ErrInvalid)
	}
	for _, c := range []*string{fc.FillColor, fc.TextColor} {
		if c == nil || *c == "" {
			continue
		}
		if _, err := ParseColor(*c); err != nil {
			return err
		}
	}
	seen := map[string]bool{}
	for i, e := range fc.Redactions {
		if e.File == "" {
			return fmt.Errorf("%w: redactions[%d] has no file", ErrInvalid, i)
		}
		if seen[e.File] {
			return fmt.Errorf("%w: duplicate redactions entry %q", ErrInvalid, e.File)
		}
		seen[e.File] = true
	}
	return nil
}

// ParseColor parses a #rrggbb hex string into an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor renders c as #rrggbb.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
