package types

import (
	"fmt"
	"image"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLabel       = "sensitive data"
	DefaultPlaceholder = "[REDACTED]"
)

// Box is an axis-aligned pixel rectangle from the upper-left corner
// (X1,Y1) to the lower-right corner (X2,Y2). It is not guaranteed to lie
// within image bounds.
type Box struct {
	X1, Y1, X2, Y2 int
}

// Rect converts the box to an image.Rectangle without canonicalising it.
func (b Box) Rect() image.Rectangle {
	return image.Rectangle{Min: image.Pt(b.X1, b.Y1), Max: image.Pt(b.X2, b.Y2)}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.X1, b.Y1, b.X2, b.Y2)
}

// MarshalYAML renders the box as a flow-style [x1, y1, x2, y2] list.
func (b Box) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{b.X1, b.Y1, b.X2, b.Y2} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

// UnmarshalYAML accepts a four-element integer list.
func (b *Box) UnmarshalYAML(n *yaml.Node) error {
	var vals []int
	if err := n.Decode(&vals); err != nil {
		return fmt.Errorf("box: %w", err)
	}
	if len(vals) != 4 {
		return fmt.Errorf("box: expected 4 coordinates, got %d", len(vals))
	}
	*b = Box{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}
	return nil
}

// Redaction describes one region to hide and the text drawn over it.
type Redaction struct {
	Box         Box    `yaml:"box" json:"box"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// LabelOrDefault returns the label used in log output.
func (r Redaction) LabelOrDefault() string {
	if r.Label == "" {
		return DefaultLabel
	}
	return r.Label
}

// PlaceholderOrDefault returns the text drawn over the redacted area.
func (r Redaction) PlaceholderOrDefault() string {
	if r.Placeholder == "" {
		return DefaultPlaceholder
	}
	return r.Placeholder
}

// Entry binds an image file name to its ordered redactions.
type Entry struct {
	File       string      `yaml:"file" json:"file"`
	Redactions []Redaction `yaml:"redactions" json:"redactions"`
}

// Table is the ordered list of files to process.
type Table []Entry

// Result is the outcome of processing one file.
type Result struct {
	File     string        `json:"file"`
	OK       bool          `json:"ok"`
	Skipped  bool          `json:"skipped,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Error    string        `json:"error,omitempty"`
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
	Applied  []string      `json:"applied,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary aggregates the results of a batch run.
type Summary struct {
	Dir       string        `json:"dir"`
	Results   []Result      `json:"results"`
	Succeeded int           `json:"succeeded"`
	Total     int           `json:"total"`
	Duration  time.Duration `json:"duration_ns"`
}

// Failed lists the results that did not succeed.
func (s Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
