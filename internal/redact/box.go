package redact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redactyl/shotredact/internal/types"
)

// Policy decides how out-of-bounds or malformed boxes are handled.
type Policy string

const (
	// PolicyClamp pulls every coordinate down to the image size when the
	// lower-right corner overflows, and rejects boxes that are still
	// degenerate afterwards.
	// This is stricter than the legacy script, which painted boxes with
	// negative or fully off-image coordinates instead of failing the file.
	PolicyClamp Policy = "clamp"
	// PolicyCoerce also swaps inverted corners and lifts negative
	// coordinates to zero. Boxes that end up empty are skipped.
	PolicyCoerce Policy = "coerce"
	// PolicyStrict rejects any box not fully inside the image.
	PolicyStrict Policy = "strict"
)

var (
	ErrInvalidBox = errors.New("invalid redaction box")
	ErrEmptyBox   = errors.New("empty redaction box")
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyClamp, PolicyCoerce, PolicyStrict:
		return p, nil
	case "":
		return PolicyClamp, nil
	default:
		return "", fmt.Errorf("unknown box policy %q (want clamp|coerce|strict)", s)
	}
}

// Fit maps b onto a w x h image under policy p. adjusted reports whether
// the returned box differs from b. With PolicyCoerce an empty result is
// reported as ErrEmptyBox; every other rejection wraps ErrInvalidBox.
func Fit(b types.Box, w, h int, p Policy) (out types.Box, adjusted bool, err error) {
	switch p {
	case PolicyStrict:
		if b.X1 < 0 || b.Y1 < 0 || b.X2 > w || b.Y2 > h {
			return b, false, fmt.Errorf("%w: %s outside %dx%d", ErrInvalidBox, b, w, h)
		}
		if degenerate(b) {
			return b, false, fmt.Errorf("%w: %s", ErrInvalidBox, b)
		}
		return b, false, nil

	case PolicyCoerce:
		out = b
		if out.X1 > out.X2 {
			out.X1, out.X2 = out.X2, out.X1
		}
		if out.Y1 > out.Y2 {
			out.Y1, out.Y2 = out.Y2, out.Y1
		}
		out = types.Box{
			X1: clamp(out.X1, w),
			Y1: clamp(out.Y1, h),
			X2: clamp(out.X2, w),
			Y2: clamp(out.Y2, h),
		}
		adjusted = out != b
		if out.X1 >= out.X2 || out.Y1 >= out.Y2 {
			return out, adjusted, fmt.Errorf("%w: %s in %dx%d", ErrEmptyBox, b, w, h)
		}
		return out, adjusted, nil

	default:
		out = b
		if b.X2 > w || b.Y2 > h {
			out = types.Box{
				X1: min(b.X1, w),
				Y1: min(b.Y1, h),
				X2: min(b.X2, w),
				Y2: min(b.Y2, h),
			}
			adjusted = true
		}
		if degenerate(out) {
			return out, adjusted, fmt.Errorf("%w: %s in %dx%d", ErrInvalidBox, b, w, h)
		}
		return out, adjusted, nil
	}
}

func degenerate(b types.Box) bool {
	return b.X1 < 0 || b.Y1 < 0 || b.X1 >= b.X2 || b.Y1 >= b.Y2
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
