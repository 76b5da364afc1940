package redact

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/redactyl/shotredact/internal/types"
)

// Mode selects how a region is hidden.
type Mode string

const (
	ModeFill Mode = "fill"
	ModeBlur Mode = "blur"
)

// Centering selects how placeholder text is positioned inside a box.
type Centering string

const (
	// CenterMeasured centers on the measured advance of the string.
	CenterMeasured Centering = "measured"
	// CenterFixed assumes 6px per character and a 12px line, which is how
	// the existing redacted assets were produced.
	CenterFixed Centering = "fixed"
)

const DefaultBlurRadius = 30.0

var (
	DefaultFillColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	DefaultTextColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// Options controls how regions are painted.
type Options struct {
	Mode       Mode
	BlurRadius float64
	FillColor  color.NRGBA
	TextColor  color.NRGBA
	Centering  Centering
}

// DefaultOptions returns solid dark-gray bars with light-gray text.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeFill,
		BlurRadius: DefaultBlurRadius,
		FillColor:  DefaultFillColor,
		TextColor:  DefaultTextColor,
		Centering:  CenterMeasured,
	}
}

// Apply hides the box area of img in place. The part of the box outside
// the image bounds is ignored.
func Apply(img *image.NRGBA, box types.Box, opts Options) {
	r := box.Rect().Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	if opts.Mode == ModeBlur {
		region := imaging.Crop(img, r)
		blurred := imaging.Blur(region, opts.BlurRadius)
		draw.Draw(img, r, blurred, image.Point{}, draw.Src)
		return
	}
	draw.Draw(img, r, image.NewUniform(opts.FillColor), image.Point{}, draw.Src)
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeFill, ModeBlur:
		return m, nil
	case "":
		return ModeFill, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want fill|blur)", s)
	}
}

func ParseCentering(s string) (Centering, error) {
	switch c := Centering(strings.ToLower(strings.TrimSpace(s))); c {
	case CenterMeasured, CenterFixed:
		return c, nil
	case "":
		return CenterMeasured, nil
	default:
		return "", fmt.Errorf("unknown centering %q (want measured|fixed)", s)
	}
}
