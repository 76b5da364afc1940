package redact

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/redactyl/shotredact/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/4+y/4)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	return img
}

func TestApply_FillCoversBoxOnly(t *testing.T) {
	img := imaging.New(100, 60, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	box := types.Box{X1: 10, Y1: 20, X2: 50, Y2: 40}
	Apply(img, box, DefaultOptions())

	for y := box.Y1; y < box.Y2; y++ {
		for x := box.X1; x < box.X2; x++ {
			require.Equal(t, DefaultFillColor, img.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, img.NRGBAAt(9, 20))
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, img.NRGBAAt(50, 39))
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, img.NRGBAAt(30, 40))
}

func TestApply_FillClipsToBounds(t *testing.T) {
	img := imaging.New(20, 20, color.NRGBA{A: 255})
	Apply(img, types.Box{X1: 15, Y1: 15, X2: 40, Y2: 40}, DefaultOptions())
	assert.Equal(t, DefaultFillColor, img.NRGBAAt(19, 19))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(14, 14))
}

func TestApply_BlurSmoothsRegion(t *testing.T) {
	img := checker(80, 80)
	orig := imaging.Clone(img)
	box := types.Box{X1: 20, Y1: 20, X2: 60, Y2: 60}
	opts := DefaultOptions()
	opts.Mode = ModeBlur
	opts.BlurRadius = 5
	Apply(img, box, opts)

	// Outside the box nothing moves.
	assert.Equal(t, orig.NRGBAAt(5, 5), img.NRGBAAt(5, 5))
	assert.Equal(t, orig.NRGBAAt(70, 70), img.NRGBAAt(70, 70))

	// Inside the box the hard black/white checker is gone.
	c := img.NRGBAAt(40, 40)
	assert.Greater(t, c.R, uint8(40))
	assert.Less(t, c.R, uint8(215))
}

func TestDrawPlaceholder_InkStaysNearCenter(t *testing.T) {
	img := imaging.New(400, 100, color.NRGBA{A: 255})
	box := types.Box{X1: 50, Y1: 20, X2: 350, Y2: 80}
	opts := DefaultOptions()
	Apply(img, box, opts)
	DrawPlaceholder(img, box, "[USER]", opts)

	tb := TextBounds(box, "[USER]", CenterMeasured)
	ink := 0
	for y := box.Y1; y < box.Y2; y++ {
		for x := box.X1; x < box.X2; x++ {
			c := img.NRGBAAt(x, y)
			if c == opts.FillColor {
				continue
			}
			ink++
			require.True(t, image.Pt(x, y).In(tb), "ink outside text bounds at %d,%d", x, y)
			require.Equal(t, opts.TextColor, c)
		}
	}
	assert.Positive(t, ink)
	assert.InDelta(t, 200, (tb.Min.X+tb.Max.X)/2, 1)
}

func TestTextBounds_FixedHeuristic(t *testing.T) {
	box := types.Box{X1: 1080, Y1: 820, X2: 1720, Y2: 880}
	tb := TextBounds(box, "abcd", CenterFixed)
	assert.Equal(t, 1400-12, tb.Min.X)
	assert.Equal(t, 850-6, tb.Min.Y)
}

func TestDrawPlaceholder_EmptyIsNoop(t *testing.T) {
	img := imaging.New(10, 10, color.NRGBA{A: 255})
	DrawPlaceholder(img, types.Box{X2: 10, Y2: 10}, "", DefaultOptions())
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(5, 5))
}

func TestParseHelpers(t *testing.T) {
	m, err := ParseMode("BLUR")
	require.NoError(t, err)
	assert.Equal(t, ModeBlur, m)
	_, err = ParseMode("pixelate")
	assert.Error(t, err)

	c, err := ParseCentering("")
	require.NoError(t, err)
	assert.Equal(t, CenterMeasured, c)
	_, err = ParseCentering("middle")
	assert.Error(t, err)
}
