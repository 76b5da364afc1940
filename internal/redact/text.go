package redact

import (
	"image"

	"github.com/redactyl/shotredact/internal/types"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// DrawPlaceholder draws text over the center of box in opts.TextColor.
// Glyphs falling outside the image are clipped.
func DrawPlaceholder(img *image.NRGBA, box types.Box, text string, opts Options) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.TextColor),
		Face: face,
	}
	x, top := textOrigin(d, box, text, opts.Centering)
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(top) + face.Metrics().Ascent}
	d.DrawString(text)
}

// textOrigin returns the top-left corner of the text block.
func textOrigin(d *font.Drawer, box types.Box, text string, c Centering) (int, int) {
	cx := box.X1 + (box.X2-box.X1)/2
	cy := box.Y1 + (box.Y2-box.Y1)/2
	if c == CenterFixed {
		return cx - len(text)*3, cy - 6
	}
	m := face.Metrics()
	w := d.MeasureString(text).Round()
	h := (m.Ascent + m.Descent).Round()
	return cx - w/2, cy - h/2
}

// TextBounds reports the rectangle the placeholder occupies, before
// clipping to the image.
func TextBounds(box types.Box, text string, c Centering) image.Rectangle {
	d := &font.Drawer{Face: face}
	x, top := textOrigin(d, box, text, c)
	m := face.Metrics()
	return image.Rect(x, top, x+d.MeasureString(text).Round(), top+(m.Ascent+m.Descent).Round())
}
