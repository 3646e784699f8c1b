package compose

import (
	"fmt"
	"image"
	"math"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gobooklet/gobooklet/internal/font"
	"github.com/gobooklet/gobooklet/internal/geom"
	"github.com/gobooklet/gobooklet/internal/model"
)

// paintText renders a text element. Lines stack vertically with a fixed
// gap and center as a block on the element's y; each line aligns
// horizontally relative to the element's x. The block draws into an
// isolated buffer, rotates about its own center, and composites back.
func (c *Compositor) paintText(cv *canvas, e *model.TextElement, width, height int) error {
	if e.Text == "" {
		return nil
	}

	col, err := geom.ParseHex(e.Color)
	if err != nil {
		return fmt.Errorf("text color: %w", err)
	}

	// Font sizes are authored against the reference preview width; scale
	// so the same element keeps its proportions at any resolution.
	scale := float64(width) / float64(ReferenceWidth)
	face := c.fonts.Face(e.FontFamily, e.FontSize*scale, e.Bold, e.Italic)
	gap := int(math.Round(lineGap * scale))

	lines := strings.Split(e.Text, "\n")
	widths := make([]int, len(lines))
	blockW := 1
	lineH := 0
	for i, line := range lines {
		w, h := font.Measure(face, line)
		widths[i] = w
		if w > blockW {
			blockW = w
		}
		if h > lineH {
			lineH = h
		}
	}
	blockH := len(lines)*lineH + (len(lines)-1)*gap
	if blockH < 1 {
		blockH = 1
	}

	buf := newCanvas(blockW, blockH)
	drawer := &xfont.Drawer{
		Dst:  buf.img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	ascent := font.Ascent(face)
	for i, line := range lines {
		var lx int
		switch e.Alignment {
		case model.AlignLeft:
			lx = 0
		case model.AlignRight:
			lx = blockW - widths[i]
		default:
			lx = (blockW - widths[i]) / 2
		}
		drawer.Dot = fixed.P(lx, i*(lineH+gap)+ascent)
		drawer.DrawString(line)
	}
	// Glyphs are drawn opaque; scaling the premultiplied buffer afterwards
	// keeps the channel/alpha relationship blendPremul expects.
	if e.Opacity < 1 {
		applyOpacity(buf.img, e.Opacity)
	}

	// The buffer edges depend on the widest line, so the composite center
	// shifts per alignment to keep each line anchored at x.
	cx := float64(geom.PercentToPx(e.X, width))
	cy := float64(geom.PercentToPx(e.Y, height))
	switch e.Alignment {
	case model.AlignLeft:
		cx += float64(blockW) / 2
	case model.AlignRight:
		cx -= float64(blockW) / 2
	}

	cv.compositeRotated(buf.img, cx, cy, e.Rotation)
	return nil
}
