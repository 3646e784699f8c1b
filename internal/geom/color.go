package geom

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor reports a malformed hex color string. A malformed color is
// a defect in the document, not a runtime condition, so callers treat it as
// fatal for the render call that hit it.
var ErrInvalidColor = errors.New("invalid color")

// ParseHex parses a 3-digit (#abc) or 6-digit (#aabbcc) hex color into an
// opaque RGBA. The leading '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
		// already expanded
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// WithAlpha returns c with its alpha channel set to round(opacity*255),
// clamped to [0, 255].
func WithAlpha(c color.RGBA, opacity float64) color.RGBA {
	a := math.Round(opacity * 255)
	if a < 0 {
		a = 0
	} else if a > 255 {
		a = 255
	}
	c.A = uint8(a)
	return c
}

// Lerp interpolates per channel between c1 and c2. t is clamped to [0, 1].
func Lerp(c1, c2 color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	return color.RGBA{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
		A: lerpChannel(c1.A, c2.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
