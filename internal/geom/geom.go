// Package geom provides the geometry and color conversions shared by the
// compositor and the sheet assembler.
package geom

import "math"

// PercentToPx converts a percentage (0-100) of an extent in pixels to a
// pixel value, rounding to the nearest integer.
func PercentToPx(value float64, extent int) int {
	return int(math.Round(value / 100 * float64(extent)))
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
