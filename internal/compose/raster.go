package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"
)

// canvas wraps an RGBA image with direct-Pix drawing primitives.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// blendPixel alpha-blends c onto the pixel at (x, y).
func (cv *canvas) blendPixel(x, y int, c color.RGBA) {
	b := cv.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if c.A == 0 {
		return
	}
	off := (y-b.Min.Y)*cv.img.Stride + (x-b.Min.X)*4
	pix := cv.img.Pix
	if c.A == 255 {
		pix[off] = c.R
		pix[off+1] = c.G
		pix[off+2] = c.B
		pix[off+3] = 255
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	pix[off] = uint8((uint32(c.R)*a + uint32(pix[off])*ia) / 255)
	pix[off+1] = uint8((uint32(c.G)*a + uint32(pix[off+1])*ia) / 255)
	pix[off+2] = uint8((uint32(c.B)*a + uint32(pix[off+2])*ia) / 255)
	pix[off+3] = uint8(uint32(pix[off+3]) + (255-uint32(pix[off+3]))*a/255)
}

// blendPixelF blends with fractional coverage (0.0-1.0) for anti-aliasing.
func (cv *canvas) blendPixelF(x, y int, c color.RGBA, coverage float64) {
	if coverage <= 0 {
		return
	}
	if coverage >= 1.0 {
		cv.blendPixel(x, y, c)
		return
	}
	cv.blendPixel(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * coverage)})
}

// fillRectFast fills a rectangle with an opaque color using draw.Draw.
func (cv *canvas) fillRectFast(rect image.Rectangle, c color.RGBA) {
	draw.Draw(cv.img, rect, &image.Uniform{c}, image.Point{}, draw.Over)
}

// fillRectBlend fills a rectangle with alpha blending, row by row over Pix.
func (cv *canvas) fillRectBlend(rect image.Rectangle, c color.RGBA) {
	b := cv.img.Bounds()
	rect = rect.Intersect(b)
	if rect.Empty() || c.A == 0 {
		return
	}
	if c.A == 255 {
		cv.fillRectFast(rect, c)
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	cr, cg, cb := uint32(c.R)*a, uint32(c.G)*a, uint32(c.B)*a
	pix := cv.img.Pix
	stride := cv.img.Stride
	minX := rect.Min.X - b.Min.X
	minY := rect.Min.Y - b.Min.Y
	w := rect.Dx()
	for dy := 0; dy < rect.Dy(); dy++ {
		off := (minY+dy)*stride + minX*4
		for dx := 0; dx < w; dx++ {
			pix[off] = uint8((cr + uint32(pix[off])*ia) / 255)
			pix[off+1] = uint8((cg + uint32(pix[off+1])*ia) / 255)
			pix[off+2] = uint8((cb + uint32(pix[off+2])*ia) / 255)
			pix[off+3] = uint8(uint32(pix[off+3]) + (255-uint32(pix[off+3]))*a/255)
			off += 4
		}
	}
}

// strokeRect draws a rectangle outline of the given width just inside rect.
func (cv *canvas) strokeRect(rect image.Rectangle, c color.RGBA, width int) {
	if width <= 0 {
		return
	}
	cv.fillRectBlend(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), c)
	cv.fillRectBlend(image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), c)
	cv.fillRectBlend(image.Rect(rect.Min.X, rect.Min.Y+width, rect.Min.X+width, rect.Max.Y-width), c)
	cv.fillRectBlend(image.Rect(rect.Max.X-width, rect.Min.Y+width, rect.Max.X, rect.Max.Y-width), c)
}

// fillEllipseAA fills the ellipse inscribed in (cx, cy, w, h) with edge
// anti-aliasing.
func (cv *canvas) fillEllipseAA(cx, cy, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	centerX := float64(cx) + rx
	centerY := float64(cy) + ry
	invRx2 := 1.0 / (rx * rx)
	invRy2 := 1.0 / (ry * ry)
	aaThreshold := 0.05

	bounds := cv.img.Bounds()
	for py := cy; py < cy+h; py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		dyNorm := float64(py) + 0.5 - centerY
		dy2 := dyNorm * dyNorm * invRy2
		if dy2 > 1.0 {
			continue
		}
		hExtent := rx * math.Sqrt(1.0-dy2)
		minPx := maxInt(maxInt(int(centerX-hExtent), cx), bounds.Min.X)
		maxPx := minInt(minInt(int(centerX+hExtent+1), cx+w), bounds.Max.X)
		for px := minPx; px < maxPx; px++ {
			dxNorm := float64(px) + 0.5 - centerX
			d := dxNorm*dxNorm*invRx2 + dy2
			if d <= 1.0 {
				edge := 1.0 - d
				if edge < aaThreshold {
					cv.blendPixelF(px, py, c, edge/aaThreshold)
				} else {
					cv.blendPixel(px, py, c)
				}
			}
		}
	}
}

// strokeEllipseAA draws the outline of the ellipse inscribed in
// (cx, cy, w, h) with the given line width.
func (cv *canvas) strokeEllipseAA(cx, cy, w, h int, c color.RGBA, lineWidth int) {
	if w <= 0 || h <= 0 || lineWidth <= 0 {
		return
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	centerX := float64(cx) + rx
	centerY := float64(cy) + ry
	minR := math.Min(rx, ry)
	if minR < 1 {
		minR = 1
	}
	halfLW := float64(lineWidth) / 2
	threshold := halfLW + 1

	for py := cy - lineWidth - 1; py < cy+h+lineWidth+1; py++ {
		dyNorm := (float64(py) + 0.5 - centerY) / ry
		dy2 := dyNorm * dyNorm
		if dy2 > 1.5 {
			continue
		}
		for px := cx - lineWidth - 1; px < cx+w+lineWidth+1; px++ {
			dxNorm := (float64(px) + 0.5 - centerX) / rx
			d := math.Sqrt(dxNorm*dxNorm + dy2)
			distPx := math.Abs(d-1.0) * minR
			if distPx < threshold {
				coverage := 1.0
				if distPx > halfLW {
					coverage = 1.0 - (distPx - halfLW)
				}
				cv.blendPixelF(px, py, c, coverage)
			}
		}
	}
}

type fpoint struct {
	x, y float64
}

// fillPolygon fills a polygon using scanline even-odd intersection.
func (cv *canvas) fillPolygon(pts []fpoint, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	n := len(pts)
	intersections := make([]float64, 0, n)
	for y := int(minY); y <= int(maxY); y++ {
		fy := float64(y) + 0.5
		intersections = intersections[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			py1, py2 := pts[i].y, pts[j].y
			if py1 > py2 {
				py1, py2 = py2, py1
			}
			if fy < py1 || fy >= py2 {
				continue
			}
			dy := pts[j].y - pts[i].y
			if dy == 0 {
				continue
			}
			t := (fy - pts[i].y) / dy
			intersections = append(intersections, pts[i].x+t*(pts[j].x-pts[i].x))
		}
		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			x1 := int(math.Ceil(intersections[i]))
			x2 := int(math.Floor(intersections[i+1]))
			if x1 <= x2 {
				cv.fillRectBlend(image.Rect(x1, y, x2+1, y+1), c)
			}
		}
	}
}

// strokePolygon draws the polygon outline as thick segments.
func (cv *canvas) strokePolygon(pts []fpoint, c color.RGBA, width int) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		cv.drawLineThick(pts[i].x, pts[i].y, pts[j].x, pts[j].y, c, width)
	}
}

// drawLineThick draws a line segment of the given pixel width by filling
// the quad formed by offsetting the segment perpendicular to its direction.
func (cv *canvas) drawLineThick(x1, y1, x2, y2 float64, c color.RGBA, width int) {
	if width <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		half := float64(width) / 2
		cv.fillRectBlend(image.Rect(int(x1-half), int(y1-half), int(x1+half)+1, int(y1+half)+1), c)
		return
	}
	half := float64(width) / 2
	nx := -dy / length * half
	ny := dx / length * half
	cv.fillPolygon([]fpoint{
		{x1 + nx, y1 + ny},
		{x2 + nx, y2 + ny},
		{x2 - nx, y2 - ny},
		{x1 - nx, y1 - ny},
	}, c)
}

// blendPremul blends a premultiplied-alpha source pixel onto the canvas.
// Buffers drawn through blendPixel onto a transparent background hold
// premultiplied values, so compositing them back must not multiply by
// alpha a second time.
func (cv *canvas) blendPremul(x, y int, sr, sg, sb, sa uint8) {
	b := cv.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y || sa == 0 {
		return
	}
	off := (y-b.Min.Y)*cv.img.Stride + (x-b.Min.X)*4
	pix := cv.img.Pix
	if sa == 255 {
		pix[off] = sr
		pix[off+1] = sg
		pix[off+2] = sb
		pix[off+3] = 255
		return
	}
	ia := 255 - uint32(sa)
	pix[off] = uint8(uint32(sr) + uint32(pix[off])*ia/255)
	pix[off+1] = uint8(uint32(sg) + uint32(pix[off+1])*ia/255)
	pix[off+2] = uint8(uint32(sb) + uint32(pix[off+2])*ia/255)
	pix[off+3] = uint8(uint32(sa) + uint32(pix[off+3])*ia/255)
}

// rotatedBounds returns the axis-aligned pixel bounds of a w x h box
// centered at (cx, cy) after rotating it by angleDeg.
func rotatedBounds(cx, cy float64, w, h int, angleDeg float64) image.Rectangle {
	rad := angleDeg * math.Pi / 180.0
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	fw, fh := float64(w), float64(h)
	newW := fw*cos + fh*sin
	newH := fw*sin + fh*cos
	return image.Rect(
		int(cx-newW/2), int(cy-newH/2),
		int(cx+newW/2)+1, int(cy+newH/2)+1,
	)
}

// compositeRotated blends src onto the canvas rotated clockwise by
// angleDeg about (cx, cy), with src's own center mapped to that point.
// The destination scan region expands to the rotated bounding box so
// corners are never clipped. angleDeg of 0 takes a direct blend path,
// keeping unrotated composites exact.
func (cv *canvas) compositeRotated(src *image.RGBA, cx, cy, angleDeg float64) {
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw <= 0 || sh <= 0 {
		return
	}

	if math.Mod(angleDeg, 360) == 0 {
		x0 := int(math.Round(cx - float64(sw)/2))
		y0 := int(math.Round(cy - float64(sh)/2))
		cv.blendImage(src, x0, y0)
		return
	}

	rad := angleDeg * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	scx := float64(sw) / 2
	scy := float64(sh) / 2

	region := rotatedBounds(cx, cy, sw, sh, angleDeg).Intersect(cv.img.Bounds())
	for py := region.Min.Y; py < region.Max.Y; py++ {
		ry := float64(py) + 0.5 - cy
		for px := region.Min.X; px < region.Max.X; px++ {
			rx := float64(px) + 0.5 - cx
			// Inverse rotation to find the source pixel.
			sx := rx*cosA + ry*sinA + scx
			sy := -rx*sinA + ry*cosA + scy
			ix, iy := int(sx), int(sy)
			if ix < 0 || ix >= sw || iy < 0 || iy >= sh {
				continue
			}
			sOff := iy*src.Stride + ix*4
			cv.blendPremul(px, py, src.Pix[sOff], src.Pix[sOff+1], src.Pix[sOff+2], src.Pix[sOff+3])
		}
	}
}

// blendImage composites a premultiplied src onto the canvas with its
// top-left at (x0, y0).
func (cv *canvas) blendImage(src *image.RGBA, x0, y0 int) {
	sb := src.Bounds()
	for sy := 0; sy < sb.Dy(); sy++ {
		sOff := sy * src.Stride
		for sx := 0; sx < sb.Dx(); sx++ {
			cv.blendPremul(x0+sx, y0+sy, src.Pix[sOff], src.Pix[sOff+1], src.Pix[sOff+2], src.Pix[sOff+3])
			sOff += 4
		}
	}
}
