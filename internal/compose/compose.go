// Package compose rasterizes a single logical page into a flat image.
//
// A Compositor paints the page background, then every element in ascending
// layer order with alpha-over blending. Rotated elements are drawn into an
// isolated buffer first and composited back about their own center, so
// rotation never clips corners against the element box.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sort"

	"github.com/gobooklet/gobooklet/internal/font"
	"github.com/gobooklet/gobooklet/internal/geom"
	"github.com/gobooklet/gobooklet/internal/model"
	"github.com/gobooklet/gobooklet/internal/res"
)

// ReferenceWidth is the preview pixel width font sizes are specified
// against. Text rendered at any other width scales proportionally.
const ReferenceWidth = 296

// lineGap is the vertical gap between stacked text lines, in pixels at
// ReferenceWidth.
const lineGap = 5

// Problem records a non-fatal condition hit while rendering one element.
// The element was skipped and the rest of the page rendered normally.
type Problem struct {
	Element string
	Err     error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Element, p.Err)
}

// Compositor renders pages. The zero value is not usable; call New.
// A Compositor is safe for concurrent use: each render call owns its
// output buffer and the collaborators are themselves concurrency-safe.
type Compositor struct {
	fonts  *font.Registry
	loader *res.Loader
	log    *slog.Logger
}

// New creates a compositor. Either collaborator may be nil, in which case
// a default registry and loader are created. A nil logger disables logging.
func New(fonts *font.Registry, loader *res.Loader, log *slog.Logger) *Compositor {
	if fonts == nil {
		fonts = font.NewRegistry()
	}
	if loader == nil {
		loader = res.NewLoader("")
	}
	if log == nil {
		log = slog.New(nopHandler{})
	}
	return &Compositor{fonts: fonts, loader: loader, log: log}
}

// nopHandler discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// layered pairs an element's layer index with a closure painting it,
// letting the three collections share one stable sort.
type layered struct {
	layer int
	paint func(cv *canvas) error
}

// RenderPage rasterizes page at the given pixel dimensions. The returned
// image is fully opaque. Element-local image failures are reported in the
// problem list and do not fail the render; malformed colors do, since they
// indicate a broken document.
func (c *Compositor) RenderPage(page *model.Page, width, height int) (*image.RGBA, []Problem, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("compose: invalid render size %dx%d", width, height)
	}

	cv := newCanvas(width, height)
	if err := c.paintBackground(cv, page, width, height); err != nil {
		return nil, nil, err
	}

	elems := make([]layered, 0, len(page.Shapes)+len(page.Images)+len(page.Texts))
	var problems []Problem
	for _, s := range page.Shapes {
		s := s
		elems = append(elems, layered{s.LayerIndex, func(cv *canvas) error {
			return c.paintShape(cv, s, width, height)
		}})
	}
	for _, im := range page.Images {
		im := im
		elems = append(elems, layered{im.LayerIndex, func(cv *canvas) error {
			if err := c.paintImage(cv, im, width, height); err != nil {
				c.log.Warn("image element skipped", "source", im.Path, "err", err)
				problems = append(problems, Problem{Element: "image", Err: err})
			}
			return nil
		}})
	}
	for _, t := range page.Texts {
		t := t
		elems = append(elems, layered{t.LayerIndex, func(cv *canvas) error {
			return c.paintText(cv, t, width, height)
		}})
	}
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].layer < elems[j].layer })

	for _, e := range elems {
		if err := e.paint(cv); err != nil {
			return nil, problems, err
		}
	}

	flatten(cv.img)
	return cv.img, problems, nil
}

// paintBackground fills the canvas with the page gradient or flat color.
func (c *Compositor) paintBackground(cv *canvas, page *model.Page, width, height int) error {
	if g := page.Gradient; g != nil {
		from, err := geom.ParseHex(g.From)
		if err != nil {
			return fmt.Errorf("background gradient: %w", err)
		}
		to, err := geom.ParseHex(g.To)
		if err != nil {
			return fmt.Errorf("background gradient: %w", err)
		}
		fillGradient(cv.img, from, to, g.Direction)
		return nil
	}
	bg, err := geom.ParseHex(page.BackgroundColor)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	cv.fillRectFast(cv.img.Bounds(), bg)
	return nil
}

// fillGradient interpolates between from and to across the whole image.
// The interpolation parameter is row/height for vertical, column/width for
// horizontal and (column+row)/(width+height) for diagonal gradients.
func fillGradient(img *image.RGBA, from, to color.RGBA, dir model.GradientDirection) {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	switch dir {
	case model.GradientHorizontal:
		for x := 0; x < w; x++ {
			col := geom.Lerp(from, to, float64(x)/float64(w))
			for y := 0; y < h; y++ {
				img.SetRGBA(b.Min.X+x, b.Min.Y+y, col)
			}
		}
	case model.GradientDiagonal:
		denom := float64(w + h)
		for y := 0; y < h; y++ {
			off := y*img.Stride + 0
			for x := 0; x < w; x++ {
				col := geom.Lerp(from, to, float64(x+y)/denom)
				img.Pix[off] = col.R
				img.Pix[off+1] = col.G
				img.Pix[off+2] = col.B
				img.Pix[off+3] = 255
				off += 4
			}
		}
	default: // vertical
		for y := 0; y < h; y++ {
			col := geom.Lerp(from, to, float64(y)/float64(h))
			off := y * img.Stride
			for x := 0; x < w; x++ {
				img.Pix[off] = col.R
				img.Pix[off+1] = col.G
				img.Pix[off+2] = col.B
				img.Pix[off+3] = 255
				off += 4
			}
		}
	}
}

// paintShape draws a shape element into an isolated buffer and composites
// it, rotated, centered at the element's pixel position.
func (c *Compositor) paintShape(cv *canvas, s *model.ShapeElement, width, height int) error {
	cx := geom.PercentToPx(s.X, width)
	cy := geom.PercentToPx(s.Y, height)
	w := geom.PercentToPx(s.Width, width)
	h := geom.PercentToPx(s.Height, height)
	if w <= 0 {
		return nil
	}

	var fill color.RGBA
	hasFill := s.FillColor != model.TransparentFill
	if hasFill {
		parsed, err := geom.ParseHex(s.FillColor)
		if err != nil {
			return fmt.Errorf("shape fill: %w", err)
		}
		fill = geom.WithAlpha(parsed, s.Opacity)
	}

	var stroke color.RGBA
	hasStroke := s.StrokeWidth > 0
	if hasStroke {
		parsed, err := geom.ParseHex(s.StrokeColor)
		if err != nil {
			return fmt.Errorf("shape stroke: %w", err)
		}
		stroke = geom.WithAlpha(parsed, s.Opacity)
	}

	// The buffer grows by the stroke width so outlines on the box edge
	// survive rotation.
	pad := s.StrokeWidth + 1
	bw := w + 2*pad
	bh := maxInt(h, 1) + 2*pad
	buf := newCanvas(bw, bh)

	switch s.Kind {
	case model.ShapeRectangle:
		r := image.Rect(pad, pad, pad+w, pad+h)
		if hasFill {
			buf.fillRectBlend(r, fill)
		}
		if hasStroke {
			buf.strokeRect(r, stroke, s.StrokeWidth)
		}
	case model.ShapeCircle:
		if hasFill {
			buf.fillEllipseAA(pad, pad, w, h, fill)
		}
		if hasStroke {
			buf.strokeEllipseAA(pad, pad, w, h, stroke, s.StrokeWidth)
		}
	case model.ShapeTriangle:
		// Isoceles, apex up, inscribed in the bounding box.
		pts := []fpoint{
			{float64(pad + w/2), float64(pad)},
			{float64(pad), float64(pad + h)},
			{float64(pad + w), float64(pad + h)},
		}
		if hasFill {
			buf.fillPolygon(pts, fill)
		}
		if hasStroke {
			buf.strokePolygon(pts, stroke, s.StrokeWidth)
		}
	case model.ShapeLine:
		// A horizontal segment through the element center, drawn in the
		// fill color at the stroke width.
		if hasFill && s.StrokeWidth > 0 {
			my := float64(bh) / 2
			buf.drawLineThick(float64(pad), my, float64(pad+w), my, fill, s.StrokeWidth)
		}
	default:
		return nil
	}

	cv.compositeRotated(buf.img, float64(cx), float64(cy), s.Rotation)
	return nil
}

// flatten forces every pixel fully opaque.
func flatten(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}
