package compose

import (
	"bytes"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/gobooklet/gobooklet/internal/geom"
	"github.com/gobooklet/gobooklet/internal/model"
)

// paintImage resolves, decodes, fits and composites one image element.
// An element with no source is a silent no-op. Resolution and decode
// failures are returned for the caller to report; they never abort the
// page.
func (c *Compositor) paintImage(cv *canvas, e *model.ImageElement, width, height int) error {
	if !e.HasSource() {
		return nil
	}

	tw := geom.PercentToPx(e.Width, width)
	th := geom.PercentToPx(e.Height, height)
	if tw <= 0 || th <= 0 {
		return nil
	}

	src, err := c.decodeSource(e, tw, th)
	if err != nil {
		return err
	}

	fitted := fitImage(src, tw, th, e.Fit)
	if e.Opacity < 1 {
		applyOpacity(fitted, e.Opacity)
	}

	cx := geom.PercentToPx(e.X, width)
	cy := geom.PercentToPx(e.Y, height)
	cv.compositeRotated(fitted, float64(cx), float64(cy), e.Rotation)
	return nil
}

// decodeSource loads the element's bytes and decodes them into a raster.
// SVG sources are rasterized at the target size; bitmap sources go through
// image.Decode with whatever decoders are registered.
func (c *Compositor) decodeSource(e *model.ImageElement, tw, th int) (image.Image, error) {
	var data []byte
	var name string
	if e.Path != "" {
		r, err := c.loader.LoadImage(e.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Path, err)
		}
		data = r.Data
		if r.IsSVG() {
			return rasterizeSVG(data, tw, th)
		}
		name = e.Path
	} else {
		data = e.Data
		name = "inline data"
		if looksLikeSVG(data) {
			return rasterizeSVG(data, tw, th)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// rasterizeSVG renders SVG markup into a w x h raster.
func rasterizeSVG(data []byte, w, h int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// fitImage reconciles src with a tw x th target box per the fit mode.
// cover fills the box and center-crops the overflow, contain letterboxes
// inside it, stretch distorts to the exact dimensions.
func fitImage(src image.Image, tw, th int, fit model.FitMode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}

	switch fit {
	case model.FitStretch:
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)

	case model.FitContain:
		scale := minFloat(float64(tw)/float64(sw), float64(th)/float64(sh))
		dw := int(float64(sw) * scale)
		dh := int(float64(sh) * scale)
		x0 := (tw - dw) / 2
		y0 := (th - dh) / 2
		xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+dw, y0+dh), src, sb, xdraw.Src, nil)

	default: // cover
		// Crop the source to the target aspect, then scale the crop to
		// fill the whole box.
		srcAspect := float64(sw) / float64(sh)
		dstAspect := float64(tw) / float64(th)
		crop := sb
		if srcAspect > dstAspect {
			cw := int(float64(sh) * dstAspect)
			x0 := sb.Min.X + (sw-cw)/2
			crop = image.Rect(x0, sb.Min.Y, x0+cw, sb.Max.Y)
		} else if srcAspect < dstAspect {
			ch := int(float64(sw) / dstAspect)
			y0 := sb.Min.Y + (sh-ch)/2
			crop = image.Rect(sb.Min.X, y0, sb.Max.X, y0+ch)
		}
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	}
	return dst
}

// applyOpacity scales every pixel's alpha, premultiplying the color
// channels to keep the RGBA buffer consistent.
func applyOpacity(img *image.RGBA, opacity float64) {
	o := geom.Clamp01(opacity)
	scaled := uint32(o*255 + 0.5)
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = uint8(uint32(pix[i]) * scaled / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * scaled / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * scaled / 255)
		pix[i+3] = uint8(uint32(pix[i+3]) * scaled / 255)
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
