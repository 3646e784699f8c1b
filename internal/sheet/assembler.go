// Package sheet arranges rendered pages onto physical sheet sides.
//
// A sheet side is one landscape image holding two portrait pages next to
// each other with no gap. Which page lands on which half comes from the
// imposition tables; a Blank index leaves that half white.
package sheet

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"sync"

	"github.com/gobooklet/gobooklet/internal/compose"
	"github.com/gobooklet/gobooklet/internal/imposition"
	"github.com/gobooklet/gobooklet/internal/model"
)

// Assembler renders sheet sides using a shared page compositor.
type Assembler struct {
	comp *compose.Compositor
	log  *slog.Logger
}

// New creates an assembler. A nil compositor gets default collaborators;
// a nil logger disables logging.
func New(comp *compose.Compositor, log *slog.Logger) *Assembler {
	if comp == nil {
		comp = compose.New(nil, nil, nil)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{comp: comp, log: log}
}

// Outcome reports how rendering one sheet side went. Problems carries
// non-fatal element diagnostics from both halves; Err is set when the
// side failed outright and its image slot is nil.
type Outcome struct {
	Index    int
	Pair     imposition.Pair
	Problems []compose.Problem
	Err      error
}

// RenderSheet renders the two pages of pair side by side into one image
// of 2*pageW x pageH pixels. A Blank half is filled white.
func (a *Assembler) RenderSheet(doc *model.Document, pair imposition.Pair, pageW, pageH int) (*image.RGBA, []compose.Problem, error) {
	if pageW <= 0 || pageH <= 0 {
		return nil, nil, fmt.Errorf("sheet: invalid page size %dx%d", pageW, pageH)
	}

	out := image.NewRGBA(image.Rect(0, 0, 2*pageW, pageH))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var problems []compose.Problem
	for half, idx := range []int{pair.Left, pair.Right} {
		if idx == imposition.Blank {
			continue
		}
		if idx < 0 || idx >= len(doc.Pages) {
			return nil, problems, fmt.Errorf("sheet: page index %d out of range for %d pages", idx, len(doc.Pages))
		}
		img, probs, err := a.comp.RenderPage(doc.Pages[idx], pageW, pageH)
		if err != nil {
			return nil, problems, fmt.Errorf("sheet: page %d: %w", idx, err)
		}
		problems = append(problems, probs...)
		dst := image.Rect(half*pageW, 0, (half+1)*pageW, pageH)
		draw.Draw(out, dst, img, image.Point{}, draw.Src)
	}
	return out, problems, nil
}

// RenderPrintOrder renders every sheet side of the document's print order.
// Failures on one side do not stop the others; each side gets an Outcome
// and failed slots stay nil in the returned slice. The context is honored
// between units, so cancellation stops scheduling further sides. With
// parallelism above 1 that many sides render concurrently.
func (a *Assembler) RenderPrintOrder(ctx context.Context, doc *model.Document, pageW, pageH, parallelism int) ([]*image.RGBA, []Outcome, error) {
	pairs := imposition.PrintOrder(doc.PageCount)
	images := make([]*image.RGBA, len(pairs))
	outcomes := make([]Outcome, len(pairs))
	for i, p := range pairs {
		outcomes[i] = Outcome{Index: i, Pair: p}
	}

	if parallelism < 1 {
		parallelism = 1
	}
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup

	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return images, outcomes, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, p imposition.Pair) {
			defer wg.Done()
			defer func() { <-sem }()
			img, probs, err := a.RenderSheet(doc, p, pageW, pageH)
			images[i] = img
			outcomes[i].Problems = probs
			outcomes[i].Err = err
			if err != nil {
				a.log.Warn("sheet side failed", "side", i, "err", err)
			}
		}(i, p)
	}
	wg.Wait()
	return images, outcomes, ctx.Err()
}
