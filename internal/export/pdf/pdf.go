// Package pdf writes print-ready booklet PDFs.
//
// Each physical sheet side becomes one landscape A4 page carrying a
// full-bleed raster of two A5 halves, in saddle-stitch print order.
// Optional crop marks at the vertical centerline show where to fold.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gobooklet/gobooklet/internal/imposition"
	"github.com/gobooklet/gobooklet/internal/model"
	"github.com/gobooklet/gobooklet/internal/sheet"
)

// Physical sheet dimensions in millimeters (landscape A4).
const (
	SheetWidthMM  = 297
	SheetHeightMM = 210

	// CropMarkLengthMM is how far each fold guide extends in from the
	// sheet's top and bottom edges.
	CropMarkLengthMM = 10
)

// Default per-page raster resolution, approximately 300 DPI for A5.
const (
	DefaultPageWidthPx  = 1748
	DefaultPageHeightPx = 2480
)

// Options configures one export run.
type Options struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	// PageWidthPx and PageHeightPx set the raster resolution of each
	// A5 half. Zero values take the ~300 DPI defaults.
	PageWidthPx  int
	PageHeightPx int

	// CropMarks draws fold guides at the sheet centerline.
	CropMarks bool

	// Parallelism bounds how many sheet sides render concurrently.
	Parallelism int
}

// Writer assembles sheet rasters and paginates them into a PDF.
type Writer struct {
	assembler *sheet.Assembler
	log       *slog.Logger
}

// NewWriter creates a PDF writer. A nil assembler gets default
// collaborators; a nil logger disables logging.
func NewWriter(a *sheet.Assembler, log *slog.Logger) *Writer {
	if a == nil {
		a = sheet.New(nil, nil)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{assembler: a, log: log}
}

// Write renders the document's print-order sheet sides and writes the
// PDF to w. Sides that fail to render are reported in the outcome list
// and appear as blank pages rather than aborting the export; an error is
// returned only when the export as a whole cannot proceed.
func (wr *Writer) Write(ctx context.Context, doc *model.Document, w io.Writer, opts Options) ([]sheet.Outcome, error) {
	pageW := opts.PageWidthPx
	if pageW <= 0 {
		pageW = DefaultPageWidthPx
	}
	pageH := opts.PageHeightPx
	if pageH <= 0 {
		pageH = DefaultPageHeightPx
	}

	images, outcomes, err := wr.assembler.RenderPrintOrder(ctx, doc, pageW, pageH, opts.Parallelism)
	if err != nil {
		return outcomes, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)
	pdf.SetAuthor(opts.Author, true)
	pdf.SetSubject(opts.Subject, true)
	pdf.SetKeywords(opts.Keywords, true)
	pdf.SetCreator(opts.Creator, true)
	pdf.SetProducer(opts.Producer, true)

	for i, img := range images {
		pdf.AddPage()
		if img == nil {
			wr.log.Warn("sheet side missing, emitting blank page", "side", i)
			continue
		}
		if err := embedSheet(pdf, img, i); err != nil {
			return outcomes, err
		}
		if opts.CropMarks {
			drawCropMarks(pdf)
		}
	}

	if err := pdf.Output(w); err != nil {
		return outcomes, fmt.Errorf("pdf: %w", err)
	}
	return outcomes, nil
}

// WriteFile is Write to a file path, creating parent directories.
func (wr *Writer) WriteFile(ctx context.Context, doc *model.Document, path string, opts Options) ([]sheet.Outcome, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dir, fs.FileMode(0o755)); err != nil {
			return nil, fmt.Errorf("pdf: create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	outcomes, werr := wr.Write(ctx, doc, f, opts)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return outcomes, werr
}

// embedSheet places one sheet raster full bleed on the current page.
func embedSheet(pdf *fpdf.Fpdf, img *image.RGBA, side int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pdf: encode sheet %d: %w", side, err)
	}
	name := fmt.Sprintf("sheet-%d", side)
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opt, &buf)
	pdf.ImageOptions(name, 0, 0, SheetWidthMM, SheetHeightMM, false, opt, 0, "")
	if pdf.Err() {
		return fmt.Errorf("pdf: embed sheet %d: %w", side, pdf.Error())
	}
	return nil
}

// drawCropMarks draws light gray fold guides on the sheet centerline,
// extending in from the top and bottom edges.
func drawCropMarks(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(0xCC, 0xCC, 0xCC)
	pdf.SetLineWidth(0.5)
	mid := float64(SheetWidthMM) / 2
	pdf.Line(mid, 0, mid, CropMarkLengthMM)
	pdf.Line(mid, SheetHeightMM-CropMarkLengthMM, mid, SheetHeightMM)
}

// SideCount reports how many sheet sides, and so how many PDF pages, a
// document exports to.
func SideCount(doc *model.Document) int {
	return len(imposition.PrintOrder(doc.PageCount))
}
