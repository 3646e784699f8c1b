// Package api is the public surface of gobooklet: it wires the font
// registry, resource loader, page compositor, sheet assembler and PDF
// writer together behind a single Exporter.
package api

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobooklet/gobooklet/internal/compose"
	"github.com/gobooklet/gobooklet/internal/export/pdf"
	"github.com/gobooklet/gobooklet/internal/font"
	"github.com/gobooklet/gobooklet/internal/imposition"
	"github.com/gobooklet/gobooklet/internal/model"
	"github.com/gobooklet/gobooklet/internal/res"
	"github.com/gobooklet/gobooklet/internal/sheet"
)

// Exporter renders booklet documents to previews, page images and
// print-ready PDFs. It is safe for concurrent use once constructed.
type Exporter struct {
	options   Options
	fonts     *font.Registry
	loader    *res.Loader
	comp      *compose.Compositor
	assembler *sheet.Assembler
	writer    *pdf.Writer
	log       *slog.Logger
}

// New creates an exporter with default options
func New() *Exporter {
	return NewWithOptions(DefaultOptions())
}

// NewWith creates an exporter from default options modified by opts
func NewWith(opts ...Option) *Exporter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates an exporter with the specified options
func NewWithOptions(options Options) *Exporter {
	fonts := font.NewRegistry()
	for _, dir := range options.FontDirectories {
		_ = fonts.AddDirectory(dir)
	}
	loader := res.NewLoader(options.BaseURL)
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	comp := compose.New(fonts, loader, options.Logger)
	assembler := sheet.New(comp, options.Logger)
	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{
		options:   options,
		fonts:     fonts,
		loader:    loader,
		comp:      comp,
		assembler: assembler,
		writer:    pdf.NewWriter(assembler, options.Logger),
		log:       log,
	}
}

// SheetOutcome reports how one exported sheet side went. Problems lists
// element-level issues (skipped images and the like); Err is set when the
// whole side failed and was exported blank.
type SheetOutcome struct {
	Side     int
	Left     int
	Right    int
	Problems []string
	Err      error
}

func toSheetOutcomes(in []sheet.Outcome) []SheetOutcome {
	out := make([]SheetOutcome, len(in))
	for i, o := range in {
		so := SheetOutcome{Side: o.Index, Left: o.Pair.Left, Right: o.Pair.Right, Err: o.Err}
		for _, p := range o.Problems {
			so.Problems = append(so.Problems, p.String())
		}
		out[i] = so
	}
	return out
}

func (e *Exporter) pdfOptions() pdf.Options {
	return pdf.Options{
		Title:        e.options.Title,
		Author:       e.options.Author,
		Subject:      e.options.Subject,
		Keywords:     e.options.Keywords,
		Creator:      e.options.Creator,
		Producer:     e.options.Producer,
		PageWidthPx:  e.options.PageWidthPx,
		PageHeightPx: e.options.PageHeightPx,
		CropMarks:    e.options.CropMarks,
		Parallelism:  e.options.Parallelism,
	}
}

// ExportPDF writes the document as a print-ready PDF to output. One
// landscape sheet page is emitted per print-order side. Per-side
// diagnostics come back in the outcome list; only an export-wide failure
// returns an error.
func (e *Exporter) ExportPDF(ctx context.Context, doc *model.Document, output io.Writer) ([]SheetOutcome, error) {
	outcomes, err := e.writer.Write(ctx, doc, output, e.pdfOptions())
	return toSheetOutcomes(outcomes), err
}

// ExportPDFFile writes the document as a print-ready PDF to a file,
// creating parent directories as needed.
func (e *Exporter) ExportPDFFile(ctx context.Context, doc *model.Document, path string) ([]SheetOutcome, error) {
	outcomes, err := e.writer.WriteFile(ctx, doc, path, e.pdfOptions())
	return toSheetOutcomes(outcomes), err
}

// PageOutcome reports how exporting one page image went.
type PageOutcome struct {
	Page     int
	Path     string
	Problems []string
	Err      error
}

// ExportImages renders every page at the configured resolution and
// writes them into dir as page_01.png, page_02.png and so on. A failed
// page gets its outcome recorded and the rest still export. The context
// is honored between pages.
func (e *Exporter) ExportImages(ctx context.Context, doc *model.Document, dir string) ([]PageOutcome, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("api: create image directory: %w", err)
	}
	outcomes := make([]PageOutcome, 0, len(doc.Pages))
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		path := filepath.Join(dir, fmt.Sprintf("page_%02d.png", i+1))
		out := PageOutcome{Page: i, Path: path}
		img, problems, err := e.comp.RenderPage(page, e.options.PageWidthPx, e.options.PageHeightPx)
		for _, p := range problems {
			out.Problems = append(out.Problems, p.String())
		}
		if err == nil {
			err = writePNG(path, img)
		}
		if err != nil {
			e.log.Warn("page export failed", "page", i, "err", err)
		}
		out.Err = err
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPage rasterizes a single page at the given pixel size, for
// previews or custom sinks.
func (e *Exporter) RenderPage(page *model.Page, widthPx, heightPx int) (*image.RGBA, []string, error) {
	img, problems, err := e.comp.RenderPage(page, widthPx, heightPx)
	strs := make([]string, 0, len(problems))
	for _, p := range problems {
		strs = append(strs, p.String())
	}
	return img, strs, err
}

// RenderSpread renders a reading-order spread (how the folded booklet
// looks to a reader) as one double-width image, with its display label.
func (e *Exporter) RenderSpread(doc *model.Document, spreadIndex, pageWidthPx, pageHeightPx int) (*image.RGBA, string, error) {
	spreads := imposition.SpreadPairs(doc.PageCount)
	if spreadIndex < 0 || spreadIndex >= len(spreads) {
		return nil, "", fmt.Errorf("api: spread index %d out of range [0,%d)", spreadIndex, len(spreads))
	}
	s := spreads[spreadIndex]
	img, _, err := e.assembler.RenderSheet(doc, s.Pair, pageWidthPx, pageHeightPx)
	return img, s.Label, err
}

// RenderSheetSide renders a print-order sheet side as one double-width
// image, exactly as it would appear in the exported PDF.
func (e *Exporter) RenderSheetSide(doc *model.Document, sideIndex, pageWidthPx, pageHeightPx int) (*image.RGBA, error) {
	pairs := imposition.PrintOrder(doc.PageCount)
	if sideIndex < 0 || sideIndex >= len(pairs) {
		return nil, fmt.Errorf("api: sheet side %d out of range [0,%d)", sideIndex, len(pairs))
	}
	img, _, err := e.assembler.RenderSheet(doc, pairs[sideIndex], pageWidthPx, pageHeightPx)
	return img, err
}

// SideCount reports how many sheet sides the document prints to, which
// is also the exported PDF's page count.
func (e *Exporter) SideCount(doc *model.Document) int {
	return len(imposition.PrintOrder(doc.PageCount))
}

// RegisterFont makes already loaded font bytes available under the
// given family name.
func (e *Exporter) RegisterFont(family string, data []byte) error {
	return e.fonts.Register(family, data)
}
