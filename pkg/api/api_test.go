package api

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobooklet/gobooklet/internal/model"
)

func smallExporter() *Exporter {
	return NewWith(WithResolution(60, 86))
}

func TestExportPDF(t *testing.T) {
	doc := model.NewDocument(4)
	if err := model.ApplyTemplate(doc, "modern"); err != nil {
		t.Fatalf("template: %v", err)
	}

	var buf bytes.Buffer
	outcomes, err := smallExporter().ExportPDF(context.Background(), doc, &buf)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if len(outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("side %d: %v", o.Side, o.Err)
		}
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestExportImages(t *testing.T) {
	doc := model.NewDocument(2)
	doc.Pages[0].SetBackgroundColor("#ff0000")
	doc.Pages[1].SetBackgroundColor("#00ff00")

	dir := t.TempDir()
	outcomes, err := smallExporter().ExportImages(context.Background(), doc, dir)
	if err != nil {
		t.Fatalf("ExportImages: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	for i, name := range []string{"page_01.png", "page_02.png"} {
		if outcomes[i].Err != nil {
			t.Errorf("page %d: %v", i, outcomes[i].Err)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestExportImagesContinuesPastFailure(t *testing.T) {
	doc := model.NewDocument(2)
	doc.Pages[0].BackgroundColor = "#bad"

	outcomes, err := smallExporter().ExportImages(context.Background(), doc, t.TempDir())
	if err != nil {
		t.Fatalf("batch should continue: %v", err)
	}
	if outcomes[0].Err == nil {
		t.Error("broken page should carry an error")
	}
	if outcomes[1].Err != nil {
		t.Errorf("healthy page failed: %v", outcomes[1].Err)
	}
}

func TestRenderSpreadLabels(t *testing.T) {
	doc := model.NewDocument(8)
	e := smallExporter()

	img, label, err := e.RenderSpread(doc, 0, 60, 86)
	if err != nil {
		t.Fatalf("RenderSpread: %v", err)
	}
	if label != "Back Cover & Front Cover" {
		t.Errorf("label = %q", label)
	}
	if img.Bounds().Dx() != 120 {
		t.Errorf("spread width = %d, want double page width", img.Bounds().Dx())
	}

	if _, _, err := e.RenderSpread(doc, 99, 60, 86); err == nil {
		t.Error("expected range error")
	}
}

func TestRenderSheetSide(t *testing.T) {
	doc := model.NewDocument(4)
	e := smallExporter()
	img, err := e.RenderSheetSide(doc, 0, 60, 86)
	if err != nil {
		t.Fatalf("RenderSheetSide: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 86 {
		t.Errorf("sheet = %dx%d, want 120x86", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if _, err := e.RenderSheetSide(doc, -1, 60, 86); err == nil {
		t.Error("expected range error")
	}
}

func TestSideCountMatchesPrintOrder(t *testing.T) {
	e := New()
	for pages, want := range map[int]int{1: 1, 2: 1, 4: 2, 8: 4, 6: 3} {
		if got := e.SideCount(model.NewDocument(pages)); got != want {
			t.Errorf("SideCount(%d) = %d, want %d", pages, got, want)
		}
	}
}

func TestDefaultOptionsAspect(t *testing.T) {
	o := DefaultOptions()
	if o.PageWidthPx != ExportPageWidth || o.PageHeightPx != ExportPageHeight {
		t.Errorf("default resolution = %dx%d", o.PageWidthPx, o.PageHeightPx)
	}
	// Both regimes keep the A5 aspect ratio.
	previewAspect := float64(PreviewPageWidth) / float64(PreviewPageHeight)
	exportAspect := float64(ExportPageWidth) / float64(ExportPageHeight)
	if diff := previewAspect - exportAspect; diff > 0.01 || diff < -0.01 {
		t.Errorf("preview and export aspect ratios diverge: %v vs %v", previewAspect, exportAspect)
	}
}
