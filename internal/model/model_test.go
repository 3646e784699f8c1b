package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocumentPageInvariant(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 6} {
		d := NewDocument(n)
		if d.PageCount != n || len(d.Pages) != n {
			t.Errorf("NewDocument(%d): PageCount=%d len(Pages)=%d", n, d.PageCount, len(d.Pages))
		}
		for i, p := range d.Pages {
			if p.BackgroundColor != "#ffffff" || p.Gradient != nil {
				t.Errorf("page %d not blank white: %+v", i, p)
			}
			if len(p.Shapes)+len(p.Images)+len(p.Texts) != 0 {
				t.Errorf("page %d not empty", i)
			}
		}
	}
}

func TestResize(t *testing.T) {
	d := NewDocument(4)
	d.Pages[0].Texts = append(d.Pages[0].Texts, NewText("cover", 50, 50))

	d.Resize(8)
	if d.PageCount != 8 || len(d.Pages) != 8 {
		t.Fatalf("after grow: PageCount=%d len=%d", d.PageCount, len(d.Pages))
	}
	if len(d.Pages[0].Texts) != 1 {
		t.Error("grow dropped existing page content")
	}
	for _, p := range d.Pages[4:] {
		if p.BackgroundColor != "#ffffff" || len(p.Texts) != 0 {
			t.Error("appended page is not blank white")
		}
	}

	d.Resize(2)
	if d.PageCount != 2 || len(d.Pages) != 2 {
		t.Fatalf("after shrink: PageCount=%d len=%d", d.PageCount, len(d.Pages))
	}
	if len(d.Pages[0].Texts) != 1 {
		t.Error("shrink truncated from the front, want from the end")
	}
}

func TestImageSourceExclusive(t *testing.T) {
	img := NewImage(50, 50, 40, 40)
	if img.HasSource() {
		t.Error("new image reports a source")
	}

	img.SetPath("/tmp/a.png")
	if !img.HasSource() || img.Path == "" || img.Data != nil {
		t.Errorf("after SetPath: %+v", img)
	}

	img.SetData([]byte{1, 2, 3})
	if img.Path != "" || len(img.Data) != 3 {
		t.Errorf("SetData did not clear path: %+v", img)
	}

	img.SetPath("/tmp/b.png")
	if img.Data != nil {
		t.Error("SetPath did not clear data")
	}
}

func TestElementDefaults(t *testing.T) {
	txt := NewText("hi", 10, 20)
	if txt.Opacity != 1 || txt.Rotation != 0 || txt.LayerIndex != 0 {
		t.Errorf("text defaults: %+v", txt.Common)
	}
	if txt.Alignment != AlignCenter || txt.FontSize != 24 {
		t.Errorf("text defaults: %+v", txt)
	}

	sh := NewShape(ShapeCircle, 50, 50, 20, 20)
	if sh.Opacity != 1 || sh.StrokeWidth != 2 {
		t.Errorf("shape defaults: %+v", sh)
	}

	img := NewImage(50, 50, 30, 30)
	if img.Fit != FitCover || img.Opacity != 1 {
		t.Errorf("image defaults: %+v", img)
	}
}

func TestSetBackgroundClearsGradient(t *testing.T) {
	p := NewPage()
	p.SetGradient("#000000", "#ffffff", GradientVertical)
	if p.Gradient == nil {
		t.Fatal("SetGradient did not set gradient")
	}
	p.SetBackgroundColor("#ff0000")
	if p.Gradient != nil {
		t.Error("flat background color must clear the gradient")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := NewDocument(2)
	if err := ApplyTemplate(d, "corporate"); err != nil {
		t.Fatal(err)
	}
	d.Pages[0].Images = append(d.Pages[0].Images, NewImage(10, 10, 5, 5))
	d.Pages[0].Images[0].SetData([]byte{9, 9})

	c := d.Clone()
	if diff := cmp.Diff(d, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Pages[0].Texts[0].Text = "changed"
	c.Pages[0].Images[0].Data[0] = 0
	c.Pages[1].SetBackgroundColor("#123456")
	if d.Pages[0].Texts[0].Text == "changed" {
		t.Error("clone shares text elements")
	}
	if d.Pages[0].Images[0].Data[0] == 0 {
		t.Error("clone shares image data buffer")
	}
	if d.Pages[1].BackgroundColor == "#123456" {
		t.Error("clone shares pages")
	}
}

func TestTemplatesCoverAllPageCounts(t *testing.T) {
	for _, key := range TemplateNames() {
		for _, n := range []int{1, 2, 4, 8} {
			t.Run(key, func(t *testing.T) {
				d := NewDocument(n)
				if err := ApplyTemplate(d, key); err != nil {
					t.Fatal(err)
				}
				if len(d.Pages) != n {
					t.Fatalf("template %s changed page count to %d", key, len(d.Pages))
				}
			})
		}
	}
	d := NewDocument(4)
	if err := ApplyTemplate(d, "no-such"); err == nil {
		t.Error("unknown template key must error")
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	d := NewDocument(4)
	if err := ApplyTemplate(d, "elegant"); err != nil {
		t.Fatal(err)
	}
	d.Pages[1].Images = append(d.Pages[1].Images, NewImage(50, 50, 60, 40))
	d.Pages[1].Images[0].SetData([]byte("not-an-image"))

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var back Document
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(d, &back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSeedsElementDefaults(t *testing.T) {
	raw := `{
		"page_count": 1,
		"pages": [{
			"background_color": "#ffffff",
			"texts": [{"text": "Hi", "x": 50, "y": 50}],
			"shapes": [
				{"kind": "circle", "x": 20, "y": 20, "width": 10, "height": 10},
				{"kind": "circle", "x": 80, "y": 20, "width": 10, "height": 10, "opacity": 0.25, "stroke_width": 0}
			],
			"images": [{"x": 50, "y": 80, "width": 20, "height": 20, "path": "photo.png"}]
		}]
	}`
	d, err := ReadDocument(strings.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	p := d.Pages[0]

	txt := p.Texts[0]
	if txt.Opacity != 1 {
		t.Errorf("omitted text opacity = %v, want 1", txt.Opacity)
	}
	if txt.Color != "#000000" || txt.FontFamily == "" || txt.FontSize <= 0 {
		t.Errorf("omitted text fields not seeded: %+v", txt)
	}

	if got := p.Shapes[0].Opacity; got != 1 {
		t.Errorf("omitted shape opacity = %v, want 1", got)
	}
	if p.Shapes[0].FillColor == "" || p.Shapes[0].StrokeColor == "" {
		t.Errorf("omitted shape colors not seeded: %+v", p.Shapes[0])
	}
	// Explicit values, including zero, override the seeds.
	if got := p.Shapes[1].Opacity; got != 0.25 {
		t.Errorf("explicit shape opacity = %v, want 0.25", got)
	}
	if got := p.Shapes[1].StrokeWidth; got != 0 {
		t.Errorf("explicit zero stroke width = %v, want 0", got)
	}

	img := p.Images[0]
	if img.Opacity != 1 {
		t.Errorf("omitted image opacity = %v, want 1", img.Opacity)
	}
	if img.Fit != FitCover {
		t.Errorf("omitted fit = %q, want %q", img.Fit, FitCover)
	}
}
