package font

import (
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceNeverNil(t *testing.T) {
	r := NewRegistry()
	for _, tt := range []struct {
		family string
		size   float64
		bold   bool
		italic bool
	}{
		{"Arial", 24, false, false},
		{"Arial", 24, true, false},
		{"Arial", 24, false, true},
		{"Arial", 24, true, true},
		{"No Such Family", 10, false, false},
		{"", 16, false, false},
		{"Arial", 0, false, false},
		{"Arial", -5, false, false},
	} {
		if face := r.Face(tt.family, tt.size, tt.bold, tt.italic); face == nil {
			t.Errorf("Face(%q, %v, %v, %v) = nil", tt.family, tt.size, tt.bold, tt.italic)
		}
	}
}

func TestFaceCached(t *testing.T) {
	r := NewRegistry()
	a := r.Face("Arial", 24, false, false)
	b := r.Face("arial", 24, false, false)
	if a != b {
		t.Error("expected identical face for case-insensitive family lookup")
	}
	c := r.Face("Arial", 25, false, false)
	if a == c {
		t.Error("expected distinct faces for distinct sizes")
	}
}

func TestRegisterOverridesFallback(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Custom", goregular.TTF); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if face := r.Face("Custom", 18, false, false); face == basicfont.Face7x13 {
		t.Error("registered font resolved to basicfont fallback")
	}
}

func TestRegisterRejectsGarbage(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Bad", []byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestAddDirectoryMissing(t *testing.T) {
	r := NewRegistry()
	if err := r.AddDirectory("/no/such/dir"); err != nil {
		t.Errorf("missing directory should not error, got %v", err)
	}
}

func TestMeasure(t *testing.T) {
	r := NewRegistry()
	face := r.Face("Arial", 24, false, false)

	w1, h := Measure(face, "Hello")
	if w1 <= 0 || h <= 0 {
		t.Fatalf("Measure returned nonpositive dimensions %d, %d", w1, h)
	}
	w2, _ := Measure(face, "Hello, World")
	if w2 <= w1 {
		t.Errorf("longer text should measure wider: %d <= %d", w2, w1)
	}
	if w, _ := Measure(face, ""); w != 0 {
		t.Errorf("empty string width = %d, want 0", w)
	}
}

func TestLargerSizeMeasuresWider(t *testing.T) {
	r := NewRegistry()
	small, _ := Measure(r.Face("Arial", 12, false, false), "booklet")
	large, _ := Measure(r.Face("Arial", 48, false, false), "booklet")
	if large <= small {
		t.Errorf("48px text should measure wider than 12px: %d <= %d", large, small)
	}
}
