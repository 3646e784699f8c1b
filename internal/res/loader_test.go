package res

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"image"
)

func writeTestPNG(t *testing.T, path string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadLocalImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	want := writeTestPNG(t, path)

	l := NewLoader("")
	res, err := l.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if res.Type != ResourceTypeImage {
		t.Errorf("Type = %v, want ResourceTypeImage", res.Type)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want image/png", res.MimeType)
	}
	if !bytes.Equal(res.Data, want) {
		t.Error("data mismatch")
	}
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "pic.png"))

	l := NewLoader("")
	l.AddSearchPath(dir)
	if _, err := l.LoadImage("pic.png"); err != nil {
		t.Fatalf("LoadImage via search path: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	l := NewLoader("")
	_, err := l.Load("definitely-missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadDataURL(t *testing.T) {
	l := NewLoader("")
	res, err := l.Load("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != "hello" {
		t.Errorf("Data = %q, want %q", res.Data, "hello")
	}
	if res.Type != ResourceTypeImage {
		t.Errorf("Type = %v, want ResourceTypeImage", res.Type)
	}
}

func TestLoadDataURLPlain(t *testing.T) {
	l := NewLoader("")
	res, err := l.Load("data:text/plain,Hello%20World")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != "Hello World" {
		t.Errorf("Data = %q", res.Data)
	}
}

func TestLoadCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	writeTestPNG(t, path)

	l := NewLoader("")
	first, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Removing the file must not matter for a cached load.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if first != second {
		t.Error("expected cache hit to return the same resource")
	}
}

func TestBaseURLResolution(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "pic.png"))

	l := NewLoader(dir)
	if _, err := l.Load("pic.png"); err != nil {
		t.Fatalf("relative Load against base: %v", err)
	}
}

func TestIsSVG(t *testing.T) {
	if !(&Resource{MimeType: "image/svg+xml"}).IsSVG() {
		t.Error("svg mime not detected")
	}
	if !(&Resource{URL: "logo.SVG"}).IsSVG() {
		t.Error("svg extension not detected")
	}
	if (&Resource{URL: "logo.png", MimeType: "image/png"}).IsSVG() {
		t.Error("png misdetected as svg")
	}
}

func TestLoadImageRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("")
	if _, err := l.LoadImage(path); err == nil {
		t.Error("expected error for non-image resource")
	}
}
