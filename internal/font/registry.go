// Package font resolves font families to renderable faces.
//
// A Registry scans directories for TrueType and OpenType files and hands
// out font.Face values at arbitrary pixel sizes. Resolution never fails:
// when a requested family is missing the registry falls back to the
// bundled Go fonts, and as a last resort to basicfont.Face7x13.
package font

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	family string
	size   float64
	bold   bool
	italic bool
}

// Registry maps font family names to faces. The zero value is not usable;
// call NewRegistry. All methods are safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	files map[string]string
	fonts map[string]*opentype.Font
	faces map[faceKey]xfont.Face
}

// NewRegistry returns an empty registry. Without any directories added it
// resolves every family to the bundled Go fonts.
func NewRegistry() *Registry {
	return &Registry{
		files: make(map[string]string),
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]xfont.Face),
	}
}

// AddDirectory scans dir for .ttf and .otf files and registers them under
// their base name, lowercased and without extension. Subdirectories are
// walked. A missing directory is not an error.
func (r *Registry) AddDirectory(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		r.mu.Lock()
		if _, ok := r.files[name]; !ok {
			r.files[name] = path
		}
		r.mu.Unlock()
		return nil
	})
}

// Register adds already parsed font data under the given family name,
// overriding any file discovered by AddDirectory.
func (r *Registry) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.fonts[normalize(family)] = f
	r.mu.Unlock()
	return nil
}

// Face returns a face for the family at the given pixel size. Bold and
// italic select the matching variant where one is registered, otherwise
// the style modifiers pick among the bundled Go fonts. Face never returns
// nil.
func (r *Registry) Face(family string, sizePx float64, bold, italic bool) xfont.Face {
	if sizePx <= 0 {
		sizePx = 12
	}
	key := faceKey{normalize(family), sizePx, bold, italic}

	r.mu.Lock()
	defer r.mu.Unlock()

	if face, ok := r.faces[key]; ok {
		return face
	}

	face := r.newFaceLocked(key)
	r.faces[key] = face
	return face
}

func (r *Registry) newFaceLocked(key faceKey) xfont.Face {
	opts := &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	}

	// Styled file names like "arial-bold" or "arialbd" are common; try
	// variant names before the plain family.
	for _, name := range variantNames(key.family, key.bold, key.italic) {
		if f := r.parsedLocked(name); f != nil {
			if face, err := opentype.NewFace(f, opts); err == nil {
				return face
			}
		}
	}

	data := goregular.TTF
	switch {
	case key.bold && key.italic:
		data = gobolditalic.TTF
	case key.bold:
		data = gobold.TTF
	case key.italic:
		data = goitalic.TTF
	}
	if f, err := opentype.Parse(data); err == nil {
		if face, err := opentype.NewFace(f, opts); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// parsedLocked returns the parsed font registered under name, loading it
// from a discovered file on first use.
func (r *Registry) parsedLocked(name string) *opentype.Font {
	if f, ok := r.fonts[name]; ok {
		return f
	}
	path, ok := r.files[name]
	if !ok {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	r.fonts[name] = f
	return f
}

func variantNames(family string, bold, italic bool) []string {
	switch {
	case bold && italic:
		return []string{family + "-bolditalic", family + "bi", family + "z", family}
	case bold:
		return []string{family + "-bold", family + "bd", family + "b", family}
	case italic:
		return []string{family + "-italic", family + "i", family}
	default:
		return []string{family}
	}
}

func normalize(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// Measure returns the advance width of s in pixels, accounting for kerning
// pairs, together with the face's line height.
func Measure(face xfont.Face, s string) (width, lineHeight int) {
	var advance fixed.Int26_6
	prev := rune(-1)
	for _, c := range s {
		if prev >= 0 {
			advance += face.Kern(prev, c)
		}
		if a, ok := face.GlyphAdvance(c); ok {
			advance += a
		}
		prev = c
	}
	m := face.Metrics()
	return advance.Ceil(), m.Height.Ceil()
}

// Ascent returns the face ascent in pixels.
func Ascent(face xfont.Face) int {
	return face.Metrics().Ascent.Ceil()
}
