// Package model defines the document entities composed and imposed by the
// rendering pipeline: a Document of Pages, each carrying shape, image and
// text elements placed in page-relative percentage coordinates.
package model

// Alignment is the horizontal alignment of a text element relative to its
// anchor column.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// FitMode controls how an image source is reconciled with its target box.
type FitMode string

const (
	// FitCover scales uniformly to fill the box and center-crops the overflow.
	FitCover FitMode = "cover"
	// FitContain scales uniformly so the whole image fits inside the box.
	FitContain FitMode = "contain"
	// FitStretch forces the exact box dimensions, distorting aspect if needed.
	FitStretch FitMode = "stretch"
)

// ShapeKind enumerates the drawable shape primitives.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeTriangle  ShapeKind = "triangle"
	ShapeLine      ShapeKind = "line"
)

// GradientDirection is the axis a background gradient runs along.
type GradientDirection string

const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
	GradientDiagonal   GradientDirection = "diagonal"
)

// TransparentFill is the sentinel fill color meaning "no fill"; only the
// stroke of the shape is drawn.
const TransparentFill = "transparent"

// Common holds the placement fields shared by every element variant.
// X and Y are the element center as a percentage (0-100) of the page width
// and height; Width and Height are percentages of the same extents.
// Rotation is clockwise degrees about the element's own center. Opacity
// multiplies the element's alpha. Elements paint in ascending LayerIndex
// order; ties keep a stable order within the page's collections.
type Common struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   float64 `json:"rotation"`
	Opacity    float64 `json:"opacity"`
	LayerIndex int     `json:"layer_index"`
}

// TextElement is a block of text. Content may contain embedded line breaks,
// each producing a new visually stacked line. FontSize is in pixels at the
// reference preview width; the compositor rescales it for other resolutions.
// MaxWidth is an advisory wrap bound only and is not enforced.
type TextElement struct {
	Common
	Text       string    `json:"text"`
	FontFamily string    `json:"font_family"`
	FontSize   float64   `json:"font_size"`
	Color      string    `json:"color"`
	Bold       bool      `json:"bold"`
	Italic     bool      `json:"italic"`
	Alignment  Alignment `json:"alignment"`
	MaxWidth   float64   `json:"max_width"`
}

// NewText creates a text element with the defaults new elements get in the
// editor: centered, fully opaque, layer 0.
func NewText(text string, x, y float64) *TextElement {
	return &TextElement{
		Common:     Common{X: x, Y: y, Opacity: 1},
		Text:       text,
		FontFamily: "Arial",
		FontSize:   24,
		Color:      "#000000",
		Alignment:  AlignCenter,
		MaxWidth:   90,
	}
}

// ImageElement places a raster or SVG image. The source is either a file
// path or an in-memory byte buffer; the two are mutually exclusive and
// setting one clears the other. With neither set the element renders as a
// no-op.
type ImageElement struct {
	Common
	Path string  `json:"path,omitempty"`
	Data []byte  `json:"data,omitempty"`
	Fit  FitMode `json:"fit"`
}

// NewImage creates an image element with no source attached yet.
func NewImage(x, y, width, height float64) *ImageElement {
	return &ImageElement{
		Common: Common{X: x, Y: y, Width: width, Height: height, Opacity: 1},
		Fit:    FitCover,
	}
}

// SetPath attaches a file-path source, releasing any in-memory data.
func (e *ImageElement) SetPath(path string) {
	e.Path = path
	e.Data = nil
}

// SetData attaches an in-memory source, releasing any file path.
func (e *ImageElement) SetData(data []byte) {
	e.Data = data
	e.Path = ""
}

// HasSource reports whether the element has any source to render.
func (e *ImageElement) HasSource() bool {
	return e.Path != "" || len(e.Data) > 0
}

// ShapeElement is a filled and/or stroked primitive. FillColor is a hex
// string or TransparentFill; a StrokeWidth of 0 disables the stroke.
type ShapeElement struct {
	Common
	Kind        ShapeKind `json:"kind"`
	FillColor   string    `json:"fill_color"`
	StrokeColor string    `json:"stroke_color"`
	StrokeWidth int       `json:"stroke_width"`
}

// NewShape creates a shape element with the editor defaults.
func NewShape(kind ShapeKind, x, y, width, height float64) *ShapeElement {
	return &ShapeElement{
		Common:      Common{X: x, Y: y, Width: width, Height: height, Opacity: 1},
		Kind:        kind,
		FillColor:   "#3498db",
		StrokeColor: "#2980b9",
		StrokeWidth: 2,
	}
}

// Gradient is a two-color background gradient along a direction. A page has
// either a gradient or a flat background color, never both.
type Gradient struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Direction GradientDirection `json:"direction"`
}

// Page owns a background and three element collections. Collection
// membership determines identity only; paint order is governed entirely by
// LayerIndex.
type Page struct {
	BackgroundColor string          `json:"background_color"`
	Gradient        *Gradient       `json:"gradient,omitempty"`
	Shapes          []*ShapeElement `json:"shapes"`
	Images          []*ImageElement `json:"images"`
	Texts           []*TextElement  `json:"texts"`
}

// NewPage returns a blank white page with no elements.
func NewPage() *Page {
	return &Page{BackgroundColor: "#ffffff"}
}

// SetGradient replaces the background with a gradient.
func (p *Page) SetGradient(from, to string, dir GradientDirection) {
	p.Gradient = &Gradient{From: from, To: to, Direction: dir}
}

// SetBackgroundColor replaces the background with a flat color, clearing
// any gradient.
func (p *Page) SetBackgroundColor(hex string) {
	p.BackgroundColor = hex
	p.Gradient = nil
}

// Document is an ordered sequence of pages. PageCount and len(Pages) are
// kept equal at all times; Resize maintains the invariant.
type Document struct {
	PageCount int     `json:"page_count"`
	Pages     []*Page `json:"pages"`
	Template  string  `json:"template,omitempty"`
}

// NewDocument creates a document of n blank pages. n must be positive.
func NewDocument(n int) *Document {
	d := &Document{}
	d.Resize(n)
	return d
}

// Resize grows the document by appending blank pages or shrinks it by
// truncating from the end, so that len(Pages) == n afterwards.
func (d *Document) Resize(n int) {
	if n < 1 {
		n = 1
	}
	d.PageCount = n
	for len(d.Pages) < n {
		d.Pages = append(d.Pages, NewPage())
	}
	if len(d.Pages) > n {
		d.Pages = d.Pages[:n]
	}
}

// Clone returns a deep copy of the document. Rendering a document that is
// being mutated concurrently is undefined; batch exports clone a snapshot
// first.
func (d *Document) Clone() *Document {
	out := &Document{PageCount: d.PageCount, Template: d.Template}
	out.Pages = make([]*Page, len(d.Pages))
	for i, p := range d.Pages {
		out.Pages[i] = p.clone()
	}
	return out
}

func (p *Page) clone() *Page {
	np := &Page{BackgroundColor: p.BackgroundColor}
	if p.Gradient != nil {
		g := *p.Gradient
		np.Gradient = &g
	}
	for _, s := range p.Shapes {
		cs := *s
		np.Shapes = append(np.Shapes, &cs)
	}
	for _, im := range p.Images {
		ci := *im
		if im.Data != nil {
			ci.Data = append([]byte(nil), im.Data...)
		}
		np.Images = append(np.Images, &ci)
	}
	for _, t := range p.Texts {
		ct := *t
		np.Texts = append(np.Texts, &ct)
	}
	return np
}
