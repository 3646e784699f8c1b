package gobooklet

import (
	"io"

	"github.com/gobooklet/gobooklet/internal/imposition"
	"github.com/gobooklet/gobooklet/internal/model"
	"github.com/gobooklet/gobooklet/pkg/api"
)

type Exporter = api.Exporter
type Options = api.Options
type Option = api.Option
type SheetOutcome = api.SheetOutcome
type PageOutcome = api.PageOutcome

type Document = model.Document
type Page = model.Page
type TextElement = model.TextElement
type ImageElement = model.ImageElement
type ShapeElement = model.ShapeElement
type Gradient = model.Gradient
type Template = model.Template

type Alignment = model.Alignment
type FitMode = model.FitMode
type ShapeKind = model.ShapeKind
type GradientDirection = model.GradientDirection

type Pair = imposition.Pair
type Spread = imposition.Spread

func New() *Exporter                           { return api.New() }
func NewWith(opts ...Option) *Exporter         { return api.NewWith(opts...) }
func NewWithOptions(options Options) *Exporter { return api.NewWithOptions(options) }
func DefaultOptions() Options                  { return api.DefaultOptions() }

func NewDocument(pages int) *Document { return model.NewDocument(pages) }
func NewPage() *Page                  { return model.NewPage() }
func NewText(text string, x, y float64) *TextElement {
	return model.NewText(text, x, y)
}
func NewImage(x, y, width, height float64) *ImageElement {
	return model.NewImage(x, y, width, height)
}
func NewShape(kind ShapeKind, x, y, width, height float64) *ShapeElement {
	return model.NewShape(kind, x, y, width, height)
}

func ReadDocument(r io.Reader) (*Document, error)      { return model.ReadDocument(r) }
func ReadDocumentFile(path string) (*Document, error)  { return model.ReadDocumentFile(path) }
func ApplyTemplate(d *Document, name string) error     { return model.ApplyTemplate(d, name) }
func TemplateNames() []string                          { return model.TemplateNames() }
func PrintOrder(pageCount int) []Pair                  { return imposition.PrintOrder(pageCount) }
func SpreadPairs(pageCount int) []Spread               { return imposition.SpreadPairs(pageCount) }

var (
	WithResolution    = api.WithResolution
	WithCropMarks     = api.WithCropMarks
	WithParallelism   = api.WithParallelism
	WithResourcePath  = api.WithResourcePath
	WithFontDirectory = api.WithFontDirectory
	WithBaseURL       = api.WithBaseURL
	WithTitle         = api.WithTitle
	WithAuthor        = api.WithAuthor
	WithSubject       = api.WithSubject
	WithKeywords      = api.WithKeywords
	WithLogger        = api.WithLogger
)

const (
	AlignLeft   = model.AlignLeft
	AlignCenter = model.AlignCenter
	AlignRight  = model.AlignRight

	FitCover   = model.FitCover
	FitContain = model.FitContain
	FitStretch = model.FitStretch

	ShapeRectangle = model.ShapeRectangle
	ShapeCircle    = model.ShapeCircle
	ShapeTriangle  = model.ShapeTriangle
	ShapeLine      = model.ShapeLine

	GradientVertical   = model.GradientVertical
	GradientHorizontal = model.GradientHorizontal
	GradientDiagonal   = model.GradientDiagonal

	TransparentFill = model.TransparentFill

	PreviewPageWidth  = api.PreviewPageWidth
	PreviewPageHeight = api.PreviewPageHeight
	ExportPageWidth   = api.ExportPageWidth
	ExportPageHeight  = api.ExportPageHeight
)
