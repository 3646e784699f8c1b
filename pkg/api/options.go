package api

import "log/slog"

// Options represents configuration options for the booklet exporter
type Options struct {
	// Per-page raster resolution used for export. The defaults are the
	// ~300 DPI equivalent for an A5 page.
	PageWidthPx  int
	PageHeightPx int

	// CropMarks draws fold guides on every exported sheet.
	CropMarks bool

	// Parallelism bounds concurrent sheet rendering during export.
	// Values below 1 mean sequential.
	Parallelism int

	// Resource paths
	ResourcePaths   []string
	FontDirectories []string

	// BaseURL resolves relative image references.
	BaseURL string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	// Logger receives non-fatal rendering diagnostics. Nil disables
	// logging.
	Logger *slog.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// Pixel dimensions of the two resolution regimes. Preview matches the
// on-screen editing scale; export is the ~300 DPI print scale. Both have
// the 148:210 A5 aspect.
const (
	PreviewPageWidth  = 296
	PreviewPageHeight = 420

	ExportPageWidth  = 1748
	ExportPageHeight = 2480
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageWidthPx:  ExportPageWidth,
		PageHeightPx: ExportPageHeight,

		CropMarks: true,

		Parallelism: 1,

		ResourcePaths:   []string{},
		FontDirectories: []string{},

		Title:    "",
		Author:   "",
		Subject:  "",
		Keywords: "",
		Creator:  "gobooklet",
		Producer: "gobooklet",
	}
}

// WithResolution sets the per-page raster resolution
func WithResolution(widthPx, heightPx int) Option {
	return func(o *Options) {
		o.PageWidthPx = widthPx
		o.PageHeightPx = heightPx
	}
}

// WithCropMarks toggles fold guides on exported sheets
func WithCropMarks(enabled bool) Option {
	return func(o *Options) {
		o.CropMarks = enabled
	}
}

// WithParallelism bounds concurrent sheet rendering
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithResourcePath adds a path to search for image resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithBaseURL sets the base for resolving relative image references
func WithBaseURL(base string) Option {
	return func(o *Options) {
		o.BaseURL = base
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithLogger sets the logger for rendering diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
