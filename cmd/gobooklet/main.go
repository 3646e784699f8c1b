package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gobooklet/gobooklet"
)

func main() {
	var (
		inputFile  string
		template   string
		pages      int
		outputFile string
		imageDir   string
		fontDir    string
		resDir     string
		title      string
		author     string
		noCrop     bool
		workers    int
		verbose    bool
	)

	flag.StringVar(&inputFile, "input", "", "Input booklet JSON file path")
	flag.StringVar(&template, "template", "", "Start from a built-in template: "+strings.Join(gobooklet.TemplateNames(), ", "))
	flag.IntVar(&pages, "pages", 4, "Page count when starting from a template (1, 2, 4 or 8)")
	flag.StringVar(&outputFile, "output", "", "Output PDF file path")
	flag.StringVar(&imageDir, "images", "", "Directory to export per-page PNGs into")
	flag.StringVar(&fontDir, "fonts", "", "Directory to scan for .ttf/.otf fonts")
	flag.StringVar(&resDir, "resources", "", "Directory to search for image resources")
	flag.StringVar(&title, "title", "", "PDF title metadata")
	flag.StringVar(&author, "author", "", "PDF author metadata")
	flag.BoolVar(&noCrop, "no-crop-marks", false, "Disable fold guides on exported sheets")
	flag.IntVar(&workers, "workers", 1, "Concurrent sheet renders during export")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if inputFile == "" && template == "" {
		fmt.Println("Error: either -input or -template is required")
		flag.Usage()
		os.Exit(1)
	}

	var doc *gobooklet.Document
	var err error
	if inputFile != "" {
		doc, err = gobooklet.ReadDocumentFile(inputFile)
		if err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		}
	} else {
		doc = gobooklet.NewDocument(pages)
		if err := gobooklet.ApplyTemplate(doc, template); err != nil {
			fmt.Printf("Error applying template: %v\n", err)
			os.Exit(1)
		}
	}

	if outputFile == "" && imageDir == "" {
		base := "booklet"
		if inputFile != "" {
			ext := filepath.Ext(inputFile)
			base = inputFile[:len(inputFile)-len(ext)]
		} else if template != "" {
			base = template
		}
		outputFile = base + ".pdf"
	}

	opts := []gobooklet.Option{
		gobooklet.WithTitle(title),
		gobooklet.WithAuthor(author),
		gobooklet.WithCropMarks(!noCrop),
		gobooklet.WithParallelism(workers),
	}
	if fontDir != "" {
		opts = append(opts, gobooklet.WithFontDirectory(fontDir))
	}
	if resDir != "" {
		opts = append(opts, gobooklet.WithResourcePath(resDir))
	}
	if verbose {
		opts = append(opts, gobooklet.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	exporter := gobooklet.NewWith(opts...)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if outputFile != "" {
		outcomes, err := exporter.ExportPDFFile(ctx, doc, outputFile)
		reportSheets(outcomes, verbose)
		if err != nil {
			fmt.Printf("Error exporting PDF: %v\n", err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("Wrote %s (%d sheet sides, %d pages)\n", outputFile, exporter.SideCount(doc), doc.PageCount)
		}
	}

	if imageDir != "" {
		outcomes, err := exporter.ExportImages(ctx, doc, imageDir)
		if err != nil {
			fmt.Printf("Error exporting images: %v\n", err)
			os.Exit(1)
		}
		for _, o := range outcomes {
			if o.Err != nil {
				fmt.Printf("Warning: page %d failed: %v\n", o.Page+1, o.Err)
			} else if verbose {
				fmt.Printf("Wrote %s\n", o.Path)
			}
		}
	}
}

func reportSheets(outcomes []gobooklet.SheetOutcome, verbose bool) {
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("Warning: sheet side %d (pages %d,%d) failed: %v\n", o.Side, o.Left, o.Right, o.Err)
			continue
		}
		for _, p := range o.Problems {
			fmt.Printf("Warning: sheet side %d: %s\n", o.Side, p)
		}
		if verbose {
			fmt.Printf("Rendered sheet side %d (pages %d,%d)\n", o.Side, o.Left, o.Right)
		}
	}
}
