package model

import (
	"fmt"
	"sort"
)

// Template applies a predefined design to every page of a document.
type Template struct {
	Name        string
	Description string
	Apply       func(*Document)
}

// Templates is the registry of built-in designs keyed by identifier.
var Templates = map[string]Template{
	"blank": {
		Name:        "Blank",
		Description: "Empty template - start from scratch",
		Apply: func(d *Document) {
			for i := range d.Pages {
				d.Pages[i] = NewPage()
			}
		},
	},
	"corporate": {
		Name:        "Corporate Professional",
		Description: "Clean, professional design with geometric accents - perfect for business",
		Apply:       applyCorporate,
	},
	"creative": {
		Name:        "Creative Bold",
		Description: "Dynamic design with bold colors and geometric patterns - for creative businesses",
		Apply:       applyCreative,
	},
	"elegant": {
		Name:        "Elegant Luxury",
		Description: "Sophisticated design with gold accents - for premium brands and services",
		Apply:       applyElegant,
	},
	"modern": {
		Name:        "Modern Minimal",
		Description: "Clean lines and whitespace - for tech companies and modern brands",
		Apply:       applyModern,
	},
	"nature": {
		Name:        "Nature Organic",
		Description: "Earthy tones and organic shapes - for eco-friendly and wellness brands",
		Apply:       applyNature,
	},
}

// TemplateNames returns the registry keys in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(Templates))
	for k := range Templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ApplyTemplate looks up a template by key and applies it to the document.
func ApplyTemplate(d *Document, key string) error {
	t, ok := Templates[key]
	if !ok {
		return fmt.Errorf("unknown template %q", key)
	}
	t.Apply(d)
	d.Template = t.Name
	return nil
}

// Shapes paint on layer 0 and text on layer 1 so template text always reads
// above its decorative shapes.

func tshape(kind ShapeKind, x, y, w, h float64, fill, stroke string, strokeW int, opacity float64) *ShapeElement {
	return &ShapeElement{
		Common:      Common{X: x, Y: y, Width: w, Height: h, Opacity: opacity},
		Kind:        kind,
		FillColor:   fill,
		StrokeColor: stroke,
		StrokeWidth: strokeW,
	}
}

func ttext(s string, x, y, size float64, colorHex string, bold, italic bool, align Alignment) *TextElement {
	return &TextElement{
		Common:     Common{X: x, Y: y, Opacity: 1, LayerIndex: 1},
		Text:       s,
		FontFamily: "Arial",
		FontSize:   size,
		Color:      colorHex,
		Bold:       bold,
		Italic:     italic,
		Alignment:  align,
		MaxWidth:   90,
	}
}

func applyCorporate(d *Document) {
	const (
		primary = "#1a365d"
		accent  = "#ed8936"
		lightBg = "#f7fafc"
	)
	for i := range d.Pages {
		p := NewPage()
		switch {
		case i == 0:
			p.SetGradient(primary, "#2d4a77", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 8, 100, 8, accent, accent, 0, 1),
				tshape(ShapeRectangle, 50, 92, 100, 8, accent, accent, 0, 0.8),
				tshape(ShapeCircle, 85, 20, 15, 15, "#ffffff", "#ffffff", 0, 0.1),
				tshape(ShapeCircle, 90, 25, 20, 20, "#ffffff", "#ffffff", 0, 0.05),
			}
			p.Texts = []*TextElement{
				ttext("COMPANY NAME", 50, 35, 36, "#ffffff", true, false, AlignCenter),
				ttext("Professional Services", 50, 45, 18, accent, false, true, AlignCenter),
				ttext("Your tagline goes here", 50, 55, 14, "#ffffff", false, false, AlignCenter),
				ttext("www.example.com", 50, 85, 12, "#ffffff", false, false, AlignCenter),
			}
		case i == len(d.Pages)-1:
			p.SetGradient(primary, "#2d4a77", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 8, 100, 8, accent, accent, 0, 1),
			}
			p.Texts = []*TextElement{
				ttext("Contact Us", 50, 30, 28, "#ffffff", true, false, AlignCenter),
				ttext("123 Business Street", 50, 45, 14, "#ffffff", false, false, AlignCenter),
				ttext("+30 210 1234567", 50, 52, 14, "#ffffff", false, false, AlignCenter),
				ttext("info@example.com", 50, 59, 14, "#ffffff", false, false, AlignCenter),
				ttext("© 2024 Company Name", 50, 85, 10, "#ffffff", false, false, AlignCenter),
			}
		default:
			p.SetBackgroundColor(lightBg)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 5, 100, 6, primary, primary, 0, 1),
				tshape(ShapeRectangle, 15, 5, 20, 6, accent, accent, 0, 1),
				tshape(ShapeRectangle, 50, 50, 60, 0.5, accent, accent, 0, 0.5),
			}
			p.Texts = []*TextElement{
				ttext(fmt.Sprintf("Section %d", i), 50, 15, 24, primary, true, false, AlignCenter),
				ttext("Add your content here. This template provides\na clean, professional look for your business.", 50, 35, 12, "#4a5568", false, false, AlignCenter),
				ttext("Key Features:", 20, 55, 16, primary, true, false, AlignLeft),
				ttext("• Professional design\n• Easy to customize\n• Print-ready format", 20, 70, 12, "#4a5568", false, false, AlignLeft),
			}
		}
		d.Pages[i] = p
	}
}

func applyCreative(d *Document) {
	const (
		primary   = "#9b2c2c"
		secondary = "#f6e05e"
		accent    = "#2d3748"
	)
	for i := range d.Pages {
		p := NewPage()
		switch {
		case i == 0:
			p.SetGradient(primary, "#c53030", GradientDiagonal)
			p.Shapes = []*ShapeElement{
				tshape(ShapeTriangle, 80, 70, 60, 60, secondary, secondary, 0, 0.3),
				tshape(ShapeTriangle, 20, 30, 40, 40, "#ffffff", "#ffffff", 0, 0.1),
				tshape(ShapeCircle, 10, 10, 30, 30, secondary, secondary, 0, 0.8),
				tshape(ShapeCircle, 90, 90, 25, 25, "#ffffff", "#ffffff", 0, 0.2),
				tshape(ShapeRectangle, 50, 65, 100, 3, secondary, secondary, 0, 1),
			}
			p.Texts = []*TextElement{
				ttext("CREATIVE", 50, 30, 48, "#ffffff", true, false, AlignCenter),
				ttext("STUDIO", 50, 42, 48, secondary, true, false, AlignCenter),
				ttext("Design • Innovation • Excellence", 50, 75, 14, "#ffffff", false, true, AlignCenter),
			}
		case i == len(d.Pages)-1:
			p.SetGradient(accent, "#1a202c", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeCircle, 50, 30, 40, 40, primary, primary, 0, 0.3),
				tshape(ShapeRectangle, 50, 70, 60, 2, secondary, secondary, 0, 1),
			}
			p.Texts = []*TextElement{
				ttext("Let's Create Together", 50, 30, 24, "#ffffff", true, false, AlignCenter),
				ttext("Contact us for your next project", 50, 45, 14, "#a0aec0", false, false, AlignCenter),
				ttext("hello@creativestudio.com", 50, 75, 16, secondary, true, false, AlignCenter),
				ttext("+30 210 9876543", 50, 82, 14, "#ffffff", false, false, AlignCenter),
			}
		default:
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 3, 50, 3, 100, primary, primary, 0, 1),
				tshape(ShapeRectangle, 50, 3, 94, 3, secondary, secondary, 0, 1),
				tshape(ShapeTriangle, 95, 95, 15, 15, primary, primary, 0, 0.7),
			}
			p.Texts = []*TextElement{
				ttext(fmt.Sprintf("Our Work #%d", i), 50, 12, 28, primary, true, false, AlignCenter),
				ttext("We bring your ideas to life with\ninnovative design solutions.", 50, 30, 13, accent, false, false, AlignCenter),
				ttext("Services:", 15, 45, 18, primary, true, false, AlignLeft),
				ttext("✦ Brand Identity\n✦ Web Design\n✦ Print Materials\n✦ Marketing", 15, 60, 12, accent, false, false, AlignLeft),
			}
		}
		d.Pages[i] = p
	}
}

func applyElegant(d *Document) {
	const (
		dark  = "#1a1a2e"
		gold  = "#d4a574"
		cream = "#faf5f0"
	)
	corner := func(x, y float64) []*ShapeElement {
		return []*ShapeElement{
			tshape(ShapeRectangle, x, y, 15, 1, gold, gold, 0, 1),
			tshape(ShapeRectangle, x, y, 1, 15, gold, gold, 0, 1),
		}
	}
	for i := range d.Pages {
		p := NewPage()
		switch {
		case i == 0:
			p.SetGradient(dark, "#16213e", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 50, 90, 90, TransparentFill, gold, 2, 0.6),
				tshape(ShapeRectangle, 50, 55, 40, 0.5, gold, gold, 0, 1),
			}
			p.Shapes = append(p.Shapes, corner(10, 10)...)
			p.Shapes = append(p.Shapes, corner(90, 10)...)
			p.Shapes = append(p.Shapes, corner(10, 90)...)
			p.Shapes = append(p.Shapes, corner(90, 90)...)
			p.Texts = []*TextElement{
				ttext("✦", 50, 25, 24, gold, false, false, AlignCenter),
				ttext("MAISON", 50, 38, 42, "#ffffff", true, false, AlignCenter),
				ttext("ÉLÉGANCE", 50, 50, 28, gold, false, true, AlignCenter),
				ttext("Luxury Redefined", 50, 65, 14, "#a0a0a0", false, false, AlignCenter),
				ttext("Est. 2024", 50, 85, 12, gold, false, false, AlignCenter),
			}
		case i == len(d.Pages)-1:
			p.SetGradient(dark, "#16213e", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 50, 90, 90, TransparentFill, gold, 1, 0.4),
			}
			p.Texts = []*TextElement{
				ttext("Visit Us", 50, 30, 22, gold, true, false, AlignCenter),
				ttext("123 Luxury Avenue\nAthens, Greece", 50, 45, 13, "#ffffff", false, false, AlignCenter),
				ttext("By Appointment Only", 50, 60, 11, "#a0a0a0", false, true, AlignCenter),
				ttext("+30 210 555 0000", 50, 75, 14, gold, false, false, AlignCenter),
				ttext("www.maisonelegance.com", 50, 82, 11, "#ffffff", false, false, AlignCenter),
			}
		default:
			p.SetBackgroundColor(cream)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 8, 30, 0.5, gold, gold, 0, 1),
				tshape(ShapeRectangle, 50, 92, 30, 0.5, gold, gold, 0, 1),
				tshape(ShapeRectangle, 5, 5, 8, 0.5, gold, gold, 0, 0.5),
				tshape(ShapeRectangle, 5, 5, 0.5, 8, gold, gold, 0, 0.5),
			}
			p.Texts = []*TextElement{
				ttext(fmt.Sprintf("Collection %d", i), 50, 15, 26, dark, true, false, AlignCenter),
				ttext("Experience the extraordinary", 50, 25, 12, gold, false, true, AlignCenter),
				ttext("Discover our curated selection of\nexquisite pieces, crafted with precision\nand an unwavering commitment to excellence.", 50, 45, 11, "#4a4a4a", false, false, AlignCenter),
				ttext("✦  ✦  ✦", 50, 65, 14, gold, false, false, AlignCenter),
				ttext("Quality • Craftsmanship • Heritage", 50, 80, 10, dark, false, false, AlignCenter),
			}
		}
		d.Pages[i] = p
	}
}

func applyModern(d *Document) {
	const (
		black  = "#000000"
		white  = "#ffffff"
		gray   = "#f5f5f5"
		accent = "#00d9ff"
	)
	for i := range d.Pages {
		p := NewPage()
		switch {
		case i == 0:
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 50, 80, 100, 40, black, black, 0, 1),
				tshape(ShapeCircle, 75, 30, 30, 30, accent, accent, 0, 0.15),
				tshape(ShapeRectangle, 15, 50, 0.5, 30, black, black, 0, 1),
			}
			p.Texts = []*TextElement{
				ttext("NEXT", 50, 30, 56, black, true, false, AlignCenter),
				ttext("GEN", 50, 45, 56, accent, true, false, AlignCenter),
				ttext("Technology for Tomorrow", 50, 88, 12, white, false, false, AlignCenter),
			}
		case i == len(d.Pages)-1:
			p.SetBackgroundColor(black)
			p.Shapes = []*ShapeElement{
				tshape(ShapeCircle, 80, 20, 25, 25, accent, accent, 0, 0.3),
			}
			p.Texts = []*TextElement{
				ttext("Get Started", 50, 35, 28, white, true, false, AlignCenter),
				ttext("hello@nextgen.tech", 50, 50, 16, accent, false, false, AlignCenter),
				ttext("nextgen.tech", 50, 60, 14, white, false, false, AlignCenter),
				ttext("@nextgentech", 50, 85, 12, "#666666", false, false, AlignCenter),
			}
		default:
			p.SetBackgroundColor(gray)
			p.Shapes = []*ShapeElement{
				tshape(ShapeRectangle, 10, 15, 15, 0.8, accent, accent, 0, 1),
				tshape(ShapeRectangle, 50, 95, 100, 5, black, black, 0, 1),
			}
			p.Texts = []*TextElement{
				ttext(fmt.Sprintf("0%d.", i), 10, 20, 36, black, true, false, AlignLeft),
				ttext("Feature", 30, 20, 28, black, false, false, AlignLeft),
				ttext("Innovative solutions designed\nfor the modern world.", 50, 40, 13, "#333333", false, false, AlignCenter),
				ttext("→ Fast\n→ Secure\n→ Scalable", 20, 60, 12, black, false, false, AlignLeft),
				ttext(fmt.Sprintf("Page %d", i), 90, 95, 10, white, false, false, AlignCenter),
			}
		}
		d.Pages[i] = p
	}
}

func applyNature(d *Document) {
	const (
		forest = "#2d5016"
		sage   = "#9caf88"
		cream  = "#f5f2eb"
		earth  = "#8b7355"
	)
	for i := range d.Pages {
		p := NewPage()
		switch {
		case i == 0:
			p.SetGradient(forest, "#3d6b1e", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeCircle, 80, 75, 50, 50, sage, sage, 0, 0.3),
				tshape(ShapeCircle, 20, 85, 35, 35, cream, cream, 0, 0.15),
				tshape(ShapeCircle, 90, 20, 20, 20, "#ffffff", "#ffffff", 0, 0.1),
				tshape(ShapeCircle, 50, 25, 8, 8, cream, cream, 0, 0.8),
			}
			p.Texts = []*TextElement{
				ttext("TERRA", 50, 38, 44, cream, true, false, AlignCenter),
				ttext("BOTANICA", 50, 52, 24, sage, false, false, AlignCenter),
				ttext("Natural • Organic • Sustainable", 50, 70, 11, "#c8d6b9", false, false, AlignCenter),
			}
		case i == len(d.Pages)-1:
			p.SetGradient(earth, "#6b5344", GradientVertical)
			p.Shapes = []*ShapeElement{
				tshape(ShapeCircle, 50, 50, 60, 60, cream, cream, 0, 0.1),
			}
			p.Texts = []*TextElement{
				ttext("Find Us", 50, 30, 24, cream, true, false, AlignCenter),
				ttext("123 Garden Path\nNature Valley", 50, 45, 13, "#ffffff", false, false, AlignCenter),
				ttext("Open Daily: 9am - 6pm", 50, 60, 11, sage, false, true, AlignCenter),
				ttext("www.terrabotanica.eco", 50, 80, 13, cream, false, false, AlignCenter),
			}
		default:
			p.SetBackgroundColor(cream)
			p.Shapes = []*ShapeElement{
				tshape(ShapeCircle, 90, 5, 20, 20, sage, sage, 0, 0.4),
				tshape(ShapeCircle, 10, 95, 15, 15, sage, sage, 0, 0.3),
				tshape(ShapeRectangle, 50, 50, 50, 0.5, earth, earth, 0, 0.5),
			}
			p.Texts = []*TextElement{
				ttext(fmt.Sprintf("Our Promise #%d", i), 50, 20, 24, forest, true, false, AlignCenter),
				ttext("We believe in harmony with nature.\nEvery product is crafted with care\nfor you and the environment.", 50, 38, 11, "#5a5a5a", false, false, AlignCenter),
				ttext("✓ 100% Organic\n✓ Sustainably Sourced\n✓ Eco-Friendly Packaging", 25, 65, 11, forest, false, false, AlignLeft),
			}
		}
		d.Pages[i] = p
	}
}
