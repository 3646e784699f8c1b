package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadDocument decodes a JSON document and restores the page-count
// invariant for inputs whose count and page list disagree.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("model: decode document: %w", err)
	}
	if d.PageCount < 1 && len(d.Pages) > 0 {
		d.PageCount = len(d.Pages)
	}
	d.Resize(d.PageCount)
	for _, p := range d.Pages {
		if p.BackgroundColor == "" {
			p.BackgroundColor = "#ffffff"
		}
	}
	return &d, nil
}

// Hand-written documents often omit fields whose zero value is not a
// usable default, opacity above all. Decoding seeds each element with the
// constructor defaults so omitted fields behave like newly created
// elements; explicit values, including an explicit zero, still win.

func (e *TextElement) UnmarshalJSON(data []byte) error {
	type plain TextElement
	aux := plain(*NewText("", 0, 0))
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = TextElement(aux)
	return nil
}

func (e *ImageElement) UnmarshalJSON(data []byte) error {
	type plain ImageElement
	aux := plain(*NewImage(0, 0, 0, 0))
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = ImageElement(aux)
	return nil
}

func (e *ShapeElement) UnmarshalJSON(data []byte) error {
	type plain ShapeElement
	aux := plain(*NewShape(ShapeRectangle, 0, 0, 0, 0))
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = ShapeElement(aux)
	return nil
}

// ReadDocumentFile reads a JSON document from a file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f)
}

// Save encodes the document as indented JSON.
func (d *Document) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// SaveFile writes the document as JSON to a file.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
