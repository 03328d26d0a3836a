package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Extraction is the parsed output of an upstream document parser: the
// positioned text blocks, tables, and images of a single document.
type Extraction struct {
	DocumentID string      `json:"document_id"`
	Title      string      `json:"title"`
	NumPages   int         `json:"num_pages"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
	Images     []Image     `json:"images"`
}

// Paragraph is a block of running text on a page.
type Paragraph struct {
	Page int                `json:"page"`
	BBox map[string]float64 `json:"bbox"`
	Text string             `json:"text"`
}

// Table is a grid of cell values on a page.
type Table struct {
	Page  int                `json:"page"`
	BBox  map[string]float64 `json:"bbox"`
	Cells [][]string         `json:"cells"`
}

// Image is a figure with an optional caption and OCR text.
type Image struct {
	Page    int                `json:"page"`
	BBox    map[string]float64 `json:"bbox"`
	Caption string             `json:"caption"`
	OCRText string             `json:"ocr_text"`
}

// ParseExtraction decodes an extraction from JSON.
func ParseExtraction(data []byte) (*Extraction, error) {
	var extraction Extraction
	if err := json.Unmarshal(data, &extraction); err != nil {
		return nil, fmt.Errorf("parsing extraction: %w", err)
	}
	return &extraction, nil
}

// ReadExtraction decodes an extraction from a reader.
func ReadExtraction(r io.Reader) (*Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading extraction: %w", err)
	}
	return ParseExtraction(data)
}

// LoadExtraction decodes an extraction from a JSON file.
func LoadExtraction(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening extraction file: %w", err)
	}
	defer f.Close()
	return ReadExtraction(f)
}
