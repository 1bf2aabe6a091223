package export

import (
	"fmt"
	"strings"
)

// Format names a supported export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// ParseFormat normalises a user supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Renderer dispatches datasets to the exporter matching a format.
type Renderer struct {
	csv *CSVExporter
	pdf *PDFExporter
}

// NewRenderer builds a renderer with both exporters.
func NewRenderer() *Renderer {
	return &Renderer{csv: NewCSVExporter(), pdf: NewPDFExporter()}
}

// Render encodes data in the requested format.
func (r *Renderer) Render(format Format, data Dataset, title string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return r.csv.Render(data)
	case FormatPDF:
		return r.pdf.Render(data, title)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
