package files

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFText is the text layer of a PDF.
type PDFText struct {
	Text     string
	NumPages int
	Info     map[string]string
}

// PDFExtractor pulls the text out of a PDF file.
type PDFExtractor interface {
	Extract(ctx context.Context, path string) (*PDFText, error)
}

// FitzExtractor extracts text with MuPDF through go-fitz.
type FitzExtractor struct{}

// Extract reads every page in order. Pages are separated by a blank line.
func (FitzExtractor) Extract(ctx context.Context, path string) (*PDFText, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	var b strings.Builder
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(text))
	}

	return &PDFText{
		Text:     b.String(),
		NumPages: pages,
		Info:     doc.Metadata(),
	}, nil
}
