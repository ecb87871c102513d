package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/folioparse/internal/layout"
)

// Document is an extracted export, flattened to reconstructed lines.
type Document struct {
	Title string        // Filename without extension
	Pages int           // Page count (end markers seen)
	Lines []layout.Line // Includes page end markers
}

// Parser converts raw export bytes into a line sequence.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// Options tunes extraction.
type Options struct {
	// FallbackPdftotext retries with poppler's pdftotext when the Go PDF
	// reader fails.
	FallbackPdftotext bool

	// MaxPages rejects longer PDFs before extraction. 0 disables the check.
	MaxPages int
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".json": true,
	".txt":  true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext, MaxPages: opts.MaxPages}, nil
	case ".json":
		return &FragmentsParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func newDocument(filename string, lines []layout.Line) *Document {
	doc := &Document{
		Title: strings.TrimSuffix(filename, filepath.Ext(filename)),
		Lines: lines,
	}
	for _, l := range lines {
		if layout.IsPageMarker(l.Text) {
			doc.Pages++
		}
	}
	return doc
}
