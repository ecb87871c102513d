package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/dgallion1/folioparse/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ErrTooManyPages is returned for PDFs longer than PDFParser.MaxPages.
var ErrTooManyPages = errors.New("pdf has too many pages")

// PDFParser handles PDF exports. It reads positioned glyphs with the Go
// library first, then falls back to pdftotext -bbox if enabled.
type PDFParser struct {
	FallbackPdftotext bool
	MaxPages          int // 0 means unlimited
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	// A page count pdfcpu cannot read is left for the extractors to reject.
	if p.MaxPages > 0 {
		if n, err := countPages(data); err == nil && n > p.MaxPages {
			return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPages, n, p.MaxPages)
		}
	}

	pages, err := extractPDFFragments(data)
	if err != nil && p.FallbackPdftotext {
		pages, err = extractPdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return newDocument(filename, layout.Reconstruct(pages)), nil
}

// pdfcpu otherwise creates a config dir under the user's home and exits the
// process if it cannot.
var disableConfigDir sync.Once

func countPages(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("count pages: %v", r)
		}
	}()
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(data), conf)
}

// extractPDFFragments reads positioned glyphs page by page. The library
// panics on malformed objects anywhere from the xref table down to the
// content streams; any panic becomes the returned error.
func extractPDFFragments(data []byte) (pages []layout.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	// /Count is untrusted; the page tree running out ends the loop.
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			break
		}
		pages = append(pages, layout.Page{Fragments: coalesceGlyphs(page.Content().Text)})
	}
	return pages, nil
}

// coalesceGlyphs merges the per-glyph output of the PDF reader into runs of
// adjacent glyphs on one baseline. A horizontal gap wider than half the font
// size starts a new fragment.
func coalesceGlyphs(texts []pdflib.Text) []layout.Fragment {
	var frags []layout.Fragment
	var run strings.Builder
	var runX, runY, runEnd, runSize float64

	emit := func() {
		if s := strings.TrimSpace(norm.NFC.String(run.String())); s != "" {
			frags = append(frags, layout.Fragment{Text: s, X: runX, Y: runY})
		}
		run.Reset()
	}

	for _, t := range texts {
		if run.Len() > 0 {
			gap := t.X - runEnd
			tol := math.Max(runSize, t.FontSize) / 2
			if math.Abs(t.Y-runY) > 0.5 || gap > tol || gap < -tol {
				emit()
			}
		}
		if run.Len() == 0 {
			runX, runY, runSize = t.X, t.Y, t.FontSize
		}
		run.WriteString(t.S)
		runEnd = t.X + t.W
	}
	emit()
	return frags
}

func extractPdftotext(data []byte) ([]layout.Page, error) {
	tmp, err := os.CreateTemp("", "folioparse-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-bbox", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return parseBBox(bytes.NewReader(out))
}

// parseBBox reads pdftotext -bbox XHTML. Word boxes are in top-left origin
// coordinates, so y is flipped against the page height to match the
// bottom-up convention of layout.Fragment.
func parseBBox(r io.Reader) ([]layout.Page, error) {
	z := html.NewTokenizer(r)
	var pages []layout.Page
	var height float64
	var word *layout.Fragment

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse bbox: %w", err)
			}
			return pages, nil

		case html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "page":
				height = attrFloat(tok, "height")
				pages = append(pages, layout.Page{})
			case "word":
				word = &layout.Fragment{
					X: attrFloat(tok, "xmin"),
					Y: height - attrFloat(tok, "ymax"),
				}
			}

		case html.TextToken:
			if word != nil {
				word.Text += norm.NFC.String(string(z.Text()))
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "word" && word != nil && len(pages) > 0 {
				last := &pages[len(pages)-1]
				last.Fragments = append(last.Fragments, *word)
				word = nil
			}
		}
	}
}

// attrFloat reads a numeric attribute. The tokenizer lowercases names.
func attrFloat(tok html.Token, key string) float64 {
	for _, a := range tok.Attr {
		if a.Key == key {
			v, err := strconv.ParseFloat(a.Val, 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}
