package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/folioparse/internal/layout"
)

// FragmentsFile is the JSON shape of pre-extracted positioned text:
// {"pages": [{"fragments": [{"text": "...", "x": 0, "y": 0}]}]}.
type FragmentsFile struct {
	Pages []layout.Page `json:"pages"`
}

// FragmentsParser handles fragment dumps produced by another extractor.
type FragmentsParser struct{}

func (p *FragmentsParser) Parse(r io.Reader, filename string) (*Document, error) {
	var f FragmentsFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fragments: %w", err)
	}
	return newDocument(filename, layout.Reconstruct(f.Pages)), nil
}
