package parser

import (
	"bufio"
	"io"

	"github.com/dgallion1/folioparse/internal/layout"
)

// TextParser handles exports that were already flattened to one line of
// text per row, optionally with "--- Page n End ---" separators.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var texts []string
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return newDocument(filename, layout.FromText(texts)), nil
}
