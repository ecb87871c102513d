package layout

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// BucketSize is the vertical tolerance band, in page units, within which
// fragments are treated as sharing one baseline.
const BucketSize = 3

// Fragment is one positioned string produced by PDF text extraction.
// Larger Y is higher on the page.
type Fragment struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Page is the unordered set of fragments extracted from one page.
type Page struct {
	Fragments []Fragment `json:"fragments"`
}

// Line is a reconstructed visual row.
type Line struct {
	Text  string `json:"text"`
	Page  int    `json:"page"`  // 1-based
	Index int    `json:"index"` // position in the whole document
}

// Bucket maps a y coordinate onto its line bucket: round(y/3)*3.
// Halves round toward positive infinity.
func Bucket(y float64) int {
	return int(math.Floor(y/BucketSize+0.5)) * BucketSize
}

// PageMarker returns the synthetic separator emitted after page n (1-based).
func PageMarker(n int) string {
	return fmt.Sprintf("--- Page %d End ---", n)
}

var pageMarkerRe = regexp.MustCompile(`^--- Page \d+ End ---$`)

// IsPageMarker reports whether s is a page separator line.
func IsPageMarker(s string) bool {
	return pageMarkerRe.MatchString(s)
}

// Reconstruct turns per-page fragments into one ordered line sequence.
// Pages are processed in order and each is followed by its end marker,
// so a page with no text still contributes exactly one line.
func Reconstruct(pages []Page) []Line {
	var lines []Line
	for i, page := range pages {
		pageNum := i + 1
		for _, text := range pageLines(page) {
			lines = append(lines, Line{Text: text, Page: pageNum, Index: len(lines)})
		}
		lines = append(lines, Line{Text: PageMarker(pageNum), Page: pageNum, Index: len(lines)})
	}
	return lines
}

// pageLines groups one page's fragments into line strings, top to bottom.
func pageLines(page Page) []string {
	buckets := make(map[int][]Fragment)
	var keys []int
	for _, f := range page.Fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		k := Bucket(f.Y)
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], f)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		frags := buckets[k]
		// Stable so fragments tied on x keep extraction order.
		sort.SliceStable(frags, func(a, b int) bool { return frags[a].X < frags[b].X })

		parts := make([]string, len(frags))
		for j, f := range frags {
			parts[j] = f.Text
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// FromText builds a line sequence from already-flattened text lines.
// Lines are trimmed and blank ones dropped; page numbers advance after
// each page marker.
func FromText(texts []string) []Line {
	lines := make([]Line, 0, len(texts))
	page := 1
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		lines = append(lines, Line{Text: t, Page: page, Index: len(lines)})
		if IsPageMarker(t) {
			page++
		}
	}
	return lines
}

// Texts returns the text of each line, in order.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
