package layout

import (
	"fmt"
	"testing"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		y    float64
		want int
	}{
		{0, 0},
		{1.4, 0},
		{1.5, 3},
		{700.2, 699},
		{701.6, 702},
		{-1.4, 0},
	}
	for _, tc := range tests {
		if got := Bucket(tc.y); got != tc.want {
			t.Errorf("Bucket(%v): expected %d, got %d", tc.y, tc.want, got)
		}
	}
}

func TestReconstruct_OrdersTopToBottomLeftToRight(t *testing.T) {
	pages := []Page{{Fragments: []Fragment{
		{Text: "Doe", X: 120, Y: 700.4},
		{Text: "Engineer", X: 50, Y: 680},
		{Text: "Jane", X: 50, Y: 699.6},
		{Text: "Senior", X: 10, Y: 680.9},
	}}}

	lines := Reconstruct(pages)
	want := []string{"Jane Doe", "Senior Engineer", "--- Page 1 End ---"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), Texts(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i].Text)
		}
		if lines[i].Index != i {
			t.Errorf("line[%d]: expected index %d, got %d", i, i, lines[i].Index)
		}
		if lines[i].Page != 1 {
			t.Errorf("line[%d]: expected page 1, got %d", i, lines[i].Page)
		}
	}
}

func TestReconstruct_DropsBlankFragments(t *testing.T) {
	pages := []Page{{Fragments: []Fragment{
		{Text: "   ", X: 0, Y: 500},
		{Text: "", X: 0, Y: 400},
		{Text: " Python ", X: 0, Y: 300},
	}}}
	lines := Reconstruct(pages)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), Texts(lines))
	}
	if lines[0].Text != "Python" {
		t.Errorf("expected %q, got %q", "Python", lines[0].Text)
	}
}

func TestReconstruct_StableOnTiedX(t *testing.T) {
	pages := []Page{{Fragments: []Fragment{
		{Text: "first", X: 10, Y: 100},
		{Text: "second", X: 10, Y: 100},
		{Text: "third", X: 10, Y: 99.5},
	}}}
	lines := Reconstruct(pages)
	if lines[0].Text != "first second third" {
		t.Errorf("expected extraction order on tied x, got %q", lines[0].Text)
	}
}

func TestReconstruct_PageMarkers(t *testing.T) {
	pages := []Page{
		{Fragments: []Fragment{{Text: "a", X: 0, Y: 10}}},
		{},
		{Fragments: []Fragment{{Text: "c", X: 0, Y: 10}, {Text: "d", X: 0, Y: 5}}},
	}
	lines := Reconstruct(pages)

	var markers []Line
	for _, l := range lines {
		if IsPageMarker(l.Text) {
			markers = append(markers, l)
		}
	}
	if len(markers) != len(pages) {
		t.Fatalf("expected %d markers, got %d", len(pages), len(markers))
	}
	for k, m := range markers {
		want := fmt.Sprintf("--- Page %d End ---", k+1)
		if m.Text != want {
			t.Errorf("marker[%d]: expected %q, got %q", k, want, m.Text)
		}
		if m.Page != k+1 {
			t.Errorf("marker[%d]: expected page %d, got %d", k, k+1, m.Page)
		}
	}
	if lines[len(lines)-1].Text != PageMarker(3) {
		t.Errorf("expected sequence to end with last page marker, got %q", lines[len(lines)-1].Text)
	}
}

func TestReconstruct_Empty(t *testing.T) {
	if lines := Reconstruct(nil); len(lines) != 0 {
		t.Errorf("expected no lines for no pages, got %v", Texts(lines))
	}
}

func TestReconstruct_Deterministic(t *testing.T) {
	page := Page{Fragments: []Fragment{
		{Text: "Acme", X: 40, Y: 500.2},
		{Text: "Inc", X: 80, Y: 500.9},
		{Text: "Software", X: 40, Y: 480},
		{Text: "Engineer", X: 95, Y: 481.2},
		{Text: "Jan 2020 - Present", X: 40, Y: 460},
	}}

	first := Texts(Reconstruct([]Page{page}))
	second := Texts(Reconstruct([]Page{page}))
	if len(first) != len(second) {
		t.Fatalf("expected identical line counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line[%d]: %q != %q", i, first[i], second[i])
		}
	}
}

func TestFromText(t *testing.T) {
	lines := FromText([]string{" Jane Doe ", "", "--- Page 1 End ---", "Experience", "  "})
	want := []Line{
		{Text: "Jane Doe", Page: 1, Index: 0},
		{Text: "--- Page 1 End ---", Page: 1, Index: 1},
		{Text: "Experience", Page: 2, Index: 2},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %+v, got %+v", i, w, lines[i])
		}
	}
}
