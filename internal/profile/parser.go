// Package profile recovers a structured profile from the reconstructed
// line sequence of a two-column professional-network PDF export.
//
// The sidebar (Contact, Top Skills, Languages, Certifications) precedes the
// main column (name, headline, location, Summary, Experience, Education) in
// reading order. Column position is not available at this stage, so sidebar
// text is filtered by content pattern. All extraction is heuristic: a missing
// pattern leaves its field empty and never fails the parse.
package profile

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/folioparse/internal/layout"
)

// Parser extracts Records from line sequences. It holds no per-parse state
// and is safe for concurrent use.
type Parser struct {
	log *slog.Logger
}

// New returns a Parser that writes raw input and parsed output to log at
// debug level. A nil log disables diagnostics.
func New(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Parser{log: log}
}

var defaultParser = New(nil)

// Parse extracts a Record using a parser without diagnostics.
func Parse(lines []layout.Line) Record {
	return defaultParser.Parse(lines)
}

// ParseText extracts a Record from already-flattened text lines.
func ParseText(texts []string) Record {
	return defaultParser.ParseText(texts)
}

// Parse extracts a Record from a reconstructed line sequence.
func (p *Parser) Parse(lines []layout.Line) Record {
	return p.ParseText(layout.Texts(lines))
}

// ParseText extracts a Record from text lines. Lines are trimmed and
// blank lines dropped first.
func (p *Parser) ParseText(texts []string) Record {
	lines := normalize(texts)
	p.log.Debug("raw profile text", "lines", len(lines), "text", strings.Join(lines, "\n"))

	rec := newRecord()
	rec.Profile.Email = findEmail(lines)
	rec.Skills = topSkills(lines)
	parseHeader(lines, &rec.Profile)
	rec.Profile.Summary = summary(lines)

	if exp, ok := experienceBody(lines); ok {
		rec.Positions = scanExperience(exp)
	}
	if edu, ok := sectionBody(lines, anchorEducation); ok {
		rec.Education = scanEducation(edu)
	}

	p.log.Debug("parsed profile",
		"first_name", rec.Profile.FirstName,
		"last_name", rec.Profile.LastName,
		"headline", rec.Profile.Headline,
		"location", rec.Profile.Location,
		"positions", len(rec.Positions),
		"education", len(rec.Education),
		"skills", len(rec.Skills),
	)
	return rec
}

func normalize(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// indexOf returns the index of the first line equal to anchor at or after from.
func indexOf(lines []string, anchor string, from int) int {
	if from >= len(lines) {
		return -1
	}
	if i := slices.Index(lines[from:], anchor); i >= 0 {
		return from + i
	}
	return -1
}

// sectionBody returns every line after the first anchor line to end of input.
func sectionBody(lines []string, anchor string) ([]string, bool) {
	i := indexOf(lines, anchor, 0)
	if i < 0 {
		return nil, false
	}
	return lines[i+1:], true
}

// bodyUntil returns the lines after the first anchor line, stopping before
// the first line in stops.
func bodyUntil(lines []string, anchor string, stops []string) []string {
	i := indexOf(lines, anchor, 0)
	if i < 0 {
		return nil
	}
	body := lines[i+1:]
	for j, l := range body {
		if slices.Contains(stops, l) {
			return body[:j]
		}
	}
	return body
}

// experienceBody spans from the Experience anchor to the next Education
// anchor, or to end of input.
func experienceBody(lines []string) ([]string, bool) {
	start := indexOf(lines, anchorExperience, 0)
	if start < 0 {
		return nil, false
	}
	end := indexOf(lines, anchorEducation, start+1)
	if end < 0 {
		end = len(lines)
	}
	return lines[start+1 : end], true
}

func findEmail(lines []string) string {
	for _, l := range lines {
		if m := emailRe.FindString(l); m != "" {
			return m
		}
	}
	return ""
}

func topSkills(lines []string) []string {
	skills := []string{}
	for _, l := range bodyUntil(lines, anchorTopSkills, topSkillsStops) {
		n := utf8.RuneCountInString(l)
		if n == 0 || n >= maxSkillLen {
			continue
		}
		if strings.Contains(l, "@") || strings.Contains(l, "Page") {
			continue
		}
		skills = append(skills, l)
	}
	return skills
}

func summary(lines []string) string {
	var kept []string
	for _, l := range bodyUntil(lines, anchorSummary, summaryStops) {
		if isPageFooter(l) {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, " ")
}
