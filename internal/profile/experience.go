package profile

import "strings"

// openPosition is a position being assembled by scanExperience.
type openPosition struct {
	company     string
	title       string
	dates       string
	location    string
	description []string
}

func (o *openPosition) finish() Position {
	return Position{
		CompanyName: o.company,
		Title:       o.title,
		StartDate:   startDate(o.dates),
		EndDate:     endDate(o.dates),
		Location:    o.location,
		Description: strings.Join(o.description, "\n"),
	}
}

// isExperienceNoise matches lines that never start or extend a position:
// page footers and markers, sidebar headers, language proficiencies and
// credential entries.
func isExperienceNoise(line string) bool {
	return isPageFooter(line) ||
		isProficiency(line) ||
		isSidebarHeader(line) ||
		isPageMarker(line) ||
		mentionsCredential(line, true)
}

// scanExperience groups the Experience body into positions. Each entry is
// laid out as company, title, date range, optional location, then bullets.
// Rules are applied in order and the first match wins:
//
//  1. noise is skipped
//  2. a bullet extends the open position's description
//  3. a date range sets the open position's dates
//  4. a location line sets the open position's location
//  5. a plain line is a company if a date range follows two lines later
//     (the next line is then its title), a company if a date range follows
//     directly and a position is already open, otherwise it opens a
//     position or supplies a missing title.
//
// Positions without a company are never emitted.
func scanExperience(lines []string) []Position {
	out := []Position{}
	var cur *openPosition

	for i := 0; i < len(lines); {
		line := lines[i]

		switch {
		case line == "" || isExperienceNoise(line):
			i++

		case isBullet(line):
			if cur != nil {
				cur.description = append(cur.description, stripBullet(line))
			}
			i++

		case isExperienceDateRange(line):
			if cur != nil {
				cur.dates = line
			}
			i++

		case isExperienceLocation(line):
			if cur != nil {
				cur.location = line
			}
			i++

		case isExperienceDateRange(lineAt(lines, i+2)):
			out = flushPosition(out, cur)
			cur = &openPosition{company: line, title: lineAt(lines, i+1)}
			i += 2

		case isExperienceDateRange(lineAt(lines, i+1)) && cur != nil:
			out = flushPosition(out, cur)
			cur = &openPosition{company: line}
			i++

		default:
			if cur == nil {
				cur = &openPosition{company: line}
			} else if cur.title == "" {
				cur.title = line
			}
			i++
		}
	}
	out = flushPosition(out, cur)
	return out
}

// flushPosition appends the open position, if any, when it has a company.
func flushPosition(out []Position, cur *openPosition) []Position {
	if cur != nil && cur.company != "" {
		out = append(out, cur.finish())
	}
	return out
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
