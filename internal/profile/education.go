package profile

import "strings"

type openEducation struct {
	school string
	degree string
	field  string
}

func isEducationNoise(line string) bool {
	return isPageFooter(line) ||
		isPageMarker(line) ||
		mentionsCredential(line, false) ||
		isSidebarHeader(line)
}

// scanEducation groups the Education body into entries laid out as school,
// "Degree - Field", then "(Mon YYYY - Mon YYYY)". A date range closes exactly
// one open entry. A degree line may open an entry without a school. An entry
// still open at the end is kept, without dates, if it has a school.
func scanEducation(lines []string) []Education {
	out := []Education{}
	var cur *openEducation

	for _, line := range lines {
		if isEducationNoise(line) {
			continue
		}

		if m := eduDateRangeRe.FindStringSubmatch(line); m != nil {
			if cur != nil {
				out = append(out, Education{
					SchoolName:   cur.school,
					DegreeName:   cur.degree,
					FieldOfStudy: cur.field,
					StartDate:    m[1],
					EndDate:      m[2],
				})
				cur = nil
			}
			continue
		}

		if isDegreeLine(line) {
			if cur == nil {
				cur = &openEducation{}
			}
			parts := degreeSplitRe.Split(line, -1)
			cur.degree = parts[0]
			if len(parts) > 1 {
				cur.field = strings.Join(parts[1:], ", ")
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "Page") {
			continue
		}
		if cur == nil {
			cur = &openEducation{school: line}
		} else if cur.school == "" {
			cur.school = line
		}
	}

	if cur != nil && cur.school != "" {
		out = append(out, Education{
			SchoolName:   cur.school,
			DegreeName:   cur.degree,
			FieldOfStudy: cur.field,
		})
	}
	return out
}
