package profile

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// parseHeader fills the name, headline and location. Headline and location
// are only looked for once a name line is found, since both are located
// relative to it.
func parseHeader(lines []string, p *Profile) {
	nameAt := -1
	for i := 0; i < len(lines) && i < NameScanWindow; i++ {
		line := lines[i]
		if slices.Contains(nameScanSkips, line) || isContactNoise(line) {
			continue
		}
		if words, ok := isNameLine(line); ok {
			p.FirstName = words[0]
			p.LastName = strings.Join(words[1:], " ")
			nameAt = i
			break
		}
	}
	if nameAt < 0 {
		return
	}

	for j := nameAt + 1; j < len(lines) && j <= nameAt+headlineLookahead; j++ {
		line := lines[j]
		if isAnchor(line) || isEmailLine(line) || utf8.RuneCountInString(line) <= 5 {
			continue
		}
		if !looksLikeHeadline(line) {
			continue
		}
		p.Headline = line
		if j+1 < len(lines) && looksLikeLocation(lines[j+1]) {
			p.Location = lines[j+1]
		}
		return
	}
}
