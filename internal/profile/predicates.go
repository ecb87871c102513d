package profile

import (
	"regexp"
	"slices"
	"strings"

	"github.com/dgallion1/folioparse/internal/layout"
)

// Section anchors. A line is an anchor only on exact, case-sensitive match.
const (
	anchorTopSkills      = "Top Skills"
	anchorLanguages      = "Languages"
	anchorCertifications = "Certifications"
	anchorSummary        = "Summary"
	anchorExperience     = "Experience"
	anchorEducation      = "Education"
	anchorContact        = "Contact"
	anchorLicenses       = "Licenses"
)

var sectionAnchors = []string{
	anchorTopSkills,
	anchorLanguages,
	anchorCertifications,
	anchorSummary,
	anchorExperience,
	anchorEducation,
	anchorContact,
	anchorLicenses,
}

// Stop sets for individual section bodies.
var (
	topSkillsStops = []string{anchorLanguages, anchorCertifications, anchorSummary, anchorExperience, anchorEducation, anchorContact}
	summaryStops   = []string{anchorExperience, anchorEducation, "Skills", anchorCertifications, anchorLanguages}
	nameScanSkips  = []string{anchorContact, anchorTopSkills, anchorLanguages, anchorCertifications}
	sidebarHeaders = []string{anchorContact, anchorTopSkills, anchorLanguages, anchorCertifications, anchorLicenses}
)

// KnownCities is the closed list of city names accepted as a location
// without any other location cue. It is not meant to be complete.
var KnownCities = []string{"Vancouver", "Toronto", "New York", "San Francisco"}

// HeadlineRoles are role words that mark a line as a headline.
var HeadlineRoles = []string{"Engineer", "Manager", "Developer", "Designer"}

// DegreeKeywords is the closed, case-insensitive set that marks a degree line.
var DegreeKeywords = []string{
	"Bachelor", "Master", "PhD", "Doctor", "Associate", "Diploma", "Certificate",
	"BASc", "BSc", "BA", "MBA", "MS", "MA", `B\.S\.`, `M\.S\.`,
}

// NameScanWindow is how many leading lines are searched for the name.
const NameScanWindow = 30

// headlineLookahead is how many lines after the name may hold the headline.
const headlineLookahead = 4

// maxSkillLen bounds a skill line; longer lines are prose leaking in.
const maxSkillLen = 50

var (
	emailRe         = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	pageFooterRe    = regexp.MustCompile(`^Page \d+ of \d+$`)
	nameTokenRe     = regexp.MustCompile(`^[A-Z][a-zA-Z]*$`)
	wordAtRe        = regexp.MustCompile(`\bat\b`)
	companySuffixRe = regexp.MustCompile(`[A-Z][a-z]+\s+(AI|Inc|Corp|LLC|Ltd)`)
	cityRegionRe    = regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}`)

	expDateRangeRe = regexp.MustCompile(`^([A-Z][a-z]+ \d{4})\s*[-–]\s*(Present|[A-Z][a-z]+ \d{4})(?:\s*\(.*\))?$`)
	expLocationRe  = regexp.MustCompile(`^[A-Z][a-zA-Z\s]+,\s*[A-Z]{2}$`)
	bulletRe       = regexp.MustCompile(`^[•·\-*]\s*`)
	proficiencyRe  = regexp.MustCompile(`(?i)\((Native|Bilingual|Elementary|Limited Working|Professional Working|Full Professional|Native or Bilingual)\)`)

	eduDateRangeRe = regexp.MustCompile(`\(?([A-Z][a-z]+\s+\d{4})\s*[-–]\s*([A-Z][a-z]+\s+\d{4})\)?`)
	degreeRe       = regexp.MustCompile(`(?i)` + strings.Join(DegreeKeywords, "|"))
	degreeSplitRe  = regexp.MustCompile(`\s*[-–,]\s*`)

	startDateRe = regexp.MustCompile(`([A-Z][a-z]+\s+\d{4})`)
	endDateRe   = regexp.MustCompile(`[-–]\s*(Present|[A-Z][a-z]+\s+\d{4})`)
)

func isAnchor(line string) bool { return slices.Contains(sectionAnchors, line) }

func isSidebarHeader(line string) bool { return slices.Contains(sidebarHeaders, line) }

func isPageFooter(line string) bool { return pageFooterRe.MatchString(line) }

func isPageMarker(line string) bool { return layout.IsPageMarker(line) }

func isEmailLine(line string) bool { return strings.Contains(line, "@") }

func isProficiency(line string) bool { return proficiencyRe.MatchString(line) }

// mentionsCredential matches sidebar certification entries that leak into
// the main column. Experience also rejects license lines.
func mentionsCredential(line string, withLicense bool) bool {
	l := strings.ToLower(line)
	if strings.Contains(l, "certification") || strings.Contains(l, "certificate") {
		return true
	}
	return withLicense && strings.Contains(l, "license")
}

func isBullet(line string) bool { return bulletRe.MatchString(line) }

func stripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

func isExperienceDateRange(line string) bool { return expDateRangeRe.MatchString(line) }

func isExperienceLocation(line string) bool { return expLocationRe.MatchString(line) }

func isDegreeLine(line string) bool { return degreeRe.MatchString(line) }

// isNameLine accepts 2-4 whitespace-separated tokens that are each a
// capitalized run of letters.
func isNameLine(line string) ([]string, bool) {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return nil, false
	}
	for _, w := range words {
		if !nameTokenRe.MatchString(w) {
			return nil, false
		}
	}
	return words, true
}

func isContactNoise(line string) bool {
	return isEmailLine(line) ||
		strings.Contains(line, "www.") ||
		strings.Contains(line, "linkedin.com") ||
		strings.Contains(line, "(LinkedIn)") ||
		strings.Contains(line, "(Company)")
}

func looksLikeHeadline(line string) bool {
	if strings.Contains(line, "|") || wordAtRe.MatchString(line) {
		return true
	}
	for _, role := range HeadlineRoles {
		if strings.Contains(line, role) {
			return true
		}
	}
	return companySuffixRe.MatchString(line)
}

func looksLikeLocation(line string) bool {
	if strings.Contains(line, "Area") || strings.Contains(line, "Metropolitan") {
		return true
	}
	if cityRegionRe.MatchString(line) {
		return true
	}
	for _, city := range KnownCities {
		if strings.Contains(line, city) {
			return true
		}
	}
	return false
}

// startDate returns the first "Month YYYY" token of a raw date range.
func startDate(dates string) string {
	if m := startDateRe.FindStringSubmatch(dates); m != nil {
		return m[1]
	}
	return ""
}

// endDate returns "Present" or the "Month YYYY" token after the separator.
func endDate(dates string) string {
	if m := endDateRe.FindStringSubmatch(dates); m != nil {
		return m[1]
	}
	return ""
}
