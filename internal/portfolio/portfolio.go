// Package portfolio maps a parsed profile record onto the editable
// portfolio shape, assigning identifiers to repeated entries.
package portfolio

import (
	"strings"

	"github.com/dgallion1/folioparse/internal/profile"
	"github.com/google/uuid"
)

// Portfolio is the content of a portfolio page seeded from an import.
type Portfolio struct {
	Personal    Personal     `json:"personal" yaml:"personal"`
	Experiences []Experience `json:"experiences" yaml:"experiences"`
	Education   []Education  `json:"education" yaml:"education"`
	Skills      []string     `json:"skills" yaml:"skills"`
}

type Personal struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Headline  string `json:"headline" yaml:"headline"`
	Summary   string `json:"summary" yaml:"summary"`
	Location  string `json:"location" yaml:"location"`
	Email     string `json:"email" yaml:"email"`
}

type Experience struct {
	ID          string `json:"id" yaml:"id"`
	Company     string `json:"company" yaml:"company"`
	Title       string `json:"title" yaml:"title"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Current     bool   `json:"current" yaml:"current"`
	Description string `json:"description" yaml:"description"`
}

type Education struct {
	ID        string `json:"id" yaml:"id"`
	School    string `json:"school" yaml:"school"`
	Degree    string `json:"degree" yaml:"degree"`
	Field     string `json:"field" yaml:"field"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

// IsCurrent reports whether a position is ongoing: no end date, or "Present".
func IsCurrent(endDate string) bool {
	return endDate == "" || strings.EqualFold(endDate, "present")
}

// FromRecord copies a record into portfolio shape. Each experience and
// education entry gets a fresh random UUID.
func FromRecord(rec profile.Record) Portfolio {
	p := Portfolio{
		Personal: Personal{
			FirstName: rec.Profile.FirstName,
			LastName:  rec.Profile.LastName,
			Headline:  rec.Profile.Headline,
			Summary:   rec.Profile.Summary,
			Location:  rec.Profile.Location,
			Email:     rec.Profile.Email,
		},
		Experiences: make([]Experience, 0, len(rec.Positions)),
		Education:   make([]Education, 0, len(rec.Education)),
		Skills:      append([]string{}, rec.Skills...),
	}

	for _, pos := range rec.Positions {
		p.Experiences = append(p.Experiences, Experience{
			ID:          uuid.NewString(),
			Company:     pos.CompanyName,
			Title:       pos.Title,
			Location:    pos.Location,
			StartDate:   pos.StartDate,
			EndDate:     pos.EndDate,
			Current:     IsCurrent(pos.EndDate),
			Description: pos.Description,
		})
	}
	for _, edu := range rec.Education {
		p.Education = append(p.Education, Education{
			ID:        uuid.NewString(),
			School:    edu.SchoolName,
			Degree:    edu.DegreeName,
			Field:     edu.FieldOfStudy,
			StartDate: edu.StartDate,
			EndDate:   edu.EndDate,
		})
	}
	return p
}
