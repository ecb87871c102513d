package profile

// Record is the structured profile recovered from one export.
type Record struct {
	Profile   Profile     `json:"profile" yaml:"profile"`
	Positions []Position  `json:"positions" yaml:"positions"`
	Education []Education `json:"education" yaml:"education"`
	Skills    []string    `json:"skills" yaml:"skills"`
}

// Profile holds the single-valued header fields.
type Profile struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Headline  string `json:"headline" yaml:"headline"`
	Summary   string `json:"summary" yaml:"summary"`
	Location  string `json:"location" yaml:"location"`
	Email     string `json:"email" yaml:"email"`
}

// Position is one work experience entry, in document order.
type Position struct {
	CompanyName string `json:"companyName" yaml:"companyName"`
	Title       string `json:"title" yaml:"title"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description" yaml:"description"`
}

// Education is one education entry, in document order.
type Education struct {
	SchoolName   string `json:"schoolName" yaml:"schoolName"`
	DegreeName   string `json:"degreeName" yaml:"degreeName"`
	FieldOfStudy string `json:"fieldOfStudy" yaml:"fieldOfStudy"`
	StartDate    string `json:"startDate" yaml:"startDate"`
	EndDate      string `json:"endDate" yaml:"endDate"`
}

// newRecord returns a record with non-nil lists so it serializes as [] not null.
func newRecord() Record {
	return Record{
		Positions: []Position{},
		Education: []Education{},
		Skills:    []string{},
	}
}
