package profile

import "testing"

func TestScanEducation_RecordClosure(t *testing.T) {
	got := scanEducation([]string{
		"Stanford University",
		"Bachelor of Science - Computer Science",
		"(Sep 2016 - Jun 2020)",
	})
	want := Education{
		SchoolName:   "Stanford University",
		DegreeName:   "Bachelor of Science",
		FieldOfStudy: "Computer Science",
		StartDate:    "Sep 2016",
		EndDate:      "Jun 2020",
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("expected [%+v], got %+v", want, got)
	}
}

func TestScanEducation_MultipleEntries(t *testing.T) {
	got := scanEducation([]string{
		"University of Toronto",
		"Master of Engineering, Electrical",
		"(September 2020 - May 2022)",
		"Page 3 of 3",
		"Stanford University",
		"Bachelor of Science - Biology",
		"Sep 2016 – Jun 2020",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[0].SchoolName != "University of Toronto" || got[0].DegreeName != "Master of Engineering" || got[0].FieldOfStudy != "Electrical" {
		t.Errorf("unexpected first entry %+v", got[0])
	}
	if got[1].SchoolName != "Stanford University" || got[1].StartDate != "Sep 2016" || got[1].EndDate != "Jun 2020" {
		t.Errorf("unexpected second entry %+v", got[1])
	}
}

func TestScanEducation_DegreeBeforeSchool(t *testing.T) {
	got := scanEducation([]string{
		"Bachelor of Science - Biology",
		"Stanford University",
		"(Sep 2016 - Jun 2020)",
	})
	if len(got) != 1 || got[0].SchoolName != "Stanford University" || got[0].DegreeName != "Bachelor of Science" {
		t.Errorf("unexpected entries %+v", got)
	}
}

func TestScanEducation_FieldSegments(t *testing.T) {
	got := scanEducation([]string{
		"University of Toronto",
		"Bachelor of Applied Science - BASc, Biomedical/Medical Engineering",
		"(Sep 2015 - Apr 2020)",
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %+v", got)
	}
	if got[0].DegreeName != "Bachelor of Applied Science" || got[0].FieldOfStudy != "BASc, Biomedical/Medical Engineering" {
		t.Errorf("unexpected degree split %+v", got[0])
	}
}

func TestScanEducation_UnclosedTrailingEntry(t *testing.T) {
	got := scanEducation([]string{"Stanford University", "Master of Science - Statistics"})
	want := Education{SchoolName: "Stanford University", DegreeName: "Master of Science", FieldOfStudy: "Statistics"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("expected [%+v], got %+v", want, got)
	}
}

func TestScanEducation_UnclosedWithoutSchoolDropped(t *testing.T) {
	if got := scanEducation([]string{"Master of Science"}); len(got) != 0 {
		t.Errorf("expected no entries, got %+v", got)
	}
}

func TestScanEducation_DateWithoutOpenEntryIgnored(t *testing.T) {
	got := scanEducation([]string{"(Sep 2016 - Jun 2020)", "Stanford University"})
	if len(got) != 1 || got[0].StartDate != "" {
		t.Errorf("expected one undated entry, got %+v", got)
	}
}

func TestScanEducation_ExtraLinesIgnoredOnceSchoolSet(t *testing.T) {
	got := scanEducation([]string{"Stanford University", "Dean's List", "(Sep 2016 - Jun 2020)"})
	if len(got) != 1 || got[0].SchoolName != "Stanford University" {
		t.Errorf("unexpected entries %+v", got)
	}
}

func TestScanEducation_Noise(t *testing.T) {
	got := scanEducation([]string{
		"Top Skills",
		"Google Data Analytics Certificate",
		"Certifications",
		"--- Page 2 End ---",
		"Page 2 of 2",
		"Stanford University",
		"(Sep 2016 - Jun 2020)",
	})
	if len(got) != 1 || got[0].SchoolName != "Stanford University" {
		t.Errorf("expected noise to be skipped, got %+v", got)
	}
}

func TestScanEducation_Empty(t *testing.T) {
	if got := scanEducation(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil education, got %#v", got)
	}
}
