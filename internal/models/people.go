package models

// Professor teaches sessions and requests reschedules.
type Professor struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Department string `db:"department" json:"department"`
}

// Student carries the cohort partition keys used to select sessions.
type Student struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
	Branch        string `db:"branch" json:"branch"`
	Semester      int    `db:"semester" json:"semester"`
	ClassGroup    string `db:"class_group" json:"class_group"`
	TutorialGroup string `db:"tutorial_group" json:"tutorial_group"`
	LabGroup      string `db:"lab_group" json:"lab_group"`
}

// Cohort returns the student's cohort.
func (s Student) Cohort() Cohort {
	return Cohort{
		Branch:        s.Branch,
		Semester:      s.Semester,
		ClassGroup:    s.ClassGroup,
		TutorialGroup: s.TutorialGroup,
		LabGroup:      s.LabGroup,
	}
}
