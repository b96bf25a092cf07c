package dto

// CalendarRequest selects whose calendar to build. Exactly one of ProfessorID,
// StudentID or Branch+Semester is expected.
type CalendarRequest struct {
	ProfessorID   string `form:"professor_id" validate:"omitempty,uuid"`
	StudentID     string `form:"student_id" validate:"omitempty,uuid"`
	Branch        string `form:"branch"`
	Semester      int    `form:"semester" validate:"omitempty,min=1"`
	ClassGroup    string `form:"class_group"`
	TutorialGroup string `form:"tutorial_group"`
	LabGroup      string `form:"lab_group"`
	Weeks         int    `form:"weeks" validate:"omitempty,min=1"`
}

// CalendarExportRequest adds the output format to a calendar selection.
type CalendarExportRequest struct {
	CalendarRequest
	Format string `form:"format" validate:"omitempty,oneof=csv pdf ics"`
}
