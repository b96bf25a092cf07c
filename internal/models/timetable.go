package models

import "fmt"

// SessionType is the kind of a recurring session.
type SessionType string

const (
	SessionTypeClass    SessionType = "class"
	SessionTypeTutorial SessionType = "tutorial"
	SessionTypeLab      SessionType = "lab"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeClass, SessionTypeTutorial, SessionTypeLab:
		return true
	default:
		return false
	}
}

// RecurringSession is a weekly time_table entry.
type RecurringSession struct {
	ID            string      `db:"id" json:"id"`
	DayOfWeek     DayOfWeek   `db:"day_of_week" json:"day_of_week"`
	CourseID      string      `db:"course_id" json:"course_id"`
	StartTime     TimeOfDay   `db:"start_time" json:"start_time"`
	EndTime       TimeOfDay   `db:"end_time" json:"end_time"`
	LectureHallID string      `db:"lecture_hall_id" json:"lecture_hall_id"`
	ProfessorID   string      `db:"professor_id" json:"professor_id"`
	Type          SessionType `db:"type" json:"type"`
	Group         string      `db:"group_name" json:"group"`

	CourseCode string `db:"course_code" json:"course_code,omitempty"`
	CourseName string `db:"course_name" json:"course_name,omitempty"`
	Branch     string `db:"branch" json:"branch,omitempty"`
	Semester   int    `db:"semester" json:"semester,omitempty"`
	HallName   string `db:"hall_name" json:"hall_name,omitempty"`
}

// Interval returns the session's time-of-day range.
func (s RecurringSession) Interval() TimeInterval {
	return TimeInterval{Start: s.StartTime, End: s.EndTime}
}

// SessionFilter describes query params for listing recurring sessions.
type SessionFilter struct {
	DayOfWeek     DayOfWeek
	ProfessorID   string
	CourseID      string
	LectureHallID string
	Branch        string
	Semester      int
	Type          SessionType
	Group         string
	Page          int
	PageSize      int
}

// Cohort is the student partition whose busy time is considered together.
// Empty group fields match every group of that session type.
type Cohort struct {
	Branch        string `json:"branch"`
	Semester      int    `json:"semester"`
	ClassGroup    string `json:"class_group,omitempty"`
	TutorialGroup string `json:"tutorial_group,omitempty"`
	LabGroup      string `json:"lab_group,omitempty"`
}

// GroupFor returns the cohort's group for sessions of type t.
func (c Cohort) GroupFor(t SessionType) string {
	switch t {
	case SessionTypeClass:
		return c.ClassGroup
	case SessionTypeTutorial:
		return c.TutorialGroup
	case SessionTypeLab:
		return c.LabGroup
	default:
		return ""
	}
}

// Includes reports whether a session of (branch, semester, type, group) belongs to c.
func (c Cohort) Includes(branch string, semester int, t SessionType, group string) bool {
	if branch != c.Branch || semester != c.Semester {
		return false
	}
	want := c.GroupFor(t)
	return want == "" || want == group
}

// ScheduleConflict describes an existing session that collides with a candidate.
type ScheduleConflict struct {
	SessionID     string      `json:"session_id"`
	CourseID      string      `json:"course_id"`
	ProfessorID   string      `json:"professor_id"`
	LectureHallID string      `json:"lecture_hall_id"`
	DayOfWeek     DayOfWeek   `json:"day_of_week"`
	TimeSlot      string      `json:"time_slot"`
	Type          SessionType `json:"type"`
	Group         string      `json:"group"`
	Dimension     string      `json:"dimension"`
}

// Conflict dimensions reported by the timetable upload path.
const (
	ConflictHall      = "HALL"
	ConflictProfessor = "PROFESSOR"
	ConflictCohort    = "COHORT"
)

// ScheduleConflictError is returned when a session collides with an existing one.
type ScheduleConflictError struct {
	Type     string             `json:"type"`
	Message  string             `json:"message"`
	Conflict ScheduleConflict   `json:"conflict"`
	Errors   []ScheduleConflict `json:"errors,omitempty"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Conflict.TimeSlot)
}
