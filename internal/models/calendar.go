package models

// EventType tags a materialized event for display.
type EventType string

const (
	EventTypeClass       EventType = "class"
	EventTypeTutorial    EventType = "tutorial"
	EventTypeLab         EventType = "lab"
	EventTypeRescheduled EventType = "rescheduled"
	EventTypeHoliday     EventType = "holiday"
)

// CalendarEvent is a derived, non-persisted calendar entry.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        Date       `json:"date"`
	Start       *TimeOfDay `json:"start,omitempty"`
	End         *TimeOfDay `json:"end,omitempty"`
	AllDay      bool       `json:"all_day"`
	Type        EventType  `json:"type"`
	SessionType string     `json:"session_type,omitempty"`
	CourseID    string     `json:"course_id,omitempty"`
	CourseCode  string     `json:"course_code,omitempty"`
	HallName    string     `json:"hall_name,omitempty"`
	Group       string     `json:"group,omitempty"`
	ProfessorID string     `json:"professor_id,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

// ScheduleTarget selects whose calendar to materialize. Exactly one of
// ProfessorID or Cohort is set once resolved.
type ScheduleTarget struct {
	ProfessorID string
	Cohort      *Cohort
}
