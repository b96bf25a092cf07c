package models

import "time"

// Reschedule is a class_rescheduling row: a single occurrence of a recurring
// session moved to a new date, time and hall. The original_* columns identify
// the occurrence it supersedes.
type Reschedule struct {
	ID                string      `db:"id" json:"id"`
	CourseID          string      `db:"course_id" json:"course_id"`
	ProfessorID       string      `db:"professor_id" json:"professor_id"`
	LectureHallID     string      `db:"lecture_hall_id" json:"lecture_hall_id"`
	Type              SessionType `db:"type" json:"type"`
	Group             string      `db:"group_name" json:"group"`
	OriginalDate      Date        `db:"original_date" json:"original_date"`
	OriginalStartTime TimeOfDay   `db:"original_start_time" json:"original_start_time"`
	OriginalEndTime   TimeOfDay   `db:"original_end_time" json:"original_end_time"`
	RescheduledDate   Date        `db:"rescheduled_date" json:"rescheduled_date"`
	NewStartTime      TimeOfDay   `db:"new_start_time" json:"new_start_time"`
	NewEndTime        TimeOfDay   `db:"new_end_time" json:"new_end_time"`
	Reason            string      `db:"reason" json:"reason"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`

	CourseCode string `db:"course_code" json:"course_code,omitempty"`
	CourseName string `db:"course_name" json:"course_name,omitempty"`
	Branch     string `db:"branch" json:"branch,omitempty"`
	Semester   int    `db:"semester" json:"semester,omitempty"`
	HallName   string `db:"hall_name" json:"hall_name,omitempty"`
}

// NewInterval is the time range the session moves to.
func (r Reschedule) NewInterval() TimeInterval {
	return TimeInterval{Start: r.NewStartTime, End: r.NewEndTime}
}

// OriginalInterval is the time range of the superseded occurrence.
func (r Reschedule) OriginalInterval() TimeInterval {
	return TimeInterval{Start: r.OriginalStartTime, End: r.OriginalEndTime}
}

// RescheduleState tracks a reschedule request through the workflow.
type RescheduleState string

const (
	RescheduleStateDraft     RescheduleState = "DRAFT"
	RescheduleStateValidated RescheduleState = "VALIDATED"
	RescheduleStatePersisted RescheduleState = "PERSISTED"
	RescheduleStateRejected  RescheduleState = "REJECTED"
	RescheduleStateRemoved   RescheduleState = "REMOVED"
)

// ReservationResult is the outcome of one atomic insert-if-free store call.
// Superseded is set alongside Conflict when the original occurrence already
// has a reschedule.
type ReservationResult struct {
	ID         string
	Conflict   bool
	Superseded bool
}
