package dto

import "github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"

// CreateRescheduleRequest moves one occurrence of a recurring session. The hall is
// given by name. NewEndTime may be omitted, in which case the original duration is kept.
type CreateRescheduleRequest struct {
	CourseID          string `json:"course_id" validate:"required,uuid"`
	ProfessorID       string `json:"professor_id" validate:"required,uuid"`
	LectureHall       string `json:"lecture_hall" validate:"required"`
	Type              string `json:"type" validate:"required,session_type"`
	Group             string `json:"group" validate:"omitempty,max=32"`
	OriginalDate      string `json:"original_date" validate:"required,isodate"`
	OriginalStartTime string `json:"original_start_time" validate:"required,tod"`
	OriginalEndTime   string `json:"original_end_time" validate:"required,tod"`
	RescheduledDate   string `json:"rescheduled_date" validate:"required,isodate"`
	NewStartTime      string `json:"new_start_time" validate:"required,tod"`
	NewEndTime        string `json:"new_end_time" validate:"omitempty,tod"`
	Reason            string `json:"reason" validate:"omitempty,max=500"`
}

// RescheduleResult reports where the request ended up in the workflow.
type RescheduleResult struct {
	State      models.RescheduleState `json:"state"`
	Reschedule *models.Reschedule     `json:"reschedule,omitempty"`
}
