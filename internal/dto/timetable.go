package dto

import "github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"

// CreateSessionRequest describes one weekly recurring session.
type CreateSessionRequest struct {
	DayOfWeek     string `json:"day_of_week" validate:"required,weekday"`
	CourseID      string `json:"course_id" validate:"required,uuid"`
	StartTime     string `json:"start_time" validate:"required,tod"`
	EndTime       string `json:"end_time" validate:"required,tod"`
	LectureHallID string `json:"lecture_hall_id" validate:"required,uuid"`
	ProfessorID   string `json:"professor_id" validate:"required,uuid"`
	Type          string `json:"type" validate:"required,session_type"`
	Group         string `json:"group" validate:"omitempty,max=32"`
}

// BulkCreateSessionsRequest holds an admin timetable upload.
type BulkCreateSessionsRequest struct {
	Items          []CreateSessionRequest `json:"items" validate:"required,min=1,dive"`
	PartialOnError bool                   `json:"partial_on_error"`
}

// BulkCreateSessionsResult summarises an upload.
type BulkCreateSessionsResult struct {
	Created   []models.RecurringSession `json:"created"`
	Conflicts []models.ScheduleConflict `json:"conflicts,omitempty"`
}

// CreateHallRequest registers a lecture hall.
type CreateHallRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// CreateCourseRequest registers a course.
type CreateCourseRequest struct {
	Code     string `json:"code" validate:"required,max=16"`
	Name     string `json:"name" validate:"required,max=128"`
	Branch   string `json:"branch" validate:"required,max=32"`
	Semester int    `json:"semester" validate:"required,min=1,max=12"`
}
