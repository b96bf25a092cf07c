package dto

import "github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"

// FreeSlotsRequest identifies the professor and cohort whose shared free time is wanted.
type FreeSlotsRequest struct {
	Date        string `form:"date" json:"date" validate:"required,isodate"`
	ProfessorID string `form:"professor_id" json:"professor_id" validate:"required,uuid"`
	Branch      string `form:"branch" json:"branch" validate:"required"`
	Semester    int    `form:"semester" json:"semester" validate:"required,min=1"`
}

// FreeSlotsResponse lists free template slots in template order.
type FreeSlotsResponse struct {
	Date      string                `json:"date"`
	DayOfWeek models.DayOfWeek      `json:"day_of_week"`
	Slots     []models.TimeInterval `json:"slots"`
	FreeSlots []string              `json:"free_slots"`
}

// AvailableHallsRequest asks for halls free on a date for a "HH:MM:SS - HH:MM:SS" slot.
type AvailableHallsRequest struct {
	Date     string `form:"date" json:"date" validate:"required,isodate"`
	TimeSlot string `form:"time_slot" json:"time_slot" validate:"required"`
}

// AvailableHallsResponse lists hall names sorted lexicographically.
type AvailableHallsResponse struct {
	Date      string   `json:"date"`
	TimeSlot  string   `json:"time_slot"`
	Available []string `json:"available_halls"`
}
