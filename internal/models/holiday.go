package models

import "time"

// Holiday is a date on which no recurring session or reschedule takes place.
type Holiday struct {
	ID          string    `db:"id" json:"id"`
	HolidayDate Date      `db:"holiday_date" json:"holiday_date"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// HolidayFilter narrows holidays to an inclusive date range.
type HolidayFilter struct {
	From *Date
	To   *Date
}
