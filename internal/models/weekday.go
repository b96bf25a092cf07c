package models

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is a lower-case English weekday name as stored in time_table.day_of_week.
type DayOfWeek string

const (
	Sunday    DayOfWeek = "sunday"
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
)

// weekdays is indexed by time.Weekday, so index 0 is Sunday.
var weekdays = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf is the single date to weekday-name mapping used by every engine.
func WeekdayOf(d Date) DayOfWeek {
	return weekdays[d.Weekday()]
}

// ParseDayOfWeek accepts full names or three-letter abbreviations in any case.
func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if len(needle) >= 3 {
		for _, day := range weekdays {
			if string(day) == needle || string(day)[:3] == needle {
				return day, nil
			}
		}
	}
	return "", fmt.Errorf("invalid day of week %q", raw)
}

// Valid reports whether d is one of the seven canonical names.
func (d DayOfWeek) Valid() bool {
	for _, day := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Weekday converts d back to time.Weekday. Invalid names map to Sunday.
func (d DayOfWeek) Weekday() time.Weekday {
	for i, day := range weekdays {
		if d == day {
			return time.Weekday(i)
		}
	}
	return time.Sunday
}

// MondayOffset is the number of days between the Monday that starts d's week and d.
func (d DayOfWeek) MondayOffset() int {
	return (int(d.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d Date) Date {
	return d.AddDays(-WeekdayOf(d).MondayOffset())
}
