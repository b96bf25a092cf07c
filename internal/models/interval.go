package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time expressed as seconds since midnight. It is exchanged
// as "HH:MM:SS" on the wire and in the store.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	limits := []int{23, 59, 59}
	values := [3]int{}
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("invalid time of day %q", raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", raw)
		}
		values[i] = n
	}
	return TimeOfDay(values[0]*3600 + values[1]*60 + values[2]), nil
}

// MustTimeOfDay parses raw and panics on failure. Intended for constants and tests.
func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFrom takes the clock part of t.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// String formats as "HH:MM:SS".
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// Add shifts t by d. The result is not wrapped around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

// On places t on the calendar day of date.
func (t TimeOfDay) On(date Date) time.Time {
	return date.Time.Add(time.Duration(t) * time.Second)
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case time.Time:
		*t = TimeOfDayFrom(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("time of day: unsupported scan type %T", src)
	}
}

// postgres may render TIME with fractional seconds.
func (t *TimeOfDay) scanString(raw string) error {
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		raw = raw[:idx]
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// MarshalJSON renders "HH:MM:SS".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM:SS" or "HH:MM".
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeInterval is a half-open time-of-day range [Start, End).
type TimeInterval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewTimeInterval validates start < end.
func NewTimeInterval(start, end TimeOfDay) (TimeInterval, error) {
	interval := TimeInterval{Start: start, End: end}
	if !interval.Valid() {
		return TimeInterval{}, fmt.Errorf("interval start %s must be before end %s", start, end)
	}
	return interval, nil
}

// Valid reports whether Start < End.
func (i TimeInterval) Valid() bool {
	return i.Start < i.End
}

// Duration returns End - Start.
func (i TimeInterval) Duration() time.Duration {
	return time.Duration(i.End-i.Start) * time.Second
}

// String formats the interval as "HH:MM:SS - HH:MM:SS", the time-slot wire format.
func (i TimeInterval) String() string {
	return i.Start.String() + " - " + i.End.String()
}

// Overlaps reports whether a and b share any instant. Touching endpoints do not overlap.
func Overlaps(a, b TimeInterval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Subtract returns, in template order, the template slots that overlap none of busy.
// Slots are atomic: a partially busy slot is dropped whole.
func Subtract(template []TimeInterval, busy []TimeInterval) []TimeInterval {
	free := make([]TimeInterval, 0, len(template))
	for _, slot := range template {
		blocked := false
		for _, b := range busy {
			if Overlaps(slot, b) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, slot)
		}
	}
	return free
}

// ParseTimeSlot splits a "HH:MM:SS - HH:MM:SS" slot string and validates it.
func ParseTimeSlot(raw string) (TimeInterval, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return TimeInterval{}, fmt.Errorf("invalid time slot %q: expected \"HH:MM:SS - HH:MM:SS\"", raw)
	}
	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return TimeInterval{}, fmt.Errorf("invalid time slot start: %w", err)
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return TimeInterval{}, fmt.Errorf("invalid time slot end: %w", err)
	}
	return NewTimeInterval(start, end)
}

// NewWorkingHoursTemplate partitions [start, end) into consecutive slots of width.
// A trailing remainder shorter than width is dropped.
func NewWorkingHoursTemplate(start, end TimeOfDay, width time.Duration) ([]TimeInterval, error) {
	if width < time.Minute {
		return nil, fmt.Errorf("slot width %s is below one minute", width)
	}
	if start >= end || int(end) > secondsPerDay {
		return nil, fmt.Errorf("invalid working hours %s - %s", start, end)
	}
	var slots []TimeInterval
	for cursor := start; cursor.Add(width) <= end; cursor = cursor.Add(width) {
		slots = append(slots, TimeInterval{Start: cursor, End: cursor.Add(width)})
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("working hours %s - %s shorter than one %s slot", start, end, width)
	}
	return slots, nil
}
