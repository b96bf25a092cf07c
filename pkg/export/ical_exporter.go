package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/soh335/ical"
)

// CalendarEntry is one VEVENT of an iCalendar feed.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// ICalExporter renders calendar entries as an RFC 5545 feed.
type ICalExporter struct {
	ProductID string
	Now       func() time.Time
}

// NewICalExporter constructs an iCalendar exporter.
func NewICalExporter(productID string) *ICalExporter {
	if productID == "" {
		productID = "-//CampusGrid//Timetable//EN"
	}
	return &ICalExporter{ProductID: productID, Now: time.Now}
}

// Render encodes entries into a VCALENDAR named name, using loc as the feed timezone.
func (e *ICalExporter) Render(name string, entries []CalendarEntry, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	stamp := e.Now().In(loc)

	cal := ical.NewBasicVCalendar()
	cal.PRODID = e.ProductID
	cal.VERSION = "2.0"
	cal.NAME = name
	cal.X_WR_CALNAME = name
	cal.DESCRIPTION = name
	cal.X_WR_CALDESC = name
	cal.TIMEZONE_ID = loc.String()
	cal.X_WR_TIMEZONE = loc.String()
	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"
	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	for _, entry := range entries {
		if entry.UID == "" {
			return nil, fmt.Errorf("ical entry without uid")
		}
		cal.VComponent = append(cal.VComponent, &ical.VEvent{
			UID:         entry.UID,
			DTSTAMP:     stamp,
			DTSTART:     entry.Start.In(loc),
			DTEND:       entry.End.In(loc),
			SUMMARY:     entry.Summary,
			DESCRIPTION: entry.Description,
			TZID:        loc.String(),
			AllDay:      entry.AllDay,
		})
	}

	buf := &bytes.Buffer{}
	if err := cal.Encode(buf); err != nil {
		return nil, fmt.Errorf("encode ical: %w", err)
	}
	return buf.Bytes(), nil
}
