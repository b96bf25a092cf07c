package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
	ExportFormatICS = "ics"
)

type calendarBuilder interface {
	Calendar(ctx context.Context, req dto.CalendarRequest) ([]models.CalendarEvent, error)
	Location() *time.Location
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

type icsRenderer interface {
	Render(name string, entries []export.CalendarEntry, loc *time.Location) ([]byte, error)
}

// ExportResult is a rendered calendar ready to be sent as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders materialized calendars as CSV, PDF or iCalendar.
type ExportService struct {
	calendar calendarBuilder
	csv      csvRenderer
	pdf      pdfRenderer
	ics      icsRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(calendar calendarBuilder, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, ics icsRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if ics == nil {
		ics = export.NewICalExporter("")
	}
	return &ExportService{calendar: calendar, csv: csv, pdf: pdf, ics: ics, logger: logger}
}

// Render builds the calendar for req and encodes it in req.Format (csv by default).
func (s *ExportService) Render(ctx context.Context, req dto.CalendarExportRequest) (*ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF && format != ExportFormatICS {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}

	events, err := s.calendar.Calendar(ctx, req.CalendarRequest)
	if err != nil {
		return nil, err
	}

	title := calendarTitle(req.CalendarRequest)
	filename := sanitizeFilename(title) + "." + format

	var body []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(eventTable(events))
		contentType = "text/csv"
	case ExportFormatPDF:
		body, err = s.pdf.Render(eventTable(events), title)
		contentType = "application/pdf"
	case ExportFormatICS:
		body, err = s.ics.Render(title, calendarEntries(events, s.calendar.Location()), s.calendar.Location())
		contentType = "text/calendar"
	}
	if err != nil {
		s.logger.Error("render calendar export failed", zap.String("operation", "calendar_export"), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar export")
	}
	return &ExportResult{Filename: filename, ContentType: contentType, Body: body}, nil
}

func calendarTitle(req dto.CalendarRequest) string {
	switch {
	case req.ProfessorID != "":
		return "timetable professor " + req.ProfessorID
	case req.StudentID != "":
		return "timetable student " + req.StudentID
	default:
		return fmt.Sprintf("timetable %s semester %d", req.Branch, req.Semester)
	}
}

var eventColumns = []string{"Date", "Day", "Start", "End", "Type", "Title", "Hall", "Group", "Reason"}

// eventTable lays events out in eventColumns order. Holidays are shaded.
func eventTable(events []models.CalendarEvent) export.Table {
	table := export.Table{Columns: eventColumns, Rows: make([][]string, 0, len(events)), Shaded: map[int]bool{}}
	for i, event := range events {
		var start, end string
		if event.Start != nil {
			start = event.Start.String()
		}
		if event.End != nil {
			end = event.End.String()
		}
		table.Rows = append(table.Rows, []string{
			event.Date.String(),
			string(event.Date.DayOfWeek()),
			start,
			end,
			string(event.Type),
			event.Title,
			event.HallName,
			event.Group,
			event.Reason,
		})
		if event.Type == models.EventTypeHoliday {
			table.Shaded[i] = true
		}
	}
	return table
}

func calendarEntries(events []models.CalendarEvent, loc *time.Location) []export.CalendarEntry {
	entries := make([]export.CalendarEntry, 0, len(events))
	for _, event := range events {
		day := time.Date(event.Date.Year(), event.Date.Month(), event.Date.Day(), 0, 0, 0, 0, loc)
		entry := export.CalendarEntry{
			UID:         event.ID + "@campusgrid",
			Summary:     event.Title,
			Description: eventDescription(event),
			Start:       day,
			End:         day.AddDate(0, 0, 1),
			AllDay:      event.AllDay,
		}
		if event.Start != nil && event.End != nil {
			entry.Start = day.Add(time.Duration(*event.Start) * time.Second)
			entry.End = day.Add(time.Duration(*event.End) * time.Second)
		}
		entries = append(entries, entry)
	}
	return entries
}

func eventDescription(event models.CalendarEvent) string {
	var parts []string
	if event.HallName != "" {
		parts = append(parts, "Hall: "+event.HallName)
	}
	if event.Group != "" {
		parts = append(parts, "Group: "+event.Group)
	}
	if event.Reason != "" {
		parts = append(parts, "Reason: "+event.Reason)
	}
	return strings.Join(parts, "\n")
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "calendar"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
