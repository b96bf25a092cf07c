package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/export"
)

type staticCalendar struct {
	events []models.CalendarEvent
	err    error
}

func (s staticCalendar) Calendar(ctx context.Context, req dto.CalendarRequest) ([]models.CalendarEvent, error) {
	return s.events, s.err
}

func (s staticCalendar) Location() *time.Location {
	return time.UTC
}

func sampleEvents() []models.CalendarEvent {
	start, end := tod("10:00"), tod("11:00")
	return []models.CalendarEvent{
		{ID: "s1-0", Title: "CS101 Intro", Date: models.MustDate("2024-03-11"), Start: &start, End: &end, Type: models.EventTypeClass, HallName: "H1", Group: "A"},
		{ID: "holiday-hol1", Title: "Founders Day", Date: models.MustDate("2024-03-18"), AllDay: true, Type: models.EventTypeHoliday},
	}
}

type capturingICS struct {
	entries []export.CalendarEntry
}

func (c *capturingICS) Render(name string, entries []export.CalendarEntry, loc *time.Location) ([]byte, error) {
	c.entries = entries
	return []byte("BEGIN:VCALENDAR"), nil
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := NewExportService(staticCalendar{events: sampleEvents()}, zap.NewNop(), nil, nil, nil)

	result, err := svc.Render(context.Background(), dto.CalendarExportRequest{CalendarRequest: dto.CalendarRequest{ProfessorID: "P"}})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "timetable_professor_P.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Day,Start,End,Type,Title,Hall,Group,Reason", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "2024-03-11,monday,10:00:00,11:00:00,class,CS101 Intro,H1,A"))
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := NewExportService(staticCalendar{events: sampleEvents()}, nil, nil, nil, nil)

	result, err := svc.Render(context.Background(), dto.CalendarExportRequest{CalendarRequest: dto.CalendarRequest{Branch: "CSE", Semester: 3}, Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Body), "%PDF"))
}

func TestExportServiceRenderICSEntries(t *testing.T) {
	ics := &capturingICS{}
	svc := NewExportService(staticCalendar{events: sampleEvents()}, nil, nil, nil, ics)

	result, err := svc.Render(context.Background(), dto.CalendarExportRequest{CalendarRequest: dto.CalendarRequest{ProfessorID: "P"}, Format: "ICS"})
	require.NoError(t, err)
	assert.Equal(t, "text/calendar", result.ContentType)
	require.Len(t, ics.entries, 2)
	assert.Equal(t, "s1-0@campusgrid", ics.entries[0].UID)
	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), ics.entries[0].Start)
	assert.Equal(t, time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC), ics.entries[0].End)
	assert.True(t, ics.entries[1].AllDay)
	assert.Equal(t, time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC), ics.entries[1].End)
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(staticCalendar{}, nil, nil, nil, nil)

	_, err := svc.Render(context.Background(), dto.CalendarExportRequest{CalendarRequest: dto.CalendarRequest{ProfessorID: "P"}, Format: "xlsx"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
