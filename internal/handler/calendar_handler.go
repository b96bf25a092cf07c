package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/service"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/response"
)

type calendarReader interface {
	Calendar(ctx context.Context, req dto.CalendarRequest) ([]models.CalendarEvent, error)
}

type calendarExporter interface {
	Render(ctx context.Context, req dto.CalendarExportRequest) (*service.ExportResult, error)
}

// CalendarHandler serves materialized calendars.
type CalendarHandler struct {
	calendar calendarReader
	exporter calendarExporter
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar calendarReader, exporter calendarExporter) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, exporter: exporter}
}

// Schedule godoc
// @Summary Materialized calendar for a professor, student or cohort
// @Tags Calendar
// @Produce json
// @Param professor_id query string false "Professor ID"
// @Param student_id query string false "Student ID"
// @Param branch query string false "Branch"
// @Param semester query int false "Semester"
// @Param class_group query string false "Class group"
// @Param tutorial_group query string false "Tutorial group"
// @Param lab_group query string false "Lab group"
// @Param weeks query int false "Weeks to project"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) Schedule(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	events, err := h.calendar.Calendar(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil, map[string]interface{}{"count": len(events)})
}

// Export godoc
// @Summary Download a calendar as CSV, PDF or iCalendar
// @Tags Calendar
// @Produce octet-stream
// @Param format query string false "csv, pdf or ics"
// @Param professor_id query string false "Professor ID"
// @Param student_id query string false "Student ID"
// @Param branch query string false "Branch"
// @Param semester query int false "Semester"
// @Param weeks query int false "Weeks to project"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	var req dto.CalendarExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, err := h.exporter.Render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
