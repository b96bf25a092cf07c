package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/response"
)

type timetableAdmin interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.RecurringSession, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.RecurringSession, error)
	Create(ctx context.Context, req dto.CreateSessionRequest) (*models.RecurringSession, error)
	BulkCreate(ctx context.Context, req dto.BulkCreateSessionsRequest) (*dto.BulkCreateSessionsResult, error)
	Delete(ctx context.Context, id string) error
}

// TimetableHandler manages recurring weekly sessions.
type TimetableHandler struct {
	service timetableAdmin
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc timetableAdmin) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List recurring sessions
// @Tags Timetable
// @Produce json
// @Param day_of_week query string false "Filter by weekday"
// @Param professor_id query string false "Filter by professor"
// @Param course_id query string false "Filter by course"
// @Param lecture_hall_id query string false "Filter by hall"
// @Param branch query string false "Filter by branch"
// @Param semester query int false "Filter by semester"
// @Param type query string false "Filter by session type"
// @Param group query string false "Filter by group"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var filter models.SessionFilter
	if raw := c.Query("day_of_week"); raw != "" {
		day, err := models.ParseDayOfWeek(raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid day_of_week"))
			return
		}
		filter.DayOfWeek = day
	}
	filter.ProfessorID = c.Query("professor_id")
	filter.CourseID = c.Query("course_id")
	filter.LectureHallID = c.Query("lecture_hall_id")
	filter.Branch = c.Query("branch")
	filter.Type = models.SessionType(strings.ToLower(c.Query("type")))
	filter.Group = c.Query("group")
	if semester, err := strconv.Atoi(c.Query("semester")); err == nil {
		filter.Semester = semester
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	sessions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, pagination)
}

// Get godoc
// @Summary Get a recurring session
// @Tags Timetable
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Create godoc
// @Summary Create a recurring session
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// BulkCreate godoc
// @Summary Bulk create recurring sessions
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.BulkCreateSessionsRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/bulk [post]
func (h *TimetableHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BulkCreate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete a recurring session
// @Tags Timetable
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Router /timetable/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
