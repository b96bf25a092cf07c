package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/response"
)

type catalogAdmin interface {
	ListHalls(ctx context.Context) ([]models.LectureHall, error)
	CreateHall(ctx context.Context, req dto.CreateHallRequest) (*models.LectureHall, error)
	ListCourses(ctx context.Context, branch string, semester int) ([]models.Course, error)
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
}

// CatalogHandler serves lecture hall and course reference data.
type CatalogHandler struct {
	service catalogAdmin
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(svc catalogAdmin) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListHalls godoc
// @Summary List lecture halls
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /halls [get]
func (h *CatalogHandler) ListHalls(c *gin.Context) {
	halls, err := h.service.ListHalls(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, halls, nil)
}

// CreateHall godoc
// @Summary Register a lecture hall
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateHallRequest true "Hall payload"
// @Success 201 {object} response.Envelope
// @Router /halls [post]
func (h *CatalogHandler) CreateHall(c *gin.Context) {
	var req dto.CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	hall, err := h.service.CreateHall(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hall)
}

// ListCourses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Param branch query string false "Branch"
// @Param semester query int false "Semester"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	semester, _ := strconv.Atoi(c.Query("semester"))
	courses, err := h.service.ListCourses(c.Request.Context(), c.Query("branch"), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// CreateCourse godoc
// @Summary Register a course
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}
