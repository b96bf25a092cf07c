package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/response"
)

type rescheduleWorkflow interface {
	Create(ctx context.Context, req dto.CreateRescheduleRequest) (*dto.RescheduleResult, error)
	Cancel(ctx context.Context, id string) (*dto.RescheduleResult, error)
	Get(ctx context.Context, id string) (*models.Reschedule, error)
	ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error)
}

// RescheduleHandler exposes the one-off reschedule workflow.
type RescheduleHandler struct {
	service rescheduleWorkflow
}

// NewRescheduleHandler constructs the handler.
func NewRescheduleHandler(svc rescheduleWorkflow) *RescheduleHandler {
	return &RescheduleHandler{service: svc}
}

// Create godoc
// @Summary Reschedule one occurrence of a session
// @Tags Reschedules
// @Accept json
// @Produce json
// @Param payload body dto.CreateRescheduleRequest true "Reschedule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reschedules [post]
func (h *RescheduleHandler) Create(c *gin.Context) {
	var req dto.CreateRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Get a reschedule
// @Tags Reschedules
// @Produce json
// @Param id path string true "Reschedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reschedules/{id} [get]
func (h *RescheduleHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Cancel godoc
// @Summary Cancel a reschedule, restoring the original occurrence
// @Tags Reschedules
// @Produce json
// @Param id path string true "Reschedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reschedules/{id} [delete]
func (h *RescheduleHandler) Cancel(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListByProfessor godoc
// @Summary List reschedules of a professor
// @Tags Reschedules
// @Produce json
// @Param id path string true "Professor ID"
// @Success 200 {object} response.Envelope
// @Router /professors/{id}/reschedules [get]
func (h *RescheduleHandler) ListByProfessor(c *gin.Context) {
	items, err := h.service.ListByProfessor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
