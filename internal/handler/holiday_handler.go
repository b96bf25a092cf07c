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

type holidayAdmin interface {
	List(ctx context.Context, req dto.HolidayListRequest) ([]models.Holiday, error)
	Create(ctx context.Context, req dto.CreateHolidayRequest) (*models.Holiday, error)
	Delete(ctx context.Context, id string) error
}

// HolidayHandler manages campus holidays.
type HolidayHandler struct {
	service holidayAdmin
}

// NewHolidayHandler constructs handler.
func NewHolidayHandler(svc holidayAdmin) *HolidayHandler {
	return &HolidayHandler{service: svc}
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Param from query string false "Lower bound (YYYY-MM-DD)"
// @Param to query string false "Upper bound (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	req := dto.HolidayListRequest{From: c.Query("from"), To: c.Query("to")}
	items, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Declare a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body dto.CreateHolidayRequest true "Holiday payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	holiday, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday)
}

// Delete godoc
// @Summary Remove a holiday
// @Tags Holidays
// @Param id path string true "Holiday ID"
// @Success 204
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
