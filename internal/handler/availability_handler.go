package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/response"
)

type freeSlotFinder interface {
	FreeSlots(ctx context.Context, req dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, error)
}

type hallAvailability interface {
	AvailableHalls(ctx context.Context, req dto.AvailableHallsRequest) (*dto.AvailableHallsResponse, error)
}

// AvailabilityHandler answers free-slot and free-hall queries.
type AvailabilityHandler struct {
	slots freeSlotFinder
	halls hallAvailability
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(slots freeSlotFinder, halls hallAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{slots: slots, halls: halls}
}

// FreeSlots godoc
// @Summary Shared free slots of a professor and a cohort
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param professor_id query string true "Professor ID"
// @Param branch query string true "Branch"
// @Param semester query int true "Semester"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability/free-slots [get]
func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	var req dto.FreeSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, err := h.slots.FreeSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AvailableHalls godoc
// @Summary Lecture halls free for a slot
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time_slot query string true "Slot as HH:MM:SS - HH:MM:SS"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability/halls [get]
func (h *AvailabilityHandler) AvailableHalls(c *gin.Context) {
	var req dto.AvailableHallsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, err := h.halls.AvailableHalls(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
