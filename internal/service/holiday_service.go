package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type holidayStore interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
}

// HolidayService administers campus-wide holidays.
type HolidayService struct {
	repo      holidayStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs a HolidayService.
func NewHolidayService(repo holidayStore, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, validator: ensureValidator(validate), logger: logger}
}

// List returns holidays within the optional range.
func (s *HolidayService) List(ctx context.Context, req dto.HolidayListRequest) ([]models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "from and to must be YYYY-MM-DD")
	}
	var filter models.HolidayFilter
	if req.From != "" {
		from := models.MustDate(req.From)
		filter.From = &from
	}
	if req.To != "" {
		to := models.MustDate(req.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(filter.From.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from must not be after to")
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list holidays failed", zap.String("operation", "holiday_list"), zap.Error(err))
		return nil, storeFailure(err)
	}
	return items, nil
}

// Create declares a holiday. Only one holiday may exist per date.
func (s *HolidayService) Create(ctx context.Context, req dto.CreateHolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid holiday payload")
	}
	holiday := &models.Holiday{
		HolidayDate: models.MustDate(req.Date),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, holiday); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a holiday already exists on %s", holiday.HolidayDate))
		}
		s.logger.Error("create holiday failed", zap.String("operation", "holiday_create"), zap.Error(err))
		return nil, storeFailure(err)
	}
	return holiday, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "holiday not found")
		}
		s.logger.Error("delete holiday failed", zap.String("operation", "holiday_delete"), zap.String("holiday_id", id), zap.Error(err))
		return storeFailure(err)
	}
	return nil
}
