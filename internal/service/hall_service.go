package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type hallSessionReader interface {
	ListOverlapping(ctx context.Context, day models.DayOfWeek, slot models.TimeInterval) ([]models.RecurringSession, error)
}

type hallRescheduleReader interface {
	ListOverlapping(ctx context.Context, date models.Date, slot models.TimeInterval) ([]models.Reschedule, error)
}

type hallLister interface {
	List(ctx context.Context) ([]models.LectureHall, error)
}

// HallService finds lecture halls with no overlapping booking for a date and slot.
type HallService struct {
	sessions    hallSessionReader
	reschedules hallRescheduleReader
	halls       hallLister
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
}

// NewHallService constructs a HallService.
func NewHallService(sessions hallSessionReader, reschedules hallRescheduleReader, halls hallLister, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *HallService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HallService{
		sessions:    sessions,
		reschedules: reschedules,
		halls:       halls,
		validator:   ensureValidator(validate),
		logger:      logger,
		metrics:     metrics,
	}
}

// AvailableHalls returns the names of halls free for the slot, sorted byte-wise.
func (s *HallService) AvailableHalls(ctx context.Context, req dto.AvailableHallsRequest) (*dto.AvailableHallsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "date and time_slot are required")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	slot, err := models.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	day := models.WeekdayOf(date)

	var (
		sessions    []models.RecurringSession
		reschedules []models.Reschedule
		halls       []models.LectureHall
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.sessions.ListOverlapping(gctx, day, slot)
		return err
	})
	g.Go(func() error {
		var err error
		reschedules, err = s.reschedules.ListOverlapping(gctx, date, slot)
		return err
	})
	g.Go(func() error {
		var err error
		halls, err = s.halls.List(gctx)
		return err
	})
	err = g.Wait()
	s.metrics.ObserveDBQuery("available_halls", time.Since(start))
	if err != nil {
		s.logger.Error("available halls lookup failed",
			zap.String("operation", "available_halls"),
			zap.String("date", date.String()),
			zap.String("time_slot", slot.String()),
			zap.Error(err),
		)
		return nil, storeFailure(err)
	}

	busy := make(map[string]struct{}, len(sessions)+len(reschedules))
	for _, session := range sessions {
		if session.DayOfWeek == day && models.Overlaps(session.Interval(), slot) {
			busy[session.LectureHallID] = struct{}{}
		}
	}
	for _, item := range reschedules {
		if item.RescheduledDate.Equal(date) && models.Overlaps(item.NewInterval(), slot) {
			busy[item.LectureHallID] = struct{}{}
		}
	}

	available := make([]string, 0, len(halls))
	for _, hall := range halls {
		if _, taken := busy[hall.ID]; !taken {
			available = append(available, hall.Name)
		}
	}
	sort.Strings(available)

	return &dto.AvailableHallsResponse{
		Date:      date.String(),
		TimeSlot:  slot.String(),
		Available: available,
	}, nil
}
