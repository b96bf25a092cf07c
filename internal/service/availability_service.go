package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type availabilitySessionReader interface {
	ListByProfessorDay(ctx context.Context, professorID string, day models.DayOfWeek) ([]models.RecurringSession, error)
	ListByCohortDay(ctx context.Context, branch string, semester int, day models.DayOfWeek) ([]models.RecurringSession, error)
}

type availabilityRescheduleReader interface {
	ListByProfessorDate(ctx context.Context, professorID string, date models.Date) ([]models.Reschedule, error)
	ListByCohortDate(ctx context.Context, branch string, semester int, date models.Date) ([]models.Reschedule, error)
}

// AvailabilityService computes the template slots in which a professor and a
// student cohort are both free on a given date.
type AvailabilityService struct {
	sessions    availabilitySessionReader
	reschedules availabilityRescheduleReader
	template    []models.TimeInterval
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
}

// NewAvailabilityService constructs an AvailabilityService over the working-hours template.
func NewAvailabilityService(sessions availabilitySessionReader, reschedules availabilityRescheduleReader, template []models.TimeInterval, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		sessions:    sessions,
		reschedules: reschedules,
		template:    template,
		validator:   ensureValidator(validate),
		logger:      logger,
		metrics:     metrics,
	}
}

// FreeSlots returns the working-hours slots free for both the professor and the cohort.
func (s *AvailabilityService) FreeSlots(ctx context.Context, req dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "date, professor_id, branch and semester are required")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	day := models.WeekdayOf(date)

	var (
		professorSessions    []models.RecurringSession
		cohortSessions       []models.RecurringSession
		professorReschedules []models.Reschedule
		cohortReschedules    []models.Reschedule
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		professorSessions, err = s.sessions.ListByProfessorDay(gctx, req.ProfessorID, day)
		return err
	})
	g.Go(func() error {
		var err error
		cohortSessions, err = s.sessions.ListByCohortDay(gctx, req.Branch, req.Semester, day)
		return err
	})
	g.Go(func() error {
		var err error
		professorReschedules, err = s.reschedules.ListByProfessorDate(gctx, req.ProfessorID, date)
		return err
	})
	g.Go(func() error {
		var err error
		cohortReschedules, err = s.reschedules.ListByCohortDate(gctx, req.Branch, req.Semester, date)
		return err
	})
	err = g.Wait()
	s.metrics.ObserveDBQuery("free_slots", time.Since(start))
	if err != nil {
		s.logger.Error("free slots lookup failed",
			zap.String("operation", "free_slots"),
			zap.String("date", date.String()),
			zap.String("professor_id", req.ProfessorID),
			zap.Error(err),
		)
		return nil, storeFailure(err)
	}

	busy := make([]models.TimeInterval, 0, len(professorSessions)+len(cohortSessions)+len(professorReschedules)+len(cohortReschedules))
	for _, session := range professorSessions {
		busy = append(busy, session.Interval())
	}
	for _, session := range cohortSessions {
		busy = append(busy, session.Interval())
	}
	for _, item := range professorReschedules {
		busy = append(busy, item.NewInterval())
	}
	for _, item := range cohortReschedules {
		busy = append(busy, item.NewInterval())
	}

	free := models.Subtract(s.template, busy)
	labels := make([]string, len(free))
	for i, slot := range free {
		labels[i] = slot.String()
	}

	return &dto.FreeSlotsResponse{
		Date:      date.String(),
		DayOfWeek: day,
		Slots:     free,
		FreeSlots: labels,
	}, nil
}
