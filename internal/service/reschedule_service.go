package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type rescheduleStore interface {
	Reserve(ctx context.Context, item *models.Reschedule) (models.ReservationResult, error)
	FindByID(ctx context.Context, id string) (*models.Reschedule, error)
	ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error)
	Delete(ctx context.Context, id string) error
}

type occurrenceFinder interface {
	ListByCourseDay(ctx context.Context, courseID string, day models.DayOfWeek) ([]models.RecurringSession, error)
}

type professorFinder interface {
	FindByID(ctx context.Context, id string) (*models.Professor, error)
}

type hallResolver interface {
	FindByName(ctx context.Context, name string) (*models.LectureHall, error)
}

type reservationLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Release(ctx context.Context, key, token string) error
}

// RescheduleService runs the reschedule request workflow.
type RescheduleService struct {
	store      rescheduleStore
	sessions   occurrenceFinder
	halls      hallResolver
	professors professorFinder
	locker     reservationLocker
	lockTTL    time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
}

// NewRescheduleService constructs a RescheduleService.
func NewRescheduleService(store rescheduleStore, sessions occurrenceFinder, halls hallResolver, professors professorFinder, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *RescheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RescheduleService{
		store:      store,
		sessions:   sessions,
		halls:      halls,
		professors: professors,
		validator:  ensureValidator(validate),
		logger:     logger,
		metrics:    metrics,
	}
}

// UseLock serialises reservations for the same hall and date across instances
// through locker, holding each lock for at most ttl.
func (s *RescheduleService) UseLock(locker reservationLocker, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	s.locker = locker
	s.lockTTL = ttl
}

// Create validates the request, resolves the hall and books it atomically.
// The returned result always carries the final workflow state.
func (s *RescheduleService) Create(ctx context.Context, req dto.CreateRescheduleRequest) (*dto.RescheduleResult, error) {
	result := &dto.RescheduleResult{State: models.RescheduleStateDraft}

	item, err := s.buildDraft(req)
	if err != nil {
		result.State = models.RescheduleStateRejected
		return result, err
	}
	result.State = models.RescheduleStateValidated

	if err := s.resolveOccurrence(ctx, item); err != nil {
		result.State = models.RescheduleStateRejected
		return result, err
	}

	hall, err := s.halls.FindByName(ctx, req.LectureHall)
	if err != nil {
		result.State = models.RescheduleStateRejected
		if errors.Is(err, sql.ErrNoRows) {
			return result, appErrors.Clone(appErrors.ErrInvalidHall, fmt.Sprintf("lecture hall %q does not exist", req.LectureHall))
		}
		s.logger.Error("resolve lecture hall failed", zap.String("operation", "reschedule_create"), zap.String("hall", req.LectureHall), zap.Error(err))
		return result, storeFailure(err)
	}
	item.LectureHallID = hall.ID
	item.HallName = hall.Name

	if s.locker != nil {
		key := fmt.Sprintf("reservation:%s:%s", hall.ID, item.RescheduledDate.String())
		waitStart := time.Now()
		token, ok, err := s.locker.Acquire(ctx, key, s.lockTTL)
		s.metrics.ObserveLockWait(time.Since(waitStart))
		if err != nil {
			result.State = models.RescheduleStateRejected
			s.metrics.RecordReservation(ReservationFailed)
			s.logger.Error("acquire reservation lock failed", zap.String("operation", "reschedule_create"), zap.String("key", key), zap.Error(err))
			return result, storeFailure(err)
		}
		if !ok {
			result.State = models.RescheduleStateRejected
			s.metrics.RecordReservation(ReservationBusy)
			return result, appErrors.Clone(appErrors.ErrLockBusy, "")
		}
		defer func() {
			if err := s.locker.Release(context.Background(), key, token); err != nil {
				s.logger.Warn("release reservation lock failed", zap.String("key", key), zap.Error(err))
			}
		}()
	}

	reservation, err := s.store.Reserve(ctx, item)
	if err != nil {
		result.State = models.RescheduleStateRejected
		s.metrics.RecordReservation(ReservationFailed)
		s.logger.Error("reserve lecture hall failed", zap.String("operation", "reschedule_create"), zap.String("hall_id", hall.ID), zap.Error(err))
		return result, storeFailure(err)
	}
	if reservation.Superseded {
		result.State = models.RescheduleStateRejected
		s.metrics.RecordReservation(ReservationConflict)
		return result, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("the %s session on %s at %s has already been rescheduled", item.Type, item.OriginalDate, item.OriginalInterval()))
	}
	if reservation.Conflict {
		result.State = models.RescheduleStateRejected
		s.metrics.RecordReservation(ReservationConflict)
		return result, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("lecture hall %s is already booked on %s for %s", hall.Name, item.RescheduledDate, item.NewInterval()))
	}

	item.ID = reservation.ID
	s.metrics.RecordReservation(ReservationCreated)
	s.logger.Info("reschedule persisted",
		zap.String("reschedule_id", item.ID),
		zap.String("course_id", item.CourseID),
		zap.String("hall_id", item.LectureHallID),
		zap.String("date", item.RescheduledDate.String()),
	)
	result.State = models.RescheduleStatePersisted
	result.Reschedule = item
	return result, nil
}

// resolveOccurrence checks that the professor exists and that the original date
// and interval name a real occurrence of a recurring session of the course.
func (s *RescheduleService) resolveOccurrence(ctx context.Context, item *models.Reschedule) error {
	if _, err := s.professors.FindByID(ctx, item.ProfessorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		s.logger.Error("load professor failed", zap.String("operation", "reschedule_create"), zap.String("professor_id", item.ProfessorID), zap.Error(err))
		return storeFailure(err)
	}

	day := models.WeekdayOf(item.OriginalDate)
	sessions, err := s.sessions.ListByCourseDay(ctx, item.CourseID, day)
	if err != nil {
		s.logger.Error("load recurring sessions failed", zap.String("operation", "reschedule_create"), zap.String("course_id", item.CourseID), zap.Error(err))
		return storeFailure(err)
	}
	for _, session := range sessions {
		if session.Type == item.Type && session.Group == item.Group && session.Interval() == item.OriginalInterval() {
			item.CourseCode = session.CourseCode
			item.CourseName = session.CourseName
			item.Branch = session.Branch
			item.Semester = session.Semester
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no %s session of this course runs on %s at %s", item.Type, day, item.OriginalInterval()))
}

func (s *RescheduleService) buildDraft(req dto.CreateRescheduleRequest) (*models.Reschedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid reschedule payload")
	}

	originalDate, err := models.ParseDate(req.OriginalDate)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	rescheduledDate, err := models.ParseDate(req.RescheduledDate)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}

	original, err := parseInterval(req.OriginalStartTime, req.OriginalEndTime)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid original time: "+err.Error())
	}

	newStart, err := models.ParseTimeOfDay(req.NewStartTime)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	newEnd := newStart.Add(original.Duration())
	if strings.TrimSpace(req.NewEndTime) != "" {
		if newEnd, err = models.ParseTimeOfDay(req.NewEndTime); err != nil {
			return nil, appErrors.Validation(err, err.Error())
		}
	}
	target, err := models.NewTimeInterval(newStart, newEnd)
	if err != nil || target.End > models.MustTimeOfDay("23:59:59") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "new time slot must start before it ends on the same day")
	}

	return &models.Reschedule{
		CourseID:          req.CourseID,
		ProfessorID:       req.ProfessorID,
		Type:              models.SessionType(req.Type),
		Group:             strings.TrimSpace(req.Group),
		OriginalDate:      originalDate,
		OriginalStartTime: original.Start,
		OriginalEndTime:   original.End,
		RescheduledDate:   rescheduledDate,
		NewStartTime:      target.Start,
		NewEndTime:        target.End,
		Reason:            strings.TrimSpace(req.Reason),
	}, nil
}

func parseInterval(rawStart, rawEnd string) (models.TimeInterval, error) {
	start, err := models.ParseTimeOfDay(rawStart)
	if err != nil {
		return models.TimeInterval{}, err
	}
	end, err := models.ParseTimeOfDay(rawEnd)
	if err != nil {
		return models.TimeInterval{}, err
	}
	return models.NewTimeInterval(start, end)
}

// Cancel deletes a reschedule. The original occurrence reappears on the next
// calendar build because nothing supersedes it any more.
func (s *RescheduleService) Cancel(ctx context.Context, id string) (*dto.RescheduleResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reschedule id is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reschedule not found")
		}
		s.logger.Error("cancel reschedule failed", zap.String("operation", "reschedule_cancel"), zap.String("reschedule_id", id), zap.Error(err))
		return nil, storeFailure(err)
	}
	return &dto.RescheduleResult{State: models.RescheduleStateRemoved}, nil
}

// Get loads a reschedule by id.
func (s *RescheduleService) Get(ctx context.Context, id string) (*models.Reschedule, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reschedule not found")
		}
		s.logger.Error("load reschedule failed", zap.String("operation", "reschedule_get"), zap.String("reschedule_id", id), zap.Error(err))
		return nil, storeFailure(err)
	}
	return item, nil
}

// ListByProfessor returns the reschedules a professor has requested.
func (s *RescheduleService) ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error) {
	if strings.TrimSpace(professorID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "professor id is required")
	}
	items, err := s.store.ListByProfessor(ctx, professorID)
	if err != nil {
		s.logger.Error("list reschedules failed", zap.String("operation", "reschedule_list"), zap.String("professor_id", professorID), zap.Error(err))
		return nil, storeFailure(err)
	}
	return items, nil
}
