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

type timetableStore interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.RecurringSession, int, error)
	FindByID(ctx context.Context, id string) (*models.RecurringSession, error)
	ListOverlapping(ctx context.Context, day models.DayOfWeek, slot models.TimeInterval) ([]models.RecurringSession, error)
	Create(ctx context.Context, session *models.RecurringSession) error
	BulkCreate(ctx context.Context, sessions []models.RecurringSession) error
	Delete(ctx context.Context, id string) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type hallFinder interface {
	FindByID(ctx context.Context, id string) (*models.LectureHall, error)
}

// TimetableService administers weekly recurring sessions.
type TimetableService struct {
	repo       timetableStore
	courses    courseFinder
	halls      hallFinder
	professors professorFinder
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(repo timetableStore, courses courseFinder, halls hallFinder, professors professorFinder, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		repo:       repo,
		courses:    courses,
		halls:      halls,
		professors: professors,
		validator:  ensureValidator(validate),
		logger:     logger,
	}
}

// List returns sessions with pagination metadata.
func (s *TimetableService) List(ctx context.Context, filter models.SessionFilter) ([]models.RecurringSession, *models.Pagination, error) {
	sessions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list sessions failed", zap.String("operation", "timetable_list"), zap.Error(err))
		return nil, nil, storeFailure(err)
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return sessions, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Create inserts a new session after conflict detection.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateSessionRequest) (*models.RecurringSession, error) {
	session, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoConflict(ctx, *session, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("create session failed", zap.String("operation", "timetable_create"), zap.Error(err))
		return nil, storeFailure(err)
	}
	return session, nil
}

// BulkCreate inserts an uploaded timetable in one transaction. Items that clash with
// stored sessions or with earlier items of the same upload are reported as conflicts.
func (s *TimetableService) BulkCreate(ctx context.Context, req dto.BulkCreateSessionsRequest) (*dto.BulkCreateSessionsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid bulk timetable payload")
	}

	var toCreate []models.RecurringSession
	var conflicts []models.ScheduleConflict

	for _, item := range req.Items {
		session, err := s.prepare(ctx, item)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNoConflict(ctx, *session, toCreate); err != nil {
			var domainErr *models.ScheduleConflictError
			if errors.As(err, &domainErr) {
				conflicts = append(conflicts, domainErr.Conflict)
				if !req.PartialOnError {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		toCreate = append(toCreate, *session)
	}

	if len(toCreate) > 0 {
		if err := s.repo.BulkCreate(ctx, toCreate); err != nil {
			s.logger.Error("bulk create sessions failed", zap.String("operation", "timetable_bulk_create"), zap.Int("count", len(toCreate)), zap.Error(err))
			return nil, storeFailure(err)
		}
	}
	return &dto.BulkCreateSessionsResult{Created: toCreate, Conflicts: conflicts}, nil
}

// Delete removes a session.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		s.logger.Error("delete session failed", zap.String("operation", "timetable_delete"), zap.String("session_id", id), zap.Error(err))
		return storeFailure(err)
	}
	return nil
}

// Get loads one session.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.RecurringSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, storeFailure(err)
	}
	return session, nil
}

func (s *TimetableService) prepare(ctx context.Context, req dto.CreateSessionRequest) (*models.RecurringSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid session payload")
	}
	day, err := models.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}
	interval, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, appErrors.Validation(err, err.Error())
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, storeFailure(err)
	}
	hall, err := s.halls.FindByID(ctx, req.LectureHallID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidHall, "")
		}
		return nil, storeFailure(err)
	}
	if _, err := s.professors.FindByID(ctx, req.ProfessorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, storeFailure(err)
	}

	return &models.RecurringSession{
		DayOfWeek:     day,
		CourseID:      course.ID,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		LectureHallID: hall.ID,
		ProfessorID:   req.ProfessorID,
		Type:          models.SessionType(req.Type),
		Group:         strings.TrimSpace(req.Group),
		CourseCode:    course.Code,
		CourseName:    course.Name,
		Branch:        course.Branch,
		Semester:      course.Semester,
		HallName:      hall.Name,
	}, nil
}

func (s *TimetableService) ensureNoConflict(ctx context.Context, session models.RecurringSession, pending []models.RecurringSession) error {
	existing, err := s.repo.ListOverlapping(ctx, session.DayOfWeek, session.Interval())
	if err != nil {
		return storeFailure(err)
	}
	for _, item := range pending {
		if item.DayOfWeek == session.DayOfWeek && models.Overlaps(item.Interval(), session.Interval()) {
			existing = append(existing, item)
		}
	}

	for _, item := range existing {
		if item.LectureHallID == session.LectureHallID {
			return s.wrapConflict(models.ConflictHall, "lecture hall already booked for this slot", item)
		}
		if item.ProfessorID == session.ProfessorID {
			return s.wrapConflict(models.ConflictProfessor, "professor already teaching in this slot", item)
		}
		if cohortClash(item, session) {
			return s.wrapConflict(models.ConflictCohort, "student group already has a session in this slot", item)
		}
	}
	return nil
}

// cohortClash reports whether some student would have to attend both sessions.
// Groups partition a cohort per session type; an ungrouped class covers everyone.
func cohortClash(a, b models.RecurringSession) bool {
	if a.Branch != b.Branch || a.Semester != b.Semester {
		return false
	}
	if a.Type == b.Type {
		return a.Group == "" || b.Group == "" || a.Group == b.Group
	}
	return (a.Type == models.SessionTypeClass && a.Group == "") || (b.Type == models.SessionTypeClass && b.Group == "")
}

func (s *TimetableService) wrapConflict(dimension, message string, existing models.RecurringSession) error {
	conflict := models.ScheduleConflict{
		SessionID:     existing.ID,
		CourseID:      existing.CourseID,
		ProfessorID:   existing.ProfessorID,
		LectureHallID: existing.LectureHallID,
		DayOfWeek:     existing.DayOfWeek,
		TimeSlot:      existing.Interval().String(),
		Type:          existing.Type,
		Group:         existing.Group,
		Dimension:     dimension,
	}
	domainErr := &models.ScheduleConflictError{Type: dimension, Message: message, Conflict: conflict}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, fmt.Sprintf("schedule conflict: %s", message))
}
