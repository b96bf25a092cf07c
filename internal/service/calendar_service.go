package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type calendarSessionReader interface {
	ListByProfessor(ctx context.Context, professorID string) ([]models.RecurringSession, error)
	ListByCohort(ctx context.Context, branch string, semester int) ([]models.RecurringSession, error)
}

type calendarRescheduleReader interface {
	ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error)
	ListByCohort(ctx context.Context, branch string, semester int) ([]models.Reschedule, error)
}

type holidayReader interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// CalendarConfig tunes calendar materialization.
type CalendarConfig struct {
	DefaultWeeks int
	MaxWeeks     int
	Location     *time.Location
	Now          func() time.Time
}

// CalendarService materializes recurring sessions, reschedules and holidays into
// dated calendar events over a window of weeks.
type CalendarService struct {
	sessions    calendarSessionReader
	reschedules calendarRescheduleReader
	holidays    holidayReader
	students    studentFinder
	cfg         CalendarConfig
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(sessions calendarSessionReader, reschedules calendarRescheduleReader, holidays holidayReader, students studentFinder, cfg CalendarConfig, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultWeeks <= 0 {
		cfg.DefaultWeeks = 4
	}
	if cfg.MaxWeeks < cfg.DefaultWeeks {
		cfg.MaxWeeks = cfg.DefaultWeeks
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &CalendarService{
		sessions:    sessions,
		reschedules: reschedules,
		holidays:    holidays,
		students:    students,
		cfg:         cfg,
		validator:   ensureValidator(validate),
		logger:      logger,
		metrics:     metrics,
	}
}

// Location is the timezone weeks are anchored in.
func (s *CalendarService) Location() *time.Location {
	return s.cfg.Location
}

// Calendar resolves the request to a professor or cohort and builds its schedule.
func (s *CalendarService) Calendar(ctx context.Context, req dto.CalendarRequest) ([]models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid calendar query")
	}
	target, err := s.ResolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.BuildSchedule(ctx, target, req.Weeks)
}

// ResolveTarget turns exactly one of professor_id, student_id or branch+semester into a target.
func (s *CalendarService) ResolveTarget(ctx context.Context, req dto.CalendarRequest) (models.ScheduleTarget, error) {
	selectors := 0
	if req.ProfessorID != "" {
		selectors++
	}
	if req.StudentID != "" {
		selectors++
	}
	if req.Branch != "" || req.Semester > 0 {
		selectors++
	}
	if selectors != 1 {
		return models.ScheduleTarget{}, appErrors.Clone(appErrors.ErrValidation, "exactly one of professor_id, student_id or branch and semester is required")
	}

	switch {
	case req.ProfessorID != "":
		return models.ScheduleTarget{ProfessorID: req.ProfessorID}, nil
	case req.StudentID != "":
		student, err := s.students.FindByID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ScheduleTarget{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			s.logger.Error("load student failed", zap.String("operation", "calendar"), zap.String("student_id", req.StudentID), zap.Error(err))
			return models.ScheduleTarget{}, storeFailure(err)
		}
		cohort := student.Cohort()
		return models.ScheduleTarget{Cohort: &cohort}, nil
	default:
		if req.Branch == "" || req.Semester <= 0 {
			return models.ScheduleTarget{}, appErrors.Clone(appErrors.ErrValidation, "branch and semester must be given together")
		}
		return models.ScheduleTarget{Cohort: &models.Cohort{
			Branch:        req.Branch,
			Semester:      req.Semester,
			ClassGroup:    req.ClassGroup,
			TutorialGroup: req.TutorialGroup,
			LabGroup:      req.LabGroup,
		}}, nil
	}
}

// BuildSchedule materializes the target's calendar for weeks weeks starting at the
// Monday of the current week. A zero weeks uses the configured default. The output
// is ordered by date, start time and id, and is stable for unchanged store state.
func (s *CalendarService) BuildSchedule(ctx context.Context, target models.ScheduleTarget, weeks int) ([]models.CalendarEvent, error) {
	if weeks == 0 {
		weeks = s.cfg.DefaultWeeks
	}
	if weeks < 0 || weeks > s.cfg.MaxWeeks {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("weeks must be between 1 and %d", s.cfg.MaxWeeks))
	}
	if target.ProfessorID == "" && target.Cohort == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a professor or cohort is required")
	}

	var (
		holidays    []models.Holiday
		sessions    []models.RecurringSession
		reschedules []models.Reschedule
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holidays, err = s.holidays.List(gctx, models.HolidayFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		if target.ProfessorID != "" {
			sessions, err = s.sessions.ListByProfessor(gctx, target.ProfessorID)
		} else {
			sessions, err = s.sessions.ListByCohort(gctx, target.Cohort.Branch, target.Cohort.Semester)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if target.ProfessorID != "" {
			reschedules, err = s.reschedules.ListByProfessor(gctx, target.ProfessorID)
		} else {
			reschedules, err = s.reschedules.ListByCohort(gctx, target.Cohort.Branch, target.Cohort.Semester)
		}
		return err
	})
	err := g.Wait()
	s.metrics.ObserveDBQuery("build_schedule", time.Since(start))
	if err != nil {
		s.logger.Error("calendar lookup failed", zap.String("operation", "build_schedule"), zap.Error(err))
		return nil, storeFailure(err)
	}

	if target.Cohort != nil {
		sessions = filterSessions(sessions, *target.Cohort)
		reschedules = filterReschedules(reschedules, *target.Cohort)
	}

	holidayDates := make(map[string]struct{}, len(holidays))
	for _, holiday := range holidays {
		holidayDates[holiday.HolidayDate.String()] = struct{}{}
	}

	superseded := make(map[string]struct{}, len(reschedules))
	for _, item := range reschedules {
		superseded[occurrenceKey(item.CourseID, item.Type, item.Group, item.OriginalDate, item.OriginalInterval())] = struct{}{}
	}

	weekStart := models.StartOfWeek(models.DateOf(s.cfg.Now().In(s.cfg.Location)))
	events := make([]models.CalendarEvent, 0, weeks*len(sessions)+len(reschedules)+len(holidays))

	for week := 0; week < weeks; week++ {
		monday := weekStart.AddDays(7 * week)
		for _, session := range sessions {
			if !session.DayOfWeek.Valid() {
				s.logger.Warn("skipping session with unknown weekday", zap.String("session_id", session.ID), zap.String("day_of_week", string(session.DayOfWeek)))
				continue
			}
			date := monday.AddDays(session.DayOfWeek.MondayOffset())
			if _, ok := holidayDates[date.String()]; ok {
				continue
			}
			if _, ok := superseded[occurrenceKey(session.CourseID, session.Type, session.Group, date, session.Interval())]; ok {
				continue
			}
			events = append(events, sessionEvent(session, date, week))
		}
	}

	for _, item := range reschedules {
		if _, ok := holidayDates[item.RescheduledDate.String()]; ok {
			continue
		}
		events = append(events, rescheduleEvent(item))
	}

	for _, holiday := range holidays {
		events = append(events, models.CalendarEvent{
			ID:     "holiday-" + holiday.ID,
			Title:  holiday.Description,
			Date:   holiday.HolidayDate,
			AllDay: true,
			Type:   models.EventTypeHoliday,
		})
	}

	sortEvents(events)
	s.metrics.ObserveCalendarBuild(len(events))
	return events, nil
}

func filterSessions(sessions []models.RecurringSession, cohort models.Cohort) []models.RecurringSession {
	filtered := sessions[:0:0]
	for _, session := range sessions {
		if cohort.Includes(session.Branch, session.Semester, session.Type, session.Group) {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

func filterReschedules(items []models.Reschedule, cohort models.Cohort) []models.Reschedule {
	filtered := items[:0:0]
	for _, item := range items {
		if cohort.Includes(item.Branch, item.Semester, item.Type, item.Group) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func occurrenceKey(courseID string, sessionType models.SessionType, group string, date models.Date, interval models.TimeInterval) string {
	return strings.Join([]string{courseID, string(sessionType), group, date.String(), interval.String()}, "|")
}

func sessionEvent(session models.RecurringSession, date models.Date, week int) models.CalendarEvent {
	start, end := session.StartTime, session.EndTime
	return models.CalendarEvent{
		ID:          fmt.Sprintf("%s-%d", session.ID, week),
		Title:       eventTitle(session.CourseCode, session.CourseName),
		Date:        date,
		Start:       &start,
		End:         &end,
		Type:        models.EventType(session.Type),
		SessionType: string(session.Type),
		CourseID:    session.CourseID,
		CourseCode:  session.CourseCode,
		HallName:    session.HallName,
		Group:       session.Group,
		ProfessorID: session.ProfessorID,
	}
}

func rescheduleEvent(item models.Reschedule) models.CalendarEvent {
	start, end := item.NewStartTime, item.NewEndTime
	return models.CalendarEvent{
		ID:          "rescheduled-" + item.ID,
		Title:       eventTitle(item.CourseCode, item.CourseName) + " (rescheduled)",
		Date:        item.RescheduledDate,
		Start:       &start,
		End:         &end,
		Type:        models.EventTypeRescheduled,
		SessionType: string(item.Type),
		CourseID:    item.CourseID,
		CourseCode:  item.CourseCode,
		HallName:    item.HallName,
		Group:       item.Group,
		ProfessorID: item.ProfessorID,
		Reason:      item.Reason,
	}
}

func eventTitle(code, name string) string {
	switch {
	case code != "" && name != "":
		return code + " " + name
	case code != "":
		return code
	default:
		return name
	}
}

// sortEvents orders by date, then start time with all-day events first, then id.
func sortEvents(events []models.CalendarEvent) {
	startOf := func(e models.CalendarEvent) int {
		if e.Start == nil {
			return -1
		}
		return int(*e.Start)
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date.Time)
		}
		if startOf(a) != startOf(b) {
			return startOf(a) < startOf(b)
		}
		return a.ID < b.ID
	})
}
