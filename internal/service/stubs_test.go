package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

const (
	profP          = "11111111-1111-4111-8111-111111111111"
	profQ          = "22222222-2222-4222-8222-222222222222"
	profR          = "33333333-3333-4333-8333-333333333333"
	profZ          = "44444444-4444-4444-8444-444444444444"
	profMissing    = "99999999-9999-4999-8999-999999999999"
	courseC1       = "c1000000-0000-4000-8000-000000000001"
	courseC2       = "c2000000-0000-4000-8000-000000000002"
	courseC3       = "c3000000-0000-4000-8000-000000000003"
	courseMissing  = "c9000000-0000-4000-8000-000000000009"
	hallH1         = "a1000000-0000-4000-8000-000000000001"
	hallH2         = "a2000000-0000-4000-8000-000000000002"
	hallMissing    = "a9000000-0000-4000-8000-000000000009"
	studentOne     = "5e000000-0000-4000-8000-000000000001"
	studentMissing = "5e000000-0000-4000-8000-000000000009"
)

func tod(raw string) models.TimeOfDay {
	return models.MustTimeOfDay(raw)
}

type memSessions struct {
	mu    sync.Mutex
	items []models.RecurringSession
	err   error
	seq   int
}

func (m *memSessions) filter(keep func(models.RecurringSession) bool) ([]models.RecurringSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.RecurringSession
	for _, item := range m.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memSessions) ListByProfessorDay(ctx context.Context, professorID string, day models.DayOfWeek) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool { return s.ProfessorID == professorID && s.DayOfWeek == day })
}

func (m *memSessions) ListByCohortDay(ctx context.Context, branch string, semester int, day models.DayOfWeek) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool {
		return s.Branch == branch && s.Semester == semester && s.DayOfWeek == day
	})
}

func (m *memSessions) ListByCourseDay(ctx context.Context, courseID string, day models.DayOfWeek) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool { return s.CourseID == courseID && s.DayOfWeek == day })
}

func (m *memSessions) ListOverlapping(ctx context.Context, day models.DayOfWeek, slot models.TimeInterval) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool {
		return s.DayOfWeek == day && s.StartTime < slot.End && s.EndTime > slot.Start
	})
}

func (m *memSessions) ListByProfessor(ctx context.Context, professorID string) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool { return s.ProfessorID == professorID })
}

func (m *memSessions) ListByCohort(ctx context.Context, branch string, semester int) ([]models.RecurringSession, error) {
	return m.filter(func(s models.RecurringSession) bool { return s.Branch == branch && s.Semester == semester })
}

func (m *memSessions) List(ctx context.Context, filter models.SessionFilter) ([]models.RecurringSession, int, error) {
	items, err := m.filter(func(s models.RecurringSession) bool {
		return filter.DayOfWeek == "" || s.DayOfWeek == filter.DayOfWeek
	})
	return items, len(items), err
}

func (m *memSessions) FindByID(ctx context.Context, id string) (*models.RecurringSession, error) {
	items, err := m.filter(func(s models.RecurringSession) bool { return s.ID == id })
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return &items[0], nil
}

func (m *memSessions) Create(ctx context.Context, session *models.RecurringSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	session.ID = fmt.Sprintf("s-%d", m.seq)
	m.items = append(m.items, *session)
	return nil
}

func (m *memSessions) BulkCreate(ctx context.Context, sessions []models.RecurringSession) error {
	for i := range sessions {
		if err := m.Create(ctx, &sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memReschedules struct {
	mu           sync.Mutex
	items        []models.Reschedule
	sessions     *memSessions
	err          error
	reserveCalls int
	seq          int
}

func (m *memReschedules) filter(keep func(models.Reschedule) bool) ([]models.Reschedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Reschedule
	for _, item := range m.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memReschedules) ListByProfessorDate(ctx context.Context, professorID string, date models.Date) ([]models.Reschedule, error) {
	return m.filter(func(r models.Reschedule) bool { return r.ProfessorID == professorID && r.RescheduledDate.Equal(date) })
}

func (m *memReschedules) ListByCohortDate(ctx context.Context, branch string, semester int, date models.Date) ([]models.Reschedule, error) {
	return m.filter(func(r models.Reschedule) bool {
		return r.Branch == branch && r.Semester == semester && r.RescheduledDate.Equal(date)
	})
}

func (m *memReschedules) ListOverlapping(ctx context.Context, date models.Date, slot models.TimeInterval) ([]models.Reschedule, error) {
	return m.filter(func(r models.Reschedule) bool {
		return r.RescheduledDate.Equal(date) && r.NewStartTime < slot.End && r.NewEndTime > slot.Start
	})
}

func (m *memReschedules) ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error) {
	return m.filter(func(r models.Reschedule) bool { return r.ProfessorID == professorID })
}

func (m *memReschedules) ListByCohort(ctx context.Context, branch string, semester int) ([]models.Reschedule, error) {
	return m.filter(func(r models.Reschedule) bool { return r.Branch == branch && r.Semester == semester })
}

func (m *memReschedules) FindByID(ctx context.Context, id string) (*models.Reschedule, error) {
	items, err := m.filter(func(r models.Reschedule) bool { return r.ID == id })
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return &items[0], nil
}

func (m *memReschedules) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memReschedules) Reserve(ctx context.Context, item *models.Reschedule) (models.ReservationResult, error) {
	m.mu.Lock()
	m.reserveCalls++
	if m.err != nil {
		m.mu.Unlock()
		return models.ReservationResult{}, m.err
	}
	for _, existing := range m.items {
		if existing.CourseID == item.CourseID && existing.Type == item.Type && existing.Group == item.Group &&
			existing.OriginalDate.Equal(item.OriginalDate) && existing.OriginalInterval() == item.OriginalInterval() {
			m.mu.Unlock()
			return models.ReservationResult{Conflict: true, Superseded: true}, nil
		}
	}
	for _, existing := range m.items {
		if existing.LectureHallID == item.LectureHallID && existing.RescheduledDate.Equal(item.RescheduledDate) &&
			models.Overlaps(existing.NewInterval(), item.NewInterval()) {
			m.mu.Unlock()
			return models.ReservationResult{Conflict: true}, nil
		}
	}
	m.mu.Unlock()

	if m.sessions != nil {
		busy, err := m.sessions.ListOverlapping(ctx, models.WeekdayOf(item.RescheduledDate), item.NewInterval())
		if err != nil {
			return models.ReservationResult{}, err
		}
		for _, session := range busy {
			if session.LectureHallID == item.LectureHallID {
				return models.ReservationResult{Conflict: true}, nil
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	stored := *item
	stored.ID = fmt.Sprintf("r-%d", m.seq)
	m.items = append(m.items, stored)
	return models.ReservationResult{ID: stored.ID}, nil
}

type memHalls struct {
	items []models.LectureHall
	err   error
	seq   int
}

func (m *memHalls) List(ctx context.Context) ([]models.LectureHall, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.LectureHall(nil), m.items...), nil
}

func (m *memHalls) FindByName(ctx context.Context, name string) (*models.LectureHall, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, hall := range m.items {
		if strings.EqualFold(hall.Name, name) {
			h := hall
			return &h, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memHalls) FindByID(ctx context.Context, id string) (*models.LectureHall, error) {
	for _, hall := range m.items {
		if hall.ID == id {
			h := hall
			return &h, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memHalls) Create(ctx context.Context, hall *models.LectureHall) error {
	if m.err != nil {
		return m.err
	}
	m.seq++
	hall.ID = fmt.Sprintf("h-%d", m.seq)
	m.items = append(m.items, *hall)
	return nil
}

type memCourses struct {
	items []models.Course
	err   error
}

func (m *memCourses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	for _, course := range m.items {
		if course.ID == id {
			c := course
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memCourses) List(ctx context.Context, branch string, semester int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Course
	for _, course := range m.items {
		if (branch == "" || course.Branch == branch) && (semester == 0 || course.Semester == semester) {
			out = append(out, course)
		}
	}
	return out, nil
}

func (m *memCourses) Create(ctx context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	course.ID = "course-" + course.Code
	m.items = append(m.items, *course)
	return nil
}

type memHolidays struct {
	items     []models.Holiday
	err       error
	createErr error
}

func (m *memHolidays) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Holiday
	for _, item := range m.items {
		if filter.From != nil && item.HolidayDate.Before(filter.From.Time) {
			continue
		}
		if filter.To != nil && item.HolidayDate.After(filter.To.Time) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memHolidays) Create(ctx context.Context, holiday *models.Holiday) error {
	if m.createErr != nil {
		return m.createErr
	}
	holiday.ID = "hol-" + holiday.HolidayDate.String()
	holiday.CreatedAt = time.Now()
	m.items = append(m.items, *holiday)
	return nil
}

func (m *memHolidays) Delete(ctx context.Context, id string) error {
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memStudents map[string]models.Student

func (m memStudents) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if student, ok := m[id]; ok {
		return &student, nil
	}
	return nil, sql.ErrNoRows
}

type memProfessors struct {
	missing map[string]bool
	err     error
}

func (m memProfessors) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.missing[id] {
		return nil, sql.ErrNoRows
	}
	return &models.Professor{ID: id}, nil
}

type memLocker struct {
	busy     bool
	acquired []string
	released []string
}

func (m *memLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if m.busy {
		return "", false, nil
	}
	m.acquired = append(m.acquired, key)
	return "token", true, nil
}

func (m *memLocker) Release(ctx context.Context, key, token string) error {
	m.released = append(m.released, key)
	return nil
}
