package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

const sessionSelect = `SELECT t.id, t.day_of_week, t.course_id, t.start_time, t.end_time, t.lecture_hall_id, t.professor_id, t.type, t.group_name,
c.code AS course_code, c.name AS course_name, c.branch, c.semester, h.name AS hall_name
FROM time_table t
JOIN courses c ON c.id = t.course_id
JOIN lecture_halls h ON h.id = t.lecture_hall_id`

// sessionOrder lists the week from Monday rather than by weekday name.
const sessionOrder = ` ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday']::text[], t.day_of_week::text) ASC, t.start_time ASC, t.id ASC`

// TimetableRepository persists weekly recurring sessions.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns sessions with optional filtering and pagination.
func (r *TimetableRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.RecurringSession, int, error) {
	var conditions []string
	var args []interface{}

	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("t.day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.ProfessorID != "" {
		conditions = append(conditions, fmt.Sprintf("t.professor_id = $%d", len(args)+1))
		args = append(args, filter.ProfessorID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("t.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.LectureHallID != "" {
		conditions = append(conditions, fmt.Sprintf("t.lecture_hall_id = $%d", len(args)+1))
		args = append(args, filter.LectureHallID)
	}
	if filter.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("c.branch = $%d", len(args)+1))
		args = append(args, filter.Branch)
	}
	if filter.Semester > 0 {
		conditions = append(conditions, fmt.Sprintf("c.semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Group != "" {
		conditions = append(conditions, fmt.Sprintf("t.group_name = $%d", len(args)+1))
		args = append(args, filter.Group)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("%s%s%s LIMIT %d OFFSET %d", sessionSelect, where, sessionOrder, size, offset)
	var sessions []models.RecurringSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM time_table t JOIN courses c ON c.id = t.course_id" + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	return sessions, total, nil
}

// FindByID loads a session by id.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.RecurringSession, error) {
	var session models.RecurringSession
	if err := r.db.GetContext(ctx, &session, sessionSelect+` WHERE t.id = $1`, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByProfessorDay returns the professor's sessions on day.
func (r *TimetableRepository) ListByProfessorDay(ctx context.Context, professorID string, day models.DayOfWeek) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	query := sessionSelect + ` WHERE t.day_of_week = $1 AND t.professor_id = $2` + sessionOrder
	if err := r.db.SelectContext(ctx, &sessions, query, day, professorID); err != nil {
		return nil, fmt.Errorf("list professor sessions by day: %w", err)
	}
	return sessions, nil
}

// ListByCohortDay returns sessions on day for courses of branch and semester.
func (r *TimetableRepository) ListByCohortDay(ctx context.Context, branch string, semester int, day models.DayOfWeek) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	query := sessionSelect + ` WHERE t.day_of_week = $1 AND c.branch = $2 AND c.semester = $3` + sessionOrder
	if err := r.db.SelectContext(ctx, &sessions, query, day, branch, semester); err != nil {
		return nil, fmt.Errorf("list cohort sessions by day: %w", err)
	}
	return sessions, nil
}

// ListByCourseDay returns the sessions of courseID held on day.
func (r *TimetableRepository) ListByCourseDay(ctx context.Context, courseID string, day models.DayOfWeek) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	query := sessionSelect + ` WHERE t.day_of_week = $1 AND t.course_id = $2` + sessionOrder
	if err := r.db.SelectContext(ctx, &sessions, query, day, courseID); err != nil {
		return nil, fmt.Errorf("list course sessions by day: %w", err)
	}
	return sessions, nil
}

// ListOverlapping returns sessions on day whose interval overlaps slot.
func (r *TimetableRepository) ListOverlapping(ctx context.Context, day models.DayOfWeek, slot models.TimeInterval) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	query := sessionSelect + ` WHERE t.day_of_week = $1 AND t.start_time < $2 AND t.end_time > $3` + sessionOrder
	if err := r.db.SelectContext(ctx, &sessions, query, day, slot.End, slot.Start); err != nil {
		return nil, fmt.Errorf("list overlapping sessions: %w", err)
	}
	return sessions, nil
}

// ListByProfessor returns every session taught by professorID.
func (r *TimetableRepository) ListByProfessor(ctx context.Context, professorID string) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	if err := r.db.SelectContext(ctx, &sessions, sessionSelect+` WHERE t.professor_id = $1`+sessionOrder, professorID); err != nil {
		return nil, fmt.Errorf("list sessions by professor: %w", err)
	}
	return sessions, nil
}

// ListByCohort returns every session for courses of branch and semester.
func (r *TimetableRepository) ListByCohort(ctx context.Context, branch string, semester int) ([]models.RecurringSession, error) {
	var sessions []models.RecurringSession
	if err := r.db.SelectContext(ctx, &sessions, sessionSelect+` WHERE c.branch = $1 AND c.semester = $2`+sessionOrder, branch, semester); err != nil {
		return nil, fmt.Errorf("list sessions by cohort: %w", err)
	}
	return sessions, nil
}

// Create stores a new session record.
func (r *TimetableRepository) Create(ctx context.Context, session *models.RecurringSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if _, err := r.db.NamedExecContext(ctx, insertSessionQuery, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

const insertSessionQuery = `INSERT INTO time_table (id, day_of_week, course_id, start_time, end_time, lecture_hall_id, professor_id, type, group_name)
VALUES (:id, :day_of_week, :course_id, :start_time, :end_time, :lecture_hall_id, :professor_id, :type, :group_name)`

// BulkCreate inserts many sessions within a transaction.
func (r *TimetableRepository) BulkCreate(ctx context.Context, sessions []models.RecurringSession) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create sessions: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = uuid.NewString()
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, insertSessionQuery, &sessions[i]); err != nil {
			return fmt.Errorf("bulk insert session: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create sessions: %w", err)
	}
	return nil
}

// Delete removes a session by id. It returns sql.ErrNoRows when nothing was deleted.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_table WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
