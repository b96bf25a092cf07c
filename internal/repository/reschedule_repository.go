package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

const rescheduleSelect = `SELECT r.id, r.course_id, r.professor_id, r.lecture_hall_id, r.type, r.group_name,
r.original_date, r.original_start_time, r.original_end_time, r.rescheduled_date, r.new_start_time, r.new_end_time, r.reason, r.created_at,
c.code AS course_code, c.name AS course_name, c.branch, c.semester, h.name AS hall_name
FROM class_rescheduling r
JOIN courses c ON c.id = r.course_id
JOIN lecture_halls h ON h.id = r.lecture_hall_id`

const rescheduleOrder = ` ORDER BY r.rescheduled_date ASC, r.new_start_time ASC, r.id ASC`

const occurrenceTakenQuery = `SELECT EXISTS (
	SELECT 1 FROM class_rescheduling
	WHERE course_id = $1 AND type = $2 AND group_name = $3
	AND original_date = $4 AND original_start_time = $5 AND original_end_time = $6
)`

// reserveQuery inserts the row only when neither a reschedule nor a recurring
// session already holds the hall for an overlapping interval on that date, and
// the original occurrence has not been moved yet.
const reserveQuery = `INSERT INTO class_rescheduling (id, course_id, professor_id, lecture_hall_id, type, group_name,
original_date, original_start_time, original_end_time, rescheduled_date, new_start_time, new_end_time, reason, created_at)
SELECT $1::uuid, $2::uuid, $3::uuid, $4::uuid, $5::text, $6::text, $7::date, $8::time, $9::time, $10::date, $11::time, $12::time, $13::text, $14::timestamptz
WHERE NOT EXISTS (
	SELECT 1 FROM class_rescheduling r
	WHERE r.lecture_hall_id = $4::uuid AND r.rescheduled_date = $10::date
	AND r.new_start_time < $12::time AND r.new_end_time > $11::time
) AND NOT EXISTS (
	SELECT 1 FROM time_table t
	WHERE t.lecture_hall_id = $4::uuid AND t.day_of_week = $15::text
	AND t.start_time < $12::time AND t.end_time > $11::time
) AND NOT EXISTS (
	SELECT 1 FROM class_rescheduling o
	WHERE o.course_id = $2::uuid AND o.type = $5::text AND o.group_name = $6::text
	AND o.original_date = $7::date AND o.original_start_time = $8::time AND o.original_end_time = $9::time
)
RETURNING id`

// RescheduleRepository persists one-off reschedules.
type RescheduleRepository struct {
	db *sqlx.DB
}

// NewRescheduleRepository constructs a reschedule repository.
func NewRescheduleRepository(db *sqlx.DB) *RescheduleRepository {
	return &RescheduleRepository{db: db}
}

// FindByID loads a reschedule by id.
func (r *RescheduleRepository) FindByID(ctx context.Context, id string) (*models.Reschedule, error) {
	var item models.Reschedule
	if err := r.db.GetContext(ctx, &item, rescheduleSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByProfessorDate returns the professor's reschedules landing on date.
func (r *RescheduleRepository) ListByProfessorDate(ctx context.Context, professorID string, date models.Date) ([]models.Reschedule, error) {
	var items []models.Reschedule
	query := rescheduleSelect + ` WHERE r.rescheduled_date = $1 AND r.professor_id = $2` + rescheduleOrder
	if err := r.db.SelectContext(ctx, &items, query, date, professorID); err != nil {
		return nil, fmt.Errorf("list professor reschedules by date: %w", err)
	}
	return items, nil
}

// ListByCohortDate returns reschedules landing on date for courses of branch and semester.
func (r *RescheduleRepository) ListByCohortDate(ctx context.Context, branch string, semester int, date models.Date) ([]models.Reschedule, error) {
	var items []models.Reschedule
	query := rescheduleSelect + ` WHERE r.rescheduled_date = $1 AND c.branch = $2 AND c.semester = $3` + rescheduleOrder
	if err := r.db.SelectContext(ctx, &items, query, date, branch, semester); err != nil {
		return nil, fmt.Errorf("list cohort reschedules by date: %w", err)
	}
	return items, nil
}

// ListOverlapping returns reschedules on date whose new interval overlaps slot.
func (r *RescheduleRepository) ListOverlapping(ctx context.Context, date models.Date, slot models.TimeInterval) ([]models.Reschedule, error) {
	var items []models.Reschedule
	query := rescheduleSelect + ` WHERE r.rescheduled_date = $1 AND r.new_start_time < $2 AND r.new_end_time > $3` + rescheduleOrder
	if err := r.db.SelectContext(ctx, &items, query, date, slot.End, slot.Start); err != nil {
		return nil, fmt.Errorf("list overlapping reschedules: %w", err)
	}
	return items, nil
}

// ListByProfessor returns every reschedule requested by professorID.
func (r *RescheduleRepository) ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error) {
	var items []models.Reschedule
	if err := r.db.SelectContext(ctx, &items, rescheduleSelect+` WHERE r.professor_id = $1`+rescheduleOrder, professorID); err != nil {
		return nil, fmt.Errorf("list reschedules by professor: %w", err)
	}
	return items, nil
}

// ListByCohort returns every reschedule for courses of branch and semester.
func (r *RescheduleRepository) ListByCohort(ctx context.Context, branch string, semester int) ([]models.Reschedule, error) {
	var items []models.Reschedule
	if err := r.db.SelectContext(ctx, &items, rescheduleSelect+` WHERE c.branch = $1 AND c.semester = $2`+rescheduleOrder, branch, semester); err != nil {
		return nil, fmt.Errorf("list reschedules by cohort: %w", err)
	}
	return items, nil
}

// Reserve inserts item if its hall is free for the new interval on the rescheduled
// date and its original occurrence has no reschedule yet. The checks and the insert
// run in one transaction under an advisory lock keyed by hall and date. Moves of the
// same occurrence into different halls are caught by class_rescheduling_occurrence_idx.
func (r *RescheduleRepository) Reserve(ctx context.Context, item *models.Reschedule) (models.ReservationResult, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.ReservationResult{}, fmt.Errorf("begin reserve hall: %w", err)
	}

	lockKey := item.LectureHallID + "|" + item.RescheduledDate.String()
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		_ = tx.Rollback()
		return models.ReservationResult{}, fmt.Errorf("lock hall %s: %w", lockKey, err)
	}

	var taken bool
	err = tx.GetContext(ctx, &taken, occurrenceTakenQuery,
		item.CourseID, item.Type, item.Group, item.OriginalDate, item.OriginalStartTime, item.OriginalEndTime)
	if err != nil {
		_ = tx.Rollback()
		return models.ReservationResult{}, fmt.Errorf("check original occurrence: %w", err)
	}
	if taken {
		if rbErr := tx.Rollback(); rbErr != nil {
			return models.ReservationResult{}, fmt.Errorf("rollback reserve hall: %w", rbErr)
		}
		return models.ReservationResult{Conflict: true, Superseded: true}, nil
	}

	var id string
	err = tx.GetContext(ctx, &id, reserveQuery,
		item.ID,
		item.CourseID,
		item.ProfessorID,
		item.LectureHallID,
		item.Type,
		item.Group,
		item.OriginalDate,
		item.OriginalStartTime,
		item.OriginalEndTime,
		item.RescheduledDate,
		item.NewStartTime,
		item.NewEndTime,
		item.Reason,
		item.CreatedAt,
		models.WeekdayOf(item.RescheduledDate),
	)
	if errors.Is(err, sql.ErrNoRows) {
		if rbErr := tx.Rollback(); rbErr != nil {
			return models.ReservationResult{}, fmt.Errorf("rollback reserve hall: %w", rbErr)
		}
		return models.ReservationResult{Conflict: true}, nil
	}
	if isUniqueViolation(err) {
		_ = tx.Rollback()
		return models.ReservationResult{Conflict: true, Superseded: true}, nil
	}
	if err != nil {
		_ = tx.Rollback()
		return models.ReservationResult{}, fmt.Errorf("reserve hall: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ReservationResult{}, fmt.Errorf("commit reserve hall: %w", err)
	}
	return models.ReservationResult{ID: id}, nil
}

// Delete removes a reschedule by id. It returns sql.ErrNoRows when nothing was deleted.
func (r *RescheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_rescheduling WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reschedule: %w", err)
	}
	return expectOneRow(res)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
