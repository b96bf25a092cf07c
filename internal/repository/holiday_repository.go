package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

// HolidayRepository persists campus-wide holidays.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// List returns holidays in date order, optionally bounded by an inclusive range.
func (r *HolidayRepository) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error) {
	var conditions []string
	var args []interface{}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("holiday_date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("holiday_date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	query := "SELECT id, holiday_date, description, created_at FROM holidays"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY holiday_date ASC"

	var items []models.Holiday
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return items, nil
}

// FindByDate returns the holiday on date, or sql.ErrNoRows.
func (r *HolidayRepository) FindByDate(ctx context.Context, date models.Date) (*models.Holiday, error) {
	var item models.Holiday
	if err := r.db.GetContext(ctx, &item, "SELECT id, holiday_date, description, created_at FROM holidays WHERE holiday_date = $1", date); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a holiday. A duplicate date surfaces as a unique violation.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO holidays (id, holiday_date, description, created_at) VALUES (:id, :holiday_date, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday by id. It returns sql.ErrNoRows when nothing was deleted.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return expectOneRow(res)
}
