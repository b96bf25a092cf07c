package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

// LectureHallRepository reads and writes lecture halls.
type LectureHallRepository struct {
	db *sqlx.DB
}

// NewLectureHallRepository constructs a lecture hall repository.
func NewLectureHallRepository(db *sqlx.DB) *LectureHallRepository {
	return &LectureHallRepository{db: db}
}

// List returns every hall ordered by name.
func (r *LectureHallRepository) List(ctx context.Context) ([]models.LectureHall, error) {
	var halls []models.LectureHall
	if err := r.db.SelectContext(ctx, &halls, "SELECT id, name FROM lecture_halls ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("list lecture halls: %w", err)
	}
	return halls, nil
}

// FindByID loads a hall by id.
func (r *LectureHallRepository) FindByID(ctx context.Context, id string) (*models.LectureHall, error) {
	var hall models.LectureHall
	if err := r.db.GetContext(ctx, &hall, "SELECT id, name FROM lecture_halls WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &hall, nil
}

// FindByName loads a hall by its case-insensitive name.
func (r *LectureHallRepository) FindByName(ctx context.Context, name string) (*models.LectureHall, error) {
	var hall models.LectureHall
	if err := r.db.GetContext(ctx, &hall, "SELECT id, name FROM lecture_halls WHERE LOWER(name) = LOWER($1)", strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	return &hall, nil
}

// Create stores a hall.
func (r *LectureHallRepository) Create(ctx context.Context, hall *models.LectureHall) error {
	if hall.ID == "" {
		hall.ID = uuid.NewString()
	}
	if _, err := r.db.NamedExecContext(ctx, "INSERT INTO lecture_halls (id, name) VALUES (:id, :name)", hall); err != nil {
		return fmt.Errorf("create lecture hall: %w", err)
	}
	return nil
}

// CourseRepository reads and writes courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses, optionally narrowed to a branch and semester.
func (r *CourseRepository) List(ctx context.Context, branch string, semester int) ([]models.Course, error) {
	var conditions []string
	var args []interface{}
	if branch != "" {
		conditions = append(conditions, fmt.Sprintf("branch = $%d", len(args)+1))
		args = append(args, branch)
	}
	if semester > 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, semester)
	}
	query := "SELECT id, code, name, branch, semester FROM courses"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY code ASC"

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID loads a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, "SELECT id, code, name, branch, semester FROM courses WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByCode loads a course by its code.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, "SELECT id, code, name, branch, semester FROM courses WHERE UPPER(code) = UPPER($1)", strings.TrimSpace(code)); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create stores a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	const query = `INSERT INTO courses (id, code, name, branch, semester) VALUES (:id, :code, :name, :branch, :semester)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
