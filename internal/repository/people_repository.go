package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

// ProfessorRepository reads professor records.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a professor repository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// FindByID loads a professor by id.
func (r *ProfessorRepository) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, "SELECT id, name, email, department FROM professors WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// StudentRepository reads student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID loads a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	const query = `SELECT id, name, email, branch, semester, class_group, tutorial_group, lab_group FROM students WHERE id = $1`
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}
