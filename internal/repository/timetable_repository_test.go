package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var sessionColumns = []string{"id", "day_of_week", "course_id", "start_time", "end_time", "lecture_hall_id", "professor_id", "type", "group_name", "course_code", "course_name", "branch", "semester", "hall_name"}

func TestTimetableRepositoryListByProfessorDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows(sessionColumns).
		AddRow("s1", "monday", "c1", "10:00:00", "11:00:00", "h1", "p1", "class", "A", "CS101", "Intro", "CSE", 3, "H1")
	mock.ExpectQuery(`FROM time_table t .* WHERE t.day_of_week = \$1 AND t.professor_id = \$2 ORDER BY`).
		WithArgs("monday", "p1").
		WillReturnRows(rows)

	sessions, err := repo.ListByProfessorDay(context.Background(), "p1", models.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.MustTimeOfDay("10:00:00"), sessions[0].StartTime)
	assert.Equal(t, models.SessionTypeClass, sessions[0].Type)
	assert.Equal(t, "H1", sessions[0].HallName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListByCourseDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(`WHERE t.day_of_week = \$1 AND t.course_id = \$2 ORDER BY`).
		WithArgs("monday", "c1").
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("s1", "monday", "c1", "10:00:00", "11:00:00", "h1", "p1", "class", "A", "CS101", "Intro", "CSE", 3, "H1"))

	sessions, err := repo.ListByCourseDay(context.Background(), "c1", models.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListOverlappingUsesStrictBounds(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(`WHERE t.day_of_week = \$1 AND t.start_time < \$2 AND t.end_time > \$3`).
		WithArgs("wednesday", "11:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	slot := models.TimeInterval{Start: models.MustTimeOfDay("10:00"), End: models.MustTimeOfDay("11:00")}
	sessions, err := repo.ListOverlapping(context.Background(), models.Wednesday, slot)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListWithFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(`WHERE c.branch = \$1 AND c.semester = \$2 ORDER BY array_position\(ARRAY\['monday','tuesday',.*'sunday'\]::text\[\], t.day_of_week::text\) ASC, t.start_time ASC, t.id ASC LIMIT 50 OFFSET 0`).
		WithArgs("CSE", 3).
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("s1", "monday", "c1", "10:00:00", "11:00:00", "h1", "p1", "lab", "L1", "CS101", "Intro", "CSE", 3, "H1"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM time_table t JOIN courses c ON c.id = t.course_id WHERE c.branch = \$1 AND c.semester = \$2`).
		WithArgs("CSE", 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sessions, total, err := repo.List(context.Background(), models.SessionFilter{Branch: "CSE", Semester: 3})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryBulkCreateRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO time_table").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO time_table").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	sessions := []models.RecurringSession{
		{DayOfWeek: models.Monday, CourseID: "c1", StartTime: models.MustTimeOfDay("09:00"), EndTime: models.MustTimeOfDay("10:00"), LectureHallID: "h1", ProfessorID: "p1", Type: models.SessionTypeClass},
		{DayOfWeek: models.Tuesday, CourseID: "c1", StartTime: models.MustTimeOfDay("09:00"), EndTime: models.MustTimeOfDay("10:00"), LectureHallID: "h1", ProfessorID: "p1", Type: models.SessionTypeClass},
	}
	err := repo.BulkCreate(context.Background(), sessions)
	require.Error(t, err)
	assert.NotEmpty(t, sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec("DELETE FROM time_table WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
