package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

func TestHolidayRepositoryListRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	from := models.MustDate("2024-03-01")
	to := models.MustDate("2024-03-31")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, holiday_date, description, created_at FROM holidays WHERE holiday_date >= $1 AND holiday_date <= $2 ORDER BY holiday_date ASC")).
		WithArgs("2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"id", "holiday_date", "description", "created_at"}).
			AddRow("hol-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), "Founders Day", time.Now()))

	items, err := repo.List(context.Background(), models.HolidayFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024-03-11", items[0].HolidayDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("INSERT INTO holidays").
		WithArgs(sqlmock.AnyArg(), "2024-03-11", "Founders Day", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	holiday := &models.Holiday{HolidayDate: models.MustDate("2024-03-11"), Description: "Founders Day"}
	require.NoError(t, repo.Create(context.Background(), holiday))
	assert.NotEmpty(t, holiday.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
