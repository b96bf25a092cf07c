package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

func TestHolidayServiceCreateAndList(t *testing.T) {
	repo := &memHolidays{}
	svc := NewHolidayService(repo, nil, nil)
	ctx := context.Background()

	holiday, err := svc.Create(ctx, dto.CreateHolidayRequest{Date: "2024-03-18", Description: " Founders Day "})
	require.NoError(t, err)
	assert.Equal(t, "Founders Day", holiday.Description)
	_, err = svc.Create(ctx, dto.CreateHolidayRequest{Date: "2024-05-01", Description: "Labour Day"})
	require.NoError(t, err)

	items, err := svc.List(ctx, dto.HolidayListRequest{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024-03-18", items[0].HolidayDate.String())

	_, err = svc.List(ctx, dto.HolidayListRequest{From: "2024-04-01", To: "2024-03-01"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestHolidayServiceDuplicateDate(t *testing.T) {
	repo := &memHolidays{createErr: fmt.Errorf("create holiday: %w", &pq.Error{Code: "23505"})}
	svc := NewHolidayService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateHolidayRequest{Date: "2024-03-18", Description: "Again"})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestHolidayServiceValidationAndDelete(t *testing.T) {
	repo := &memHolidays{items: []models.Holiday{{ID: "hol-1", HolidayDate: models.MustDate("2024-03-18")}}}
	svc := NewHolidayService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateHolidayRequest{Date: "18-03-2024", Description: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(ctx, "hol-1"))
	err = svc.Delete(ctx, "hol-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogService(t *testing.T) {
	halls := &memHalls{}
	courses := &memCourses{}
	svc := NewCatalogService(halls, courses, nil, nil)
	ctx := context.Background()

	hall, err := svc.CreateHall(ctx, dto.CreateHallRequest{Name: " LH-1 "})
	require.NoError(t, err)
	assert.Equal(t, "LH-1", hall.Name)

	course, err := svc.CreateCourse(ctx, dto.CreateCourseRequest{Code: "cs101", Name: "Intro", Branch: "CSE", Semester: 3})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)

	list, err := svc.ListCourses(ctx, "CSE", 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.CreateCourse(ctx, dto.CreateCourseRequest{Code: "cs102", Name: "X", Branch: "CSE", Semester: 0})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	halls.err = &pq.Error{Code: "23505"}
	_, err = svc.CreateHall(ctx, dto.CreateHallRequest{Name: "LH-1"})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
