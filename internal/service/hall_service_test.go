package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

func newHallServiceFixture() (*HallService, *memReschedules) {
	sessions := &memSessions{items: []models.RecurringSession{
		{ID: "s1", DayOfWeek: models.Monday, StartTime: tod("09:00"), EndTime: tod("10:00"), LectureHallID: hallH1, ProfessorID: profP},
	}}
	reschedules := &memReschedules{}
	halls := &memHalls{items: []models.LectureHall{{ID: hallH2, Name: "H2"}, {ID: hallH1, Name: "H1"}}}
	return NewHallService(sessions, reschedules, halls, nil, nil, nil), reschedules
}

func TestHallServiceAvailableHalls(t *testing.T) {
	svc, _ := newHallServiceFixture()
	ctx := context.Background()

	resp, err := svc.AvailableHalls(ctx, dto.AvailableHallsRequest{Date: "2024-03-11", TimeSlot: "09:00:00 - 10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H2"}, resp.Available)

	resp, err = svc.AvailableHalls(ctx, dto.AvailableHallsRequest{Date: "2024-03-11", TimeSlot: "11:00:00 - 12:00:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H1", "H2"}, resp.Available)
}

func TestHallServiceOverlapIsHalfOpen(t *testing.T) {
	svc, _ := newHallServiceFixture()
	ctx := context.Background()

	cases := map[string][]string{
		"08:30:00 - 09:30:00": {"H2"},
		"09:30:00 - 10:30:00": {"H2"},
		"09:15:00 - 09:45:00": {"H2"},
		"08:00:00 - 11:00:00": {"H2"},
		"10:00:00 - 11:00:00": {"H1", "H2"},
		"08:00:00 - 09:00:00": {"H1", "H2"},
	}
	for slot, want := range cases {
		resp, err := svc.AvailableHalls(ctx, dto.AvailableHallsRequest{Date: "2024-03-11", TimeSlot: slot})
		require.NoError(t, err, slot)
		assert.Equal(t, want, resp.Available, slot)
	}

	resp, err := svc.AvailableHalls(ctx, dto.AvailableHallsRequest{Date: "2024-03-12", TimeSlot: "09:00:00 - 10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H1", "H2"}, resp.Available)
}

func TestHallServiceReschedulesBlockTheirDate(t *testing.T) {
	svc, reschedules := newHallServiceFixture()
	reschedules.items = append(reschedules.items, models.Reschedule{
		ID: "r1", LectureHallID: hallH2, RescheduledDate: models.MustDate("2024-03-13"), NewStartTime: tod("14:00"), NewEndTime: tod("15:00"),
	})

	resp, err := svc.AvailableHalls(context.Background(), dto.AvailableHallsRequest{Date: "2024-03-13", TimeSlot: "14:30:00 - 15:30:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H1"}, resp.Available)
}

func TestHallServiceMalformedSlot(t *testing.T) {
	svc, _ := newHallServiceFixture()

	for _, slot := range []string{"09:00:00", "09:00 - ", "10:00:00 - 09:00:00", "25:00:00 - 26:00:00"} {
		_, err := svc.AvailableHalls(context.Background(), dto.AvailableHallsRequest{Date: "2024-03-11", TimeSlot: slot})
		require.Error(t, err, slot)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, slot)
	}
}
