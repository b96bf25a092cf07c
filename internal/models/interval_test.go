package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(start, end string) TimeInterval {
	return TimeInterval{Start: MustTimeOfDay(start), End: MustTimeOfDay(end)}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay(" 09:30 ")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got.String())

	got, err = ParseTimeOfDay("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(secondsPerDay-1), got)

	for _, raw := range []string{"", "9:30", "24:00", "10:60", "10:00:61", "aa:bb", "10:00:00:00"} {
		_, err := ParseTimeOfDay(raw)
		assert.Error(t, err, raw)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan([]byte("14:05:00.000000")))
	assert.Equal(t, "14:05:00", tod.String())

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 8, 15, 30, 0, time.UTC)))
	assert.Equal(t, "08:15:30", tod.String())

	assert.Error(t, tod.Scan(42))
}

func TestParseTimeSlot(t *testing.T) {
	got, err := ParseTimeSlot("10:00:00 - 11:00:00")
	require.NoError(t, err)
	assert.Equal(t, slot("10:00", "11:00"), got)
	assert.Equal(t, time.Hour, got.Duration())

	_, err = ParseTimeSlot("10:00:00")
	assert.Error(t, err)
	_, err = ParseTimeSlot("11:00:00 - 10:00:00")
	assert.Error(t, err)
	_, err = ParseTimeSlot("10:00:00 - 10:00:00")
	assert.Error(t, err)
	_, err = ParseTimeSlot("ten - eleven")
	assert.Error(t, err)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	base := slot("10:00", "11:00")

	assert.True(t, Overlaps(base, base))
	assert.True(t, Overlaps(base, slot("10:30", "11:30")))
	assert.True(t, Overlaps(base, slot("09:00", "12:00")))
	assert.True(t, Overlaps(base, slot("10:15", "10:45")))
	assert.False(t, Overlaps(base, slot("11:00", "12:00")))
	assert.False(t, Overlaps(base, slot("09:00", "10:00")))
	assert.Equal(t, Overlaps(base, slot("10:30", "11:30")), Overlaps(slot("10:30", "11:30"), base))
}

func TestSubtractDropsPartiallyBusySlots(t *testing.T) {
	template := []TimeInterval{slot("09:00", "10:00"), slot("10:00", "11:00"), slot("11:00", "12:00"), slot("12:00", "13:00")}
	busy := []TimeInterval{slot("10:30", "10:45"), slot("12:00", "13:00")}

	assert.Equal(t, []TimeInterval{slot("09:00", "10:00"), slot("11:00", "12:00")}, Subtract(template, busy))
	assert.Equal(t, template, Subtract(template, nil))
	assert.Empty(t, Subtract(template, []TimeInterval{slot("08:00", "18:00")}))
}

func TestNewWorkingHoursTemplate(t *testing.T) {
	slots, err := NewWorkingHoursTemplate(MustTimeOfDay("09:00"), MustTimeOfDay("12:30"), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{slot("09:00", "10:00"), slot("10:00", "11:00"), slot("11:00", "12:00")}, slots)

	_, err = NewWorkingHoursTemplate(MustTimeOfDay("09:00"), MustTimeOfDay("17:00"), time.Second)
	assert.Error(t, err)
	_, err = NewWorkingHoursTemplate(MustTimeOfDay("17:00"), MustTimeOfDay("09:00"), time.Hour)
	assert.Error(t, err)
	_, err = NewWorkingHoursTemplate(MustTimeOfDay("09:00"), MustTimeOfDay("09:30"), time.Hour)
	assert.Error(t, err)
}
