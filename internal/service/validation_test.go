package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
)

func TestNewValidatorRegistersTimetableTags(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	req := dto.CreateSessionRequest{
		DayOfWeek:     "Mon",
		CourseID:      courseC1,
		StartTime:     "09:00",
		EndTime:       "10:00:00",
		LectureHallID: hallH1,
		ProfessorID:   profP,
		Type:          "lab",
	}
	assert.NoError(t, v.Struct(req))

	req.DayOfWeek = "funday"
	assert.Error(t, v.Struct(req))
}

func TestEnsureValidatorSharesDefault(t *testing.T) {
	first := ensureValidator(nil)
	assert.Same(t, first, ensureValidator(nil))

	own, err := NewValidator()
	require.NoError(t, err)
	assert.Same(t, own, ensureValidator(own))
}
