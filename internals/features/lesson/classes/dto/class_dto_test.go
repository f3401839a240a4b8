// file: internals/features/lesson/classes/dto/class_dto_test.go
package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesprivat_backend/internals/constants"
)

func TestCreateClassRequest_ToInput(t *testing.T) {
	studentID := uuid.New()
	req := CreateClassRequest{
		TutorID:         uuid.New(),
		Kind:            constants.ClassKindOneToOne,
		StudentID:       &studentID,
		Date:            "2026-03-02",
		StartTime:       "09:30",
		DurationMinutes: 60,
	}

	in, err := req.ToInput()
	require.NoError(t, err)

	assert.Equal(t, req.TutorID, in.TutorID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), in.Date)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), in.StartsAt)
	assert.Equal(t, 60, in.DurationMinutes)
}

func TestCreateClassRequest_ToInput_BadClock(t *testing.T) {
	req := CreateClassRequest{
		TutorID:         uuid.New(),
		Kind:            constants.ClassKindOneToOne,
		Date:            "2026-03-02",
		StartTime:       "setengah sepuluh",
		DurationMinutes: 60,
	}

	_, err := req.ToInput()
	assert.Error(t, err)
}

func TestRescheduleClassRequest_Parse(t *testing.T) {
	req := RescheduleClassRequest{Date: "2026-03-05", StartTime: "14:00"}

	date, startsAt, err := req.Parse()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC), startsAt)
}
