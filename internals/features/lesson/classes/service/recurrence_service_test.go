// file: internals/features/lesson/classes/service/recurrence_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesprivat_backend/internals/features/lesson/classes/model"
)

func basePlan() model.RecurrencePlanModel {
	// Senin 2 Maret 2026
	return model.RecurrencePlanModel{
		RecurrencePlanFrequency:       "weekly",
		RecurrencePlanIntervalWeeks:   1,
		RecurrencePlanDaysOfWeek:      pq.Int64Array{1, 3}, // Senin & Rabu
		RecurrencePlanStartTimeOfDay:  "09:00",
		RecurrencePlanDurationMinutes: 60,
		RecurrencePlanStartDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpandOccurrences_WeeklyTwoDays(t *testing.T) {
	plan := basePlan()
	until := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	plan.RecurrencePlanUntilDate = &until
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	occ, err := ExpandOccurrences(plan, now)
	require.NoError(t, err)

	// 2 minggu × (Senin, Rabu) = 4 occurrence
	require.Len(t, occ, 4)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), occ[0])
	assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), occ[1])
	assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), occ[2])
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), occ[3])
}

func TestExpandOccurrences_BiWeekly(t *testing.T) {
	plan := basePlan()
	plan.RecurrencePlanIntervalWeeks = 2
	plan.RecurrencePlanDaysOfWeek = pq.Int64Array{1}
	until := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	plan.RecurrencePlanUntilDate = &until
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	occ, err := ExpandOccurrences(plan, now)
	require.NoError(t, err)

	// Senin minggu ke-0, ke-2, ke-4: 2, 16, 30 Maret
	require.Len(t, occ, 3)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), occ[0])
	assert.Equal(t, time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC), occ[1])
	assert.Equal(t, time.Date(2026, 3, 30, 9, 0, 0, 0, time.UTC), occ[2])
}

func TestExpandOccurrences_MaxOccurrences(t *testing.T) {
	plan := basePlan()
	maxOcc := 3
	plan.RecurrencePlanMaxOccurrences = &maxOcc
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	occ, err := ExpandOccurrences(plan, now)
	require.NoError(t, err)
	assert.Len(t, occ, 3)
}

func TestExpandOccurrences_SkipsPast(t *testing.T) {
	plan := basePlan()
	until := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	plan.RecurrencePlanUntilDate = &until
	// now setelah occurrence pertama
	now := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	occ, err := ExpandOccurrences(plan, now)
	require.NoError(t, err)

	require.NotEmpty(t, occ)
	assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), occ[0])
	for _, o := range occ {
		assert.False(t, o.Before(now))
	}
}

func TestExpandOccurrences_InvalidTimeOfDay(t *testing.T) {
	plan := basePlan()
	plan.RecurrencePlanStartTimeOfDay = "9 pagi"

	_, err := ExpandOccurrences(plan, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "start_time_of_day", vErr.Field)
}

func TestExpandOccurrences_UntilBeforeStart(t *testing.T) {
	plan := basePlan()
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	plan.RecurrencePlanUntilDate = &until

	_, err := ExpandOccurrences(plan, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestExpandOccurrences_ZeroIntervalDefaultsToWeekly(t *testing.T) {
	plan := basePlan()
	plan.RecurrencePlanIntervalWeeks = 0
	plan.RecurrencePlanDaysOfWeek = pq.Int64Array{1}
	until := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	plan.RecurrencePlanUntilDate = &until

	occ, err := ExpandOccurrences(plan, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, occ, 2)
}
