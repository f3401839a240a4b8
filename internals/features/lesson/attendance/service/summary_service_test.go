// file: internals/features/lesson/attendance/service/summary_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lesprivat_backend/internals/features/lesson/attendance/model"
)

func TestSummarize_EmptySet(t *testing.T) {
	out := Summarize(nil)

	assert.Equal(t, 0, out.TotalClasses)
	assert.Equal(t, float64(0), out.AttendancePercentage)
	assert.Equal(t, float64(0), out.AveragePunctualityScore)
	assert.Equal(t, float64(0), out.TotalPenaltyAmount)
}

func TestSummarize_MixedRecords(t *testing.T) {
	records := []model.AttendanceRecordModel{
		{
			AttendanceRecordTutorPresent:         true,
			AttendanceRecordTutorLateMinutes:     5,
			AttendanceRecordLateArrivalPenalty:   30,
			AttendanceRecordPenaltyAmount:        30,
			AttendanceRecordPunctualityScore:     90,
			AttendanceRecordCompletionPercentage: 100,
			AttendanceRecordAutoMarked:           true,
		},
		{
			AttendanceRecordTutorPresent:           true,
			AttendanceRecordTutorEarlyLeaveMinutes: 20,
			AttendanceRecordEarlyCompletionPenalty: 100,
			AttendanceRecordPenaltyAmount:          100,
			AttendanceRecordPunctualityScore:       40,
			AttendanceRecordCompletionPercentage:   66.67,
			AttendanceRecordAutoMarked:             true,
		},
		{
			AttendanceRecordTutorPresent:   false,
			AttendanceRecordAbsencePenalty: 500,
			AttendanceRecordPenaltyAmount:  500,
		},
	}

	out := Summarize(records)

	assert.Equal(t, 3, out.TotalClasses)
	assert.Equal(t, 2, out.PresentCount)
	assert.Equal(t, 1, out.AbsentCount)
	assert.Equal(t, 1, out.LateCount)
	assert.Equal(t, 5, out.TotalLateMinutes)
	assert.Equal(t, float64(30), out.TotalLateArrivalPenalty)
	assert.Equal(t, float64(100), out.TotalEarlyCompletionPenalty)
	assert.Equal(t, float64(500), out.TotalAbsencePenalty)
	assert.Equal(t, float64(630), out.TotalPenaltyAmount)
	assert.Equal(t, 2, out.AutoMarkedCount)
	assert.InDelta(t, 66.67, out.AttendancePercentage, 0.01)
	assert.InDelta(t, 43.33, out.AveragePunctualityScore, 0.01)
	assert.InDelta(t, 55.56, out.AverageCompletionPercent, 0.01)
}
