// file: internals/features/lesson/attendance/model/attendance_record_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputePenaltyAmount(t *testing.T) {
	m := AttendanceRecordModel{
		AttendanceRecordLateArrivalPenalty:     30,
		AttendanceRecordEarlyCompletionPenalty: 100,
		AttendanceRecordAbsencePenalty:         500,
	}

	m.RecomputePenaltyAmount()

	assert.Equal(t, float64(630), m.AttendanceRecordPenaltyAmount)
}

func TestBeforeSave_EnforcesInvariants(t *testing.T) {
	t.Run("total diturunkan ulang dari komponen", func(t *testing.T) {
		m := AttendanceRecordModel{
			AttendanceRecordLateArrivalPenalty: 30,
			AttendanceRecordPenaltyAmount:      9999, // nilai liar, harus dikoreksi
		}
		require.NoError(t, m.BeforeSave(nil))
		assert.Equal(t, float64(30), m.AttendanceRecordPenaltyAmount)
	})

	t.Run("persentase di-clamp ke [0,100]", func(t *testing.T) {
		m := AttendanceRecordModel{AttendanceRecordCompletionPercentage: 130}
		require.NoError(t, m.BeforeSave(nil))
		assert.Equal(t, float64(100), m.AttendanceRecordCompletionPercentage)

		m.AttendanceRecordCompletionPercentage = -5
		require.NoError(t, m.BeforeSave(nil))
		assert.Equal(t, float64(0), m.AttendanceRecordCompletionPercentage)
	})
}
