// file: internals/features/lesson/attendance/service/penalty_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/features/lesson/attendance/model"
)

func testPenaltyConfig() configs.PenaltyConfig {
	return configs.PenaltyConfig{
		GraceMinutes:        2,
		LateRatePerMinute:   10,
		EarlyRatePerMinute:  5,
		EarlyThresholdRatio: 0.9,
		AbsenceFlatPenalty:  500,
	}
}

func newTestRecord(schedStart time.Time, durationMin int) *model.AttendanceRecordModel {
	return &model.AttendanceRecordModel{
		AttendanceRecordID:                uuid.New(),
		AttendanceRecordClassID:           uuid.New(),
		AttendanceRecordTutorID:           uuid.New(),
		AttendanceRecordStudentID:         uuid.New(),
		AttendanceRecordScheduledStartsAt: schedStart,
		AttendanceRecordScheduledEndsAt:   schedStart.Add(time.Duration(durationMin) * time.Minute),
		AttendanceRecordPunctualityScore:  100,
	}
}

func TestMarkTutorAttendance_OnTimeWithinGrace(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	res := svc.MarkTutorAttendance(rec, sched.Add(2*time.Minute), 60, TriggerAuto)

	assert.True(t, res.OnTime)
	assert.Equal(t, 2, res.LateMinutes)
	assert.Equal(t, float64(0), res.PenaltyAmount)
	assert.True(t, rec.AttendanceRecordTutorPresent)
	assert.True(t, rec.AttendanceRecordAutoMarked)
	assert.False(t, rec.AttendanceRecordPenaltyApplied)
	assert.Empty(t, rec.AttendanceRecordPenaltyReasons)
}

func TestMarkTutorAttendance_LateFiveMinutes(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	res := svc.MarkTutorAttendance(rec, sched.Add(5*time.Minute), 60, TriggerAuto)

	assert.False(t, res.OnTime)
	assert.Equal(t, 5, res.LateMinutes)
	// 5 menit telat, grace 2 → 3 menit kena tarif 10
	assert.Equal(t, float64(30), res.PenaltyAmount)
	assert.Equal(t, float64(30), rec.AttendanceRecordLateArrivalPenalty)
	assert.Contains(t, rec.AttendanceRecordPenaltyReasons, "Late arrival: 5 minutes")
	assert.True(t, rec.AttendanceRecordPenaltyApplied)
	// punctuality: 100 - 5*2 = 90
	assert.Equal(t, float64(90), rec.AttendanceRecordPunctualityScore)
}

func TestMarkTutorAttendance_EarlyJoinClampedToZero(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	res := svc.MarkTutorAttendance(rec, sched.Add(-10*time.Minute), 60, TriggerManual)

	assert.True(t, res.OnTime)
	assert.Equal(t, 0, res.LateMinutes)
	assert.Equal(t, float64(0), res.PenaltyAmount)
	assert.False(t, rec.AttendanceRecordAutoMarked)
}

func TestMarkTutorAttendance_Idempotent(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	join := sched.Add(5 * time.Minute)

	first := svc.MarkTutorAttendance(rec, join, 60, TriggerAuto)
	second := svc.MarkTutorAttendance(rec, join, 60, TriggerAuto)

	// penalti tidak boleh dobel saat dipanggil ulang dengan input sama
	assert.Equal(t, first.PenaltyAmount, second.PenaltyAmount)
	assert.Equal(t, float64(30), rec.AttendanceRecordPenaltyAmount)
	assert.Len(t, rec.AttendanceRecordPenaltyReasons, 1)
}

func TestMarkCompletion_FullDuration(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	svc.MarkTutorAttendance(rec, sched, 60, TriggerAuto)

	res := svc.MarkCompletion(rec, sched.Add(60*time.Minute), nil, TriggerAuto)

	assert.Equal(t, 60, res.ActualDurationMinutes)
	assert.Equal(t, float64(100), res.CompletionPercentage)
	assert.Equal(t, float64(0), res.EarlyPenalty)
	assert.Equal(t, float64(0), res.TotalPenalty)
}

func TestMarkCompletion_EarlyFortyOfSixty(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	svc.MarkTutorAttendance(rec, sched, 60, TriggerAuto)

	res := svc.MarkCompletion(rec, sched.Add(40*time.Minute), nil, TriggerAuto)

	// 40/60 = 66.7% < 90% → 20 menit kurang × tarif 5 = 100
	assert.Equal(t, 40, res.ActualDurationMinutes)
	assert.InDelta(t, 66.67, res.CompletionPercentage, 0.01)
	assert.Equal(t, float64(100), res.EarlyPenalty)
	assert.Equal(t, float64(100), res.TotalPenalty)
	assert.Contains(t, rec.AttendanceRecordPenaltyReasons, "Early completion: 20 minutes")
}

func TestMarkCompletion_JustAboveThresholdNoPenalty(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	svc.MarkTutorAttendance(rec, sched, 60, TriggerAuto)

	// 55/60 = 91.7% ≥ 90% → tanpa penalti
	res := svc.MarkCompletion(rec, sched.Add(55*time.Minute), nil, TriggerAuto)

	assert.Equal(t, float64(0), res.EarlyPenalty)
	assert.False(t, rec.AttendanceRecordPenaltyApplied)
}

func TestMarkCompletion_OvertimeCappedAtHundred(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	svc.MarkTutorAttendance(rec, sched, 60, TriggerAuto)

	res := svc.MarkCompletion(rec, sched.Add(75*time.Minute), nil, TriggerAuto)

	assert.Equal(t, 75, res.ActualDurationMinutes)
	assert.Equal(t, float64(100), res.CompletionPercentage)
	assert.Equal(t, float64(0), res.EarlyPenalty)
}

func TestMarkCompletion_StudentInputDelegated(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	join := sched.Add(3 * time.Minute)
	svc.MarkTutorAttendance(rec, sched, 60, TriggerAuto)

	rating := 4
	svc.MarkCompletion(rec, sched.Add(60*time.Minute), []StudentAttendanceInput{
		{
			StudentID:        rec.AttendanceRecordStudentID,
			Present:          true,
			JoinAt:           &join,
			EngagementRating: &rating,
		},
		{StudentID: uuid.New(), Present: false}, // record lain, harus diabaikan
	}, TriggerAuto)

	assert.True(t, rec.AttendanceRecordStudentPresent)
	assert.Equal(t, 3, rec.AttendanceRecordStudentLateMinutes)
	require.NotNil(t, rec.AttendanceRecordEngagementRating)
	assert.Equal(t, 4, *rec.AttendanceRecordEngagementRating)
	// keterlambatan siswa tidak menambah penalti uang
	assert.Equal(t, float64(0), rec.AttendanceRecordPenaltyAmount)
	// tapi menurunkan skor punctuality: 100 - 3*1 = 97
	assert.Equal(t, float64(97), rec.AttendanceRecordPunctualityScore)
}

func TestMarkStudentAttendance_JoinDefaultsToTutorJoin(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	svc.MarkTutorAttendance(rec, sched.Add(4*time.Minute), 60, TriggerAuto)

	svc.MarkStudentAttendance(rec, StudentAttendanceInput{
		StudentID: rec.AttendanceRecordStudentID,
		Present:   true,
	}, TriggerAuto)

	require.NotNil(t, rec.AttendanceRecordStudentJoinAt)
	assert.Equal(t, rec.AttendanceRecordTutorJoinAt, rec.AttendanceRecordStudentJoinAt)
	assert.Equal(t, 4, rec.AttendanceRecordStudentLateMinutes)
}

func TestMarkStudentAttendance_Absent(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)
	reason := "sakit"

	svc.MarkStudentAttendance(rec, StudentAttendanceInput{
		StudentID:     rec.AttendanceRecordStudentID,
		Present:       false,
		AbsenceReason: &reason,
	}, TriggerManual)

	assert.False(t, rec.AttendanceRecordStudentPresent)
	assert.Nil(t, rec.AttendanceRecordStudentJoinAt)
	assert.Equal(t, 0, rec.AttendanceRecordStudentLateMinutes)
	require.NotNil(t, rec.AttendanceRecordAbsenceReason)
	assert.Equal(t, "sakit", *rec.AttendanceRecordAbsenceReason)
}

func TestMarkTutorAbsence_FlatPenalty(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	svc.MarkTutorAbsence(rec, "tidak ada kabar")

	assert.False(t, rec.AttendanceRecordTutorPresent)
	assert.Nil(t, rec.AttendanceRecordTutorJoinAt)
	assert.Equal(t, float64(500), rec.AttendanceRecordAbsencePenalty)
	assert.Equal(t, float64(500), rec.AttendanceRecordPenaltyAmount)
	assert.Contains(t, rec.AttendanceRecordPenaltyReasons, "Absent from class")
	assert.True(t, rec.AttendanceRecordPenaltyApplied)
}

func TestMarkTutorAttendance_CorrectionClearsLatePenalty(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	// auto-mark telat 5 menit, lalu admin koreksi jadi tepat waktu
	first := svc.MarkTutorAttendance(rec, sched.Add(5*time.Minute), 60, TriggerAuto)
	require.Equal(t, float64(30), first.PenaltyAmount)

	res := svc.MarkTutorAttendance(rec, sched, 60, TriggerManual)

	assert.True(t, res.OnTime)
	assert.Equal(t, 0, rec.AttendanceRecordTutorLateMinutes)
	assert.Equal(t, float64(0), rec.AttendanceRecordLateArrivalPenalty)
	assert.Equal(t, float64(0), rec.AttendanceRecordPenaltyAmount)
	assert.Empty(t, rec.AttendanceRecordPenaltyReasons)
	assert.False(t, rec.AttendanceRecordPenaltyApplied)
	assert.Equal(t, float64(100), rec.AttendanceRecordPunctualityScore)
}

func TestMarkTutorAttendance_CorrectionUpdatesLateReason(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	svc.MarkTutorAttendance(rec, sched.Add(5*time.Minute), 60, TriggerAuto)
	svc.MarkTutorAttendance(rec, sched.Add(3*time.Minute), 60, TriggerManual)

	assert.Equal(t, float64(10), rec.AttendanceRecordPenaltyAmount)
	require.Len(t, rec.AttendanceRecordPenaltyReasons, 1)
	assert.Equal(t, "Late arrival: 3 minutes", rec.AttendanceRecordPenaltyReasons[0])
}

func TestMarkTutorAbsence_ReplacesLatePenalty(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	// auto-mark telat, ternyata tutor memang tidak hadir sama sekali
	svc.MarkTutorAttendance(rec, sched.Add(5*time.Minute), 60, TriggerAuto)
	svc.MarkTutorAbsence(rec, "tidak hadir")

	assert.Equal(t, float64(0), rec.AttendanceRecordLateArrivalPenalty)
	assert.Equal(t, 0, rec.AttendanceRecordTutorLateMinutes)
	assert.Equal(t, float64(500), rec.AttendanceRecordPenaltyAmount)
	require.Len(t, rec.AttendanceRecordPenaltyReasons, 1)
	assert.Equal(t, "Absent from class", rec.AttendanceRecordPenaltyReasons[0])
}

func TestMarkTutorAttendance_CorrectionClearsAbsence(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())
	sched := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := newTestRecord(sched, 60)

	svc.MarkTutorAbsence(rec, "tidak hadir")
	res := svc.MarkTutorAttendance(rec, sched, 60, TriggerManual)

	assert.True(t, res.OnTime)
	assert.True(t, rec.AttendanceRecordTutorPresent)
	assert.Nil(t, rec.AttendanceRecordAbsenceReason)
	assert.Equal(t, float64(0), rec.AttendanceRecordAbsencePenalty)
	assert.Equal(t, float64(0), rec.AttendanceRecordPenaltyAmount)
	assert.Empty(t, rec.AttendanceRecordPenaltyReasons)
	assert.False(t, rec.AttendanceRecordPenaltyApplied)
}

func TestPunctualityScore(t *testing.T) {
	svc := NewPenaltyService(testPenaltyConfig())

	tests := []struct {
		name       string
		tutorLate  int
		studLate   int
		earlyLeave int
		want       float64
	}{
		{"perfect", 0, 0, 0, 100},
		{"tutor late 5", 5, 0, 0, 90},
		{"student late 5", 0, 5, 0, 95},
		{"early leave 10", 0, 0, 10, 70},
		{"tutor late capped at 50", 30, 0, 0, 50},
		{"student late capped at 25", 0, 40, 0, 75},
		{"early leave capped at 60", 0, 0, 30, 40},
		{"floor at zero", 30, 40, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PunctualityScore(tt.tutorLate, tt.studLate, tt.earlyLeave))
		})
	}
}
