// file: internals/features/lesson/attendance/service/penalty_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/features/lesson/attendance/model"
)

// MarkTrigger membedakan jalur auto (event lifecycle kelas) dan manual
// (input tutor/admin). Perhitungan menit & penalti SAMA untuk keduanya;
// trigger hanya menentukan flag provenance auto_marked.
type MarkTrigger string

const (
	TriggerAuto   MarkTrigger = "auto"
	TriggerManual MarkTrigger = "manual"
)

// PenaltyService menghitung keterlambatan, penalti, dan skor punctuality.
// Semua tarif datang dari PenaltyConfig, tidak ada literal tersebar.
type PenaltyService struct {
	Cfg configs.PenaltyConfig
}

func NewPenaltyService(cfg configs.PenaltyConfig) *PenaltyService {
	return &PenaltyService{Cfg: cfg}
}

type TutorMarkResult struct {
	LateMinutes   int     `json:"late_minutes"`
	PenaltyAmount float64 `json:"penalty_amount"`
	OnTime        bool    `json:"on_time"`
}

type StudentAttendanceInput struct {
	StudentID        uuid.UUID  `json:"student_id"`
	Present          bool       `json:"present"`
	JoinAt           *time.Time `json:"join_at,omitempty"`
	LeaveAt          *time.Time `json:"leave_at,omitempty"`
	AbsenceReason    *string    `json:"absence_reason,omitempty"`
	EngagementRating *int       `json:"engagement_rating,omitempty"`
}

type CompletionResult struct {
	ActualDurationMinutes   int     `json:"actual_duration_minutes"`
	ExpectedDurationMinutes int     `json:"expected_duration_minutes"`
	CompletionPercentage    float64 `json:"completion_percentage"`
	EarlyPenalty            float64 `json:"early_penalty"`
	TotalPenalty            float64 `json:"total_penalty"`
}

// minutesBetween: selisih menit utuh, negatif bila to sebelum from.
func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}

// MarkTutorAttendance mencatat kehadiran tutor + penalti keterlambatan.
// Untuk trigger auto, dipanggil saat start kelas dengan join = waktu start.
// Pemanggilan ulang adalah KOREKSI: komponen turunan dari mark sebelumnya
// (late arrival, absence) dibuang dulu supaya tidak ada penalti basi.
func (s *PenaltyService) MarkTutorAttendance(rec *model.AttendanceRecordModel, joinTime time.Time, scheduledDurationMinutes int, trigger MarkTrigger) TutorMarkResult {
	rec.AttendanceRecordLateArrivalPenalty = 0
	rec.AttendanceRecordPenaltyReasons = dropReasonPrefix(rec.AttendanceRecordPenaltyReasons, "Late arrival:")
	if rec.AttendanceRecordAbsencePenalty > 0 {
		// tutor ternyata hadir: batalkan mark absen sebelumnya
		rec.AttendanceRecordAbsencePenalty = 0
		rec.AttendanceRecordAbsenceReason = nil
		rec.AttendanceRecordPenaltyReasons = dropReasonPrefix(rec.AttendanceRecordPenaltyReasons, "Absent from class")
	}

	rec.AttendanceRecordTutorPresent = true
	rec.AttendanceRecordTutorJoinAt = &joinTime
	rec.AttendanceRecordExpectedDurationMinutes = scheduledDurationMinutes
	if trigger == TriggerAuto {
		rec.AttendanceRecordAutoMarked = true
		t := joinTime
		rec.AttendanceRecordAutoMarkedAt = &t
	}

	lateMin := minutesBetween(rec.AttendanceRecordScheduledStartsAt, joinTime)
	if lateMin < 0 {
		lateMin = 0
	}
	rec.AttendanceRecordTutorLateMinutes = lateMin

	if lateMin > s.Cfg.GraceMinutes {
		rec.AttendanceRecordLateArrivalPenalty = float64(lateMin-s.Cfg.GraceMinutes) * s.Cfg.LateRatePerMinute
		rec.AttendanceRecordPenaltyReasons = appendReason(rec.AttendanceRecordPenaltyReasons,
			fmt.Sprintf("Late arrival: %d minutes", lateMin))
	}

	rec.RecomputePenaltyAmount()
	rec.AttendanceRecordPenaltyApplied = rec.AttendanceRecordPenaltyAmount > 0
	s.recomputePunctualityScore(rec)

	return TutorMarkResult{
		LateMinutes:   lateMin,
		PenaltyAmount: rec.AttendanceRecordPenaltyAmount,
		OnTime:        lateMin <= s.Cfg.GraceMinutes,
	}
}

// MarkCompletion mencatat sisi penyelesaian: durasi aktual, persentase,
// penalti early completion, dan delegasi input kehadiran per-siswa.
// Tanpa expected duration, metrik turunan degradasi ke nol (bukan error).
func (s *PenaltyService) MarkCompletion(rec *model.AttendanceRecordModel, completionTime time.Time, students []StudentAttendanceInput, trigger MarkTrigger) CompletionResult {
	rec.AttendanceRecordTutorLeaveAt = &completionTime
	rec.AttendanceRecordTutorEarlyLeaveMinutes = 0
	rec.AttendanceRecordEarlyCompletionPenalty = 0
	rec.AttendanceRecordPenaltyReasons = dropReasonPrefix(rec.AttendanceRecordPenaltyReasons, "Early completion:")

	expected := rec.AttendanceRecordExpectedDurationMinutes
	if rec.AttendanceRecordTutorJoinAt != nil {
		actual := minutesBetween(*rec.AttendanceRecordTutorJoinAt, completionTime)
		if actual < 0 {
			actual = 0
		}
		rec.AttendanceRecordActualDurationMinutes = actual

		if expected > 0 {
			pct := float64(actual) / float64(expected) * 100
			if pct > 100 {
				pct = 100
			}
			rec.AttendanceRecordCompletionPercentage = pct

			threshold := s.Cfg.EarlyThresholdRatio * float64(expected)
			if float64(actual) < threshold {
				earlyMin := expected - actual
				rec.AttendanceRecordTutorEarlyLeaveMinutes = earlyMin
				rec.AttendanceRecordEarlyCompletionPenalty = float64(earlyMin) * s.Cfg.EarlyRatePerMinute
				rec.AttendanceRecordPenaltyReasons = appendReason(rec.AttendanceRecordPenaltyReasons,
					fmt.Sprintf("Early completion: %d minutes", earlyMin))
			}
		}
	}

	// Delegasi input per-siswa yang cocok dengan record ini.
	// Join siswa default = join tutor bila tidak dioverride.
	for _, in := range students {
		if in.StudentID != rec.AttendanceRecordStudentID {
			continue
		}
		s.MarkStudentAttendance(rec, in, trigger)
	}

	rec.RecomputePenaltyAmount()
	rec.AttendanceRecordPenaltyApplied = rec.AttendanceRecordPenaltyAmount > 0
	s.recomputePunctualityScore(rec)

	return CompletionResult{
		ActualDurationMinutes:   rec.AttendanceRecordActualDurationMinutes,
		ExpectedDurationMinutes: expected,
		CompletionPercentage:    rec.AttendanceRecordCompletionPercentage,
		EarlyPenalty:            rec.AttendanceRecordEarlyCompletionPenalty,
		TotalPenalty:            rec.AttendanceRecordPenaltyAmount,
	}
}

// MarkStudentAttendance mencatat kehadiran siswa (tanpa penalti uang;
// keterlambatan siswa hanya mempengaruhi skor punctuality).
func (s *PenaltyService) MarkStudentAttendance(rec *model.AttendanceRecordModel, in StudentAttendanceInput, trigger MarkTrigger) {
	rec.AttendanceRecordStudentPresent = in.Present
	if in.EngagementRating != nil {
		rec.AttendanceRecordEngagementRating = in.EngagementRating
	}

	if !in.Present {
		rec.AttendanceRecordStudentJoinAt = nil
		rec.AttendanceRecordStudentLeaveAt = nil
		rec.AttendanceRecordStudentLateMinutes = 0
		if in.AbsenceReason != nil {
			rec.AttendanceRecordAbsenceReason = in.AbsenceReason
		}
		s.recomputePunctualityScore(rec)
		return
	}

	join := in.JoinAt
	if join == nil {
		// asumsikan siswa join bersamaan tutor bila tidak dioverride
		join = rec.AttendanceRecordTutorJoinAt
	}
	if join != nil {
		rec.AttendanceRecordStudentJoinAt = join
		lateMin := minutesBetween(rec.AttendanceRecordScheduledStartsAt, *join)
		if lateMin < 0 {
			lateMin = 0
		}
		rec.AttendanceRecordStudentLateMinutes = lateMin
	}
	if in.LeaveAt != nil {
		rec.AttendanceRecordStudentLeaveAt = in.LeaveAt
	}
	if trigger == TriggerAuto && !rec.AttendanceRecordAutoMarked {
		rec.AttendanceRecordAutoMarked = true
		now := time.Now()
		rec.AttendanceRecordAutoMarkedAt = &now
	}

	s.recomputePunctualityScore(rec)
}

// MarkTutorAbsence: tutor absen → penalti flat tanpa grace & tanpa prorata.
// Komponen late/early dari mark sebelumnya di-nol-kan; tutor yang tidak
// hadir tidak mungkin terlambat ataupun pulang cepat.
func (s *PenaltyService) MarkTutorAbsence(rec *model.AttendanceRecordModel, reason string) {
	rec.AttendanceRecordTutorPresent = false
	rec.AttendanceRecordTutorJoinAt = nil
	rec.AttendanceRecordTutorLeaveAt = nil
	rec.AttendanceRecordTutorLateMinutes = 0
	rec.AttendanceRecordTutorEarlyLeaveMinutes = 0
	rec.AttendanceRecordLateArrivalPenalty = 0
	rec.AttendanceRecordEarlyCompletionPenalty = 0
	rec.AttendanceRecordPenaltyReasons = dropReasonPrefix(rec.AttendanceRecordPenaltyReasons, "Late arrival:")
	rec.AttendanceRecordPenaltyReasons = dropReasonPrefix(rec.AttendanceRecordPenaltyReasons, "Early completion:")

	rec.AttendanceRecordAbsenceReason = &reason
	rec.AttendanceRecordAbsencePenalty = s.Cfg.AbsenceFlatPenalty
	rec.AttendanceRecordPenaltyReasons = appendReason(rec.AttendanceRecordPenaltyReasons, "Absent from class")

	rec.RecomputePenaltyAmount()
	rec.AttendanceRecordPenaltyApplied = rec.AttendanceRecordPenaltyAmount > 0
	s.recomputePunctualityScore(rec)
}

// PunctualityScore: metrik informasional 0-100, SENGAJA terpisah dari
// penalti uang (bobot dan grace berbeda, jangan disamakan).
func (s *PenaltyService) PunctualityScore(tutorLateMin, studentLateMin, tutorEarlyLeaveMin int) float64 {
	score := 100.0
	score -= capFloat(float64(tutorLateMin)*2, 50)
	score -= capFloat(float64(studentLateMin)*1, 25)
	score -= capFloat(float64(tutorEarlyLeaveMin)*3, 60)
	if score < 0 {
		score = 0
	}
	return score
}

func (s *PenaltyService) recomputePunctualityScore(rec *model.AttendanceRecordModel) {
	rec.AttendanceRecordPunctualityScore = s.PunctualityScore(
		rec.AttendanceRecordTutorLateMinutes,
		rec.AttendanceRecordStudentLateMinutes,
		rec.AttendanceRecordTutorEarlyLeaveMinutes,
	)
}

func capFloat(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

func appendReason(reasons []string, reason string) []string {
	for _, r := range reasons {
		if r == reason {
			return reasons
		}
	}
	return append(reasons, reason)
}

// dropReasonPrefix membuang entri reason lama yang menitnya bisa berbeda
// dengan mark terbaru, mis. "Late arrival: 5 minutes" vs "Late arrival: 3 minutes".
func dropReasonPrefix(reasons []string, prefix string) []string {
	var out []string
	for _, r := range reasons {
		if !strings.HasPrefix(r, prefix) {
			out = append(out, r)
		}
	}
	return out
}
