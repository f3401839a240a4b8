// file: internals/features/lesson/attendance/service/summary_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/features/lesson/attendance/model"
)

// SummaryService: agregasi read-only atas attendance records.
// Tidak pernah memutasi data; dipakai layer reporting.
type SummaryService struct {
	DB *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{DB: db}
}

type SummaryFilter struct {
	TutorID   *uuid.UUID
	StudentID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

type AttendanceSummary struct {
	TotalClasses     int `json:"total_classes"`
	PresentCount     int `json:"present_count"`
	AbsentCount      int `json:"absent_count"`
	LateCount        int `json:"late_count"`
	TotalLateMinutes int `json:"total_late_minutes"`

	TotalLateArrivalPenalty     float64 `json:"total_late_arrival_penalty"`
	TotalEarlyCompletionPenalty float64 `json:"total_early_completion_penalty"`
	TotalAbsencePenalty         float64 `json:"total_absence_penalty"`
	TotalPenaltyAmount          float64 `json:"total_penalty_amount"`

	AutoMarkedCount          int     `json:"auto_marked_count"`
	AttendancePercentage     float64 `json:"attendance_percentage"`
	AveragePunctualityScore  float64 `json:"average_punctuality_score"`
	AverageCompletionPercent float64 `json:"average_completion_percentage"`
}

// GetSummary memuat records sesuai filter lalu merangkum di memori.
func (s *SummaryService) GetSummary(ctx context.Context, f SummaryFilter) (AttendanceSummary, error) {
	q := s.DB.WithContext(ctx).Model(&model.AttendanceRecordModel{})

	if f.TutorID != nil {
		q = q.Where("attendance_record_tutor_id = ?", *f.TutorID)
	}
	if f.StudentID != nil {
		q = q.Where("attendance_record_student_id = ?", *f.StudentID)
	}
	if f.DateFrom != nil {
		q = q.Where("attendance_record_scheduled_starts_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("attendance_record_scheduled_starts_at < ?", *f.DateTo)
	}

	var records []model.AttendanceRecordModel
	if err := q.Find(&records).Error; err != nil {
		return AttendanceSummary{}, err
	}
	return Summarize(records), nil
}

// Summarize merangkum satu set records. Set kosong menghasilkan semua
// angka nol, tidak pernah division-by-zero.
func Summarize(records []model.AttendanceRecordModel) AttendanceSummary {
	out := AttendanceSummary{TotalClasses: len(records)}
	if len(records) == 0 {
		return out
	}

	var sumScore, sumCompletion float64
	for _, r := range records {
		if r.AttendanceRecordTutorPresent {
			out.PresentCount++
		} else {
			out.AbsentCount++
		}
		if r.AttendanceRecordTutorLateMinutes > 0 {
			out.LateCount++
		}
		out.TotalLateMinutes += r.AttendanceRecordTutorLateMinutes

		out.TotalLateArrivalPenalty += r.AttendanceRecordLateArrivalPenalty
		out.TotalEarlyCompletionPenalty += r.AttendanceRecordEarlyCompletionPenalty
		out.TotalAbsencePenalty += r.AttendanceRecordAbsencePenalty
		out.TotalPenaltyAmount += r.AttendanceRecordPenaltyAmount

		if r.AttendanceRecordAutoMarked {
			out.AutoMarkedCount++
		}
		sumScore += r.AttendanceRecordPunctualityScore
		sumCompletion += r.AttendanceRecordCompletionPercentage
	}

	n := float64(len(records))
	out.AttendancePercentage = float64(out.PresentCount) / n * 100
	out.AveragePunctualityScore = sumScore / n
	out.AverageCompletionPercent = sumCompletion / n
	return out
}
