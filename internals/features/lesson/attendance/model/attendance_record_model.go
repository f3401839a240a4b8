// file: internals/features/lesson/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AttendanceRecordModel: satu record per pasangan (kelas, siswa).
// Dibuat saat kelas dijadwalkan, dimutasi oleh kalkulator penalti
// pada event start & complete, dan ikut terhapus bersama kelasnya.
type AttendanceRecordModel struct {
	// PK + refs
	AttendanceRecordID        uuid.UUID `gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_record_id"`
	AttendanceRecordClassID   uuid.UUID `gorm:"column:attendance_record_class_id;type:uuid;not null;index" json:"attendance_record_class_id"`
	AttendanceRecordTutorID   uuid.UUID `gorm:"column:attendance_record_tutor_id;type:uuid;not null;index" json:"attendance_record_tutor_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"column:attendance_record_student_id;type:uuid;not null;index" json:"attendance_record_student_id"`

	// Kehadiran
	AttendanceRecordTutorPresent   bool `gorm:"column:attendance_record_tutor_present;not null;default:false" json:"attendance_record_tutor_present"`
	AttendanceRecordStudentPresent bool `gorm:"column:attendance_record_student_present;not null;default:false" json:"attendance_record_student_present"`

	// Waktu terjadwal (disalin dari kelas saat record dibuat)
	AttendanceRecordScheduledStartsAt time.Time `gorm:"column:attendance_record_scheduled_starts_at;type:timestamptz;not null" json:"attendance_record_scheduled_starts_at"`
	AttendanceRecordScheduledEndsAt   time.Time `gorm:"column:attendance_record_scheduled_ends_at;type:timestamptz;not null" json:"attendance_record_scheduled_ends_at"`

	// Waktu aktual join/leave
	AttendanceRecordTutorJoinAt    *time.Time `gorm:"column:attendance_record_tutor_join_at;type:timestamptz" json:"attendance_record_tutor_join_at,omitempty"`
	AttendanceRecordTutorLeaveAt   *time.Time `gorm:"column:attendance_record_tutor_leave_at;type:timestamptz" json:"attendance_record_tutor_leave_at,omitempty"`
	AttendanceRecordStudentJoinAt  *time.Time `gorm:"column:attendance_record_student_join_at;type:timestamptz" json:"attendance_record_student_join_at,omitempty"`
	AttendanceRecordStudentLeaveAt *time.Time `gorm:"column:attendance_record_student_leave_at;type:timestamptz" json:"attendance_record_student_leave_at,omitempty"`

	// Punctuality turunan (menit)
	AttendanceRecordTutorLateMinutes       int `gorm:"column:attendance_record_tutor_late_minutes;not null;default:0" json:"attendance_record_tutor_late_minutes"`
	AttendanceRecordStudentLateMinutes     int `gorm:"column:attendance_record_student_late_minutes;not null;default:0" json:"attendance_record_student_late_minutes"`
	AttendanceRecordTutorEarlyLeaveMinutes int `gorm:"column:attendance_record_tutor_early_leave_minutes;not null;default:0" json:"attendance_record_tutor_early_leave_minutes"`

	// Komponen penalti. Total SELALU = jumlah tiga komponen (lihat BeforeSave).
	AttendanceRecordLateArrivalPenalty     float64        `gorm:"column:attendance_record_late_arrival_penalty;not null;default:0" json:"attendance_record_late_arrival_penalty"`
	AttendanceRecordEarlyCompletionPenalty float64        `gorm:"column:attendance_record_early_completion_penalty;not null;default:0" json:"attendance_record_early_completion_penalty"`
	AttendanceRecordAbsencePenalty         float64        `gorm:"column:attendance_record_absence_penalty;not null;default:0" json:"attendance_record_absence_penalty"`
	AttendanceRecordPenaltyAmount          float64        `gorm:"column:attendance_record_penalty_amount;not null;default:0" json:"attendance_record_penalty_amount"`
	AttendanceRecordPenaltyReasons         pq.StringArray `gorm:"column:attendance_record_penalty_reasons;type:text[]" json:"attendance_record_penalty_reasons,omitempty"`
	AttendanceRecordPenaltyApplied         bool           `gorm:"column:attendance_record_penalty_applied;not null;default:false" json:"attendance_record_penalty_applied"`
	AttendanceRecordAbsenceReason          *string        `gorm:"column:attendance_record_absence_reason" json:"attendance_record_absence_reason,omitempty"`

	// Rating keterlibatan siswa (input manual tutor, 1-5)
	AttendanceRecordEngagementRating *int `gorm:"column:attendance_record_engagement_rating" json:"attendance_record_engagement_rating,omitempty"`

	// Durasi & persentase turunan
	AttendanceRecordExpectedDurationMinutes int     `gorm:"column:attendance_record_expected_duration_minutes;not null;default:0" json:"attendance_record_expected_duration_minutes"`
	AttendanceRecordActualDurationMinutes   int     `gorm:"column:attendance_record_actual_duration_minutes;not null;default:0" json:"attendance_record_actual_duration_minutes"`
	AttendanceRecordCompletionPercentage    float64 `gorm:"column:attendance_record_completion_percentage;not null;default:0" json:"attendance_record_completion_percentage"`

	// Skor punctuality 0-100 (metrik informasional, terpisah dari penalti uang)
	AttendanceRecordPunctualityScore float64 `gorm:"column:attendance_record_punctuality_score;not null;default:100" json:"attendance_record_punctuality_score"`

	// Provenance auto-mark
	AttendanceRecordAutoMarked   bool       `gorm:"column:attendance_record_auto_marked;not null;default:false" json:"attendance_record_auto_marked"`
	AttendanceRecordAutoMarkedAt *time.Time `gorm:"column:attendance_record_auto_marked_at;type:timestamptz" json:"attendance_record_auto_marked_at,omitempty"`

	// Audit
	AttendanceRecordCreatedAt time.Time      `gorm:"column:attendance_record_created_at;type:timestamptz;not null;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `gorm:"column:attendance_record_updated_at;type:timestamptz;not null;autoUpdateTime" json:"attendance_record_updated_at"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index" json:"attendance_record_deleted_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// BeforeSave menjaga invariant: penalty_amount = late + early + absence,
// dan completion percentage selalu di rentang [0, 100].
func (m *AttendanceRecordModel) BeforeSave(tx *gorm.DB) error {
	m.RecomputePenaltyAmount()
	if m.AttendanceRecordCompletionPercentage < 0 {
		m.AttendanceRecordCompletionPercentage = 0
	}
	if m.AttendanceRecordCompletionPercentage > 100 {
		m.AttendanceRecordCompletionPercentage = 100
	}
	return nil
}

// RecomputePenaltyAmount: total penalti tidak pernah diset langsung.
func (m *AttendanceRecordModel) RecomputePenaltyAmount() {
	m.AttendanceRecordPenaltyAmount = m.AttendanceRecordLateArrivalPenalty +
		m.AttendanceRecordEarlyCompletionPenalty +
		m.AttendanceRecordAbsencePenalty
}
