// file: internals/features/lesson/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lesprivat_backend/internals/constants"
)

type ClassModel struct {
	// PK
	ClassID uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`

	// Referensi tutor & siswa.
	// Kind menentukan field mana yang otoritatif:
	// one_to_one/demo → ClassStudentID, group → ClassStudentIDs (dibatasi kapasitas)
	ClassTutorID     uuid.UUID      `gorm:"column:class_tutor_id;type:uuid;not null;index" json:"class_tutor_id"`
	ClassKind        string         `gorm:"column:class_kind;type:varchar(20);not null" json:"class_kind"`
	ClassStudentID   *uuid.UUID     `gorm:"column:class_student_id;type:uuid" json:"class_student_id,omitempty"`
	ClassStudentIDs  pq.StringArray `gorm:"column:class_student_ids;type:uuid[]" json:"class_student_ids,omitempty"`
	ClassMaxCapacity int            `gorm:"column:class_max_capacity;not null;default:1" json:"class_max_capacity"`

	// Jadwal. ClassEndsAt selalu diturunkan dari start + durasi (lihat BeforeSave).
	ClassDate            time.Time `gorm:"column:class_date;type:date;not null;index" json:"class_date"`
	ClassStartsAt        time.Time `gorm:"column:class_starts_at;type:timestamptz;not null" json:"class_starts_at"`
	ClassDurationMinutes int       `gorm:"column:class_duration_minutes;not null" json:"class_duration_minutes"`
	ClassEndsAt          time.Time `gorm:"column:class_ends_at;type:timestamptz;not null" json:"class_ends_at"`

	// Lifecycle
	ClassStatus            string     `gorm:"column:class_status;type:varchar(20);not null;default:'scheduled';index" json:"class_status"`
	ClassCompletionOutcome *string    `gorm:"column:class_completion_outcome;type:varchar(20)" json:"class_completion_outcome,omitempty"`
	ClassCompletionMethod  *string    `gorm:"column:class_completion_method;type:varchar(20)" json:"class_completion_method,omitempty"`
	ClassActualStartsAt    *time.Time `gorm:"column:class_actual_starts_at;type:timestamptz" json:"class_actual_starts_at,omitempty"`
	ClassActualEndsAt      *time.Time `gorm:"column:class_actual_ends_at;type:timestamptz" json:"class_actual_ends_at,omitempty"`
	ClassCancelReason      *string    `gorm:"column:class_cancel_reason" json:"class_cancel_reason,omitempty"`

	// Kepatuhan video rekaman (deadline = mulai aktual + 24 jam)
	ClassVideoDeadline         *time.Time `gorm:"column:class_video_deadline;type:timestamptz" json:"class_video_deadline,omitempty"`
	ClassVideoUploadedAt       *time.Time `gorm:"column:class_video_uploaded_at;type:timestamptz" json:"class_video_uploaded_at,omitempty"`
	ClassVideoReminderSent     bool       `gorm:"column:class_video_reminder_sent;not null;default:false" json:"class_video_reminder_sent"`
	ClassVideoFinalWarningSent bool       `gorm:"column:class_video_final_warning_sent;not null;default:false" json:"class_video_final_warning_sent"`
	ClassVideoReviewState      string     `gorm:"column:class_video_review_state;type:varchar(20);not null;default:''" json:"class_video_review_state"`
	ClassVideoCompliant        bool       `gorm:"column:class_video_compliant;not null;default:false" json:"class_video_compliant"`

	// Snapshot ringkasan penyelesaian (diisi saat complete)
	ClassCompletionSnapshot datatypes.JSONMap `gorm:"column:class_completion_snapshot;type:jsonb" json:"class_completion_snapshot,omitempty"`

	// Provenance recurrence: kelas hasil generate tetap entitas mandiri,
	// hanya mencatat asal-usulnya (bukan parent-child hidup).
	ClassRecurrencePlanID        *uuid.UUID `gorm:"column:class_recurrence_plan_id;type:uuid;index" json:"class_recurrence_plan_id,omitempty"`
	ClassRecurrenceSourceClassID *uuid.UUID `gorm:"column:class_recurrence_source_class_id;type:uuid" json:"class_recurrence_source_class_id,omitempty"`

	// Audit
	ClassCreatedAt time.Time      `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

// BeforeSave menjaga invariant: end time = start + durasi.
func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.RecomputeEndTime()
	return nil
}

// RecomputeEndTime menurunkan ulang ClassEndsAt dari start + durasi.
// Wajib dipanggil tiap kali start atau durasi berubah.
func (m *ClassModel) RecomputeEndTime() {
	m.ClassEndsAt = m.ClassStartsAt.Add(time.Duration(m.ClassDurationMinutes) * time.Minute)
}

// StudentIDs mengembalikan daftar siswa otoritatif sesuai kind.
func (m *ClassModel) StudentIDs() []uuid.UUID {
	switch m.ClassKind {
	case constants.ClassKindGroup:
		out := make([]uuid.UUID, 0, len(m.ClassStudentIDs))
		for _, s := range m.ClassStudentIDs {
			if id, err := uuid.Parse(s); err == nil {
				out = append(out, id)
			}
		}
		return out
	default:
		if m.ClassStudentID != nil && *m.ClassStudentID != uuid.Nil {
			return []uuid.UUID{*m.ClassStudentID}
		}
		return nil
	}
}

// IsEditable: kelas masih boleh diedit bila belum ongoing/completed,
// masih di masa depan, dan lebih dari cutoff menit sebelum mulai.
func (m *ClassModel) IsEditable(now time.Time, cutoffMinutes int) bool {
	if m.ClassStatus == constants.ClassStatusOngoing || m.ClassStatus == constants.ClassStatusCompleted {
		return false
	}
	cutoff := m.ClassStartsAt.Add(-time.Duration(cutoffMinutes) * time.Minute)
	return now.Before(cutoff)
}

// IsDeletable: kelas boleh dihapus selama belum completed dan belum pernah dimulai.
func (m *ClassModel) IsDeletable() bool {
	return m.ClassStatus != constants.ClassStatusCompleted && m.ClassActualStartsAt == nil
}
