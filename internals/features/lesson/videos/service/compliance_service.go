// file: internals/features/lesson/videos/service/compliance_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/constants"
	attModel "lesprivat_backend/internals/features/lesson/attendance/model"
	"lesprivat_backend/internals/features/lesson/classes/model"
)

// ComplianceService melacak deadline upload video rekaman kelas.
// Deadline diset saat kelas start (actual start + 24 jam).
type ComplianceService struct {
	DB  *gorm.DB
	Cfg configs.ScheduleConfig
}

func NewComplianceService(db *gorm.DB, cfg configs.ScheduleConfig) *ComplianceService {
	return &ComplianceService{DB: db, Cfg: cfg}
}

type VideoStatus struct {
	ClassID          uuid.UUID  `json:"class_id"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	UploadedAt       *time.Time `json:"uploaded_at,omitempty"`
	Overdue          bool       `json:"overdue"`
	NeedsReminder    bool       `json:"needs_reminder"`
	ReminderSent     bool       `json:"reminder_sent"`
	FinalWarningSent bool       `json:"final_warning_sent"`
	ReviewState      string     `json:"review_state"`
	Compliant        bool       `json:"compliant"`
}

// IsOverdue: lewat deadline dan video belum diupload.
func IsOverdue(cls *model.ClassModel, now time.Time) bool {
	if cls.ClassVideoUploadedAt != nil || cls.ClassVideoDeadline == nil {
		return false
	}
	return now.After(*cls.ClassVideoDeadline)
}

// NeedsReminder: kelas completed, video belum ada, sisa waktu <= window.
func NeedsReminder(cls *model.ClassModel, now time.Time, reminderWindowMin int) bool {
	if cls.ClassStatus != constants.ClassStatusCompleted {
		return false
	}
	if cls.ClassVideoUploadedAt != nil || cls.ClassVideoDeadline == nil {
		return false
	}
	remaining := cls.ClassVideoDeadline.Sub(now)
	return remaining <= time.Duration(reminderWindowMin)*time.Minute
}

// Status mengembalikan ringkasan compliance satu kelas.
func (s *ComplianceService) Status(ctx context.Context, classID uuid.UUID, now time.Time) (VideoStatus, error) {
	var cls model.ClassModel
	if err := s.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Take(&cls).Error; err != nil {
		return VideoStatus{}, err
	}
	return VideoStatus{
		ClassID:          cls.ClassID,
		Deadline:         cls.ClassVideoDeadline,
		UploadedAt:       cls.ClassVideoUploadedAt,
		Overdue:          IsOverdue(&cls, now),
		NeedsReminder:    NeedsReminder(&cls, now, s.Cfg.ReminderWindowMin) && !cls.ClassVideoReminderSent,
		ReminderSent:     cls.ClassVideoReminderSent,
		FinalWarningSent: cls.ClassVideoFinalWarningSent,
		ReviewState:      cls.ClassVideoReviewState,
		Compliant:        cls.ClassVideoCompliant,
	}, nil
}

// MarkUploaded mencatat upload video: clear flag reminder/warning, set
// state pending review, lalu recompute compliance.
func (s *ComplianceService) MarkUploaded(ctx context.Context, classID uuid.UUID, now time.Time) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_id = ?", classID).
			First(&cls).Error; err != nil {
			return err
		}

		cls.ClassVideoUploadedAt = &now
		cls.ClassVideoReminderSent = false
		cls.ClassVideoFinalWarningSent = false
		cls.ClassVideoReviewState = constants.VideoReviewPending

		reviewed, err := s.attendanceReviewed(tx, classID)
		if err != nil {
			return err
		}
		// compliant ⇔ video ada + attendance sudah direview + kelas completed
		cls.ClassVideoCompliant = reviewed && cls.ClassStatus == constants.ClassStatusCompleted

		return tx.Save(&cls).Error
	})
	if err != nil {
		return nil, err
	}
	return &cls, nil
}

// attendanceReviewed: semua record kelas sudah punya leave time tutor.
func (s *ComplianceService) attendanceReviewed(tx *gorm.DB, classID uuid.UUID) (bool, error) {
	var total, reviewed int64
	if err := tx.Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_class_id = ?", classID).
		Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}
	if err := tx.Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_class_id = ?", classID).
		Where("attendance_record_tutor_leave_at IS NOT NULL OR attendance_record_tutor_present = false").
		Count(&reviewed).Error; err != nil {
		return false, err
	}
	return reviewed == total, nil
}
