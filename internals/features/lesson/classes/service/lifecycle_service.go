// file: internals/features/lesson/classes/service/lifecycle_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/constants"
	attModel "lesprivat_backend/internals/features/lesson/attendance/model"
	attService "lesprivat_backend/internals/features/lesson/attendance/service"
	"lesprivat_backend/internals/features/lesson/classes/model"
	"lesprivat_backend/internals/features/lesson/notifications"
)

// LifecycleService menjalankan state machine kelas:
// scheduled → ongoing → completed, dengan side exit cancel & reschedule.
// Semua transisi berjalan dalam transaksi + lock supaya idempoten dan
// bebas race check-then-write.
type LifecycleService struct {
	DB       *gorm.DB
	Conflict *ConflictService
	Penalty  *attService.PenaltyService
	SchedCfg configs.ScheduleConfig
	Notify   notifications.Dispatcher
}

func NewLifecycleService(db *gorm.DB, penaltyCfg configs.PenaltyConfig, schedCfg configs.ScheduleConfig, notify notifications.Dispatcher) *LifecycleService {
	return &LifecycleService{
		DB:       db,
		Conflict: NewConflictService(db),
		Penalty:  attService.NewPenaltyService(penaltyCfg),
		SchedCfg: schedCfg,
		Notify:   notify,
	}
}

type CreateClassInput struct {
	TutorID         uuid.UUID
	Kind            string
	StudentID       *uuid.UUID
	StudentIDs      []uuid.UUID
	MaxCapacity     int
	Date            time.Time
	StartsAt        time.Time
	DurationMinutes int

	RecurrencePlanID        *uuid.UUID
	RecurrenceSourceClassID *uuid.UUID
}

/* ===================== VALIDASI ===================== */

// ValidateSchedule mengecek aturan bisnis penjadwalan: durasi, jam
// operasional, dan tanggal tidak di masa lalu.
func (s *LifecycleService) ValidateSchedule(in CreateClassInput, now time.Time) error {
	if in.DurationMinutes < s.SchedCfg.MinDurationMinutes || in.DurationMinutes > s.SchedCfg.MaxDurationMinutes {
		return newValidationError("duration_minutes",
			fmt.Sprintf("durasi harus %d-%d menit", s.SchedCfg.MinDurationMinutes, s.SchedCfg.MaxDurationMinutes))
	}
	hour := in.StartsAt.Hour()
	if hour < s.SchedCfg.EarliestStartHour || hour >= s.SchedCfg.LatestStartHour {
		return newValidationError("starts_at",
			fmt.Sprintf("jam mulai harus antara %02d:00 dan %02d:00", s.SchedCfg.EarliestStartHour, s.SchedCfg.LatestStartHour))
	}
	if in.StartsAt.Before(now) {
		return newValidationError("starts_at", "jadwal tidak boleh di masa lalu")
	}

	switch in.Kind {
	case constants.ClassKindOneToOne, constants.ClassKindDemo:
		if in.StudentID == nil || *in.StudentID == uuid.Nil {
			return newValidationError("student_id", "kelas one-to-one/demo wajib punya satu siswa")
		}
	case constants.ClassKindGroup:
		if len(in.StudentIDs) == 0 {
			return newValidationError("student_ids", "kelas group wajib punya minimal satu siswa")
		}
		if in.MaxCapacity > 0 && len(in.StudentIDs) > in.MaxCapacity {
			return newValidationError("student_ids",
				fmt.Sprintf("jumlah siswa (%d) melebihi kapasitas (%d)", len(in.StudentIDs), in.MaxCapacity))
		}
	default:
		return newValidationError("kind", "jenis kelas tidak dikenal")
	}
	return nil
}

// WithinStartWindow: start diizinkan di [scheduled_start - early, scheduled_start + durasi].
func WithinStartWindow(scheduledStart time.Time, durationMinutes, earlyMinutes int, now time.Time) bool {
	windowOpen := scheduledStart.Add(-time.Duration(earlyMinutes) * time.Minute)
	windowClose := scheduledStart.Add(time.Duration(durationMinutes) * time.Minute)
	return !now.Before(windowOpen) && !now.After(windowClose)
}

/* ===================== CREATE ===================== */

// CreateClass: deteksi bentrok + insert kelas + attendance records dalam
// SATU unit atomik. Advisory lock per tutor menserialisasi dua request
// penjadwalan konkuren; yang kalah akan melihat row baru dan dapat ConflictError.
func (s *LifecycleService) CreateClass(ctx context.Context, in CreateClassInput, now time.Time) (*model.ClassModel, error) {
	if err := s.ValidateSchedule(in, now); err != nil {
		return nil, err
	}

	var created model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTutorSchedule(tx, in.TutorID); err != nil {
			return fmt.Errorf("%w: %v", ErrConcurrency, err)
		}

		endsAt := in.StartsAt.Add(time.Duration(in.DurationMinutes) * time.Minute)
		conflicting, err := s.Conflict.FindConflict(ctx, tx, in.TutorID, in.Date, in.StartsAt, endsAt, nil)
		if err != nil {
			return err
		}
		if conflicting != nil {
			return &ConflictError{ConflictingClassID: conflicting.ClassID}
		}

		created = model.ClassModel{
			ClassTutorID:                 in.TutorID,
			ClassKind:                    in.Kind,
			ClassStudentID:               in.StudentID,
			ClassStudentIDs:              uuidsToStrings(in.StudentIDs),
			ClassMaxCapacity:             defaultCapacity(in),
			ClassDate:                    in.Date,
			ClassStartsAt:                in.StartsAt,
			ClassDurationMinutes:         in.DurationMinutes,
			ClassStatus:                  constants.ClassStatusScheduled,
			ClassRecurrencePlanID:        in.RecurrencePlanID,
			ClassRecurrenceSourceClassID: in.RecurrenceSourceClassID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// Attendance record per siswa, presence default false.
		records := buildAttendanceRecords(&created)
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifications.FireAndForget(s.Notify, notifications.EventClassScheduled, created.ClassID, created.StudentIDs())
	return &created, nil
}

/* ===================== START ===================== */

// applyStart memutasi struct kelas untuk transisi scheduled → ongoing.
// started=false tanpa error artinya kelas sudah ongoing dan tidak boleh
// ada side effect kedua.
func (s *LifecycleService) applyStart(cls *model.ClassModel, now time.Time) (started bool, err error) {
	if cls.ClassStatus == constants.ClassStatusOngoing {
		return false, nil
	}
	if !constants.IsSchedulableStatus(cls.ClassStatus) {
		return false, fmt.Errorf("%w: tidak bisa start kelas berstatus %s", ErrInvalidTransition, cls.ClassStatus)
	}
	if !WithinStartWindow(cls.ClassStartsAt, cls.ClassDurationMinutes, s.SchedCfg.StartWindowEarlyMin, now) {
		return false, fmt.Errorf("%w: di luar jendela waktu mulai", ErrInvalidTransition)
	}

	deadline := now.Add(time.Duration(s.SchedCfg.VideoDeadlineHours) * time.Hour)
	cls.ClassStatus = constants.ClassStatusOngoing
	cls.ClassActualStartsAt = &now
	cls.ClassVideoDeadline = &deadline
	return true, nil
}

// StartClass: scheduled → ongoing. Idempoten: kelas yang sudah ongoing
// mengembalikan state saat ini tanpa side effect kedua.
func (s *LifecycleService) StartClass(ctx context.Context, classID uuid.UUID, now time.Time) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClassRow(tx, classID, &cls); err != nil {
			return err
		}

		started, err := s.applyStart(&cls, now)
		if err != nil {
			return err
		}
		if !started {
			return nil // no-op idempoten
		}
		if err := tx.Save(&cls).Error; err != nil {
			return err
		}

		// Auto-mark kehadiran tutor di semua record kelas ini.
		records, err := loadClassRecords(tx, classID)
		if err != nil {
			return err
		}
		for i := range records {
			s.Penalty.MarkTutorAttendance(&records[i], now, cls.ClassDurationMinutes, attService.TriggerAuto)
			if err := tx.Save(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cls.ClassActualStartsAt != nil && now.Equal(*cls.ClassActualStartsAt) {
		notifications.FireAndForget(s.Notify, notifications.EventClassStarted, cls.ClassID, cls.StudentIDs())
	}
	return &cls, nil
}

/* ===================== COMPLETE ===================== */

// CompleteClass: scheduled/ongoing → completed. Kelas completed immutable
// kecuali field override administratif.
func (s *LifecycleService) CompleteClass(
	ctx context.Context,
	classID uuid.UUID,
	now time.Time,
	outcome, method string,
	students []attService.StudentAttendanceInput,
) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClassRow(tx, classID, &cls); err != nil {
			return err
		}

		switch cls.ClassStatus {
		case constants.ClassStatusScheduled, constants.ClassStatusRescheduled, constants.ClassStatusOngoing:
			// lanjut
		default:
			return fmt.Errorf("%w: tidak bisa complete kelas berstatus %s", ErrInvalidTransition, cls.ClassStatus)
		}

		// Backfill actual start bila complete dipanggil tanpa start.
		if cls.ClassActualStartsAt == nil {
			backfilled := now.Add(-time.Duration(cls.ClassDurationMinutes) * time.Minute)
			cls.ClassActualStartsAt = &backfilled
		}
		cls.ClassStatus = constants.ClassStatusCompleted
		cls.ClassActualEndsAt = &now
		cls.ClassCompletionOutcome = &outcome
		cls.ClassCompletionMethod = &method

		// Perhitungan sisi penyelesaian per record + snapshot ringkasan.
		records, err := loadClassRecords(tx, classID)
		if err != nil {
			return err
		}
		var totalPenalty float64
		for i := range records {
			res := s.Penalty.MarkCompletion(&records[i], now, students, attService.TriggerAuto)
			totalPenalty += res.TotalPenalty
			if err := tx.Save(&records[i]).Error; err != nil {
				return err
			}
		}
		cls.ClassCompletionSnapshot = datatypes.JSONMap{
			"outcome":       outcome,
			"method":        method,
			"completed_at":  now.Format(time.RFC3339),
			"record_count":  len(records),
			"total_penalty": totalPenalty,
		}

		return tx.Save(&cls).Error
	})
	if err != nil {
		return nil, err
	}

	notifications.FireAndForget(s.Notify, notifications.EventClassCompleted, cls.ClassID, cls.StudentIDs())
	return &cls, nil
}

/* ===================== CANCEL ===================== */

// applyCancel memutasi struct kelas untuk transisi cancel. Hanya kelas
// scheduled/rescheduled yang waktu mulainya masih di masa depan.
func applyCancel(cls *model.ClassModel, reason string, now time.Time) error {
	if !constants.IsSchedulableStatus(cls.ClassStatus) {
		return fmt.Errorf("%w: tidak bisa cancel kelas berstatus %s", ErrInvalidTransition, cls.ClassStatus)
	}
	if !cls.ClassStartsAt.After(now) {
		return fmt.Errorf("%w: kelas sudah lewat waktu mulai", ErrInvalidTransition)
	}

	cls.ClassStatus = constants.ClassStatusCancelled
	cls.ClassCancelReason = &reason
	return nil
}

// CancelClass: hanya kelas scheduled yang masih di masa depan.
func (s *LifecycleService) CancelClass(ctx context.Context, classID uuid.UUID, reason string, now time.Time) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClassRow(tx, classID, &cls); err != nil {
			return err
		}

		if err := applyCancel(&cls, reason, now); err != nil {
			return err
		}
		return tx.Save(&cls).Error
	})
	if err != nil {
		return nil, err
	}

	notifications.FireAndForget(s.Notify, notifications.EventClassCancelled, cls.ClassID, cls.StudentIDs())
	return &cls, nil
}

/* ===================== RESCHEDULE ===================== */

// applyReschedule memutasi jadwal kelas: tanggal & jam baru, end time
// dihitung ulang dari durasi, status jadi rescheduled.
func applyReschedule(cls *model.ClassModel, newDate, newStartsAt time.Time) error {
	if !constants.IsSchedulableStatus(cls.ClassStatus) {
		return fmt.Errorf("%w: tidak bisa reschedule kelas berstatus %s", ErrInvalidTransition, cls.ClassStatus)
	}

	cls.ClassDate = newDate
	cls.ClassStartsAt = newStartsAt
	cls.RecomputeEndTime()
	cls.ClassStatus = constants.ClassStatusRescheduled
	return nil
}

// RescheduleClass: update jadwal + re-run deteksi bentrok di dalam lock
// sebelum commit. Status jadi rescheduled (fungsional = scheduled).
func (s *LifecycleService) RescheduleClass(ctx context.Context, classID uuid.UUID, newDate, newStartsAt time.Time, now time.Time) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClassRow(tx, classID, &cls); err != nil {
			return err
		}

		if !constants.IsSchedulableStatus(cls.ClassStatus) {
			return fmt.Errorf("%w: tidak bisa reschedule kelas berstatus %s", ErrInvalidTransition, cls.ClassStatus)
		}

		in := CreateClassInput{
			TutorID:         cls.ClassTutorID,
			Kind:            cls.ClassKind,
			StudentID:       cls.ClassStudentID,
			StudentIDs:      cls.StudentIDs(),
			MaxCapacity:     cls.ClassMaxCapacity,
			Date:            newDate,
			StartsAt:        newStartsAt,
			DurationMinutes: cls.ClassDurationMinutes,
		}
		if err := s.ValidateSchedule(in, now); err != nil {
			return err
		}

		if err := lockTutorSchedule(tx, cls.ClassTutorID); err != nil {
			return fmt.Errorf("%w: %v", ErrConcurrency, err)
		}

		newEndsAt := newStartsAt.Add(time.Duration(cls.ClassDurationMinutes) * time.Minute)
		excludeID := cls.ClassID
		conflicting, err := s.Conflict.FindConflict(ctx, tx, cls.ClassTutorID, newDate, newStartsAt, newEndsAt, &excludeID)
		if err != nil {
			return err
		}
		if conflicting != nil {
			return &ConflictError{ConflictingClassID: conflicting.ClassID}
		}

		if err := applyReschedule(&cls, newDate, newStartsAt); err != nil {
			return err
		}
		if err := tx.Save(&cls).Error; err != nil {
			return err
		}

		// Sinkronkan waktu terjadwal di attendance records.
		return tx.Model(&attModel.AttendanceRecordModel{}).
			Where("attendance_record_class_id = ?", cls.ClassID).
			Updates(map[string]any{
				"attendance_record_scheduled_starts_at": cls.ClassStartsAt,
				"attendance_record_scheduled_ends_at":   cls.ClassEndsAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	notifications.FireAndForget(s.Notify, notifications.EventClassRescheduled, cls.ClassID, cls.StudentIDs())
	return &cls, nil
}

/* ===================== DELETE ===================== */

// DeleteClass: soft-delete kelas + cascade ke attendance records.
func (s *LifecycleService) DeleteClass(ctx context.Context, classID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cls model.ClassModel
		if err := lockClassRow(tx, classID, &cls); err != nil {
			return err
		}
		if !cls.IsDeletable() {
			return fmt.Errorf("%w: kelas completed atau sudah pernah dimulai tidak bisa dihapus", ErrInvalidTransition)
		}
		if err := tx.Where("attendance_record_class_id = ?", classID).
			Delete(&attModel.AttendanceRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cls).Error
	})
}

/* ===================== HELPERS ===================== */

// lockTutorSchedule: advisory lock transaksional per tutor, serialisasi
// detect-conflict sampai commit.
func lockTutorSchedule(tx *gorm.DB, tutorID uuid.UUID) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?::text))", tutorID.String()).Error
}

func lockClassRow(tx *gorm.DB, classID uuid.UUID, dst *model.ClassModel) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("class_id = ?", classID).
		First(dst).Error
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("%w: kelas tidak ditemukan", gorm.ErrRecordNotFound)
	}
	return err
}

func loadClassRecords(tx *gorm.DB, classID uuid.UUID) ([]attModel.AttendanceRecordModel, error) {
	var records []attModel.AttendanceRecordModel
	err := tx.Where("attendance_record_class_id = ?", classID).
		Find(&records).Error
	return records, err
}

func buildAttendanceRecords(cls *model.ClassModel) []attModel.AttendanceRecordModel {
	students := cls.StudentIDs()
	records := make([]attModel.AttendanceRecordModel, 0, len(students))
	for _, sid := range students {
		records = append(records, attModel.AttendanceRecordModel{
			AttendanceRecordClassID:                 cls.ClassID,
			AttendanceRecordTutorID:                 cls.ClassTutorID,
			AttendanceRecordStudentID:               sid,
			AttendanceRecordScheduledStartsAt:       cls.ClassStartsAt,
			AttendanceRecordScheduledEndsAt:         cls.ClassEndsAt,
			AttendanceRecordExpectedDurationMinutes: cls.ClassDurationMinutes,
		})
	}
	return records
}

func uuidsToStrings(ids []uuid.UUID) pq.StringArray {
	if len(ids) == 0 {
		return nil
	}
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func defaultCapacity(in CreateClassInput) int {
	if in.Kind == constants.ClassKindGroup {
		if in.MaxCapacity > 0 {
			return in.MaxCapacity
		}
		return len(in.StudentIDs)
	}
	return 1
}
