// file: internals/features/lesson/classes/service/conflict_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/constants"
	"lesprivat_backend/internals/features/lesson/classes/model"
)

// ConflictService mendeteksi bentrok jadwal per tutor per tanggal.
// Murni query + predikat interval; serialisasi check→commit dilakukan
// LifecycleService lewat advisory lock per tutor.
type ConflictService struct {
	DB *gorm.DB
}

func NewConflictService(db *gorm.DB) *ConflictService {
	return &ConflictService{DB: db}
}

// IntervalsOverlap: tes overlap interval half-open [start, end).
// Kelas back-to-back (end A == start B) TIDAK dianggap bentrok.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict mengembalikan kelas aktif pertama milik tutor yang
// overlap dengan kandidat interval, atau nil bila tidak ada.
// excludeClassID dipakai saat edit/reschedule (jangan bentrok dengan diri sendiri).
// db boleh transaksi aktif supaya check ikut di dalam lock.
func (s *ConflictService) FindConflict(
	ctx context.Context,
	db *gorm.DB,
	tutorID uuid.UUID,
	date time.Time,
	startsAt, endsAt time.Time,
	excludeClassID *uuid.UUID,
) (*model.ClassModel, error) {
	if db == nil {
		db = s.DB
	}

	q := db.WithContext(ctx).
		Where("class_tutor_id = ?", tutorID).
		Where("class_date = ?", date.Format("2006-01-02")).
		Where("class_status IN ?", constants.ActiveClassStatuses).
		// half-open overlap: cand_start < other_end AND other_start < cand_end
		Where("class_starts_at < ? AND class_ends_at > ?", endsAt, startsAt).
		Order("class_starts_at ASC")

	if excludeClassID != nil {
		q = q.Where("class_id <> ?", *excludeClassID)
	}

	var conflicting model.ClassModel
	err := q.Limit(1).Take(&conflicting).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conflicting, nil
}
