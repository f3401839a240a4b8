// file: internals/features/lesson/classes/service/recurrence_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lesprivat_backend/internals/constants"
	"lesprivat_backend/internals/features/lesson/classes/model"
)

const maxRecurrenceDays = 180 // batasi expand maksimal ~6 bulan per run

// RecurrenceService meng-expand RecurrencePlan menjadi ClassModel mandiri.
// Kelas hasil generate hanya menyimpan provenance (plan id), bukan relasi
// parent-child hidup.
type RecurrenceService struct {
	DB        *gorm.DB
	Lifecycle *LifecycleService
}

func NewRecurrenceService(db *gorm.DB, lifecycle *LifecycleService) *RecurrenceService {
	return &RecurrenceService{DB: db, Lifecycle: lifecycle}
}

type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"` // occurrence yang bentrok jadwal tutor
}

// GenerateClasses meng-expand plan sampai until date / max occurrences.
// Occurrence yang bentrok jadwal tutor dilewati (dicatat di Skipped),
// sisanya diinsert idempoten (OnConflict DoNothing) bersama attendance records.
func (s *RecurrenceService) GenerateClasses(ctx context.Context, planID uuid.UUID, now time.Time) (GenerateResult, error) {
	var res GenerateResult

	var plan model.RecurrencePlanModel
	if err := s.DB.WithContext(ctx).
		Where("recurrence_plan_id = ?", planID).
		Take(&plan).Error; err != nil {
		return res, err
	}

	occurrences, err := ExpandOccurrences(plan, now)
	if err != nil {
		return res, err
	}
	if len(occurrences) == 0 {
		return res, nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTutorSchedule(tx, plan.RecurrencePlanTutorID); err != nil {
			return fmt.Errorf("%w: %v", ErrConcurrency, err)
		}

		for _, startsAt := range occurrences {
			endsAt := startsAt.Add(time.Duration(plan.RecurrencePlanDurationMinutes) * time.Minute)
			date := time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, time.UTC)

			conflicting, err := s.Lifecycle.Conflict.FindConflict(ctx, tx,
				plan.RecurrencePlanTutorID, date, startsAt, endsAt, nil)
			if err != nil {
				return err
			}
			if conflicting != nil {
				res.Skipped++
				continue
			}

			planID := plan.RecurrencePlanID
			cls := model.ClassModel{
				ClassTutorID:          plan.RecurrencePlanTutorID,
				ClassKind:             plan.RecurrencePlanKind,
				ClassStudentID:        plan.RecurrencePlanStudentID,
				ClassStudentIDs:       plan.RecurrencePlanStudentIDs,
				ClassMaxCapacity:      plan.RecurrencePlanMaxCapacity,
				ClassDate:             date,
				ClassStartsAt:         startsAt,
				ClassDurationMinutes:  plan.RecurrencePlanDurationMinutes,
				ClassStatus:           constants.ClassStatusScheduled,
				ClassRecurrencePlanID: &planID,
			}
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cls)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected == 0 {
				res.Skipped++
				continue
			}

			records := buildAttendanceRecords(&cls)
			if len(records) > 0 {
				if err := tx.Create(&records).Error; err != nil {
					return err
				}
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return GenerateResult{}, err
	}
	return res, nil
}

// ExpandOccurrences menghitung daftar waktu mulai dari pola plan.
// Pure function supaya gampang dites tanpa DB.
func ExpandOccurrences(plan model.RecurrencePlanModel, now time.Time) ([]time.Time, error) {
	tod, err := parseTimeOfDay(plan.RecurrencePlanStartTimeOfDay)
	if err != nil {
		return nil, newValidationError("start_time_of_day", err.Error())
	}

	interval := plan.RecurrencePlanIntervalWeeks
	if interval <= 0 {
		interval = 1
	}

	start := startOfDay(plan.RecurrencePlanStartDate)
	end := start.AddDate(0, 0, maxRecurrenceDays)
	if plan.RecurrencePlanUntilDate != nil {
		until := startOfDay(*plan.RecurrencePlanUntilDate)
		if until.Before(end) {
			end = until
		}
	}
	if end.Before(start) {
		return nil, newValidationError("until_date", "until date sebelum start date")
	}

	maxOcc := 0
	if plan.RecurrencePlanMaxOccurrences != nil {
		maxOcc = *plan.RecurrencePlanMaxOccurrences
	}

	days := map[int]bool{}
	for _, d := range plan.RecurrencePlanDaysOfWeek {
		days[int(d)] = true
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !days[isoWeekday(d)] {
			continue
		}
		if weeksBetween(start, d)%interval != 0 {
			continue
		}
		startsAt := time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
		if startsAt.Before(now) {
			continue // jangan generate jadwal di masa lalu
		}
		out = append(out, startsAt)
		if maxOcc > 0 && len(out) >= maxOcc {
			break
		}
	}
	return out, nil
}

/* ===================== time helpers ===================== */

func parseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("format jam tidak valid: %q", s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func weeksBetween(base, target time.Time) int {
	bd := startOfDay(base)
	td := startOfDay(target)
	if td.Before(bd) {
		return -int(bd.Sub(td).Hours() / 24 / 7)
	}
	return int(td.Sub(bd).Hours() / 24 / 7)
}
