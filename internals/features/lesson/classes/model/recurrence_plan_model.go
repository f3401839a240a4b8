// file: internals/features/lesson/classes/model/recurrence_plan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type RecurrenceFrequencyEnum string

const (
	RecurrenceFrequencyWeekly RecurrenceFrequencyEnum = "weekly"
)

// RecurrencePlanModel adalah template pola berulang.
// Plan men-GENERATE ClassModel mandiri dengan provenance (plan id),
// bukan relasi parent-child hidup antar kelas.
type RecurrencePlanModel struct {
	// PK
	RecurrencePlanID uuid.UUID `gorm:"column:recurrence_plan_id;type:uuid;default:gen_random_uuid();primaryKey" json:"recurrence_plan_id"`

	// Template kelas yang digenerate
	RecurrencePlanTutorID     uuid.UUID      `gorm:"column:recurrence_plan_tutor_id;type:uuid;not null;index" json:"recurrence_plan_tutor_id"`
	RecurrencePlanKind        string         `gorm:"column:recurrence_plan_kind;type:varchar(20);not null" json:"recurrence_plan_kind"`
	RecurrencePlanStudentID   *uuid.UUID     `gorm:"column:recurrence_plan_student_id;type:uuid" json:"recurrence_plan_student_id,omitempty"`
	RecurrencePlanStudentIDs  pq.StringArray `gorm:"column:recurrence_plan_student_ids;type:uuid[]" json:"recurrence_plan_student_ids,omitempty"`
	RecurrencePlanMaxCapacity int            `gorm:"column:recurrence_plan_max_capacity;not null;default:1" json:"recurrence_plan_max_capacity"`

	// Pola per pekan
	RecurrencePlanFrequency       RecurrenceFrequencyEnum `gorm:"column:recurrence_plan_frequency;type:varchar(10);not null;default:'weekly'" json:"recurrence_plan_frequency"`
	RecurrencePlanIntervalWeeks   int                     `gorm:"column:recurrence_plan_interval_weeks;not null;default:1" json:"recurrence_plan_interval_weeks"`
	RecurrencePlanDaysOfWeek      pq.Int64Array           `gorm:"column:recurrence_plan_days_of_week;type:int[];not null" json:"recurrence_plan_days_of_week"`
	RecurrencePlanStartTimeOfDay  string                  `gorm:"column:recurrence_plan_start_time_of_day;type:varchar(8);not null" json:"recurrence_plan_start_time_of_day"`
	RecurrencePlanDurationMinutes int                     `gorm:"column:recurrence_plan_duration_minutes;not null" json:"recurrence_plan_duration_minutes"`

	// Kondisi berakhir: sampai tanggal, atau maksimum jumlah pertemuan
	RecurrencePlanStartDate      time.Time  `gorm:"column:recurrence_plan_start_date;type:date;not null" json:"recurrence_plan_start_date"`
	RecurrencePlanUntilDate      *time.Time `gorm:"column:recurrence_plan_until_date;type:date" json:"recurrence_plan_until_date,omitempty"`
	RecurrencePlanMaxOccurrences *int       `gorm:"column:recurrence_plan_max_occurrences" json:"recurrence_plan_max_occurrences,omitempty"`

	// Audit
	RecurrencePlanCreatedAt time.Time      `gorm:"column:recurrence_plan_created_at;type:timestamptz;not null;autoCreateTime" json:"recurrence_plan_created_at"`
	RecurrencePlanUpdatedAt time.Time      `gorm:"column:recurrence_plan_updated_at;type:timestamptz;not null;autoUpdateTime" json:"recurrence_plan_updated_at"`
	RecurrencePlanDeletedAt gorm.DeletedAt `gorm:"column:recurrence_plan_deleted_at;index" json:"recurrence_plan_deleted_at,omitempty"`
}

func (RecurrencePlanModel) TableName() string { return "recurrence_plans" }
