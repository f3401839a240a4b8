// file: internals/features/lesson/classes/dto/recurrence_plan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lesprivat_backend/internals/features/lesson/classes/model"
)

type CreateRecurrencePlanRequest struct {
	TutorID         uuid.UUID   `json:"tutor_id" validate:"required"`
	Kind            string      `json:"kind" validate:"required,oneof=one_to_one group demo"`
	StudentID       *uuid.UUID  `json:"student_id,omitempty"`
	StudentIDs      []uuid.UUID `json:"student_ids,omitempty" validate:"omitempty,dive,required"`
	MaxCapacity     int         `json:"max_capacity,omitempty" validate:"omitempty,min=1,max=50"`
	IntervalWeeks   int         `json:"interval_weeks,omitempty" validate:"omitempty,min=1,max=12"`
	DaysOfWeek      []int       `json:"days_of_week" validate:"required,min=1,dive,min=1,max=7"`
	StartTime       string      `json:"start_time" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"required,min=1"`
	StartDate       string      `json:"start_date" validate:"required,datetime=2006-01-02"`
	UntilDate       *string     `json:"until_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxOccurrences  *int        `json:"max_occurrences,omitempty" validate:"omitempty,min=1,max=200"`
}

func (r *CreateRecurrencePlanRequest) ToModel() (*model.RecurrencePlanModel, error) {
	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	var untilDate *time.Time
	if r.UntilDate != nil {
		u, err := time.Parse("2006-01-02", *r.UntilDate)
		if err != nil {
			return nil, err
		}
		untilDate = &u
	}

	interval := r.IntervalWeeks
	if interval <= 0 {
		interval = 1
	}
	days := make(pq.Int64Array, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		days = append(days, int64(d))
	}
	studentIDs := make(pq.StringArray, 0, len(r.StudentIDs))
	for _, id := range r.StudentIDs {
		studentIDs = append(studentIDs, id.String())
	}

	return &model.RecurrencePlanModel{
		RecurrencePlanTutorID:         r.TutorID,
		RecurrencePlanKind:            r.Kind,
		RecurrencePlanStudentID:       r.StudentID,
		RecurrencePlanStudentIDs:      studentIDs,
		RecurrencePlanMaxCapacity:     r.MaxCapacity,
		RecurrencePlanFrequency:       model.RecurrenceFrequencyWeekly,
		RecurrencePlanIntervalWeeks:   interval,
		RecurrencePlanDaysOfWeek:      days,
		RecurrencePlanStartTimeOfDay:  r.StartTime,
		RecurrencePlanDurationMinutes: r.DurationMinutes,
		RecurrencePlanStartDate:       startDate,
		RecurrencePlanUntilDate:       untilDate,
		RecurrencePlanMaxOccurrences:  r.MaxOccurrences,
	}, nil
}

type RecurrencePlanResponse struct {
	RecurrencePlanID uuid.UUID `json:"recurrence_plan_id"`
	TutorID          uuid.UUID `json:"tutor_id"`
	Kind             string    `json:"kind"`
	IntervalWeeks    int       `json:"interval_weeks"`
	DaysOfWeek       []int64   `json:"days_of_week"`
	StartTime        string    `json:"start_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	StartDate        string    `json:"start_date"`
	UntilDate        *string   `json:"until_date,omitempty"`
	MaxOccurrences   *int      `json:"max_occurrences,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromRecurrencePlanModel(m model.RecurrencePlanModel) RecurrencePlanResponse {
	var until *string
	if m.RecurrencePlanUntilDate != nil {
		s := m.RecurrencePlanUntilDate.Format("2006-01-02")
		until = &s
	}
	return RecurrencePlanResponse{
		RecurrencePlanID: m.RecurrencePlanID,
		TutorID:          m.RecurrencePlanTutorID,
		Kind:             m.RecurrencePlanKind,
		IntervalWeeks:    m.RecurrencePlanIntervalWeeks,
		DaysOfWeek:       m.RecurrencePlanDaysOfWeek,
		StartTime:        m.RecurrencePlanStartTimeOfDay,
		DurationMinutes:  m.RecurrencePlanDurationMinutes,
		StartDate:        m.RecurrencePlanStartDate.Format("2006-01-02"),
		UntilDate:        until,
		MaxOccurrences:   m.RecurrencePlanMaxOccurrences,
		CreatedAt:        m.RecurrencePlanCreatedAt,
	}
}
