// file: internals/features/lesson/classes/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesprivat_backend/internals/features/lesson/classes/model"
	"lesprivat_backend/internals/features/lesson/classes/service"
)

/* ===================== REQUEST ===================== */

type CreateClassRequest struct {
	TutorID         uuid.UUID   `json:"tutor_id" validate:"required"`
	Kind            string      `json:"kind" validate:"required,oneof=one_to_one group demo"`
	StudentID       *uuid.UUID  `json:"student_id,omitempty"`
	StudentIDs      []uuid.UUID `json:"student_ids,omitempty" validate:"omitempty,dive,required"`
	MaxCapacity     int         `json:"max_capacity,omitempty" validate:"omitempty,min=1,max=50"`
	Date            string      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string      `json:"start_time" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"required,min=1"`
}

// ToInput mengubah request menjadi input service.
// Format start_time: "HH:MM" (dikombinasikan dengan date, UTC).
func (r *CreateClassRequest) ToInput() (service.CreateClassInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.CreateClassInput{}, err
	}
	tod, err := parseClock(r.StartTime)
	if err != nil {
		return service.CreateClassInput{}, err
	}
	startsAt := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)

	return service.CreateClassInput{
		TutorID:         r.TutorID,
		Kind:            r.Kind,
		StudentID:       r.StudentID,
		StudentIDs:      r.StudentIDs,
		MaxCapacity:     r.MaxCapacity,
		Date:            date,
		StartsAt:        startsAt,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

type StartClassRequest struct {
	Now *time.Time `json:"now,omitempty"` // override waktu (testing/admin); default time.Now
}

type CompleteClassRequest struct {
	Now      *time.Time               `json:"now,omitempty"`
	Outcome  string                   `json:"outcome" validate:"required,oneof=completed incomplete no_show"`
	Method   string                   `json:"method,omitempty" validate:"omitempty,oneof=auto manual override"`
	Students []StudentAttendanceInput `json:"students,omitempty" validate:"omitempty,dive"`
}

type StudentAttendanceInput struct {
	StudentID        uuid.UUID  `json:"student_id" validate:"required"`
	Present          bool       `json:"present"`
	JoinAt           *time.Time `json:"join_at,omitempty"`
	LeaveAt          *time.Time `json:"leave_at,omitempty"`
	AbsenceReason    *string    `json:"absence_reason,omitempty"`
	EngagementRating *int       `json:"engagement_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type CancelClassRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type RescheduleClassRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
}

func (r *RescheduleClassRequest) Parse() (time.Time, time.Time, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	tod, err := parseClock(r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startsAt := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
	return date, startsAt, nil
}

/* ===================== RESPONSE ===================== */

type ClassResponse struct {
	ClassID           uuid.UUID  `json:"class_id"`
	TutorID           uuid.UUID  `json:"tutor_id"`
	Kind              string     `json:"kind"`
	StudentID         *uuid.UUID `json:"student_id,omitempty"`
	StudentIDs        []string   `json:"student_ids,omitempty"`
	MaxCapacity       int        `json:"max_capacity"`
	Date              string     `json:"date"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            time.Time  `json:"ends_at"`
	DurationMinutes   int        `json:"duration_minutes"`
	Status            string     `json:"status"`
	CompletionOutcome *string    `json:"completion_outcome,omitempty"`
	ActualStartsAt    *time.Time `json:"actual_starts_at,omitempty"`
	ActualEndsAt      *time.Time `json:"actual_ends_at,omitempty"`
	CancelReason      *string    `json:"cancel_reason,omitempty"`
	VideoDeadline     *time.Time `json:"video_deadline,omitempty"`
	VideoUploadedAt   *time.Time `json:"video_uploaded_at,omitempty"`
	RecurrencePlanID  *uuid.UUID `json:"recurrence_plan_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromClassModel(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:           m.ClassID,
		TutorID:           m.ClassTutorID,
		Kind:              m.ClassKind,
		StudentID:         m.ClassStudentID,
		StudentIDs:        m.ClassStudentIDs,
		MaxCapacity:       m.ClassMaxCapacity,
		Date:              m.ClassDate.Format("2006-01-02"),
		StartsAt:          m.ClassStartsAt,
		EndsAt:            m.ClassEndsAt,
		DurationMinutes:   m.ClassDurationMinutes,
		Status:            m.ClassStatus,
		CompletionOutcome: m.ClassCompletionOutcome,
		ActualStartsAt:    m.ClassActualStartsAt,
		ActualEndsAt:      m.ClassActualEndsAt,
		CancelReason:      m.ClassCancelReason,
		VideoDeadline:     m.ClassVideoDeadline,
		VideoUploadedAt:   m.ClassVideoUploadedAt,
		RecurrencePlanID:  m.ClassRecurrencePlanID,
		CreatedAt:         m.ClassCreatedAt,
	}
}

func FromClassModels(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromClassModel(m))
	}
	return out
}

/* ===================== helpers ===================== */

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}
