// file: internals/features/lesson/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesprivat_backend/internals/features/lesson/attendance/model"
)

/* ===================== REQUEST ===================== */

// MarkTutorAttendanceRequest: input manual kehadiran tutor.
// Absent=true → penalti flat absence; selain itu JoinAt wajib.
type MarkTutorAttendanceRequest struct {
	Absent        bool       `json:"absent"`
	AbsenceReason *string    `json:"absence_reason,omitempty" validate:"omitempty,min=3"`
	JoinAt        *time.Time `json:"join_at,omitempty" validate:"required_unless=Absent true"`
	LeaveAt       *time.Time `json:"leave_at,omitempty"`
}

type MarkStudentAttendanceRequest struct {
	Present          bool       `json:"present"`
	JoinAt           *time.Time `json:"join_at,omitempty"`
	LeaveAt          *time.Time `json:"leave_at,omitempty"`
	AbsenceReason    *string    `json:"absence_reason,omitempty" validate:"omitempty,min=3"`
	EngagementRating *int       `json:"engagement_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

/* ===================== RESPONSE ===================== */

type AttendanceRecordResponse struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id"`
	ClassID            uuid.UUID `json:"class_id"`
	TutorID            uuid.UUID `json:"tutor_id"`
	StudentID          uuid.UUID `json:"student_id"`

	TutorPresent   bool `json:"tutor_present"`
	StudentPresent bool `json:"student_present"`

	ScheduledStartsAt time.Time  `json:"scheduled_starts_at"`
	ScheduledEndsAt   time.Time  `json:"scheduled_ends_at"`
	TutorJoinAt       *time.Time `json:"tutor_join_at,omitempty"`
	TutorLeaveAt      *time.Time `json:"tutor_leave_at,omitempty"`
	StudentJoinAt     *time.Time `json:"student_join_at,omitempty"`
	StudentLeaveAt    *time.Time `json:"student_leave_at,omitempty"`

	TutorLateMinutes       int `json:"tutor_late_minutes"`
	StudentLateMinutes     int `json:"student_late_minutes"`
	TutorEarlyLeaveMinutes int `json:"tutor_early_leave_minutes"`

	LateArrivalPenalty     float64  `json:"late_arrival_penalty"`
	EarlyCompletionPenalty float64  `json:"early_completion_penalty"`
	AbsencePenalty         float64  `json:"absence_penalty"`
	PenaltyAmount          float64  `json:"penalty_amount"`
	PenaltyReasons         []string `json:"penalty_reasons,omitempty"`
	AbsenceReason          *string  `json:"absence_reason,omitempty"`

	ExpectedDurationMinutes int     `json:"expected_duration_minutes"`
	ActualDurationMinutes   int     `json:"actual_duration_minutes"`
	CompletionPercentage    float64 `json:"completion_percentage"`
	PunctualityScore        float64 `json:"punctuality_score"`

	AutoMarked   bool       `json:"auto_marked"`
	AutoMarkedAt *time.Time `json:"auto_marked_at,omitempty"`
}

func FromAttendanceRecordModel(m model.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:      m.AttendanceRecordID,
		ClassID:                 m.AttendanceRecordClassID,
		TutorID:                 m.AttendanceRecordTutorID,
		StudentID:               m.AttendanceRecordStudentID,
		TutorPresent:            m.AttendanceRecordTutorPresent,
		StudentPresent:          m.AttendanceRecordStudentPresent,
		ScheduledStartsAt:       m.AttendanceRecordScheduledStartsAt,
		ScheduledEndsAt:         m.AttendanceRecordScheduledEndsAt,
		TutorJoinAt:             m.AttendanceRecordTutorJoinAt,
		TutorLeaveAt:            m.AttendanceRecordTutorLeaveAt,
		StudentJoinAt:           m.AttendanceRecordStudentJoinAt,
		StudentLeaveAt:          m.AttendanceRecordStudentLeaveAt,
		TutorLateMinutes:        m.AttendanceRecordTutorLateMinutes,
		StudentLateMinutes:      m.AttendanceRecordStudentLateMinutes,
		TutorEarlyLeaveMinutes:  m.AttendanceRecordTutorEarlyLeaveMinutes,
		LateArrivalPenalty:      m.AttendanceRecordLateArrivalPenalty,
		EarlyCompletionPenalty:  m.AttendanceRecordEarlyCompletionPenalty,
		AbsencePenalty:          m.AttendanceRecordAbsencePenalty,
		PenaltyAmount:           m.AttendanceRecordPenaltyAmount,
		PenaltyReasons:          m.AttendanceRecordPenaltyReasons,
		AbsenceReason:           m.AttendanceRecordAbsenceReason,
		ExpectedDurationMinutes: m.AttendanceRecordExpectedDurationMinutes,
		ActualDurationMinutes:   m.AttendanceRecordActualDurationMinutes,
		CompletionPercentage:    m.AttendanceRecordCompletionPercentage,
		PunctualityScore:        m.AttendanceRecordPunctualityScore,
		AutoMarked:              m.AttendanceRecordAutoMarked,
		AutoMarkedAt:            m.AttendanceRecordAutoMarkedAt,
	}
}

func FromAttendanceRecordModels(ms []model.AttendanceRecordModel) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromAttendanceRecordModel(m))
	}
	return out
}
