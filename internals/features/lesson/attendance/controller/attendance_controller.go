// file: internals/features/lesson/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/features/lesson/attendance/dto"
	"lesprivat_backend/internals/features/lesson/attendance/model"
	"lesprivat_backend/internals/features/lesson/attendance/service"
	helper "lesprivat_backend/internals/helpers"
)

type AttendanceController struct {
	DB      *gorm.DB
	Penalty *service.PenaltyService
	Summary *service.SummaryService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:      db,
		Penalty: &service.PenaltyService{Cfg: configs.LoadPenaltyConfig()},
		Summary: service.NewSummaryService(db),
	}
}

/* ===================== MARK TUTOR ===================== */
// POST /classes/:class_id/attendance/tutor
// Koreksi manual kehadiran tutor; berlaku untuk semua record kelas.
func (ctrl *AttendanceController) MarkTutor(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	var req dto.MarkTutorAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var records []model.AttendanceRecordModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attendance_record_class_id = ?", classID).
			Find(&records).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return gorm.ErrRecordNotFound
		}

		for i := range records {
			rec := &records[i]
			if req.Absent {
				reason := "tidak hadir"
				if req.AbsenceReason != nil {
					reason = *req.AbsenceReason
				}
				ctrl.Penalty.MarkTutorAbsence(rec, reason)
			} else {
				dur := int(rec.AttendanceRecordScheduledEndsAt.Sub(rec.AttendanceRecordScheduledStartsAt).Minutes())
				ctrl.Penalty.MarkTutorAttendance(rec, *req.JoinAt, dur, service.TriggerManual)
				if req.LeaveAt != nil {
					rec.AttendanceRecordTutorLeaveAt = req.LeaveAt
				}
			}
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Record kehadiran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}
	return helper.JsonUpdated(c, "Kehadiran tutor dicatat", dto.FromAttendanceRecordModels(records))
}

/* ===================== MARK STUDENT ===================== */
// POST /classes/:class_id/attendance/students/:student_id
func (ctrl *AttendanceController) MarkStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	var req dto.MarkStudentAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var rec model.AttendanceRecordModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"attendance_record_class_id = ? AND attendance_record_student_id = ?",
			classID, studentID,
		).Take(&rec).Error; err != nil {
			return err
		}

		ctrl.Penalty.MarkStudentAttendance(&rec, service.StudentAttendanceInput{
			StudentID:        studentID,
			Present:          req.Present,
			JoinAt:           req.JoinAt,
			LeaveAt:          req.LeaveAt,
			AbsenceReason:    req.AbsenceReason,
			EngagementRating: req.EngagementRating,
		}, service.TriggerManual)

		return tx.Save(&rec).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Record kehadiran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}
	return helper.JsonUpdated(c, "Kehadiran siswa dicatat", dto.FromAttendanceRecordModel(rec))
}

/* ===================== LIST BY CLASS ===================== */
// GET /classes/:class_id/attendance
func (ctrl *AttendanceController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	var records []model.AttendanceRecordModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_record_class_id = ?", classID).
		Order("attendance_record_created_at ASC").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil record kehadiran")
	}
	return helper.JsonOK(c, "Record kehadiran kelas", dto.FromAttendanceRecordModels(records))
}

/* ===================== SUMMARY ===================== */
// GET /attendance/summary?tutor_id=&student_id=&date_from=&date_to=
func (ctrl *AttendanceController) GetSummary(c *fiber.Ctx) error {
	var f service.SummaryFilter

	if s := c.Query("tutor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tutor_id tidak valid")
		}
		f.TutorID = &id
	}
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		f.StudentID = &id
	}
	if s := c.Query("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from tidak valid (YYYY-MM-DD)")
		}
		f.DateFrom = &t
	}
	if s := c.Query("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to tidak valid (YYYY-MM-DD)")
		}
		// inklusif sampai akhir hari
		end := t.AddDate(0, 0, 1)
		f.DateTo = &end
	}

	summary, err := ctrl.Summary.GetSummary(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ringkasan kehadiran")
	}
	return helper.JsonOK(c, "Ringkasan kehadiran", summary)
}
