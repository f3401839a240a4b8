// file: internals/features/lesson/classes/controller/class_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/constants"
	attService "lesprivat_backend/internals/features/lesson/attendance/service"
	"lesprivat_backend/internals/features/lesson/classes/dto"
	"lesprivat_backend/internals/features/lesson/classes/model"
	"lesprivat_backend/internals/features/lesson/classes/service"
	"lesprivat_backend/internals/features/lesson/notifications"
	helper "lesprivat_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
	SchedCfg  configs.ScheduleConfig
}

func NewClassController(db *gorm.DB, notify notifications.Dispatcher) *ClassController {
	schedCfg := configs.LoadScheduleConfig()
	return &ClassController{
		DB:        db,
		Lifecycle: service.NewLifecycleService(db, configs.LoadPenaltyConfig(), schedCfg, notify),
		SchedCfg:  schedCfg,
	}
}

// mapDomainError memetakan error domain ke status HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return helper.JsonError(c, fiber.StatusBadRequest, vErr.Error())
	}
	var cErr *service.ConflictError
	if errors.As(err, &cErr) {
		return helper.JsonError(c, fiber.StatusConflict, cErr.Error())
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	if errors.Is(err, service.ErrConcurrency) {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* ===================== CREATE ===================== */
// POST /classes
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	in, err := req.ToInput()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid")
	}

	created, err := ctrl.Lifecycle.CreateClass(c.UserContext(), in, time.Now().UTC())
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dijadwalkan", dto.FromClassModel(*created))
}

/* ===================== LIST ===================== */
// GET /classes?tutor_id=&status=&date_from=&date_to=
func (ctrl *ClassController) ListClasses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ClassModel{})
	if s := c.Query("tutor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tutor_id tidak valid")
		}
		q = q.Where("class_tutor_id = ?", id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("class_status = ?", s)
	}
	if s := c.Query("date_from"); s != "" {
		q = q.Where("class_date >= ?", s)
	}
	if s := c.Query("date_to"); s != "" {
		q = q.Where("class_date <= ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}

	var classes []model.ClassModel
	if err := q.Order("class_starts_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kelas")
	}

	return helper.JsonList(c, "Daftar kelas", dto.FromClassModels(classes),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== DETAIL ===================== */
// GET /classes/:id
func (ctrl *ClassController) GetClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var cls model.ClassModel
	if err := ctrl.DB.Where("class_id = ?", classID).Take(&cls).Error; err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail kelas", dto.FromClassModel(cls))
}

// ensureTutorOwnsClass: role tutor hanya boleh memulai/menyelesaikan
// kelasnya sendiri. Admin lolos tanpa cek kepemilikan.
func (ctrl *ClassController) ensureTutorOwnsClass(c *fiber.Ctx, classID uuid.UUID) error {
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	if role != constants.RoleTutor {
		return nil
	}

	tutorID, err := helper.GetTutorIDFromToken(c)
	if err != nil {
		return err
	}
	var cls model.ClassModel
	if err := ctrl.DB.Select("class_tutor_id").
		Where("class_id = ?", classID).
		Take(&cls).Error; err != nil {
		return mapDomainError(c, err)
	}
	if cls.ClassTutorID != tutorID {
		return helper.JsonError(c, fiber.StatusForbidden, "Kelas ini bukan milik tutor yang login")
	}
	return nil
}

/* ===================== START ===================== */
// POST /classes/:id/start
func (ctrl *ClassController) StartClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.ensureTutorOwnsClass(c, classID); err != nil {
		return err
	}

	var req dto.StartClassRequest
	_ = c.BodyParser(&req) // body opsional

	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	cls, err := ctrl.Lifecycle.StartClass(c.UserContext(), classID, now)
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas dimulai", dto.FromClassModel(*cls))
}

/* ===================== COMPLETE ===================== */
// POST /classes/:id/complete
func (ctrl *ClassController) CompleteClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.ensureTutorOwnsClass(c, classID); err != nil {
		return err
	}

	var req dto.CompleteClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}
	method := req.Method
	if method == "" {
		method = "auto"
	}

	cls, err := ctrl.Lifecycle.CompleteClass(c.UserContext(), classID, now, req.Outcome, method, toStudentInputs(req.Students))
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas diselesaikan", dto.FromClassModel(*cls))
}

func toStudentInputs(in []dto.StudentAttendanceInput) []attService.StudentAttendanceInput {
	out := make([]attService.StudentAttendanceInput, 0, len(in))
	for _, s := range in {
		out = append(out, attService.StudentAttendanceInput{
			StudentID:        s.StudentID,
			Present:          s.Present,
			JoinAt:           s.JoinAt,
			LeaveAt:          s.LeaveAt,
			AbsenceReason:    s.AbsenceReason,
			EngagementRating: s.EngagementRating,
		})
	}
	return out
}

/* ===================== CANCEL ===================== */
// POST /classes/:id/cancel
func (ctrl *ClassController) CancelClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.CancelClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	cls, err := ctrl.Lifecycle.CancelClass(c.UserContext(), classID, req.Reason, time.Now().UTC())
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas dibatalkan", dto.FromClassModel(*cls))
}

/* ===================== RESCHEDULE ===================== */
// POST /classes/:id/reschedule
func (ctrl *ClassController) RescheduleClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.RescheduleClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	newDate, newStartsAt, err := req.Parse()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid")
	}

	cls, err := ctrl.Lifecycle.RescheduleClass(c.UserContext(), classID, newDate, newStartsAt, time.Now().UTC())
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas dijadwalkan ulang", dto.FromClassModel(*cls))
}

/* ===================== DELETE ===================== */
// DELETE /classes/:id
func (ctrl *ClassController) DeleteClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Lifecycle.DeleteClass(c.UserContext(), classID); err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Kelas dihapus", fiber.Map{"class_id": classID})
}
