// file: internals/features/lesson/classes/controller/recurrence_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/features/lesson/classes/dto"
	"lesprivat_backend/internals/features/lesson/classes/model"
	"lesprivat_backend/internals/features/lesson/classes/service"
	helper "lesprivat_backend/internals/helpers"
)

type RecurrenceController struct {
	DB         *gorm.DB
	Recurrence *service.RecurrenceService
}

func NewRecurrenceController(db *gorm.DB, lifecycle *service.LifecycleService) *RecurrenceController {
	return &RecurrenceController{
		DB:         db,
		Recurrence: &service.RecurrenceService{DB: db, Lifecycle: lifecycle},
	}
}

/* ===================== CREATE PLAN ===================== */
// POST /recurrence-plans
func (ctrl *RecurrenceController) CreatePlan(c *fiber.Ctx) error {
	var req dto.CreateRecurrencePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	plan, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(plan).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan rencana berulang")
	}
	return helper.JsonCreated(c, "Rencana kelas berulang dibuat", dto.FromRecurrencePlanModel(*plan))
}

/* ===================== LIST PLANS ===================== */
// GET /recurrence-plans?tutor_id=
func (ctrl *RecurrenceController) ListPlans(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.RecurrencePlanModel{})
	if s := c.Query("tutor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tutor_id tidak valid")
		}
		q = q.Where("recurrence_plan_tutor_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rencana")
	}

	var plans []model.RecurrencePlanModel
	if err := q.Order("recurrence_plan_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&plans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar rencana")
	}

	resp := make([]dto.RecurrencePlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, dto.FromRecurrencePlanModel(p))
	}
	return helper.JsonList(c, "Daftar rencana berulang", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== GENERATE ===================== */
// POST /recurrence-plans/:id/generate
func (ctrl *RecurrenceController) GenerateClasses(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res, err := ctrl.Recurrence.GenerateClasses(c.UserContext(), planID, time.Now().UTC())
	if err != nil {
		return mapDomainError(c, err)
	}
	return helper.JsonOK(c, "Generate kelas selesai", res)
}
