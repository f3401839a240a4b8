// file: internals/features/lesson/videos/controller/video_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/configs"
	classDTO "lesprivat_backend/internals/features/lesson/classes/dto"
	"lesprivat_backend/internals/features/lesson/videos/service"
	helper "lesprivat_backend/internals/helpers"
)

type VideoController struct {
	Compliance *service.ComplianceService
}

func NewVideoController(db *gorm.DB) *VideoController {
	return &VideoController{
		Compliance: service.NewComplianceService(db, configs.LoadScheduleConfig()),
	}
}

/* ===================== STATUS ===================== */
// GET /classes/:class_id/video
func (ctrl *VideoController) GetStatus(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	status, err := ctrl.Compliance.Status(c.UserContext(), classID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status video")
	}
	return helper.JsonOK(c, "Status video kelas", status)
}

/* ===================== MARK UPLOADED ===================== */
// POST /classes/:class_id/video/uploaded
func (ctrl *VideoController) MarkUploaded(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	cls, err := ctrl.Compliance.MarkUploaded(c.UserContext(), classID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Upload video dicatat", classDTO.FromClassModel(*cls))
}
