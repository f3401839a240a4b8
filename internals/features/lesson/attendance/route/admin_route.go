// file: internals/features/lesson/attendance/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtl "lesprivat_backend/internals/features/lesson/attendance/controller"
	authMiddleware "lesprivat_backend/internals/middlewares/auth"
)

// ================================
// Admin routes (koreksi & rekap kehadiran)
// Base path: /api/a
// ================================
func AttendanceAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := attCtl.NewAttendanceController(db)

	classes := api.Group("/classes",
		authMiddleware.AuthRequired(),
		authMiddleware.AdminOnly("mengelola kehadiran"),
	)

	classes.Get("/:class_id/attendance", ctl.ListByClass)
	classes.Post("/:class_id/attendance/tutor", ctl.MarkTutor)
	classes.Post("/:class_id/attendance/students/:student_id", ctl.MarkStudent)

	summary := api.Group("/attendance",
		authMiddleware.AuthRequired(),
		authMiddleware.AdminOnly("melihat rekap kehadiran"),
	)
	summary.Get("/summary", ctl.GetSummary)
}
