// file: internals/features/lesson/classes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "lesprivat_backend/internals/features/lesson/classes/controller"
	"lesprivat_backend/internals/features/lesson/notifications"
	authMiddleware "lesprivat_backend/internals/middlewares/auth"
)

// ================================
// Admin routes (manage jadwal)
// Base path: /api/a
// ================================
func ClassAdminRoutes(api fiber.Router, db *gorm.DB, notify notifications.Dispatcher) {
	ctl := classCtl.NewClassController(db, notify)
	recCtl := classCtl.NewRecurrenceController(db, ctl.Lifecycle)

	classes := api.Group("/classes",
		authMiddleware.AuthRequired(),
		authMiddleware.AdminOnly("mengelola jadwal kelas"),
	)

	classes.Get("/", ctl.ListClasses)
	classes.Get("/:id", ctl.GetClass)
	classes.Post("/", ctl.CreateClass)
	classes.Post("/:id/cancel", ctl.CancelClass)
	classes.Post("/:id/reschedule", ctl.RescheduleClass)
	classes.Delete("/:id", ctl.DeleteClass)

	plans := api.Group("/recurrence-plans",
		authMiddleware.AuthRequired(),
		authMiddleware.AdminOnly("mengelola rencana kelas berulang"),
	)

	plans.Get("/", recCtl.ListPlans)
	plans.Post("/", recCtl.CreatePlan)
	plans.Post("/:id/generate", recCtl.GenerateClasses)
}
