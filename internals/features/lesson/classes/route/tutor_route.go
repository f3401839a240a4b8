// file: internals/features/lesson/classes/route/tutor_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "lesprivat_backend/internals/features/lesson/classes/controller"
	"lesprivat_backend/internals/features/lesson/notifications"
	authMiddleware "lesprivat_backend/internals/middlewares/auth"
)

// ================================
// Tutor routes (jalankan kelas)
// Base path: /api/t
// ================================
func ClassTutorRoutes(api fiber.Router, db *gorm.DB, notify notifications.Dispatcher) {
	ctl := classCtl.NewClassController(db, notify)

	classes := api.Group("/classes",
		authMiddleware.AuthRequired(),
		authMiddleware.TutorOnly("menjalankan kelas"),
	)

	classes.Get("/", ctl.ListClasses)
	classes.Get("/:id", ctl.GetClass)
	classes.Post("/:id/start", ctl.StartClass)
	classes.Post("/:id/complete", ctl.CompleteClass)
}
