// file: internals/features/lesson/videos/route/tutor_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	videoCtl "lesprivat_backend/internals/features/lesson/videos/controller"
	authMiddleware "lesprivat_backend/internals/middlewares/auth"
)

// ================================
// Tutor routes (kepatuhan video)
// Base path: /api/t
// ================================
func VideoTutorRoutes(api fiber.Router, db *gorm.DB) {
	ctl := videoCtl.NewVideoController(db)

	classes := api.Group("/classes",
		authMiddleware.AuthRequired(),
		authMiddleware.TutorOnly("mengelola video kelas"),
	)

	classes.Get("/:class_id/video", ctl.GetStatus)
	classes.Post("/:class_id/video/uploaded", ctl.MarkUploaded)
}
