// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "lesprivat_backend/internals/features/lesson/attendance/route"
	classRoute "lesprivat_backend/internals/features/lesson/classes/route"
	"lesprivat_backend/internals/features/lesson/notifications"
	videoRoute "lesprivat_backend/internals/features/lesson/videos/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	notify := notifications.NewLogDispatcher()

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a")

	log.Println("[INFO] Setting up TUTOR group...")
	tutor := app.Group("/api/t")

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Class routes...")
	classRoute.ClassAdminRoutes(admin, db, notify)
	classRoute.ClassTutorRoutes(tutor, db, notify)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Video routes...")
	videoRoute.VideoTutorRoutes(tutor, db)
}
