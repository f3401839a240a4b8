package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "lesprivat_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global sesuai urutan:
// recovery → cors → rate limiter → request logger
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(RateLimiterMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
}
