package notificationRoutes

import (
	notificationControllers "bookmydoctor/controllers/notification"
	"bookmydoctor/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications")

	notificationGroup.Get("/", middleware.JWTMiddleware, notificationControllers.ListMine)
	notificationGroup.Patch("/:id/read", middleware.JWTMiddleware, notificationControllers.MarkRead)
}
