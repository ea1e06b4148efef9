package dashboardRoutes

import (
	dashboardControllers "bookmydoctor/controllers/dashboard"
	"bookmydoctor/middleware"
	"bookmydoctor/models"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware)

	dashboardGroup.Get("/admin", middleware.RequireRoles(models.RoleAdmin), dashboardControllers.Admin)
	dashboardGroup.Get("/doctor", middleware.RequireRoles(models.RoleDoctor), dashboardControllers.Doctor)
	dashboardGroup.Get("/patient", middleware.RequireRoles(models.RolePatient), dashboardControllers.Patient)
}
