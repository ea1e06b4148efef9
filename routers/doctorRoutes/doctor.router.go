package doctorRoutes

import (
	doctorControllers "bookmydoctor/controllers/doctor"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	doctorValidators "bookmydoctor/validators/doctor"

	"github.com/gofiber/fiber/v2"
)

func SetupDoctorRoutes(app *fiber.App) {
	doctorGroup := app.Group("/doctors")

	doctorGroup.Get("/", doctorControllers.ListDoctors)
	doctorGroup.Get("/:id/availability", doctorControllers.GetAvailability)
	doctorGroup.Put("/profile", doctorValidators.Profile(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleDoctor), doctorControllers.UpsertProfile)
	doctorGroup.Patch("/:id/approve", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), doctorControllers.ApproveDoctor)
}
