package appointmentRoutes

import (
	appointmentControllers "bookmydoctor/controllers/appointment"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	appointmentValidators "bookmydoctor/validators/appointment"

	"github.com/gofiber/fiber/v2"
)

func SetupAppointmentRoutes(app *fiber.App) {
	appointmentGroup := app.Group("/appointments")

	appointmentGroup.Post("/", appointmentValidators.Book(), middleware.JWTMiddleware, middleware.RequireRoles(models.RolePatient), appointmentControllers.BookAppointment)
	appointmentGroup.Patch("/:id/status", appointmentValidators.UpdateStatus(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleDoctor, models.RolePatient), appointmentControllers.UpdateStatus)
	appointmentGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleDoctor, models.RolePatient), appointmentControllers.ListMine)
}
