package clinicRoutes

import (
	clinicControllers "bookmydoctor/controllers/clinic"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	clinicValidators "bookmydoctor/validators/clinic"

	"github.com/gofiber/fiber/v2"
)

func SetupClinicRoutes(app *fiber.App) {
	clinicGroup := app.Group("/clinics")

	clinicGroup.Get("/", clinicControllers.ListClinics)
	clinicGroup.Post("/", clinicValidators.Upsert(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), clinicControllers.CreateClinic)
	clinicGroup.Put("/:id", clinicValidators.Upsert(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), clinicControllers.UpdateClinic)
	clinicGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), clinicControllers.DeleteClinic)
}
