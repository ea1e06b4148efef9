package paymentRoutes

import (
	paymentControllers "bookmydoctor/controllers/payment"
	"bookmydoctor/middleware"
	"bookmydoctor/models"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRoles(models.RolePatient), paymentControllers.ListMine)
	paymentGroup.Post("/:id/pay", middleware.JWTMiddleware, middleware.RequireRoles(models.RolePatient), paymentControllers.Pay)
	paymentGroup.Post("/:id/refund", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), paymentControllers.Refund)
}
