package authRoutes

import (
	authControllers "bookmydoctor/controllers/auth"
	"bookmydoctor/middleware"
	authValidators "bookmydoctor/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/request-otp", authValidators.RequestOTP(), authControllers.RequestOTP)
	authGroup.Post("/verify-otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Patch("/reset-password", authValidators.ResetPassword(), middleware.JWTMiddleware, authControllers.ResetPassword)
	authGroup.Put("/change-password", middleware.JWTMiddleware, authControllers.ChangePassword)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authControllers.LoginHistory)
}
