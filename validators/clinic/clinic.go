package clinicValidator

import (
	"bookmydoctor/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Upsert validator middleware for clinic create/update
func Upsert() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name"`
			Address string `json:"address"`
			City    string `json:"city"`
			Phone   string `json:"phone"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Clinic name must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.City) == "" {
			errors["city"] = "City is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClinic", reqData)
		return c.Next()
	}
}
