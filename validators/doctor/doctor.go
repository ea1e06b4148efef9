package doctorValidator

import (
	"bookmydoctor/middleware"

	"github.com/gofiber/fiber/v2"
)

// Profile validator middleware
func Profile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClinicID          uint    `json:"clinicId"`
			Specialization    string  `json:"specialization"`
			ExperienceYears   int     `json:"experienceYears"`
			ConsultationFee   float64 `json:"consultationFee"`
			AvailableFromHour int     `json:"availableFromHour"`
			AvailableToHour   int     `json:"availableToHour"`
			SlotMinutes       int     `json:"slotMinutes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ClinicID == 0 {
			errors["clinicId"] = "Clinic id is required!"
		}
		if reqData.Specialization == "" {
			errors["specialization"] = "Specialization is required!"
		}
		if reqData.ConsultationFee < 0 {
			errors["consultationFee"] = "Consultation fee cannot be negative!"
		}
		if reqData.AvailableFromHour < 0 || reqData.AvailableFromHour > 23 ||
			reqData.AvailableToHour < 1 || reqData.AvailableToHour > 24 ||
			reqData.AvailableFromHour >= reqData.AvailableToHour {
			errors["availability"] = "Availability window must be within 0-24 and start before it ends!"
		}
		if reqData.SlotMinutes < 5 || reqData.SlotMinutes > 120 {
			errors["slotMinutes"] = "Slot length must be between 5 and 120 minutes!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
