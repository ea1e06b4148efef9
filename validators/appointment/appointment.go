package appointmentValidator

import (
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Book validator middleware
func Book() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DoctorID  uint   `json:"doctorId"`
			SlotStart string `json:"slotStart"`
			Reason    string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DoctorID == 0 {
			errors["doctorId"] = "Doctor id is required!"
		}
		if reqData.SlotStart == "" {
			errors["slotStart"] = "Slot start is required!"
		} else if _, err := time.Parse(time.RFC3339, reqData.SlotStart); err != nil {
			errors["slotStart"] = "Slot start must be RFC3339!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
			Notes  string `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch models.AppointmentStatus(reqData.Status) {
		case models.AppointmentConfirmed, models.AppointmentRejected,
			models.AppointmentCancelled, models.AppointmentCompleted:
		default:
			errors["status"] = "Status must be CONFIRMED, REJECTED, CANCELLED or COMPLETED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
