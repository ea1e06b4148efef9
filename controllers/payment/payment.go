package paymentController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"bookmydoctor/services"
	"bookmydoctor/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Pay settles a pending payment for the calling patient. The gateway leg is
// simulated; the receipt number was assigned when the payment opened.
func Pay(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentId, err := c.ParamsInt("id")
	if err != nil || paymentId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment id!", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("id = ? AND is_deleted = ?", paymentId, false).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if payment.PatientID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This payment does not belong to you!", nil)
	}
	if payment.Status != models.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment is not pending!", nil)
	}

	// Guarded update: a payment settles at most once even under concurrent
	// submissions.
	res := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentPending).
		Update("status", models.PaymentPaid)
	if res.Error != nil {
		log.Printf("Error settling payment %d: %v", payment.ID, res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle payment!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment was already settled!", nil)
	}
	payment.Status = models.PaymentPaid

	var patient models.User
	if err := db.First(&patient, payment.PatientID).Error; err == nil {
		utils.SendPaymentReceiptEmail(patient.Email, patient.Name, payment.ReceiptNumber, payment.Amount)
	}
	services.PushNotification(db, payment.PatientID, "Payment received",
		"Your payment has been received.", fiber.Map{"paymentId": payment.ID, "receipt": payment.ReceiptNumber})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful.", payment)
}

// Refund marks a paid payment as refunded. Admin-only, used after a
// cancelled appointment.
func Refund(c *fiber.Ctx) error {
	paymentId, err := c.ParamsInt("id")
	if err != nil || paymentId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment id!", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Preload("Appointment").Where("id = ? AND is_deleted = ?", paymentId, false).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if payment.Status != models.PaymentPaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only paid payments can be refunded!", nil)
	}
	if payment.Appointment.Status != models.AppointmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Refunds require a cancelled appointment!", nil)
	}

	payment.Status = models.PaymentRefunded
	if err := db.Save(&payment).Error; err != nil {
		log.Printf("Error refunding payment %d: %v", payment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refund payment!", nil)
	}

	services.PushNotification(db, payment.PatientID, "Payment refunded",
		"Your payment has been refunded.", fiber.Map{"paymentId": payment.ID})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment refunded.", payment)
}

// ListMine lists the calling patient's payments.
func ListMine(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var payments []models.Payment
	if err := db.Where("patient_id = ? AND is_deleted = ?", userId, false).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment list.", payments)
}
