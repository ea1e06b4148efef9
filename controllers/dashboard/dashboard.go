package dashboardController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// Admin returns platform-wide counts: users by role, appointments by status,
// settled revenue.
func Admin(c *fiber.Ctx) error {
	db := database.Database.Db

	usersByRole := map[string]int64{}
	for _, role := range []models.Role{models.RoleAdmin, models.RoleDoctor, models.RolePatient} {
		var count int64
		db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", role, false).Count(&count)
		usersByRole[role.String()] = count
	}

	appointmentsByStatus := map[string]int64{}
	for _, status := range []models.AppointmentStatus{
		models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCompleted,
		models.AppointmentCancelled, models.AppointmentRejected, models.AppointmentExpired,
	} {
		var count int64
		db.Model(&models.Appointment{}).Where("status = ? AND is_deleted = ?", status, false).Count(&count)
		appointmentsByStatus[string(status)] = count
	}

	var revenue float64
	db.Model(&models.Payment{}).Where("status = ? AND is_deleted = ?", models.PaymentPaid, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	var pendingDoctors int64
	db.Model(&models.DoctorProfile{}).Where("is_approved = ? AND is_deleted = ?", false, false).Count(&pendingDoctors)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin dashboard.", fiber.Map{
		"usersByRole":            usersByRole,
		"appointmentsByStatus":   appointmentsByStatus,
		"revenue":                revenue,
		"doctorsPendingApproval": pendingDoctors,
	})
}

// Doctor returns the calling doctor's schedule for today, upcoming load and
// settled earnings.
func Doctor(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var profile models.DoctorProfile
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Doctor profile not found!", nil)
	}

	dayStart := now.BeginningOfDay()
	dayEnd := now.EndOfDay()

	var today []models.Appointment
	db.Preload("Patient").
		Where("doctor_id = ? AND is_deleted = false AND status = ? AND slot_start BETWEEN ? AND ?",
			profile.ID, models.AppointmentConfirmed, dayStart, dayEnd).
		Order("slot_start").Find(&today)
	for i := range today {
		today[i].Patient.Password = ""
	}

	var upcoming int64
	db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND is_deleted = false AND status IN ? AND slot_start > ?",
			profile.ID,
			[]models.AppointmentStatus{models.AppointmentPending, models.AppointmentConfirmed},
			time.Now()).
		Count(&upcoming)

	var earnings float64
	db.Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where("appointments.doctor_id = ? AND payments.status = ? AND payments.is_deleted = false",
			profile.ID, models.PaymentPaid).
		Select("COALESCE(SUM(payments.amount), 0)").Scan(&earnings)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Doctor dashboard.", fiber.Map{
		"today":    today,
		"upcoming": upcoming,
		"earnings": earnings,
		"approved": profile.IsApproved,
	})
}

// Patient returns the calling patient's upcoming appointments, recent
// payments and unread notification count.
func Patient(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var upcoming []models.Appointment
	db.Preload("Doctor").Preload("Doctor.User").
		Where("patient_id = ? AND is_deleted = false AND status IN ? AND slot_start > ?",
			userId,
			[]models.AppointmentStatus{models.AppointmentPending, models.AppointmentConfirmed},
			time.Now()).
		Order("slot_start").Limit(10).Find(&upcoming)
	for i := range upcoming {
		upcoming[i].Doctor.User.Password = ""
	}

	var payments []models.Payment
	db.Where("patient_id = ? AND is_deleted = ?", userId, false).
		Order("created_at DESC").Limit(5).Find(&payments)

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userId, false, false).Count(&unread)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Patient dashboard.", fiber.Map{
		"upcoming":            upcoming,
		"recentPayments":      payments,
		"unreadNotifications": unread,
	})
}
