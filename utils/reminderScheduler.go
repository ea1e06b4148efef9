package utils

import (
	"bookmydoctor/database"
	"bookmydoctor/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

func logScheduler(message string) {
	log.Printf("[APPOINTMENT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendUpcomingReminders emails patients for tomorrow's confirmed appointments.
func sendUpcomingReminders() {
	db := database.Database.Db

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := now.With(tomorrow).BeginningOfDay()
	dayEnd := now.With(tomorrow).EndOfDay()

	var appointments []models.Appointment
	if err := db.Where("status = ? AND reminder_sent = false AND is_deleted = false AND slot_start BETWEEN ? AND ?",
		models.AppointmentConfirmed, dayStart, dayEnd).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.User").
		Find(&appointments).Error; err != nil {
		logScheduler("Error fetching appointments for reminders: " + err.Error())
		return
	}

	for _, appt := range appointments {
		SendAppointmentReminderEmail(appt.Patient.Email, appt.Patient.Name, appt.Doctor.User.Name, appt.SlotStart)

		if err := db.Model(&models.Appointment{}).
			Where("id = ?", appt.ID).
			Update("reminder_sent", true).Error; err != nil {
			logScheduler("Error marking reminder sent: " + err.Error())
		}
	}

	if len(appointments) > 0 {
		logScheduler("Reminders queued: " + time.Now().Format("15:04") + " batch")
	}
}

// expireStalePending moves PENDING appointments whose slot has passed to EXPIRED.
func expireStalePending() {
	db := database.Database.Db

	res := db.Model(&models.Appointment{}).
		Where("status = ? AND is_deleted = false AND slot_start < ?", models.AppointmentPending, time.Now()).
		Update("status", models.AppointmentExpired)
	if res.Error != nil {
		logScheduler("Error expiring stale appointments: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Expired stale pending appointments")
	}
}

// StartAppointmentScheduler runs the reminder and expiry sweeps hourly.
func StartAppointmentScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		sendUpcomingReminders()
		expireStalePending()
	}); err != nil {
		log.Fatalf("Failed to register appointment scheduler: %v", err)
	}

	c.Start()
	logScheduler("Appointment scheduler started")
	return c
}
