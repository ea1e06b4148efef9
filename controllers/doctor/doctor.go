package doctorController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"bookmydoctor/services"
	"bookmydoctor/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// UpsertProfile creates or updates the calling doctor's practice profile.
// A new or re-edited profile goes back to unapproved until an admin reviews it.
func UpsertProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

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

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", reqData.ClinicID, false).First(&models.Clinic{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Clinic not found!", nil)
	}

	var profile models.DoctorProfile
	err := db.Where("user_id = ? AND is_deleted = ?", userId, false).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	profile.UserID = userId
	profile.ClinicID = reqData.ClinicID
	profile.Specialization = reqData.Specialization
	profile.ExperienceYears = reqData.ExperienceYears
	profile.ConsultationFee = reqData.ConsultationFee
	profile.AvailableFromHour = reqData.AvailableFromHour
	profile.AvailableToHour = reqData.AvailableToHour
	profile.SlotMinutes = reqData.SlotMinutes
	profile.IsApproved = false

	if err := db.Save(&profile).Error; err != nil {
		log.Printf("Error saving doctor profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved. Pending admin approval.", profile)
}

// ApproveDoctor marks a doctor profile as approved and notifies the doctor.
func ApproveDoctor(c *fiber.Ctx) error {
	profileId, err := c.ParamsInt("id")
	if err != nil || profileId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid profile id!", nil)
	}

	db := database.Database.Db

	var profile models.DoctorProfile
	if err := db.Preload("User").Where("id = ? AND is_deleted = ?", profileId, false).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Doctor profile not found!", nil)
	}

	profile.IsApproved = true
	if err := db.Save(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve profile!", nil)
	}

	utils.SendDoctorApprovedEmail(profile.User.Email, profile.User.Name)
	services.PushNotification(db, profile.UserID, "Profile approved", "Your doctor profile is now visible to patients.", nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Doctor approved successfully.", profile)
}

// ListDoctors returns approved doctors, optionally filtered by
// specialization and clinic city.
func ListDoctors(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Preload("User").Preload("Clinic").
		Where("is_approved = ? AND is_deleted = ?", true, false)

	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization = ?", spec)
	}
	if city := c.Query("city"); city != "" {
		query = query.Joins("JOIN clinics ON clinics.id = doctor_profiles.clinic_id").
			Where("clinics.city = ?", city)
	}

	var doctors []models.DoctorProfile
	if err := query.Find(&doctors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch doctors!", nil)
	}

	for i := range doctors {
		doctors[i].User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Doctor list.", doctors)
}

// GetAvailability computes the free slots of a doctor for a given date from
// the availability window minus booked (non-cancelled) appointments.
func GetAvailability(c *fiber.Ctx) error {
	profileId, err := c.ParamsInt("id")
	if err != nil || profileId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid profile id!", nil)
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or missing date (expected YYYY-MM-DD)!", nil)
	}

	db := database.Database.Db

	var profile models.DoctorProfile
	if err := db.Where("id = ? AND is_approved = ? AND is_deleted = ?", profileId, true, false).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Doctor profile not found!", nil)
	}

	dayStart := now.With(date).BeginningOfDay()
	dayEnd := now.With(date).EndOfDay()

	var booked []models.Appointment
	if err := db.Where("doctor_id = ? AND is_deleted = false AND status NOT IN ? AND slot_start BETWEEN ? AND ?",
		profile.ID,
		[]models.AppointmentStatus{models.AppointmentCancelled, models.AppointmentRejected, models.AppointmentExpired},
		dayStart, dayEnd).
		Find(&booked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointments!", nil)
	}

	taken := make(map[time.Time]bool, len(booked))
	for _, appt := range booked {
		taken[appt.SlotStart] = true
	}

	slotLen := time.Duration(profile.SlotMinutes) * time.Minute
	windowStart := dayStart.Add(time.Duration(profile.AvailableFromHour) * time.Hour)
	windowEnd := dayStart.Add(time.Duration(profile.AvailableToHour) * time.Hour)

	var free []time.Time
	for slot := windowStart; slot.Add(slotLen).Before(windowEnd) || slot.Add(slotLen).Equal(windowEnd); slot = slot.Add(slotLen) {
		if !taken[slot] && slot.After(time.Now()) {
			free = append(free, slot)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Available slots.", fiber.Map{
		"doctorId":    profile.ID,
		"date":        date.Format("2006-01-02"),
		"slotMinutes": profile.SlotMinutes,
		"slots":       free,
	})
}
