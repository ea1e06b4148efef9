package appointmentController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"bookmydoctor/services"
	"bookmydoctor/utils"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errSlotTaken = errors.New("slot already booked")

// BookAppointment books a slot with a doctor on behalf of the calling
// patient. The appointment starts PENDING until the doctor confirms.
func BookAppointment(c *fiber.Ctx) error {
	patientId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		DoctorID  uint   `json:"doctorId"`
		SlotStart string `json:"slotStart"`
		Reason    string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	slotStart, err := time.Parse(time.RFC3339, reqData.SlotStart)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slotStart (expected RFC3339)!", nil)
	}
	if slotStart.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot book a slot in the past!", nil)
	}

	db := database.Database.Db

	var doctor models.DoctorProfile
	if err := db.Preload("User").Where("id = ? AND is_approved = ? AND is_deleted = ?", reqData.DoctorID, true, false).
		First(&doctor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Doctor not found!", nil)
	}

	appointment := models.Appointment{
		PatientID: patientId,
		DoctorID:  doctor.ID,
		SlotStart: slotStart,
		SlotEnd:   slotStart.Add(time.Duration(doctor.SlotMinutes) * time.Minute),
		Status:    models.AppointmentPending,
		Reason:    reqData.Reason,
	}

	// Double-booking guard inside one transaction: check-then-insert so two
	// concurrent bookings for the same slot cannot both land.
	err = db.Transaction(func(tx *gorm.DB) error {
		var clash int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND slot_start = ? AND is_deleted = false AND status NOT IN ?",
				doctor.ID, slotStart,
				[]models.AppointmentStatus{models.AppointmentCancelled, models.AppointmentRejected, models.AppointmentExpired}).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "This slot is already booked!", nil)
		}
		log.Printf("Error booking appointment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book appointment!", nil)
	}

	var patient models.User
	if err := db.First(&patient, patientId).Error; err == nil {
		utils.SendAppointmentBookedEmail(patient.Email, patient.Name, doctor.User.Name, slotStart)
	}
	services.PushNotification(db, doctor.UserID, "New appointment request",
		"A patient has requested an appointment.", fiber.Map{"appointmentId": appointment.ID, "slotStart": slotStart})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Appointment requested successfully.", appointment)
}

// UpdateStatus moves an appointment through its lifecycle. Doctors confirm,
// reject and complete their own appointments; patients (and doctors) cancel.
func UpdateStatus(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	appointmentId, err := c.ParamsInt("id")
	if err != nil || appointmentId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid appointment id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	newStatus := models.AppointmentStatus(reqData.Status)

	db := database.Database.Db

	var appointment models.Appointment
	if err := db.Preload("Patient").Preload("Doctor").Preload("Doctor.User").
		Where("id = ? AND is_deleted = ?", appointmentId, false).First(&appointment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Appointment not found!", nil)
	}

	// Ownership and role checks per transition.
	switch newStatus {
	case models.AppointmentConfirmed, models.AppointmentRejected, models.AppointmentCompleted:
		if role != models.RoleDoctor || appointment.Doctor.UserID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the appointment's doctor can do this!", nil)
		}
	case models.AppointmentCancelled:
		isPatient := appointment.PatientID == userId
		isDoctor := appointment.Doctor.UserID == userId
		if !isPatient && !isDoctor {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not part of this appointment!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown target status!", nil)
	}

	if !appointment.Status.CanTransition(newStatus) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Cannot move appointment from "+string(appointment.Status)+" to "+string(newStatus)+"!", nil)
	}

	appointment.Status = newStatus
	if reqData.Notes != "" {
		appointment.Notes = reqData.Notes
	}
	if err := db.Save(&appointment).Error; err != nil {
		log.Printf("Error updating appointment status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update appointment!", nil)
	}

	// Confirmation opens a payment for the doctor's fee.
	if newStatus == models.AppointmentConfirmed {
		payment := models.Payment{
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			Amount:        appointment.Doctor.ConsultationFee,
			ReceiptNumber: uuid.NewString(),
			Status:        models.PaymentPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			log.Printf("Error creating payment for appointment %d: %v", appointment.ID, err)
		}
	}

	utils.SendAppointmentStatusEmail(appointment.Patient.Email, appointment.Patient.Name,
		appointment.Doctor.User.Name, appointment.SlotStart, newStatus)
	services.PushNotification(db, appointment.PatientID, "Appointment "+string(newStatus),
		"Your appointment status changed.", fiber.Map{"appointmentId": appointment.ID, "status": newStatus})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointment updated successfully.", appointment)
}

// ListMine returns the calling user's appointments: booked ones for
// patients, the practice schedule for doctors.
func ListMine(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 || limit < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pagination parameters!", nil)
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Preload("Patient").Preload("Doctor").Preload("Doctor.User").
		Where("is_deleted = ?", false)

	if role == models.RoleDoctor {
		var profile models.DoctorProfile
		if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).First(&profile).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Doctor profile not found!", nil)
		}
		query = query.Where("doctor_id = ?", profile.ID)
	} else {
		query = query.Where("patient_id = ?", userId)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	var total int64

	query.Model(&models.Appointment{}).Count(&total)
	if err := query.Order("slot_start DESC").Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointments!", nil)
	}

	for i := range appointments {
		appointments[i].Patient.Password = ""
		appointments[i].Doctor.User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointment list.", fiber.Map{
		"appointments": appointments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
