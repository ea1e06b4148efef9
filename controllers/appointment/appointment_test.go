package appointmentController_test

import (
	"bookmydoctor/config"
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	appointmentRoutes "bookmydoctor/routers/appointmentRoutes"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	app          *fiber.App
	patient      models.User
	doctorUser   models.User
	doctor       models.DoctorProfile
	patientToken string
	doctorToken  string
}

func setupAppointmentTest(t *testing.T) *fixture {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		JWTIssuer:        "bookmydoctor",
		JWTAudience:      "bookmydoctor-web",
		JWTExpiryMinutes: 10,
		OTPExpiryMinutes: 5,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Clinic{}, &models.DoctorProfile{},
		&models.Appointment{}, &models.Payment{}, &models.Notification{},
	))
	database.Database = database.DbInstance{Db: db}

	patient := models.User{Name: "Asha Verma", Email: "asha@x.com", Role: models.RolePatient, Password: "x", IsEmailVerified: true}
	require.NoError(t, db.Create(&patient).Error)

	doctorUser := models.User{Name: "Ravi Kumar", Email: "ravi@x.com", Role: models.RoleDoctor, Password: "x", IsEmailVerified: true}
	require.NoError(t, db.Create(&doctorUser).Error)

	clinic := models.Clinic{Name: "City Care", City: "Chennai"}
	require.NoError(t, db.Create(&clinic).Error)

	doctor := models.DoctorProfile{
		UserID:            doctorUser.ID,
		ClinicID:          clinic.ID,
		Specialization:    "Cardiology",
		ConsultationFee:   500,
		AvailableFromHour: 9,
		AvailableToHour:   17,
		SlotMinutes:       30,
		IsApproved:        true,
	}
	require.NoError(t, db.Create(&doctor).Error)

	patientToken, err := middleware.GenerateJWT(patient.ID, patient.Name, patient.Role, patient.Email)
	require.NoError(t, err)
	doctorToken, err := middleware.GenerateJWT(doctorUser.ID, doctorUser.Name, doctorUser.Role, doctorUser.Email)
	require.NoError(t, err)

	app := fiber.New()
	appointmentRoutes.SetupAppointmentRoutes(app)

	return &fixture{
		app:          app,
		patient:      patient,
		doctorUser:   doctorUser,
		doctor:       doctor,
		patientToken: patientToken,
		doctorToken:  doctorToken,
	}
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (*http.Response, string) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func bookSlot(t *testing.T, f *fixture, slot time.Time) *http.Response {
	t.Helper()

	resp, _ := request(t, f.app, http.MethodPost, "/appointments/", f.patientToken, fiber.Map{
		"doctorId":  f.doctor.ID,
		"slotStart": slot.Format(time.RFC3339),
		"reason":    "Chest pain",
	})
	return resp
}

func TestBookAppointment(t *testing.T) {
	f := setupAppointmentTest(t)
	slot := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	resp := bookSlot(t, f, slot)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var appointment models.Appointment
	require.NoError(t, database.Database.Db.
		Where("patient_id = ? AND doctor_id = ?", f.patient.ID, f.doctor.ID).
		First(&appointment).Error)
	assert.Equal(t, models.AppointmentPending, appointment.Status)
	assert.Equal(t, 30*time.Minute, appointment.SlotEnd.Sub(appointment.SlotStart))
}

func TestBookAppointmentDoubleBookingDenied(t *testing.T) {
	f := setupAppointmentTest(t)
	slot := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	resp := bookSlot(t, f, slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = bookSlot(t, f, slot)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBookAppointmentPastSlotDenied(t *testing.T) {
	f := setupAppointmentTest(t)

	resp := bookSlot(t, f, time.Now().Add(-time.Hour))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDoctorConfirmOpensPayment(t *testing.T) {
	f := setupAppointmentTest(t)
	slot := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	resp := bookSlot(t, f, slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var appointment models.Appointment
	require.NoError(t, database.Database.Db.First(&appointment).Error)

	resp, _ = request(t, f.app, http.MethodPatch,
		"/appointments/"+itoa(appointment.ID)+"/status", f.doctorToken,
		fiber.Map{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment models.Payment
	require.NoError(t, database.Database.Db.
		Where("appointment_id = ?", appointment.ID).First(&payment).Error)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, 500.0, payment.Amount)
	assert.NotEmpty(t, payment.ReceiptNumber)
}

func TestPatientCannotConfirm(t *testing.T) {
	f := setupAppointmentTest(t)
	slot := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	resp := bookSlot(t, f, slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var appointment models.Appointment
	require.NoError(t, database.Database.Db.First(&appointment).Error)

	resp, _ = request(t, f.app, http.MethodPatch,
		"/appointments/"+itoa(appointment.ID)+"/status", f.patientToken,
		fiber.Map{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestIllegalTransitionDenied(t *testing.T) {
	f := setupAppointmentTest(t)
	slot := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	resp := bookSlot(t, f, slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var appointment models.Appointment
	require.NoError(t, database.Database.Db.First(&appointment).Error)

	// PENDING cannot jump straight to COMPLETED.
	resp, _ = request(t, f.app, http.MethodPatch,
		"/appointments/"+itoa(appointment.ID)+"/status", f.doctorToken,
		fiber.Map{"status": "COMPLETED"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
