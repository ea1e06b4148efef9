package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentRejected  AppointmentStatus = "REJECTED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentExpired   AppointmentStatus = "EXPIRED"
)

// CanTransition reports whether a status change is a legal lifecycle step.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	switch s {
	case AppointmentPending:
		return to == AppointmentConfirmed || to == AppointmentRejected ||
			to == AppointmentCancelled || to == AppointmentExpired
	case AppointmentConfirmed:
		return to == AppointmentCompleted || to == AppointmentCancelled
	}
	return false
}

type Appointment struct {
	gorm.Model
	PatientID uint              `gorm:"index;not null" json:"patient_id"`
	Patient   User              `gorm:"foreignKey:PatientID" json:"patient"`
	DoctorID  uint              `gorm:"index;not null" json:"doctor_id"`
	Doctor    DoctorProfile     `gorm:"foreignKey:DoctorID" json:"doctor"`
	SlotStart time.Time         `gorm:"index;not null" json:"slot_start"`
	SlotEnd   time.Time         `gorm:"not null" json:"slot_end"`
	Status    AppointmentStatus `gorm:"size:12;index;default:'PENDING'" json:"status"`
	Reason    string            `gorm:"size:255" json:"reason"`
	Notes     string            `gorm:"size:1000" json:"notes"`
	// Set by the reminder scheduler so each appointment is reminded once.
	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`
	IsDeleted    bool `gorm:"default:false"`
}
