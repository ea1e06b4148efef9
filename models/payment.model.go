package models

import "gorm.io/gorm"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	gorm.Model
	AppointmentID uint          `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment"`
	PatientID     uint          `gorm:"index;not null" json:"patient_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	ReceiptNumber string        `gorm:"size:40;uniqueIndex" json:"receipt_number"`
	Status        PaymentStatus `gorm:"size:10;index;default:'PENDING'" json:"status"`
	IsDeleted     bool          `gorm:"default:false"`
}
