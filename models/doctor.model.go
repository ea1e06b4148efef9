package models

import "gorm.io/gorm"

// DoctorProfile extends a DOCTOR-role user with practice details. Slots are
// derived from the availability window; they are not stored.
type DoctorProfile struct {
	gorm.Model
	UserID          uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User            User    `gorm:"foreignKey:UserID" json:"user"`
	ClinicID        uint    `gorm:"index" json:"clinic_id"`
	Clinic          Clinic  `gorm:"foreignKey:ClinicID" json:"clinic"`
	Specialization  string  `gorm:"size:100;index" json:"specialization"`
	ExperienceYears int     `gorm:"default:0" json:"experience_years"`
	ConsultationFee float64 `gorm:"default:0" json:"consultation_fee"`
	// Daily availability window, local clinic time.
	AvailableFromHour int  `gorm:"default:9" json:"available_from_hour"`
	AvailableToHour   int  `gorm:"default:17" json:"available_to_hour"`
	SlotMinutes       int  `gorm:"default:30" json:"slot_minutes"`
	IsApproved        bool `gorm:"default:false" json:"is_approved"`
	IsDeleted         bool `gorm:"default:false"`
}
