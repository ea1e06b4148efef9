package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPPurpose constrains which flow may consume a code.
type OTPPurpose string

const (
	PurposeLogin          OTPPurpose = "LOGIN"
	PurposeRegister       OTPPurpose = "REGISTER"
	PurposeForgetPassword OTPPurpose = "FORGET_PASSWORD"
)

// ValidPurpose reports whether s names a known OTP purpose.
func ValidPurpose(s string) bool {
	switch OTPPurpose(s) {
	case PurposeLogin, PurposeRegister, PurposeForgetPassword:
		return true
	}
	return false
}

// OTP is a one-time code bound to (identity, purpose). At most one active
// (unconsumed, unexpired) row may exist per pair; a new request supersedes
// the previous one. Expiry is checked lazily at verification time.
type OTP struct {
	gorm.Model
	UserID    uint       `gorm:"index" json:"user_id"` // 0 for pending registrations
	Identity  string     `gorm:"size:100;index;not null" json:"identity"`
	Code      string     `gorm:"size:10;not null" json:"-"`
	Purpose   OTPPurpose `gorm:"size:20;index;not null" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed    bool       `gorm:"default:false" json:"is_used"`
	IsDeleted bool       `gorm:"default:false"`
}
