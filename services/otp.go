// Package services holds the OTP issue/consume engine. Controllers translate
// its sentinel errors into HTTP statuses; the engine itself only talks GORM.
package services

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"bookmydoctor/utils"
	"crypto/subtle"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrIdentityNotFound means the purpose requires an existing account and none matched.
	ErrIdentityNotFound = errors.New("no account found for identity")
	// ErrAlreadyVerified means a REGISTER code was requested for an already verified email.
	ErrAlreadyVerified = errors.New("email is already verified")
	// ErrRateLimited means a code for the same (identity, purpose) was requested too recently.
	ErrRateLimited = errors.New("otp requested too recently")
	// ErrNoActiveOTP means there is no unconsumed code for (identity, purpose).
	ErrNoActiveOTP = errors.New("no active otp")
	// ErrOTPExpired means the code's validity window has passed.
	ErrOTPExpired = errors.New("otp has expired")
	// ErrOTPMismatch means the submitted code differs from the stored one.
	ErrOTPMismatch = errors.New("otp does not match")
)

// RequestOTP generates and stores a one-time code for (identity, purpose),
// superseding any prior active code for the same pair. Delivery is the
// caller's concern; the returned record carries the code.
func RequestOTP(db *gorm.DB, identity string, purpose models.OTPPurpose) (*models.OTP, *models.User, error) {
	var user models.User
	err := db.Where("email = ? AND is_deleted = false", identity).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		// Every purpose is tied to an account; registration creates the
		// account first and then verifies the email.
		return nil, nil, ErrIdentityNotFound
	}
	if purpose == models.PurposeRegister && user.IsEmailVerified {
		return nil, nil, ErrAlreadyVerified
	}

	// Rate limit on the most recent request for this pair, consumed or not.
	minInterval := time.Duration(config.AppConfig.OTPMinIntervalSec) * time.Second
	var last models.OTP
	err = db.Where("identity = ? AND purpose = ?", identity, purpose).
		Order("created_at DESC").First(&last).Error
	if err == nil && time.Since(last.CreatedAt) < minInterval {
		return nil, nil, ErrRateLimited
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	code, err := utils.GenerateOTP(config.AppConfig.OTPLength)
	if err != nil {
		return nil, nil, err
	}

	otpRecord := models.OTP{
		UserID:    user.ID,
		Identity:  identity,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.OTPExpiryMinutes) * time.Minute),
	}

	// Supersede-then-insert runs in one transaction so concurrent requests
	// for the same pair serialize to a single active record.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OTP{}).
			Where("identity = ? AND purpose = ? AND is_used = false", identity, purpose).
			Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Create(&otpRecord).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &otpRecord, &user, nil
}

// VerifyOTP validates a submitted code against the active record for
// (identity, purpose) and consumes it on success. Consumption is atomic:
// of any number of concurrent verifiers holding the correct code, exactly
// one succeeds and the rest observe the record as already consumed.
func VerifyOTP(db *gorm.DB, identity string, purpose models.OTPPurpose, submittedCode string) (*models.OTP, error) {
	var otpRecord models.OTP
	err := db.Where("identity = ? AND purpose = ? AND is_used = false AND is_deleted = false", identity, purpose).
		Order("created_at DESC").First(&otpRecord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveOTP
		}
		return nil, err
	}

	if time.Now().After(otpRecord.ExpiresAt) {
		return nil, ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(otpRecord.Code), []byte(submittedCode)) != 1 {
		return nil, ErrOTPMismatch
	}

	// Guarded update so a record can be consumed at most once.
	res := db.Model(&models.OTP{}).
		Where("id = ? AND is_used = false", otpRecord.ID).
		Update("is_used", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNoActiveOTP
	}

	otpRecord.IsUsed = true
	return &otpRecord, nil
}
