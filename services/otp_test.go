package services

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOTPTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		OTPLength:         6,
		OTPExpiryMinutes:  5,
		OTPMinIntervalSec: 0,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.OTP{}))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, verified bool) models.User {
	t.Helper()

	user := models.User{
		Name:            "Asha Verma",
		Email:           email,
		Role:            models.RolePatient,
		Password:        "hashed-password",
		IsEmailVerified: verified,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestRequestOTPUnknownIdentity(t *testing.T) {
	db := setupOTPTest(t)

	_, _, err := RequestOTP(db, "nobody@example.com", models.PurposeLogin)
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestRequestOTPAlreadyVerifiedRegister(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	_, _, err := RequestOTP(db, "a@x.com", models.PurposeRegister)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestRequestOTPRateLimited(t *testing.T) {
	db := setupOTPTest(t)
	config.AppConfig.OTPMinIntervalSec = 60
	createUser(t, db, "a@x.com", true)

	_, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	_, _, err = RequestOTP(db, "a@x.com", models.PurposeLogin)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestRequestOTPSupersedesPrior(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	first, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	second, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	// Only one active record remains for the pair.
	var active int64
	db.Model(&models.OTP{}).
		Where("identity = ? AND purpose = ? AND is_used = false", "a@x.com", models.PurposeLogin).
		Count(&active)
	assert.Equal(t, int64(1), active)

	// The superseded code no longer verifies, the fresh one does.
	_, err = VerifyOTP(db, "a@x.com", models.PurposeLogin, first.Code)
	if first.Code != second.Code {
		assert.ErrorIs(t, err, ErrOTPMismatch)
	}

	record, err := VerifyOTP(db, "a@x.com", models.PurposeLogin, second.Code)
	require.NoError(t, err)
	assert.True(t, record.IsUsed)
}

func TestRequestOTPScopedByPurpose(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	login, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	_, _, err = RequestOTP(db, "a@x.com", models.PurposeForgetPassword)
	require.NoError(t, err)

	// A new code for another purpose must not supersede the login code.
	_, err = VerifyOTP(db, "a@x.com", models.PurposeLogin, login.Code)
	assert.NoError(t, err)
}

func TestVerifyOTPNoActive(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	_, err := VerifyOTP(db, "a@x.com", models.PurposeLogin, "123456")
	assert.ErrorIs(t, err, ErrNoActiveOTP)
}

func TestVerifyOTPExpired(t *testing.T) {
	db := setupOTPTest(t)
	user := createUser(t, db, "a@x.com", true)

	record := models.OTP{
		UserID:    user.ID,
		Identity:  user.Email,
		Code:      "482193",
		Purpose:   models.PurposeLogin,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&record).Error)

	_, err := VerifyOTP(db, "a@x.com", models.PurposeLogin, "482193")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestVerifyOTPMismatch(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	record, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	wrong := "000000"
	if record.Code == wrong {
		wrong = "111111"
	}

	_, err = VerifyOTP(db, "a@x.com", models.PurposeLogin, wrong)
	assert.ErrorIs(t, err, ErrOTPMismatch)
}

func TestVerifyOTPConsumesExactlyOnce(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	record, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	consumed, err := VerifyOTP(db, "a@x.com", models.PurposeLogin, record.Code)
	require.NoError(t, err)
	assert.True(t, consumed.IsUsed)

	// Replay of the consumed code.
	_, err = VerifyOTP(db, "a@x.com", models.PurposeLogin, record.Code)
	assert.ErrorIs(t, err, ErrNoActiveOTP)
}

func TestVerifyOTPConsumeRaceLoser(t *testing.T) {
	db := setupOTPTest(t)
	createUser(t, db, "a@x.com", true)

	record, _, err := RequestOTP(db, "a@x.com", models.PurposeLogin)
	require.NoError(t, err)

	// Simulate a concurrent verifier winning the guarded update first.
	res := db.Model(&models.OTP{}).
		Where("id = ? AND is_used = false", record.ID).
		Update("is_used", true)
	require.NoError(t, res.Error)
	require.Equal(t, int64(1), res.RowsAffected)

	_, err = VerifyOTP(db, "a@x.com", models.PurposeLogin, record.Code)
	assert.ErrorIs(t, err, ErrNoActiveOTP)
}
