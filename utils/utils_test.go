package utils

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "OTP must be numeric, got %q", code)
		}
	}

	// Zero falls back to the default length.
	code, err := GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestOTPEmailContent(t *testing.T) {
	config.AppConfig = &config.Config{OTPExpiryMinutes: 5}

	tests := []struct {
		purpose     models.OTPPurpose
		wantSubject string
	}{
		{models.PurposeLogin, "Your BookMyDoctor Login Code"},
		{models.PurposeRegister, "Verify Your BookMyDoctor Account"},
		{models.PurposeForgetPassword, "Reset Your BookMyDoctor Password"},
		{models.OTPPurpose("UNKNOWN"), "Your BookMyDoctor Verification Code"},
	}

	for _, tt := range tests {
		subject, body := OTPEmailContent(tt.purpose, "Asha Verma", "482193")
		assert.Equal(t, tt.wantSubject, subject)
		assert.Contains(t, body, "Asha Verma")
		assert.Contains(t, body, "482193")
		assert.Contains(t, body, "valid for 5 minutes")
	}
}

func TestOTPEmailContentWithoutName(t *testing.T) {
	config.AppConfig = &config.Config{OTPExpiryMinutes: 5}

	_, body := OTPEmailContent(models.PurposeLogin, "", "482193")
	assert.Contains(t, body, "Dear there")
}
