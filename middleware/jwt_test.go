package middleware

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTTest(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		JWTIssuer:        "bookmydoctor",
		JWTAudience:      "bookmydoctor-web",
		JWTExpiryMinutes: 10,
	}
}

// signToken builds a token with arbitrary claims for negative cases.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)
	return signed
}

func baseClaims(expiry time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "42",
		"role": "PATIENT",
		"iss":  config.AppConfig.JWTIssuer,
		"aud":  config.AppConfig.JWTAudience,
		"iat":  time.Now().Unix(),
		"exp":  expiry.Unix(),
	}
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	setupJWTTest(t)

	tokenString, err := GenerateJWT(7, "Asha Verma", models.RoleDoctor, "asha@x.com")
	require.NoError(t, err)

	userID, role, err := ParseToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	assert.Equal(t, models.RoleDoctor, role)
}

func TestGenerateJWTSigningKeyUnavailable(t *testing.T) {
	setupJWTTest(t)
	config.AppConfig.JWTKey = ""

	_, err := GenerateJWT(7, "Asha Verma", models.RoleDoctor, "asha@x.com")
	assert.ErrorIs(t, err, ErrSigningKeyUnavailable)
}

// A token with an N-minute lifetime validates before expiry and is rejected
// after it.
func TestTokenExpiryWindow(t *testing.T) {
	setupJWTTest(t)

	stillValid := signToken(t, baseClaims(time.Now().Add(time.Minute)))
	_, _, err := ParseToken(stillValid)
	assert.NoError(t, err)

	expired := signToken(t, baseClaims(time.Now().Add(-time.Minute)))
	_, _, err = ParseToken(expired)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuerOrAudience(t *testing.T) {
	setupJWTTest(t)

	claims := baseClaims(time.Now().Add(time.Minute))
	claims["iss"] = "someone-else"
	_, _, err := ParseToken(signToken(t, claims))
	assert.Error(t, err)

	claims = baseClaims(time.Now().Add(time.Minute))
	claims["aud"] = "other-app"
	_, _, err = ParseToken(signToken(t, claims))
	assert.Error(t, err)
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	setupJWTTest(t)

	claims := baseClaims(time.Now().Add(time.Minute))
	claims["role"] = "SUPERUSER"
	_, _, err := ParseToken(signToken(t, claims))
	assert.Error(t, err)
}

func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	setupJWTTest(t)

	tokenString, err := GenerateJWT(7, "Asha Verma", models.RolePatient, "asha@x.com")
	require.NoError(t, err)

	config.AppConfig.JWTKey = "different-secret"
	_, _, err = ParseToken(tokenString)
	assert.Error(t, err)
}
