package middleware

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// ErrSigningKeyUnavailable is returned when the JWT secret is not configured.
var ErrSigningKeyUnavailable = errors.New("jwt signing key is not configured")

// GenerateJWT issues a signed bearer token for the user. The token is
// stateless; there is no server-side revocation list.
func GenerateJWT(userID uint, name string, role models.Role, email string) (string, error) {
	if config.AppConfig.JWTKey == "" {
		return "", ErrSigningKeyUnavailable
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"name":  name,
		"role":  role.String(),
		"email": email,
		"iss":   config.AppConfig.JWTIssuer,
		"aud":   config.AppConfig.JWTAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(config.AppConfig.JWTExpiryMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseToken validates signature, expiry, issuer and audience, and returns
// the user id and role carried by the token.
func ParseToken(tokenString string) (uint, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if config.AppConfig.JWTKey == "" {
			return nil, ErrSigningKeyUnavailable
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token payload")
	}
	if !claims.VerifyIssuer(config.AppConfig.JWTIssuer, true) {
		return 0, "", errors.New("invalid token issuer")
	}
	if !claims.VerifyAudience(config.AppConfig.JWTAudience, true) {
		return 0, "", errors.New("invalid token audience")
	}

	sub, _ := claims["sub"].(string)
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID == 0 {
		return 0, "", errors.New("invalid token subject")
	}

	roleStr, _ := claims["role"].(string)
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return 0, "", errors.New("invalid role claim")
	}

	return userID, role, nil
}

// JWTMiddleware checks for a valid bearer token on every protected request.
// The check runs per request; nothing is cached across requests, so an
// expired token is rejected even if it validated a moment earlier.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return denyUnauthenticated(c, "Missing or invalid Authorization header")
	}

	tokenString := authHeader[len("Bearer "):]

	userID, role, err := ParseToken(tokenString)
	if err != nil {
		return denyUnauthenticated(c, "Invalid or expired token")
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// denyUnauthenticated sends browsers back to the login page and gives API
// clients a plain 401.
func denyUnauthenticated(c *fiber.Ctx, message string) error {
	if wantsHTML(c) {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return JsonResponse(c, fiber.StatusUnauthorized, false, message, nil)
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/html")
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
