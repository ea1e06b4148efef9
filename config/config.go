package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string

	JWTKey           string
	JWTIssuer        string
	JWTAudience      string
	JWTExpiryMinutes int

	SaltRound int

	OTPLength         int
	OTPExpiryMinutes  int
	OTPMinIntervalSec int

	EmailSender    string
	SMTPHost       string
	SMTPPort       int
	SMTPPassword   string
	SendGridAPIKey string

	SMSApiKey   string
	SMSApiUrl   string
	SMSSenderID string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "bookmydoctor"),

		JWTKey:           getEnv("JWT_SECRET_KEY", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", "bookmydoctor"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "bookmydoctor-web"),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 1440),

		SaltRound: getEnvInt("SALT_ROUND", 10),

		OTPLength:         getEnvInt("OTP_LENGTH", 6),
		OTPExpiryMinutes:  getEnvInt("OTP_EXPIRY_MINUTES", 5),
		OTPMinIntervalSec: getEnvInt("OTP_MIN_INTERVAL_SECONDS", 60),

		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@bookmydoctor.in"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		SMSApiKey:   getEnv("LOCAL_SMS_API_KEY", ""),
		SMSApiUrl:   getEnv("LOCAL_SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),
		SMSSenderID: getEnv("LOCAL_SMS_SENDER_ID", "BKMYDR"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "" {
		log.Println("Warning: JWT_SECRET_KEY is not set. Token issuance will fail until it is configured.")
	}
	if AppConfig.SMTPPassword == "" && AppConfig.SendGridAPIKey == "" {
		log.Println("Warning: no SMTP_PASSWORD or SENDGRID_API_KEY set. OTP emails cannot be delivered.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
