package utils

import (
	"bookmydoctor/config"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendOTPToMobile delivers an OTP over the SMS gateway. Used only when an
// account has a mobile number on file; email remains the primary channel.
func SendOTPToMobile(mobile, otp string) error {
	cfg := config.AppConfig
	if cfg.SMSApiKey == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    cfg.SMSApiKey,
			"route":            "dlt",
			"sender_id":        cfg.SMSSenderID,
			"variables_values": fmt.Sprintf("%s|%d", otp, cfg.OTPExpiryMinutes),
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(cfg.SMSApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP SMS: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP SMS, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP SMS, code: %d", resp.StatusCode())
	}

	log.Println("OTP SMS sent successfully to", mobile)
	return nil
}
