package utils

import (
	"bookmydoctor/config"
	"bookmydoctor/models"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// SendEmail delivers an HTML email through SendGrid when an API key is
// configured, otherwise over plain SMTP.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendGridAPIKey != "" {
		from := sgmail.NewEmail("BookMyDoctor", cfg.EmailSender)
		to := sgmail.NewEmail(toName, toEmail)
		message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

		client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
		resp, err := client.Send(message)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("sendgrid rejected email, code: %d", resp.StatusCode)
		}
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", cfg.EmailSender, "BookMyDoctor")
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.SMTPPassword)
	return dialer.DialAndSend(msg)
}

// emailTemplate wraps body content in the BookMyDoctor layout.
func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F4F7FA; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B5394; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A41; line-height: 1.6; }
			.content h2 { color: #0B5394; margin-top: 0; }
			.footer { background-color: #F4F7FA; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.otp-code { text-align: center; color: #0B5394; font-size: 40px; letter-spacing: 6px; margin: 20px 0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #0B5394; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>BOOKMYDOCTOR</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 BookMyDoctor. All rights reserved.<br>
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// OTPEmailContent returns the subject and HTML body for an OTP delivery.
// Each purpose maps to a fixed subject and a body carrying the recipient
// name, the code, and the validity window.
func OTPEmailContent(purpose models.OTPPurpose, name, code string) (string, string) {
	validity := config.AppConfig.OTPExpiryMinutes

	var subject, title, lead string
	switch purpose {
	case models.PurposeLogin:
		subject = "Your BookMyDoctor Login Code"
		title = "Login Verification"
		lead = "Use the code below to sign in to your BookMyDoctor account."
	case models.PurposeRegister:
		subject = "Verify Your BookMyDoctor Account"
		title = "Email Verification"
		lead = "Use the code below to verify your email address and activate your account."
	case models.PurposeForgetPassword:
		subject = "Reset Your BookMyDoctor Password"
		title = "Password Reset"
		lead = "Use the code below to reset your password."
	default:
		subject = "Your BookMyDoctor Verification Code"
		title = "Verification Code"
		lead = "Use the code below to continue."
	}

	if name == "" {
		name = "there"
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<h1 class="otp-code">%s</h1>
		<p>This code is valid for %d minutes. Do not share it with anyone.</p>
		<p>If you did not request this code, you can safely ignore this email.</p>
	`, name, lead, code, validity)

	return subject, emailTemplate(title, body)
}

// SendOTPEmail delivers an OTP out-of-band. Fire-and-forget: the enclosing
// request never waits on it and a failure does not roll back the stored code.
func SendOTPEmail(purpose models.OTPPurpose, name, email, code string) {
	subject, htmlBody := OTPEmailContent(purpose, name, code)
	DispatchAsync("otp email to "+email, func() error {
		return SendEmail(name, email, subject, htmlBody)
	})
}

// --- Appointment lifecycle triggers ---

func SendWelcomeEmail(email, name string) {
	subject := "Welcome to BookMyDoctor"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>BookMyDoctor</strong>! Your account has been created.</p>
		<p>Verify your email with the code we sent separately, then book your first appointment.</p>
	`, name)

	DispatchAsync("welcome email to "+email, func() error {
		return SendEmail(name, email, subject, emailTemplate("Welcome Onboard!", body))
	})
}

func SendAppointmentBookedEmail(email, patientName, doctorName string, slot time.Time) {
	subject := "Appointment Requested with Dr. " + doctorName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment request with <strong>Dr. %s</strong> has been received.</p>
		<div class="info-box">
			<strong>Slot:</strong> %s<br>
			<strong>Status:</strong> PENDING — you will be notified once the doctor confirms.
		</div>
	`, patientName, doctorName, slot.Format("Mon, 02 Jan 2006 15:04"))

	DispatchAsync("booking email to "+email, func() error {
		return SendEmail(patientName, email, subject, emailTemplate("Appointment Requested", body))
	})
}

func SendAppointmentStatusEmail(email, patientName, doctorName string, slot time.Time, status models.AppointmentStatus) {
	subject := fmt.Sprintf("Appointment %s: Dr. %s", status, doctorName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment with <strong>Dr. %s</strong> on <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p>Login to your dashboard for details.</p>
	`, patientName, doctorName, slot.Format("Mon, 02 Jan 2006 15:04"), status)

	DispatchAsync("status email to "+email, func() error {
		return SendEmail(patientName, email, subject, emailTemplate("Appointment Update", body))
	})
}

func SendAppointmentReminderEmail(email, patientName, doctorName string, slot time.Time) {
	subject := "Reminder: Appointment with Dr. " + doctorName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder of your upcoming appointment.</p>
		<div class="info-box">
			<strong>Doctor:</strong> Dr. %s<br>
			<strong>Slot:</strong> %s
		</div>
		<p>Please arrive 10 minutes early.</p>
	`, patientName, doctorName, slot.Format("Mon, 02 Jan 2006 15:04"))

	DispatchAsync("reminder email to "+email, func() error {
		return SendEmail(patientName, email, subject, emailTemplate("Appointment Reminder", body))
	})
}

func SendPaymentReceiptEmail(email, patientName, receiptNumber string, amount float64) {
	subject := "Payment Receipt " + receiptNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your payment of <strong>₹%.2f</strong>.</p>
		<div class="info-box">
			<strong>Receipt Number:</strong> %s
		</div>
	`, patientName, amount, receiptNumber)

	DispatchAsync("receipt email to "+email, func() error {
		return SendEmail(patientName, email, subject, emailTemplate("Payment Confirmed", body))
	})
}

// SendDoctorApprovedEmail notifies a doctor that the admin approved their profile.
func SendDoctorApprovedEmail(email, name string) {
	subject := "Your BookMyDoctor Profile is Live"
	body := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>Your profile has been approved. Patients can now find you and book appointments.</p>
	`, name)

	DispatchAsync("approval email to "+email, func() error {
		return SendEmail(name, email, subject, emailTemplate("Profile Approved", body))
	})
}
