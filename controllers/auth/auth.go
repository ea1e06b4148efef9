package authController

import (
	"bookmydoctor/config"
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"bookmydoctor/services"
	"bookmydoctor/utils"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates an account with a PATIENT or DOCTOR role and kicks off
// email verification. The role is fixed at registration; admins are seeded.
func Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	role, err := models.ParseRole(reqData.Role)
	if err != nil || role == models.RoleAdmin {
		role = models.RolePatient
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Role:     role,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Start email verification right away. Delivery problems are logged by
	// the dispatcher and do not fail the registration.
	if otpRecord, user, err := services.RequestOTP(db, newUser.Email, models.PurposeRegister); err == nil {
		utils.SendOTPEmail(models.PurposeRegister, user.Name, user.Email, otpRecord.Code)
	} else {
		log.Printf("Error issuing registration OTP for %s: %v", newUser.Email, err)
	}
	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Verify your email with the code we sent.", newUser)
}

// Login authenticates with email and password. OTP login goes through
// RequestOTP/VerifyOTP instead.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > 15*time.Minute {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		db.Save(&user)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		// Block user after 3 failed attempts
		if user.FailedLoginAttempts >= 3 {
			user.IsBlocked = true
			unblockTime := now.Add(15 * time.Minute)
			user.BlockedUntil = &unblockTime
		}

		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error recording failed login: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong password!", nil)
	}

	user.LastLogin = time.Now()
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	recordLoginTracking(c, user.ID)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
		"role":  user.Role,
	})
}

func recordLoginTracking(c *fiber.Ctx, userID uint) {
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    userID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}

	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}
}

// RequestOTP issues a one-time code for the given identity and purpose and
// delivers it out-of-band. The code never appears in the response body.
func RequestOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Identity string `json:"identity"`
		Purpose  string `json:"purpose"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db
	purpose := models.OTPPurpose(reqData.Purpose)

	otpRecord, user, err := services.RequestOTP(db, reqData.Identity, purpose)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIdentityNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this identity!", nil)
		case errors.Is(err, services.ErrAlreadyVerified):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already verified!", nil)
		case errors.Is(err, services.ErrRateLimited):
			return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "OTP requested too recently. Please wait before retrying.", nil)
		default:
			log.Printf("Error issuing OTP for %s: %v", reqData.Identity, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create OTP!", nil)
		}
	}

	utils.SendOTPEmail(purpose, user.Name, user.Email, otpRecord.Code)
	if user.Mobile != "" {
		code := otpRecord.Code
		mobile := user.Mobile
		utils.DispatchAsync("otp sms to "+mobile, func() error {
			return utils.SendOTPToMobile(mobile, code)
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyOTP consumes the active code for (identity, purpose) and issues a
// bearer token carrying the account's role.
func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Identity string `json:"identity"`
		Purpose  string `json:"purpose"`
		Code     string `json:"code"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db
	purpose := models.OTPPurpose(reqData.Purpose)

	if _, err := services.VerifyOTP(db, reqData.Identity, purpose, reqData.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveOTP):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No active OTP for this identity!", nil)
		case errors.Is(err, services.ErrOTPExpired):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
		case errors.Is(err, services.ErrOTPMismatch):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
		default:
			log.Printf("Error verifying OTP for %s: %v", reqData.Identity, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
		}
	}

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Identity, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if purpose == models.PurposeRegister && !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := db.Save(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update verification status!", nil)
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	if purpose == models.PurposeLogin {
		recordLoginTracking(c, user.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", fiber.Map{
		"token": token,
		"role":  user.Role,
	})
}

// ResetPassword sets a new password. The bearer token comes from a
// FORGET_PASSWORD OTP verification.
func ResetPassword(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}

	user.Password = string(hashedPassword)
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}

// ChangePassword rotates the password for a logged-in user.
func ChangePassword(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	reqData := new(struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		CnfPassword     string `json:"cnfPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.NewPassword != reqData.CnfPassword {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "New password and confirm password do not match!", nil)
	}
	if len(strings.TrimSpace(reqData.NewPassword)) < 8 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Password must be at least 8 characters long!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&user).Update("password", string(hashedPassword)).Error
	})
	if err != nil {
		log.Printf("Error updating user password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}

// LoginHistory lists a user's login tracking rows with pagination.
func LoginHistory(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 || limit < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pagination parameters!", nil)
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var history []models.LoginTracking
	var total int64

	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	db.Model(&models.LoginTracking{}).Where("user_id = ? AND is_deleted = ?", userId, false).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history list.", fiber.Map{
		"history": history,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
