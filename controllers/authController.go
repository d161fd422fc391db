package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/models"
	"github.com/okellodev/bookmart-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this email already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgAccountNotActivated   = "Account not activated, check your email to activate your account."
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidActivationLink = "Invalid or expired activation link"
	msgActivationSuccess     = "account has been activated successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserCreated           = "User created successfully. Check your email to activate your account."
	msgUserNotFound          = "user with this email does not exist"
	msgResetTokenError       = "There was an error trying to generate password reset link. Try again later."
	msgUnableToSaveToken     = "unable to save reset token."
	msgUnableToResetPassword = "unable to reset password"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	return token.SignedString([]byte(secret))
}

func emailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	result := db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0, result.Error
}

func findUserByEmail(db *gorm.DB, email string) (models.User, error) {
	var user models.User
	result := db.Where("email = ?", email).First(&user)
	return user, result.Error
}

// Send an account verification email
func sendAccountVerificationEmail(cfg config.Config, user models.User, activationToken string) error {
	emailData := utils.EmailData{
		Name:    user.Fullname,
		Message: "Thank you for signing up! Click the button below to verify your account.",
		LinkURL: cfg.FrontendURL + "/auth/verify-email?token=" + url.QueryEscape(activationToken),
		LogoURL: cfg.FrontendURL + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "verify_email.html")
	return utils.SendEmail(cfg.SMTP, user.Email, "Account Verification", emailData, templatePath)
}

// Send a password reset email
func sendPasswordResetEmail(cfg config.Config, user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:    user.Fullname,
		Message: "You requested a password reset. Click the button below to reset your password.",
		LinkURL: cfg.FrontendURL + "/auth/reset-password?token=" + url.QueryEscape(resetToken),
		LogoURL: cfg.FrontendURL + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(cfg.SMTP, user.Email, "Bookmart Account Password Reset", emailData, templatePath)
}

// Signup handles user registration
func Signup(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var signUpData models.SignupData
		if err := ctx.ShouldBindJSON(&signUpData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		taken, err := emailTaken(db, signUpData.Email)
		if err != nil {
			log.Println("Database error during user check:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if taken {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}

		// Hash the password
		hashedPassword, err := hashPassword(signUpData.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}

		// Generate and assign activation token
		activationToken, err := utils.GenerateCode(16)
		if err != nil {
			log.Println("Token generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		user := models.User{
			Fullname:               signUpData.Fullname,
			Email:                  signUpData.Email,
			Phone:                  signUpData.Phone,
			Password:               hashedPassword,
			Role:                   models.RoleUser,
			AccountActivated:       false,
			AccountActivationToken: activationToken,
		}

		if result := db.Create(&user); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
				return
			}
			log.Println("User creation error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		// Send email to the user
		if err := sendAccountVerificationEmail(cfg, user, activationToken); err != nil {
			log.Println("Error sending verification email:", err)
			// Continue despite email error, but log it
		} else {
			log.Println("Verification email sent successfully to:", user.Email)
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated})
	}
}

// Login handles user authentication
func Login(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var loginData models.LoginData
		if err := ctx.ShouldBindJSON(&loginData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		// Find the user
		user, err := findUserByEmail(db, loginData.Email)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		// Check if the password is correct
		if err := comparePasswords(user.Password, loginData.Password); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		// Check if account is activated
		if !user.AccountActivated {
			sendErrorResponse(ctx, http.StatusBadRequest, msgAccountNotActivated)
			return
		}

		// Generate a JWT token
		tokenString, err := generateJWT(user, cfg.JWTSecret)
		if err != nil {
			log.Println("JWT generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
	}
}

// ActivateAccount activates a user account using the activation token
func ActivateAccount(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		activationToken := ctx.Param("activationToken")

		result := db.Model(&models.User{}).
			Where("account_activation_token = ? AND account_activation_token <> ''", activationToken).
			Updates(map[string]any{
				"account_activated":        true,
				"account_activation_token": "",
			})

		if result.Error != nil {
			log.Println("Account activation error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgActivationSuccess})
	}
}

// SendPasswordResetLink sends a password reset link to the user's email
func SendPasswordResetLink(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		type ForgotPasswordBody struct {
			Email string `json:"email" binding:"required,email"`
		}

		var forgotPasswordData ForgotPasswordBody
		if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		// Find the user
		user, err := findUserByEmail(db, forgotPasswordData.Email)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserNotFound)
			return
		}

		// Generate password reset token
		passwordResetToken, err := utils.GenerateCode(16)
		if err != nil {
			log.Println("Reset token generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgResetTokenError)
			return
		}

		// Save the reset token to db
		if result := db.Model(&models.User{}).
			Where("email = ?", forgotPasswordData.Email).
			Update("password_reset_token", passwordResetToken); result.Error != nil {

			log.Println("Error saving reset token:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveToken)
			return
		}

		// Send email to the user
		if err := sendPasswordResetEmail(cfg, user, passwordResetToken); err != nil {
			log.Println("Error sending password reset email:", err)
		} else {
			log.Println("Password reset email sent successfully to:", forgotPasswordData.Email)
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
	}
}

// ResetPassword resets a user's password using a reset token
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		type ResetPasswordInfo struct {
			Password string `json:"password" binding:"required,min=8"`
		}

		var resetPasswordData ResetPasswordInfo
		if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
			log.Println("Invalid reset password data:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		// Hash the new password
		hashedPassword, err := hashPassword(resetPasswordData.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}

		resetToken := ctx.Param("resetToken")
		result := db.Model(&models.User{}).
			Where("password_reset_token = ? AND password_reset_token <> ''", resetToken).
			Updates(map[string]any{
				"password":             hashedPassword,
				"password_reset_token": "",
			})

		if result.Error != nil {
			log.Println("Error resetting password:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToResetPassword)
			return
		}

		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password reset successful"})
	}
}
