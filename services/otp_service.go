package services

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"gorm.io/gorm"

	"rozgar-connect-server/config"
	"rozgar-connect-server/models"
	"rozgar-connect-server/utils"
)

// ErrInvalidOTP is returned when a code does not match or has expired.
var ErrInvalidOTP = errors.New("invalid or expired OTP")

const otpValidity = 5 * time.Minute

// OTPService issues and verifies one-time codes. Codes are stored
// hashed; issuing a new code replaces any earlier codes for the same
// identifier.
type OTPService struct {
	db *gorm.DB
}

// NewOTPService creates an OTP service
func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{db: db}
}

// Issue generates a fresh code for the identifier and delivers it:
// email identifiers go through SMTP, phone identifiers are logged since
// no SMS gateway is wired up.
func (s *OTPService) Issue(identifier string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(code)
	if err != nil {
		return err
	}

	// Replace any previous codes for this identifier
	if err := s.db.Where("identifier = ?", identifier).Delete(&models.Otp{}).Error; err != nil {
		return err
	}

	otp := models.Otp{
		Identifier: identifier,
		CodeHash:   hash,
		ExpiresAt:  time.Now().Add(otpValidity),
	}
	if err := s.db.Create(&otp).Error; err != nil {
		return err
	}

	if utils.IsEmailIdentifier(identifier) {
		if err := s.sendEmail(identifier, code); err != nil {
			log.Printf("⚠️ OTP email to %s failed, falling back to log: %v", identifier, err)
			log.Printf("📧 Email OTP for %s: %s", identifier, code)
		}
	} else {
		log.Printf("📱 SMS OTP for %s: %s", identifier, code)
	}

	return nil
}

// Verify checks a code against the stored hash and consumes all codes
// for the identifier on success.
func (s *OTPService) Verify(identifier, code string) error {
	var otp models.Otp
	if err := s.db.Where("identifier = ?", identifier).
		Order("created_at DESC").
		First(&otp).Error; err != nil {
		return ErrInvalidOTP
	}

	if otp.IsExpired() || !utils.CheckPasswordHash(code, otp.CodeHash) {
		return ErrInvalidOTP
	}

	// Consume codes so they cannot be replayed
	return s.db.Where("identifier = ?", identifier).Delete(&models.Otp{}).Error
}

// CleanupExpired deletes codes past their validity window.
func (s *OTPService) CleanupExpired() error {
	result := s.db.Where("expires_at <= ?", time.Now()).Delete(&models.Otp{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("🧹 Removed %d expired OTP codes", result.RowsAffected)
	}
	return nil
}

func (s *OTPService) sendEmail(to, code string) error {
	email := config.AppConfig.Email
	if email.User == "" || email.Password == "" {
		return errors.New("email credentials not configured")
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Authentication Code\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n"+
		"<h3>Your Code: <span style=\"color:#ff9800\">%s</span></h3><p>Valid for 5 minutes.</p>",
		email.From, to, code)

	auth := smtp.PlainAuth("", email.User, email.Password, email.Host)
	addr := email.Host + ":" + email.Port
	return smtp.SendMail(addr, auth, email.User, []string{to}, []byte(body))
}
