package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
	"rozgar-connect-server/services"
	"rozgar-connect-server/utils"
)

// RegisterAuthRoutes registers OTP and password authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/send-otp", sendOTP)
	router.POST("/register", register)
	router.POST("/login", login)
	router.POST("/reset-password", resetPassword)
}

// RegisterProtectedAuthRoutes registers auth routes that need a session
func RegisterProtectedAuthRoutes(router *gin.RouterGroup) {
	router.POST("/change-password", changePassword)
}

// findUserByIdentifier looks a user up by email or phone.
func findUserByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := database.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// sendOTP issues a one-time code to an email or phone identifier.
// type=register refuses identifiers that already have an account.
func sendOTP(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Type       string `json:"type" binding:"omitempty,oneof=register reset login"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "Identifier required")
		return
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if !utils.ValidateIdentifier(req.Identifier) {
		respondError(c, http.StatusBadRequest, errValidation, "Identifier must be a valid email or phone number")
		return
	}

	existing, err := findUserByIdentifier(req.Identifier)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, errServer, "Database error")
		return
	}
	if req.Type == "register" && existing != nil {
		respondError(c, http.StatusConflict, errConflict, "User already exists!")
		return
	}

	otpService := services.NewOTPService(database.DB)
	if err := otpService.Issue(req.Identifier); err != nil {
		log.Printf("❌ OTP issue failed for %s: %v", req.Identifier, err)
		respondError(c, http.StatusInternalServerError, errServer, "OTP system error")
		return
	}

	if utils.IsEmailIdentifier(req.Identifier) {
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to Email!"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to Mobile!"})
	}
}

// register creates an account after verifying the OTP for the identifier.
func register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"omitempty,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8,max=128"`
		Role     string `json:"role" binding:"omitempty,oneof=labour contractor"`
		OTP      string `json:"otp" binding:"required,len=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = strings.TrimSpace(req.Phone)
	}
	if identifier == "" {
		respondError(c, http.StatusBadRequest, errValidation, "Email or phone required")
		return
	}

	isStrong, problems := middleware.ValidatePasswordStrength(req.Password)
	if !isStrong {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   errValidation,
			"message": "Password does not meet security requirements",
			"details": problems,
		})
		return
	}

	otpService := services.NewOTPService(database.DB)
	if err := otpService.Verify(identifier, req.OTP); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "Invalid or Expired OTP")
		return
	}

	if existing, err := findUserByIdentifier(identifier); err == nil && existing != nil {
		respondError(c, http.StatusConflict, errConflict, "An account with this identifier already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Password hashing failed: %v", err)
		respondError(c, http.StatusInternalServerError, errServer, "Failed to process password")
		return
	}

	role := models.RoleLabour
	if strings.ToLower(req.Role) == "contractor" {
		role = models.RoleContractor
	}

	user := models.User{
		Name:         middleware.SanitizeInput(req.Name),
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	if user.Name == "" {
		user.Name = "User"
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Phone != "" {
		phone := strings.TrimSpace(req.Phone)
		user.Phone = &phone
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ User creation failed: %v", err)
		respondError(c, http.StatusConflict, errConflict, "User already exists or registration failed")
		return
	}

	log.Printf("✅ User %d registered as %s", user.ID, user.Role)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration Successful", "user_id": user.ID})
}

// login checks credentials and returns a JWT. The role in the response
// and in the token always comes from the stored record.
func login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	user, err := findUserByIdentifier(strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, errNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, errServer, "Database error")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Invalid password")
		return
	}

	if !user.IsActive {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "User account is deactivated")
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Token generation failed for user %d: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, errServer, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successful",
		"token":   token,
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"role":        user.Role,
			"profile_pic": user.ProfilePicURL,
		},
	})
}

// resetPassword sets a new password after OTP verification.
func resetPassword(c *gin.Context) {
	var req struct {
		Identifier  string `json:"identifier" binding:"required"`
		OTP         string `json:"otp" binding:"required,len=6"`
		NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	user, err := findUserByIdentifier(strings.TrimSpace(req.Identifier))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "User not found")
		return
	}

	otpService := services.NewOTPService(database.DB)
	if err := otpService.Verify(req.Identifier, req.OTP); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "Invalid or Expired OTP")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to process password")
		return
	}

	if err := database.DB.Model(user).Update("password_hash", hashed).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password Reset Successful"})
}

// changePassword updates the authenticated user's password.
func changePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Incorrect current password")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to process password")
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", hashed).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password Changed Successfully"})
}
