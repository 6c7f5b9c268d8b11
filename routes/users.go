package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rozgar-connect-server/config"
	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
)

// RegisterUserRoutes registers profile and saved-job routes
func RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/me", getMyProfile)
	router.PUT("/me", updateMyProfile)
	router.POST("/me/photo", uploadProfilePhoto)
	router.GET("/me/saved-jobs", middleware.RequireRole(models.RoleLabour), getSavedJobs)
}

// RegisterDirectoryRoutes registers the contractor-facing worker directory
func RegisterDirectoryRoutes(router *gin.RouterGroup) {
	router.GET("/contractor/laborers", middleware.RequireRole(models.RoleContractor), getLaborers)
}

// getMyProfile returns the authenticated user's full profile
func getMyProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// updateMyProfile updates profile and labour-specific fields. Role and
// KYC verification are deliberately not updatable from here.
func updateMyProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Name          string   `json:"name" binding:"omitempty,min=2,max=100"`
		Phone         string   `json:"phone"`
		DOB           string   `json:"dob"` // YYYY-MM-DD
		Gender        string   `json:"gender" binding:"omitempty,oneof=Male Female Other"`
		Address       string   `json:"address" binding:"omitempty,max=500"`
		AadhaarNumber string   `json:"aadhaar_number" binding:"omitempty,len=12"`
		PANNumber     string   `json:"pan_number" binding:"omitempty,len=10"`
		Skills        []string `json:"skills"`
		DailyWage     *float64 `json:"daily_wage" binding:"omitempty,gt=0"`
		Availability  string   `json:"availability" binding:"omitempty,oneof=available busy unavailable"`
		Location      string   `json:"location" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = middleware.SanitizeInput(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			respondError(c, http.StatusBadRequest, errValidation, "dob must be YYYY-MM-DD")
			return
		}
		updates["dob"] = dob
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Address != "" {
		updates["address"] = middleware.SanitizeInput(req.Address)
	}
	if req.AadhaarNumber != "" {
		updates["aadhaar_number"] = req.AadhaarNumber
	}
	if req.PANNumber != "" {
		updates["pan_number"] = strings.ToUpper(req.PANNumber)
	}
	if req.Skills != nil {
		updates["skills"] = strings.Join(req.Skills, ",")
	}
	if req.DailyWage != nil {
		updates["daily_wage"] = *req.DailyWage
	}
	if req.Availability != "" {
		updates["availability"] = req.Availability
	}
	if req.Location != "" {
		updates["location"] = middleware.SanitizeInput(req.Location)
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, errValidation, "No fields to update")
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("❌ Profile update failed for user %d: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, errServer, "Profile update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile Updated Successfully"})
}

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// uploadProfilePhoto stores a profile picture in Cloudinary and saves
// its URL on the user.
func uploadProfilePhoto(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	header, err := c.FormFile("profile_photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "No file uploaded")
		return
	}
	if !validateImageFile(header) {
		respondError(c, http.StatusBadRequest, errValidation, "Profile photo must be a jpg/png/webp up to 5MB")
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		respondError(c, http.StatusInternalServerError, errServer, "Media storage not configured")
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		respondError(c, http.StatusInternalServerError, errServer, "Media storage initialization failed")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "Could not read uploaded file")
		return
	}
	defer file.Close()

	overwrite := true
	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       fmt.Sprintf("users/profile_photos/%d", user.ID),
		PublicID:     uuid.NewString(),
		Overwrite:    &overwrite,
		ResourceType: "image",
	})
	if err != nil {
		log.Printf("❌ Profile photo upload failed for user %d: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, errServer, "Upload failed")
		return
	}

	if err := database.DB.Model(&user).Update("profile_pic_url", result.SecureURL).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to save profile photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Image Uploaded Successfully",
		"image_url": result.SecureURL,
	})
}

// getSavedJobs lists the labourer's bookmarked jobs
func getSavedJobs(c *gin.Context) {
	userID := c.GetUint("user_id")

	var saved []models.SavedJob
	if err := database.DB.Where("user_id = ?", userID).
		Preload("Job").
		Preload("Job.Contractor").
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch saved jobs")
		return
	}

	jobs := make([]models.JobResponse, 0, len(saved))
	for _, s := range saved {
		jobs = append(jobs, formatJob(s.Job))
	}

	c.JSON(http.StatusOK, gin.H{
		"saved_jobs":  jobs,
		"total_count": len(jobs),
	})
}

// getLaborers lists labour users for contractors. The phone number only
// appears for workers who have accepted a hire request from the caller;
// contact hiding is enforced here, not in the client.
func getLaborers(c *gin.Context) {
	userID := c.GetUint("user_id")

	var laborers []models.User
	if err := database.DB.Where("role = ? AND is_active = ?", models.RoleLabour, true).
		Order("created_at DESC").
		Find(&laborers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch laborers")
		return
	}

	// Workers who accepted a hire request from this contractor
	var acceptedWorkerIDs []uint
	if err := database.DB.Model(&models.HireRequest{}).
		Where("contractor_id = ? AND status = ?", userID, models.HireRequestStatusAccepted).
		Pluck("worker_id", &acceptedWorkerIDs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch hire requests")
		return
	}
	accepted := make(map[uint]bool, len(acceptedWorkerIDs))
	for _, id := range acceptedWorkerIDs {
		accepted[id] = true
	}

	profiles := make([]models.PublicProfile, 0, len(laborers))
	for _, l := range laborers {
		profile := models.PublicProfile{
			ID:            l.ID,
			Name:          l.Name,
			Skills:        l.Skills,
			DailyWage:     l.DailyWage,
			Availability:  l.Availability,
			Location:      l.Location,
			ProfilePicURL: l.ProfilePicURL,
		}
		if accepted[l.ID] {
			profile.Phone = l.Phone
		}
		profiles = append(profiles, profile)
	}

	c.JSON(http.StatusOK, gin.H{
		"laborers":    profiles,
		"total_count": len(profiles),
	})
}
