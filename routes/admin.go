package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
)

// RegisterAdminRoutes registers administration routes. The group is
// expected to already carry RequireRole(RoleAdmin).
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users", adminListUsers)
	router.DELETE("/users/:id", adminDeactivateUser)
	router.GET("/dashboard/stats", adminDashboardStats)
}

// RegisterPolicyRoutes registers policy announcement routes
func RegisterPolicyRoutes(public *gin.RouterGroup, admin *gin.RouterGroup) {
	public.GET("", getPolicies)
	admin.POST("", createPolicy)
}

// adminListUsers lists all registered users with optional role filter
func adminListUsers(c *gin.Context) {
	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"total_count": len(users),
	})
}

// adminDeactivateUser soft-disables an account. The row is kept so that
// jobs, applications and reviews referencing the user stay intact.
func adminDeactivateUser(c *gin.Context) {
	targetID := paramUint(c, "id")
	if targetID == 0 {
		respondError(c, http.StatusBadRequest, errValidation, "Invalid user ID")
		return
	}

	adminID := c.GetUint("user_id")
	if targetID == adminID {
		respondError(c, http.StatusBadRequest, errValidation, "Cannot deactivate your own account")
		return
	}

	result := database.DB.Model(&models.User{}).
		Where("id = ? AND is_active = ?", targetID, true).
		Update("is_active", false)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to deactivate user")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, errNotFound, "User not found or already deactivated")
		return
	}

	log.Printf("🔒 Admin %d deactivated user %d", adminID, targetID)
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// adminDashboardStats returns platform-wide counters
func adminDashboardStats(c *gin.Context) {
	var (
		totalUsers        int64
		totalLabour       int64
		totalContractors  int64
		totalJobs         int64
		openJobs          int64
		completedJobs     int64
		totalApplications int64
		totalHireRequests int64
		totalSchemes      int64
	)

	db := database.DB
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleLabour).Count(&totalLabour)
	db.Model(&models.User{}).Where("role = ?", models.RoleContractor).Count(&totalContractors)
	db.Model(&models.Job{}).Count(&totalJobs)
	db.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen).Count(&openJobs)
	db.Model(&models.Job{}).Where("status = ?", models.JobStatusCompleted).Count(&completedJobs)
	db.Model(&models.Application{}).Count(&totalApplications)
	db.Model(&models.HireRequest{}).Count(&totalHireRequests)
	db.Model(&models.Scheme{}).Where("status = ?", "Active").Count(&totalSchemes)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":         totalUsers,
			"total_labour":        totalLabour,
			"total_contractors":   totalContractors,
			"total_jobs":          totalJobs,
			"open_jobs":           openJobs,
			"completed_jobs":      completedJobs,
			"total_applications":  totalApplications,
			"total_hire_requests": totalHireRequests,
			"active_schemes":      totalSchemes,
		},
	})
}

// getPolicies lists policy announcements, newest first
func getPolicies(c *gin.Context) {
	var policies []models.Policy
	if err := database.DB.Order("date_posted DESC").Find(&policies).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch policies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"policies":    policies,
		"total_count": len(policies),
	})
}

// createPolicy publishes a policy announcement
func createPolicy(c *gin.Context) {
	var req models.PolicyCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	policy := models.Policy{
		Title:   middleware.SanitizeInput(req.Title),
		Content: req.Content,
	}
	if err := database.DB.Create(&policy).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to create policy")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Policy published",
		"policy":  policy,
	})
}
