package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
	"rozgar-connect-server/services"
)

// RegisterJobRoutes registers job posting and application routes
func RegisterJobRoutes(router *gin.RouterGroup) {
	router.POST("", middleware.RequireRole(models.RoleContractor), createJob)
	router.GET("/feed", getJobFeed)
	router.GET("/search", searchJobs)
	router.GET("/:id", getJob)
	router.POST("/apply", middleware.RequireRole(models.RoleLabour), applyToJob)
	router.GET("/:id/applications", middleware.RequireRole(models.RoleContractor), getJobApplications)
	router.POST("/:id/complete", middleware.RequireRole(models.RoleContractor), completeJob)
	router.POST("/:id/cancel", middleware.RequireRole(models.RoleContractor), cancelJob)
	router.POST("/:id/save", middleware.RequireRole(models.RoleLabour), saveJob)
	router.DELETE("/:id/save", middleware.RequireRole(models.RoleLabour), unsaveJob)
}

// createJob posts a new open job for the authenticated contractor.
func createJob(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.JobCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	wagePeriod := models.WagePeriod(req.WagePeriod)
	if wagePeriod == "" {
		wagePeriod = models.WagePeriodDaily
	}

	job := models.Job{
		ContractorID: userID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Wage:         req.Wage,
		WagePeriod:   wagePeriod,
		Category:     req.Category,
		Status:       models.JobStatusOpen,
	}

	if err := database.DB.Create(&job).Error; err != nil {
		log.Printf("❌ Failed to create job: %v", err)
		respondError(c, http.StatusInternalServerError, errServer, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job posted successfully",
		"job":     job,
	})
}

// getJobFeed returns open jobs, newest first.
func getJobFeed(c *gin.Context) {
	var jobs []models.Job
	if err := database.DB.Where("status = ?", models.JobStatusOpen).
		Preload("Contractor").
		Order("created_at DESC").
		Limit(100).
		Find(&jobs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":        formatJobs(jobs),
		"total_count": len(jobs),
	})
}

// searchJobs filters open jobs by text, location, category and wage floor.
func searchJobs(c *gin.Context) {
	query := database.DB.Where("status = ?", models.JobStatusOpen)

	if q := strings.TrimSpace(c.Query("query")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if location := strings.TrimSpace(c.Query("location")); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if wageMin := c.Query("wage_min"); wageMin != "" {
		min, err := strconv.ParseFloat(wageMin, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, errValidation, "wage_min must be a number")
			return
		}
		query = query.Where("wage >= ?", min)
	}

	var jobs []models.Job
	if err := query.Preload("Contractor").Order("created_at DESC").Limit(100).Find(&jobs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to search jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":        formatJobs(jobs),
		"total_count": len(jobs),
	})
}

// getJob returns one job with counterparty details.
func getJob(c *gin.Context) {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		respondError(c, http.StatusBadRequest, errValidation, "Invalid job ID")
		return
	}

	var job models.Job
	if err := database.DB.Preload("Contractor").Preload("Worker").First(&job, jobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": formatJob(job)})
}

// applyToJob creates an application from the authenticated labourer. The
// job's owning contractor is derived server-side, never from the client.
func applyToJob(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.ApplicationCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	var job models.Job
	if err := database.DB.First(&job, req.JobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	if !job.IsOpen() {
		respondError(c, http.StatusConflict, errConflict, "Job is no longer accepting applications")
		return
	}

	if job.ContractorID == userID {
		respondError(c, http.StatusForbidden, errForbidden, "You cannot apply to your own job")
		return
	}

	// Duplicate check before insert; the unique index on (job_id,
	// worker_id) still catches concurrent double-applies.
	var existing models.Application
	if err := database.DB.Where("job_id = ? AND worker_id = ?", job.ID, userID).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, errConflict, "You have already applied to this job")
		return
	}

	application := models.Application{
		JobID:        job.ID,
		WorkerID:     userID,
		ContractorID: job.ContractorID,
		Status:       models.ApplicationStatusApplied,
		CoverLetter:  req.CoverLetter,
	}

	if err := database.DB.Create(&application).Error; err != nil {
		respondError(c, http.StatusConflict, errConflict, "You have already applied to this job")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// getJobApplications lists applications on a job for its owner.
func getJobApplications(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID := paramUint(c, "id")

	var job models.Job
	if err := database.DB.First(&job, jobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	if job.ContractorID != userID {
		respondError(c, http.StatusForbidden, errForbidden, "You can only view applications on your own jobs")
		return
	}

	var applications []models.Application
	if err := database.DB.Where("job_id = ?", jobID).
		Preload("Worker").
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total_count":  len(applications),
	})
}

// completeJob moves an assigned job to completed and notifies the worker.
func completeJob(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID := paramUint(c, "id")

	var job models.Job
	if err := database.DB.First(&job, jobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	if job.ContractorID != userID {
		respondError(c, http.StatusForbidden, errForbidden, "You can only complete your own jobs")
		return
	}

	// Conditional update so two completes cannot both succeed
	result := database.DB.Model(&models.Job{}).
		Where("id = ? AND status = ?", job.ID, models.JobStatusAssigned).
		Update("status", models.JobStatusCompleted)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to complete job")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusConflict, errConflict, "Only assigned jobs can be completed")
		return
	}

	if job.WorkerID != nil {
		services.NewNotificationService(database.DB).NotifyJobCompleted(*job.WorkerID, job)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job marked as completed"})
}

// cancelJob withdraws an open posting, rejecting pending applications
// and notifying each applicant.
func cancelJob(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID := paramUint(c, "id")

	var job models.Job
	if err := database.DB.First(&job, jobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	if job.ContractorID != userID {
		respondError(c, http.StatusForbidden, errForbidden, "You can only cancel your own jobs")
		return
	}

	var pending []models.Application
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", job.ID, models.JobStatusOpen).
			Update("status", models.JobStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errJobNotOpen
		}

		if err := tx.Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusApplied).
			Find(&pending).Error; err != nil {
			return err
		}

		return tx.Model(&models.Application{}).
			Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusApplied).
			Update("status", models.ApplicationStatusRejected).Error
	})
	if err != nil {
		if errors.Is(err, errJobNotOpen) {
			respondError(c, http.StatusConflict, errConflict, "Only open jobs can be cancelled")
			return
		}
		respondError(c, http.StatusInternalServerError, errServer, "Failed to cancel job")
		return
	}

	// Best effort, after the cancellation is committed
	notifier := services.NewNotificationService(database.DB)
	for _, app := range pending {
		notifier.NotifyJobCancelled(app.WorkerID, job)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled"})
}

// saveJob bookmarks a job for the authenticated labourer.
func saveJob(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID := paramUint(c, "id")

	var job models.Job
	if err := database.DB.First(&job, jobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	saved := models.SavedJob{UserID: userID, JobID: job.ID}
	if err := database.DB.Create(&saved).Error; err != nil {
		respondError(c, http.StatusConflict, errConflict, "Job already saved")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Job saved"})
}

// unsaveJob removes a bookmark.
func unsaveJob(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID := paramUint(c, "id")

	result := database.DB.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to remove saved job")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, errNotFound, "Saved job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job removed from saved"})
}

// RegisterDashboardJobRoutes registers the per-role job listings
func RegisterDashboardJobRoutes(router *gin.RouterGroup) {
	router.GET("/contractor/jobs", middleware.RequireRole(models.RoleContractor), getContractorJobs)
	router.GET("/labour/jobs", middleware.RequireRole(models.RoleLabour), getLabourJobs)
}

// getContractorJobs lists the contractor's own postings.
func getContractorJobs(c *gin.Context) {
	userID := c.GetUint("user_id")

	var jobs []models.Job
	if err := database.DB.Where("contractor_id = ?", userID).
		Preload("Worker").
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":        formatJobs(jobs),
		"total_count": len(jobs),
	})
}

// getLabourJobs lists jobs assigned to the authenticated labourer.
func getLabourJobs(c *gin.Context) {
	userID := c.GetUint("user_id")

	var jobs []models.Job
	if err := database.DB.Where("worker_id = ?", userID).
		Preload("Contractor").
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":        formatJobs(jobs),
		"total_count": len(jobs),
	})
}

func formatJob(job models.Job) models.JobResponse {
	resp := models.JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Description:  job.Description,
		Location:     job.Location,
		Wage:         job.Wage,
		WagePeriod:   job.WagePeriod,
		Category:     job.Category,
		Status:       job.Status,
		CreatedAt:    job.CreatedAt,
		ContractorID: job.ContractorID,
		WorkerID:     job.WorkerID,
	}
	if job.Contractor.ID != 0 {
		resp.ContractorName = job.Contractor.Name
	}
	if job.Worker != nil {
		resp.WorkerName = job.Worker.Name
	}
	return resp
}

func formatJobs(jobs []models.Job) []models.JobResponse {
	formatted := make([]models.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		formatted = append(formatted, formatJob(job))
	}
	return formatted
}
