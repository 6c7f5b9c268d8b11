package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
	"rozgar-connect-server/services"
)

// Sentinel errors for the accept/reject cascade.
var (
	errJobNotOpen          = errors.New("job is not open")
	errApplicationResolved = errors.New("application already resolved")
)

// RegisterApplicationRoutes registers application listing and decision routes
func RegisterApplicationRoutes(router *gin.RouterGroup) {
	router.GET("/mine", middleware.RequireRole(models.RoleLabour), getMyApplications)
	router.POST("/:id/status", middleware.RequireRole(models.RoleContractor), updateApplicationStatus)
}

// getMyApplications lists the labourer's own applications.
func getMyApplications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var applications []models.Application
	if err := database.DB.Where("worker_id = ?", userID).
		Preload("Job").
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

// updateApplicationStatus is the contractor's accept/reject decision on one
// application. Accepting runs the full cascade atomically: claim the job
// with a conditional update, accept the application, reject all siblings.
// Notification emission happens after commit and is best effort.
func updateApplicationStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	applicationID := paramUint(c, "id")

	var req models.ApplicationStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	var application models.Application
	if err := database.DB.Preload("Job").First(&application, applicationID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Application not found")
		return
	}

	if application.ContractorID != userID {
		respondError(c, http.StatusForbidden, errForbidden, "You can only decide applications on your own jobs")
		return
	}

	if application.IsResolved() {
		respondError(c, http.StatusConflict, errConflict, "Application has already been resolved")
		return
	}

	if models.ApplicationStatus(req.Status) == models.ApplicationStatusAccepted {
		acceptApplication(c, application)
		return
	}
	rejectApplication(c, application)
}

// acceptApplication runs the cascade as one transaction. The conditional
// update on the job row is the optimistic guard: under two concurrent
// accepts for the same job only one claims the open job, the other sees
// zero rows affected and fails with a conflict before touching anything.
func acceptApplication(c *gin.Context, application models.Application) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", application.JobID, models.JobStatusOpen).
			Updates(map[string]interface{}{
				"status":    models.JobStatusAssigned,
				"worker_id": application.WorkerID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errJobNotOpen
		}

		result = tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", application.ID, models.ApplicationStatusApplied).
			Update("status", models.ApplicationStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errApplicationResolved
		}

		return tx.Model(&models.Application{}).
			Where("job_id = ? AND id <> ? AND status = ?",
				application.JobID, application.ID, models.ApplicationStatusApplied).
			Update("status", models.ApplicationStatusRejected).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, errJobNotOpen):
			respondError(c, http.StatusConflict, errConflict, "Job is no longer open for assignment")
		case errors.Is(err, errApplicationResolved):
			respondError(c, http.StatusConflict, errConflict, "Application has already been resolved")
		default:
			respondError(c, http.StatusInternalServerError, errServer, "Failed to accept application")
		}
		return
	}

	// Exactly one notification per accept event, after the cascade
	// committed. A failed write never rolls the cascade back.
	services.NewNotificationService(database.DB).
		NotifyApplicationAccepted(application.WorkerID, application.Job)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Application accepted",
		"job_status": models.JobStatusAssigned,
	})
}

// rejectApplication turns down one application without touching the job
// or its sibling applications.
func rejectApplication(c *gin.Context, application models.Application) {
	result := database.DB.Model(&models.Application{}).
		Where("id = ? AND status = ?", application.ID, models.ApplicationStatusApplied).
		Update("status", models.ApplicationStatusRejected)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to reject application")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusConflict, errConflict, "Application has already been resolved")
		return
	}

	services.NewNotificationService(database.DB).
		NotifyApplicationRejected(application.WorkerID, application.Job)

	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}
