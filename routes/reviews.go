package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/database"
	"rozgar-connect-server/models"
)

// RegisterReviewRoutes registers post-completion review routes
func RegisterReviewRoutes(router *gin.RouterGroup) {
	router.POST("", createReview)
	router.GET("/user/:id", getUserReviews)
}

// createReview posts a rating for the counterparty on a completed job.
// One review per (reviewer, job); both parties of the job may review
// each other once it is completed.
func createReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.ReviewCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	var job models.Job
	if err := database.DB.First(&job, req.JobID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Job not found")
		return
	}

	if job.Status != models.JobStatusCompleted {
		respondError(c, http.StatusConflict, errConflict, "Only completed jobs can be reviewed")
		return
	}

	// Reviewer and reviewee must be the two participants of the job
	workerID := uint(0)
	if job.WorkerID != nil {
		workerID = *job.WorkerID
	}
	reviewerIsParticipant := userID == job.ContractorID || userID == workerID
	revieweeIsParticipant := req.RevieweeID == job.ContractorID || req.RevieweeID == workerID
	if !reviewerIsParticipant || !revieweeIsParticipant || req.RevieweeID == userID {
		respondError(c, http.StatusForbidden, errForbidden, "Reviews are limited to the job's participants")
		return
	}

	var existing models.Review
	if err := database.DB.Where("reviewer_id = ? AND job_id = ?", userID, req.JobID).
		First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, errConflict, "You have already reviewed this job")
		return
	}

	review := models.Review{
		ReviewerID: userID,
		RevieweeID: req.RevieweeID,
		JobID:      req.JobID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		respondError(c, http.StatusConflict, errConflict, "You have already reviewed this job")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted",
		"review":  review,
	})
}

// getUserReviews lists reviews received by a user with their average.
func getUserReviews(c *gin.Context) {
	revieweeID := paramUint(c, "id")
	if revieweeID == 0 {
		respondError(c, http.StatusBadRequest, errValidation, "Invalid user ID")
		return
	}

	var reviews []models.Review
	if err := database.DB.Where("reviewee_id = ?", revieweeID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch reviews")
		return
	}

	summary := models.ReviewSummary{UserID: revieweeID, TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		summary.AverageRating = float64(total) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"summary": summary,
	})
}
