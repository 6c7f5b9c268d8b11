package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
	"rozgar-connect-server/services"
)

// RegisterHireRequestRoutes registers the direct-hire flow
func RegisterHireRequestRoutes(router *gin.RouterGroup) {
	router.POST("", middleware.RequireRole(models.RoleContractor), createHireRequest)
	router.GET("/sent", middleware.RequireRole(models.RoleContractor), getSentHireRequests)
	router.GET("/received", middleware.RequireRole(models.RoleLabour), getReceivedHireRequests)
	router.PUT("/:id/status", middleware.RequireRole(models.RoleLabour), respondToHireRequest)
}

// createHireRequest sends a direct solicitation to one labourer and
// notifies them. No job or application records are involved.
func createHireRequest(c *gin.Context) {
	contractor, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var req models.HireRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	var worker models.User
	if err := database.DB.First(&worker, req.WorkerID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Worker not found")
		return
	}
	if !worker.IsLabour() {
		respondError(c, http.StatusBadRequest, errValidation, "Hire requests can only be sent to labour users")
		return
	}

	hireRequest := models.HireRequest{
		ContractorID: contractor.ID,
		WorkerID:     worker.ID,
		JobType:      req.JobType,
		Message:      req.Message,
		Status:       models.HireRequestStatusPending,
	}

	if err := database.DB.Create(&hireRequest).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to send hire request")
		return
	}

	services.NewNotificationService(database.DB).
		NotifyHireRequest(worker.ID, contractor.Name, req.JobType)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Hire request sent",
		"hire_request": hireRequest,
	})
}

// getSentHireRequests lists requests the contractor has sent. Worker
// contact details appear only on accepted requests.
func getSentHireRequests(c *gin.Context) {
	userID := c.GetUint("user_id")

	var requests []models.HireRequest
	if err := database.DB.Where("contractor_id = ?", userID).
		Preload("Worker").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch hire requests")
		return
	}

	formatted := make([]models.HireRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp := models.HireRequestResponse{
			ID:           r.ID,
			ContractorID: r.ContractorID,
			WorkerID:     r.WorkerID,
			JobType:      r.JobType,
			Message:      r.Message,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
			Counterparty: r.Worker.Name,
		}
		// Contact reveal is a server-side decision, not a client one
		if r.Status == models.HireRequestStatusAccepted {
			resp.ContactPhone = r.Worker.Phone
		}
		formatted = append(formatted, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"hire_requests": formatted,
		"total_count":   len(formatted),
	})
}

// getReceivedHireRequests lists requests addressed to the labourer.
func getReceivedHireRequests(c *gin.Context) {
	userID := c.GetUint("user_id")

	var requests []models.HireRequest
	if err := database.DB.Where("worker_id = ?", userID).
		Preload("Contractor").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch hire requests")
		return
	}

	formatted := make([]models.HireRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp := models.HireRequestResponse{
			ID:           r.ID,
			ContractorID: r.ContractorID,
			WorkerID:     r.WorkerID,
			JobType:      r.JobType,
			Message:      r.Message,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
			Counterparty: r.Contractor.Name,
		}
		if r.Status == models.HireRequestStatusAccepted {
			resp.ContactPhone = r.Contractor.Phone
		}
		formatted = append(formatted, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"hire_requests": formatted,
		"total_count":   len(formatted),
	})
}

// respondToHireRequest lets the addressed labourer accept or reject a
// pending request. Acceptance flips the status and notifies the
// contractor; it creates no job and no application.
func respondToHireRequest(c *gin.Context) {
	worker, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	requestID := paramUint(c, "id")

	var req models.HireRequestStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	var hireRequest models.HireRequest
	if err := database.DB.First(&hireRequest, requestID).Error; err != nil {
		respondError(c, http.StatusNotFound, errNotFound, "Hire request not found")
		return
	}

	if hireRequest.WorkerID != worker.ID {
		respondError(c, http.StatusForbidden, errForbidden, "You can only respond to your own hire requests")
		return
	}

	// Conditional update: only a pending request can be resolved, and
	// only once
	newStatus := models.HireRequestStatus(req.Status)
	result := database.DB.Model(&models.HireRequest{}).
		Where("id = ? AND status = ?", hireRequest.ID, models.HireRequestStatusPending).
		Update("status", newStatus)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to update hire request")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusConflict, errConflict, "Hire request has already been resolved")
		return
	}

	services.NewNotificationService(database.DB).
		NotifyHireResponse(hireRequest.ContractorID, worker.Name, newStatus == models.HireRequestStatusAccepted)

	c.JSON(http.StatusOK, gin.H{
		"message": "Response recorded",
		"status":  newStatus,
	})
}
