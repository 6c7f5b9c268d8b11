package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"rozgar-connect-server/models"
)

// NotificationService creates the fire-and-forget messages emitted by
// lifecycle transitions. A failed write never propagates into the
// transition that triggered it.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify creates one notification addressed to one user.
func (s *NotificationService) Notify(userID uint, ntype, title, message string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to create %s notification for user %d: %v", ntype, userID, err)
		return err
	}

	return nil
}

// NotifyApplicationAccepted tells the applicant they got the job.
func (s *NotificationService) NotifyApplicationAccepted(workerID uint, job models.Job) {
	s.Notify(workerID,
		models.NotificationTypeApplicationAccepted,
		"Application Accepted",
		fmt.Sprintf("Congratulations! Your application for '%s' has been accepted.", job.Title))
}

// NotifyApplicationRejected tells the applicant they were not selected.
func (s *NotificationService) NotifyApplicationRejected(workerID uint, job models.Job) {
	s.Notify(workerID,
		models.NotificationTypeApplicationRejected,
		"Application Update",
		fmt.Sprintf("Your application for '%s' was not selected this time.", job.Title))
}

// NotifyJobCompleted tells the assigned worker the job was marked done.
func (s *NotificationService) NotifyJobCompleted(workerID uint, job models.Job) {
	s.Notify(workerID,
		models.NotificationTypeJobCompleted,
		"Job Completed",
		fmt.Sprintf("The job '%s' has been marked as completed. You can now leave a review.", job.Title))
}

// NotifyJobCancelled tells an applicant the posting was withdrawn.
func (s *NotificationService) NotifyJobCancelled(workerID uint, job models.Job) {
	s.Notify(workerID,
		models.NotificationTypeJobCancelled,
		"Job Cancelled",
		fmt.Sprintf("The job '%s' you applied for has been cancelled by the contractor.", job.Title))
}

// NotifyHireRequest tells a labourer a contractor wants to hire them.
func (s *NotificationService) NotifyHireRequest(workerID uint, contractorName, jobType string) {
	s.Notify(workerID,
		models.NotificationTypeHireRequest,
		"New Hire Request",
		fmt.Sprintf("%s wants to hire you for %s work.", contractorName, jobType))
}

// NotifyHireResponse tells the contractor how the labourer responded.
func (s *NotificationService) NotifyHireResponse(contractorID uint, workerName string, accepted bool) {
	if accepted {
		s.Notify(contractorID,
			models.NotificationTypeHireAccepted,
			"Hire Request Accepted",
			fmt.Sprintf("%s accepted your hire request. Contact details are now available.", workerName))
		return
	}
	s.Notify(contractorID,
		models.NotificationTypeHireRejected,
		"Hire Request Declined",
		fmt.Sprintf("%s declined your hire request.", workerName))
}
