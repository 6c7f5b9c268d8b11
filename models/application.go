package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "applied"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a labour user's response to an open job posting. The
// unique index on (job_id, worker_id) enforces one application per
// applicant per job.
type Application struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	JobID        uint              `json:"job_id" gorm:"not null;uniqueIndex:idx_app_job_worker"`
	WorkerID     uint              `json:"worker_id" gorm:"not null;uniqueIndex:idx_app_job_worker"`
	ContractorID uint              `json:"contractor_id" gorm:"not null;index"`
	Status       ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'applied';check:status IN ('applied','accepted','rejected')"`
	CoverLetter  string            `json:"cover_letter" gorm:"type:text"`
	AppliedAt    time.Time         `json:"applied_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relations
	Job    Job  `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Worker User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Application model
func (Application) TableName() string {
	return "applications"
}

// IsResolved reports whether the application has already been accepted
// or rejected.
func (a *Application) IsResolved() bool {
	return a.Status != ApplicationStatusApplied
}

// ApplicationCreate is the request structure for applying to a job
type ApplicationCreate struct {
	JobID       uint   `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter" binding:"max=2000"`
}

// ApplicationStatusUpdate is the contractor's accept/reject decision
type ApplicationStatusUpdate struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}
