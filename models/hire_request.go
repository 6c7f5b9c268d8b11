package models

import (
	"time"
)

type HireRequestStatus string

const (
	HireRequestStatusPending  HireRequestStatus = "pending"
	HireRequestStatusAccepted HireRequestStatus = "accepted"
	HireRequestStatusRejected HireRequestStatus = "rejected"
)

// HireRequest is a contractor's direct solicitation of a labour user,
// independent of any job posting. Accepting it reveals contact details;
// it never creates a Job or an Application.
type HireRequest struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	ContractorID uint              `json:"contractor_id" gorm:"not null;index"`
	WorkerID     uint              `json:"worker_id" gorm:"not null;index"`
	JobType      string            `json:"job_type" gorm:"size:100;not null"` // e.g. 'Full Time', 'Daily Wage'
	Message      string            `json:"message" gorm:"type:text"`
	Status       HireRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','accepted','rejected')"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relations
	Contractor User `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	Worker     User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the HireRequest model
func (HireRequest) TableName() string {
	return "hire_requests"
}

// IsPending reports whether the labourer can still respond.
func (h *HireRequest) IsPending() bool {
	return h.Status == HireRequestStatusPending
}

// HireRequestCreate is the request structure for sending a hire request
type HireRequestCreate struct {
	WorkerID uint   `json:"worker_id" binding:"required"`
	JobType  string `json:"job_type" binding:"required,min=2,max=100"`
	Message  string `json:"message" binding:"max=2000"`
}

// HireRequestStatusUpdate is the labourer's accept/reject decision
type HireRequestStatusUpdate struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// HireRequestResponse joins a hire request with counterparty details.
// ContactPhone is only set once the request has been accepted.
type HireRequestResponse struct {
	ID           uint              `json:"id"`
	ContractorID uint              `json:"contractor_id"`
	WorkerID     uint              `json:"worker_id"`
	JobType      string            `json:"job_type"`
	Message      string            `json:"message"`
	Status       HireRequestStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Counterparty string            `json:"counterparty_name"`
	ContactPhone *string           `json:"contact_phone,omitempty"`
}
