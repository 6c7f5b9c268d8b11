package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAssigned  JobStatus = "assigned"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

type WagePeriod string

const (
	WagePeriodDaily    WagePeriod = "daily"
	WagePeriodWeekly   WagePeriod = "weekly"
	WagePeriodMonthly  WagePeriod = "monthly"
	WagePeriodContract WagePeriod = "contract"
)

// Job is a contractor-authored posting. WorkerID is set exactly when the
// job is assigned or completed.
type Job struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ContractorID uint       `json:"contractor_id" gorm:"not null;index"`
	WorkerID     *uint      `json:"worker_id" gorm:"index"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Description  string     `json:"description" gorm:"type:text"`
	Location     string     `json:"location" gorm:"size:255"`
	Wage         float64    `json:"wage" gorm:"not null"`
	WagePeriod   WagePeriod `json:"wage_period" gorm:"type:varchar(20);default:'daily'"`
	Category     string     `json:"category" gorm:"size:100;index"`
	Status       JobStatus  `json:"status" gorm:"type:varchar(20);not null;default:'open';index;check:status IN ('open','assigned','completed','cancelled')"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Contractor User  `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	Worker     *User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// IsOpen reports whether the job still accepts applications.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}

// JobCreate is the request structure for posting a job
type JobCreate struct {
	Title       string  `json:"title" binding:"required,min=2,max=255"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Wage        float64 `json:"wage" binding:"required,gt=0"`
	WagePeriod  string  `json:"wage_period" binding:"omitempty,oneof=daily weekly monthly contract"`
	Category    string  `json:"category"`
}

// JobResponse is the job payload joined with counterparty details
type JobResponse struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Wage           float64    `json:"wage"`
	WagePeriod     WagePeriod `json:"wage_period"`
	Category       string     `json:"category"`
	Status         JobStatus  `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ContractorID   uint       `json:"contractor_id"`
	ContractorName string     `json:"contractor_name,omitempty"`
	WorkerID       *uint      `json:"worker_id,omitempty"`
	WorkerName     string     `json:"worker_name,omitempty"`
}
