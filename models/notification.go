package models

import (
	"time"
)

// Notification types emitted by lifecycle transitions.
const (
	NotificationTypeApplicationAccepted = "application_accepted"
	NotificationTypeApplicationRejected = "application_rejected"
	NotificationTypeJobCompleted        = "job_completed"
	NotificationTypeJobCancelled        = "job_cancelled"
	NotificationTypeHireRequest         = "hire_request"
	NotificationTypeHireAccepted        = "hire_request_accepted"
	NotificationTypeHireRejected        = "hire_request_rejected"
	NotificationTypeSystem              = "system"
)

// Notification is a fire-and-forget message addressed to one user.
// Rows are created as side effects of state changes and only ever read
// or marked read afterwards.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
