package models

import (
	"time"
)

// Policy is an admin-authored announcement shown to all users.
type Policy struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Content    string    `json:"content" gorm:"type:text"`
	DatePosted time.Time `json:"date_posted" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Policy model
func (Policy) TableName() string {
	return "policies"
}

// PolicyCreate is the request structure for posting a policy
type PolicyCreate struct {
	Title   string `json:"title" binding:"required,min=2,max=255"`
	Content string `json:"content"`
}
