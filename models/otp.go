package models

import (
	"time"
)

// Otp is a short-lived one-time code keyed by email or phone. Codes are
// stored hashed and expire after five minutes; expired rows are swept by
// the cleanup job.
type Otp struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Identifier string    `json:"identifier" gorm:"size:255;not null;index"`
	CodeHash   string    `json:"-" gorm:"size:255;not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Otp model
func (Otp) TableName() string {
	return "otps"
}

// IsExpired reports whether the code can no longer be used.
func (o *Otp) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
