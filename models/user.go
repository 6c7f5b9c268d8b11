package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleLabour     UserRole = "labour"
	RoleContractor UserRole = "contractor"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"size:255;not null;default:'User'"`
	Email        *string  `json:"email" gorm:"size:255;uniqueIndex"`
	Phone        *string  `json:"phone" gorm:"size:20;uniqueIndex"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'labour';check:role IN ('labour','contractor','admin')"`

	// KYC and identity fields
	DOB            *time.Time `json:"dob"`
	Gender         *string    `json:"gender" gorm:"type:varchar(10)"`
	Address        string     `json:"address" gorm:"size:500"`
	AadhaarNumber  *string    `json:"aadhaar_number" gorm:"size:20"`
	PANNumber      *string    `json:"pan_number" gorm:"size:20"`
	IsKYCVerified  bool       `json:"is_kyc_verified" gorm:"default:false"`
	ProfilePicURL  *string    `json:"profile_pic_url" gorm:"size:500"`

	// Labour-specific fields
	Skills       string   `json:"skills" gorm:"size:500"` // comma separated
	DailyWage    *float64 `json:"daily_wage"`
	Availability string   `json:"availability" gorm:"size:50;default:'available'"`
	Location     string   `json:"location" gorm:"size:255"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	SavedJobs []SavedJob `json:"saved_jobs,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleLabour
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleLabour, RoleContractor, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsLabour checks if the user is a labour-role worker
func (u *User) IsLabour() bool {
	return u.Role == RoleLabour
}

// IsContractor checks if the user is a contractor
func (u *User) IsContractor() bool {
	return u.Role == RoleContractor
}

// IsAdmin checks if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SavedJob is a bookmark of a job by a labour user.
type SavedJob struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_saved_user_job"`
	JobID     uint      `json:"job_id" gorm:"not null;uniqueIndex:idx_saved_user_job"`
	CreatedAt time.Time `json:"created_at"`

	Job Job `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// PublicProfile is the directory view of a labour user. Phone is only
// populated when the caller is allowed to see contact details.
type PublicProfile struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Skills        string   `json:"skills"`
	DailyWage     *float64 `json:"daily_wage"`
	Availability  string   `json:"availability"`
	Location      string   `json:"location"`
	ProfilePicURL *string  `json:"profile_pic_url"`
	Phone         *string  `json:"phone,omitempty"`
}
