package models

import (
	"time"
)

// Review is a post-completion rating. The unique index on
// (reviewer_id, job_id) allows one review per reviewer per job.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReviewerID uint      `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_review_reviewer_job"`
	RevieweeID uint      `json:"reviewee_id" gorm:"not null;index"`
	JobID      uint      `json:"job_id" gorm:"not null;uniqueIndex:idx_review_reviewer_job"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Reviewer User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Reviewee User `json:"reviewee,omitempty" gorm:"foreignKey:RevieweeID"`
	Job      Job  `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ReviewCreate is the request structure for posting a review
type ReviewCreate struct {
	JobID      uint   `json:"job_id" binding:"required"`
	RevieweeID uint   `json:"reviewee_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

// ReviewSummary aggregates the reviews received by one user
type ReviewSummary struct {
	UserID        uint    `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}
