package models

import "time"

// Review core fields (text, rating, timestamps) are immutable once created.
// Only the author feedback fields may change afterwards.
type Review struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PaperID      int64     `json:"paper_id" gorm:"not null;index"`
	ReviewerID   string    `json:"reviewer_id" gorm:"type:uuid;not null;index"`
	AssignmentID int64     `json:"assignment_id" gorm:"not null;uniqueIndex"`
	ReviewText   string    `json:"review_text" gorm:"not null;type:text"`
	Rating       *float64  `json:"rating,omitempty" gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	SubmittedAt  time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	// Author feedback
	AuthorFeedbackRating *float64 `json:"author_feedback_rating,omitempty"`
	AuthorFeedbackText   *string  `json:"author_feedback_text,omitempty" gorm:"type:text"`

	// Associations
	Paper    Paper `json:"paper,omitempty" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE;"`
	Reviewer User  `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
