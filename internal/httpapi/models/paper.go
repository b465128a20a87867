package models

import "time"

// Paper lifecycle: pending -> under_review on first assignment.
// "reviewed" and "completed" are set by an admin decision, never automatically.
const (
	PaperStatusPending     = "pending"
	PaperStatusUnderReview = "under_review"
	PaperStatusReviewed    = "reviewed"
	PaperStatusCompleted   = "completed"
)

type Paper struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Abstract  *string   `json:"abstract,omitempty" gorm:"type:text"`
	Keywords  *string   `json:"keywords,omitempty"` // comma-separated
	Category  *string   `json:"category,omitempty"`
	Domain    *string   `json:"domain,omitempty"`
	FilePath  string    `json:"-" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Paper) TableName() string {
	return "papers"
}
