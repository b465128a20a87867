package models

import "time"

const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

type ReviewAssignment struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	PaperID    int64      `json:"paper_id" gorm:"not null;uniqueIndex:idx_paper_reviewer"`
	ReviewerID string     `json:"reviewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_paper_reviewer"`
	Status     string     `json:"status" gorm:"not null;default:'assigned'"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	AssignedAt time.Time  `json:"assigned_at" gorm:"autoCreateTime"`

	// Associations
	Paper    Paper `json:"paper,omitempty" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE;"`
	Reviewer User  `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE;"`
}

func (ReviewAssignment) TableName() string {
	return "review_assignments"
}
