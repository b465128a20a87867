package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// AssignReviewerRequest: payload for assigning a reviewer to a paper
type AssignReviewerRequest struct {
	ReviewerID string     `json:"reviewer_id" binding:"required,uuid"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

// SubmitReviewRequest: payload for submitting a completed review
type SubmitReviewRequest struct {
	ReviewText string   `json:"review_text" binding:"required,min=1"`
	Rating     *float64 `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
}

// FeedbackRequest: payload for the paper author's rating of a review
type FeedbackRequest struct {
	Rating float64 `json:"rating" binding:"required,min=1,max=5"`
	Text   *string `json:"text,omitempty"`
}

// AssignmentResponse: public view of a review assignment
type AssignmentResponse struct {
	ID         int64      `json:"id"`
	PaperID    int64      `json:"paper_id"`
	ReviewerID string     `json:"reviewer_id"`
	Status     string     `json:"status"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	AssignedAt time.Time  `json:"assigned_at"`
	PaperTitle string     `json:"paper_title,omitempty"`
}

// ReviewResponse: public view of a submitted review
type ReviewResponse struct {
	ID                   int64     `json:"id"`
	PaperID              int64     `json:"paper_id"`
	ReviewerID           string    `json:"reviewer_id"`
	AssignmentID         int64     `json:"assignment_id"`
	ReviewText           string    `json:"review_text"`
	Rating               *float64  `json:"rating,omitempty"`
	SubmittedAt          time.Time `json:"submitted_at"`
	AuthorFeedbackRating *float64  `json:"author_feedback_rating,omitempty"`
	AuthorFeedbackText   *string   `json:"author_feedback_text,omitempty"`
}

// FromModelToAssignmentResponse converts an assignment model to its public view.
func FromModelToAssignmentResponse(a *models.ReviewAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		PaperID:    a.PaperID,
		ReviewerID: a.ReviewerID,
		Status:     a.Status,
		Deadline:   a.Deadline,
		AssignedAt: a.AssignedAt,
		PaperTitle: a.Paper.Title,
	}
}

// FromModelToReviewResponse converts a review model to its public view.
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:                   r.ID,
		PaperID:              r.PaperID,
		ReviewerID:           r.ReviewerID,
		AssignmentID:         r.AssignmentID,
		ReviewText:           r.ReviewText,
		Rating:               r.Rating,
		SubmittedAt:          r.SubmittedAt,
		AuthorFeedbackRating: r.AuthorFeedbackRating,
		AuthorFeedbackText:   r.AuthorFeedbackText,
	}
}
