package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// UploadPaperRequest: multipart form fields accompanying the paper binary
type UploadPaperRequest struct {
	Title    string  `form:"title" binding:"required,min=3,max=300"`
	Abstract *string `form:"abstract"`
	Keywords *string `form:"keywords"`
	Category *string `form:"category"`
	Domain   *string `form:"domain"`
}

// UpdatePaperRequest: payload for editing paper metadata
type UpdatePaperRequest struct {
	Title    string  `json:"title,omitempty"`
	Abstract *string `json:"abstract,omitempty"`
	Keywords *string `json:"keywords,omitempty"`
	Category *string `json:"category,omitempty"`
	Domain   *string `json:"domain,omitempty"`
}

// UpdatePaperStatusRequest: payload for the admin status override
type UpdatePaperStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending under_review reviewed completed"`
}

// PaperResponse: public view of a paper
type PaperResponse struct {
	ID        int64     `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Abstract  *string   `json:"abstract,omitempty"`
	Keywords  *string   `json:"keywords,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Domain    *string   `json:"domain,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaperHashResponse: integrity digest of the stored paper binary
type PaperHashResponse struct {
	PaperID int64  `json:"paper_id"`
	SHA256  string `json:"sha256"`
}

// FromModelToPaperResponse converts a paper model to its public view.
func FromModelToPaperResponse(p *models.Paper) PaperResponse {
	return PaperResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Abstract:  p.Abstract,
		Keywords:  p.Keywords,
		Category:  p.Category,
		Domain:    p.Domain,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
