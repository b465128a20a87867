package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// ProofResponse: the stored tamper-evident proof of a review
type ProofResponse struct {
	ID          int64     `json:"id"`
	ReviewID    int64     `json:"review_id"`
	ProofHash   string    `json:"proof_hash"`
	ProofData   string    `json:"proof_data"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ProofVerificationResponse: result of recomputing a proof against the
// current review record
type ProofVerificationResponse struct {
	ReviewID     int64  `json:"review_id"`
	Valid        bool   `json:"valid"`
	StoredHash   string `json:"stored_hash"`
	ComputedHash string `json:"computed_hash"`
}

// FromModelToProofResponse converts a proof model to its public view.
func FromModelToProofResponse(p *models.ReviewProof) ProofResponse {
	return ProofResponse{
		ID:          p.ID,
		ReviewID:    p.ReviewID,
		ProofHash:   p.ProofHash,
		ProofData:   p.ProofData,
		GeneratedAt: p.GeneratedAt,
	}
}
