package models

import "time"

// ReviewProof stores the tamper-evident hash for a submitted review.
// At most one proof exists per review; regeneration is a no-op.
type ReviewProof struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID    int64     `json:"review_id" gorm:"not null;uniqueIndex"`
	ProofHash   string    `json:"proof_hash" gorm:"uniqueIndex;not null"`
	ProofData   string    `json:"proof_data" gorm:"not null;type:text"` // canonical JSON snapshot
	GeneratedAt time.Time `json:"generated_at" gorm:"autoCreateTime"`

	// Associations
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (ReviewProof) TableName() string {
	return "review_proofs"
}
