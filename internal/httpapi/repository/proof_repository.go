package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type ProofRepository interface {
	WithTx(tx *gorm.DB) ProofRepository
	Create(ctx context.Context, proof *models.ReviewProof) error
	FindByReviewID(ctx context.Context, reviewID int64) (*models.ReviewProof, error)
}

type proofRepository struct {
	db *gorm.DB
}

func NewProofRepository(db *gorm.DB) ProofRepository {
	return &proofRepository{db: db}
}

func (r *proofRepository) WithTx(tx *gorm.DB) ProofRepository {
	return &proofRepository{db: tx}
}

func (r *proofRepository) Create(ctx context.Context, proof *models.ReviewProof) error {
	return r.db.WithContext(ctx).Create(proof).Error
}

func (r *proofRepository) FindByReviewID(ctx context.Context, reviewID int64) (*models.ReviewProof, error) {
	var proof models.ReviewProof
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&proof).Error; err != nil {
		return nil, err
	}
	return &proof, nil
}
