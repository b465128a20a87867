package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// ProofVerification is the outcome of recomputing a review's proof hash
// against the stored one.
type ProofVerification struct {
	ReviewID     int64
	Valid        bool
	StoredHash   string
	ComputedHash string
}

// canonicalProofRecord builds the deterministic snapshot the proof hash
// covers: only reviewer-authored fields, never author feedback.
// encoding/json marshals map keys in sorted order, which fixes the key
// ordering of the canonical bytes. The timestamp is truncated to
// microseconds because timestamptz stores no finer; hashing the in-memory
// nanoseconds would make every proof fail verification after a re-read.
func canonicalProofRecord(review *models.Review) ([]byte, error) {
	textHash := sha256.Sum256([]byte(review.ReviewText))
	record := map[string]any{
		"review_id":        review.ID,
		"paper_id":         review.PaperID,
		"reviewer_id":      review.ReviewerID,
		"timestamp":        review.SubmittedAt.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano),
		"rating":           review.Rating,
		"review_text_hash": hex.EncodeToString(textHash[:]),
	}
	return json.Marshal(record)
}

// ComputeProofHash returns the sha256 of the canonical record for a review.
func ComputeProofHash(review *models.Review) (hash string, canonical []byte, err error) {
	canonical, err = canonicalProofRecord(review)
	if err != nil {
		return "", nil, err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), canonical, nil
}

// generateProof persists at most one proof per review. When a proof
// already exists the stored one is returned unchanged, so regeneration
// is a no-op. Runs against whatever Repos bundle the caller provides,
// which inside SubmitReview is the transaction-bound one.
func generateProof(ctx context.Context, r *repository.Repos, review *models.Review) (*models.ReviewProof, error) {
	if existing, err := r.ReviewProofs.FindByReviewID(ctx, review.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, canonical, err := ComputeProofHash(review)
	if err != nil {
		return nil, err
	}

	proof := &models.ReviewProof{
		ReviewID:  review.ID,
		ProofHash: hash,
		ProofData: string(canonical),
	}
	if err := r.ReviewProofs.Create(ctx, proof); err != nil {
		return nil, err
	}
	return proof, nil
}

type ProofService interface {
	Get(ctx context.Context, p Principal, reviewID int64) (*models.ReviewProof, error)
	Generate(ctx context.Context, p Principal, reviewID int64) (*models.ReviewProof, error)
	Verify(ctx context.Context, reviewID int64) (*ProofVerification, error)
}

type proofService struct {
	tx    repository.TxManager
	repos *repository.Repos
}

func NewProofService(tx repository.TxManager, repos *repository.Repos) ProofService {
	return &proofService{tx: tx, repos: repos}
}

// Get returns the stored proof for a review; only the review's author or
// an admin may read it.
func (s *proofService) Get(ctx context.Context, p Principal, reviewID int64) (*models.ReviewProof, error) {
	review, err := s.repos.Reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(p, review.ReviewerID) {
		return nil, ErrNotAuthorized
	}

	proof, err := s.repos.ReviewProofs.FindByReviewID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}
	return proof, nil
}

// Generate creates the proof for a review if none exists yet and returns
// the stored proof either way.
func (s *proofService) Generate(ctx context.Context, p Principal, reviewID int64) (*models.ReviewProof, error) {
	var proof *models.ReviewProof
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		review, err := r.Reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if !isOwnerOrAdmin(p, review.ReviewerID) {
			return ErrNotAuthorized
		}

		proof, err = generateProof(ctx, r, review)
		return err
	})
	if err != nil {
		return nil, err
	}
	return proof, nil
}

// Verify recomputes the canonical hash from the review's current authored
// fields and compares it with the stored proof. A mismatch means the
// review text, rating or identity fields changed after proof generation.
func (s *proofService) Verify(ctx context.Context, reviewID int64) (*ProofVerification, error) {
	review, err := s.repos.Reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	proof, err := s.repos.ReviewProofs.FindByReviewID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}

	computed, _, err := ComputeProofHash(review)
	if err != nil {
		return nil, err
	}

	result := &ProofVerification{
		ReviewID:     reviewID,
		Valid:        computed == proof.ProofHash,
		StoredHash:   proof.ProofHash,
		ComputedHash: computed,
	}
	if !result.Valid {
		return result, ErrTamperedRecord
	}
	return result, nil
}
