package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func sampleReview() *models.Review {
	rating := 4.0
	return &models.Review{
		ID:          7,
		PaperID:     3,
		ReviewerID:  "rev-1",
		ReviewText:  "Thorough methodology, weak evaluation section.",
		Rating:      &rating,
		SubmittedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestComputeProofHash_Deterministic(t *testing.T) {
	review := sampleReview()

	hash1, canonical1, err := ComputeProofHash(review)
	assert.NoError(t, err)
	hash2, canonical2, err := ComputeProofHash(review)
	assert.NoError(t, err)

	assert.Equal(t, hash1, hash2)
	assert.Equal(t, canonical1, canonical2)
	assert.Len(t, hash1, 64) // sha256 hex
}

func TestComputeProofHash_SensitiveToAuthoredFields(t *testing.T) {
	review := sampleReview()
	original, _, err := ComputeProofHash(review)
	assert.NoError(t, err)

	tampered := sampleReview()
	tampered.ReviewText = "Excellent work, accept as is."
	changed, _, err := ComputeProofHash(tampered)
	assert.NoError(t, err)

	assert.NotEqual(t, original, changed)
}

func TestComputeProofHash_IgnoresAuthorFeedback(t *testing.T) {
	review := sampleReview()
	before, _, err := ComputeProofHash(review)
	assert.NoError(t, err)

	feedback := 5.0
	text := "very helpful"
	review.AuthorFeedbackRating = &feedback
	review.AuthorFeedbackText = &text
	after, _, err := ComputeProofHash(review)
	assert.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestComputeProofHash_StableAcrossTimestampRoundTrip(t *testing.T) {
	// timestamptz keeps microseconds only, so the hash of a freshly
	// created review must match the hash of the row read back later.
	review := sampleReview()
	review.SubmittedAt = time.Date(2026, 3, 14, 9, 26, 53, 123456789, time.UTC)
	atGeneration, _, err := ComputeProofHash(review)
	assert.NoError(t, err)

	reread := sampleReview()
	reread.SubmittedAt = review.SubmittedAt.Truncate(time.Microsecond)
	atVerification, _, err := ComputeProofHash(reread)
	assert.NoError(t, err)

	assert.Equal(t, atGeneration, atVerification)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	existing := &models.ReviewProof{ID: 1, ReviewID: review.ID, ProofHash: "stored"}

	tr.reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	tr.proofs.On("FindByReviewID", ctx, review.ID).Return(existing, nil)

	proof, err := svc.Generate(ctx, Principal{ID: "rev-1", Role: models.RoleReviewer}, review.ID)

	assert.NoError(t, err)
	assert.Equal(t, existing, proof)
	tr.proofs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_CreatesProofOnFirstCall(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	wantHash, _, err := ComputeProofHash(review)
	assert.NoError(t, err)

	tr.reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	tr.proofs.On("FindByReviewID", ctx, review.ID).Return(nil, gorm.ErrRecordNotFound)
	tr.proofs.On("Create", ctx, mock.AnythingOfType("*models.ReviewProof")).Return(nil)

	proof, err := svc.Generate(ctx, Principal{ID: "rev-1", Role: models.RoleReviewer}, review.ID)

	assert.NoError(t, err)
	assert.Equal(t, review.ID, proof.ReviewID)
	assert.Equal(t, wantHash, proof.ProofHash)
	tr.proofs.AssertExpectations(t)
}

func TestGenerate_DeniedForOtherReviewers(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	tr.reviews.On("FindByID", ctx, review.ID).Return(review, nil)

	_, err := svc.Generate(ctx, Principal{ID: "someone-else", Role: models.RoleReviewer}, review.ID)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	tr.proofs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerify_DetectsTampering(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	hash, _, err := ComputeProofHash(review)
	assert.NoError(t, err)
	proof := &models.ReviewProof{ReviewID: review.ID, ProofHash: hash}

	// simulate a direct edit of the stored review text after proof generation
	tampered := sampleReview()
	tampered.ReviewText = "edited after the fact"

	tr.reviews.On("FindByID", ctx, review.ID).Return(tampered, nil)
	tr.proofs.On("FindByReviewID", ctx, review.ID).Return(proof, nil)

	result, err := svc.Verify(ctx, review.ID)

	assert.ErrorIs(t, err, ErrTamperedRecord)
	assert.NotNil(t, result)
	assert.False(t, result.Valid)
	assert.Equal(t, hash, result.StoredHash)
	assert.NotEqual(t, result.StoredHash, result.ComputedHash)
}

func TestVerify_ValidReview(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	hash, _, err := ComputeProofHash(review)
	assert.NoError(t, err)
	proof := &models.ReviewProof{ReviewID: review.ID, ProofHash: hash}

	tr.reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	tr.proofs.On("FindByReviewID", ctx, review.ID).Return(proof, nil)

	result, err := svc.Verify(ctx, review.ID)

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, result.StoredHash, result.ComputedHash)
}

func TestVerify_MissingProof(t *testing.T) {
	tr := newTestRepos()
	svc := NewProofService(&fakeTxManager{repos: tr.bundle}, tr.bundle)
	ctx := context.Background()

	review := sampleReview()
	tr.reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	tr.proofs.On("FindByReviewID", ctx, review.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Verify(ctx, review.ID)

	assert.ErrorIs(t, err, ErrProofNotFound)
}
