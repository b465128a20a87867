package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"reviewhub/internal/httpapi/cache"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// WorkflowService owns the paper/assignment/review state machine. Each
// operation is one atomic unit of work: entity mutation, scoring
// recompute, token awards, audit append and proof generation commit
// together or not at all.
type WorkflowService interface {
	AssignReviewer(ctx context.Context, p Principal, paperID int64, reviewerID string, deadline *time.Time) (*models.ReviewAssignment, error)
	SubmitReview(ctx context.Context, p Principal, paperID int64, reviewText string, rating *float64) (*models.Review, error)
	AddFeedback(ctx context.Context, p Principal, reviewID int64, rating *float64, feedbackText *string) (*models.Review, error)
	ListAssignments(ctx context.Context, p Principal, filters repository.AssignmentFilters) ([]models.ReviewAssignment, error)
	ListReviews(ctx context.Context, p Principal, filters repository.ReviewFilters) ([]models.Review, error)
	GetReview(ctx context.Context, p Principal, reviewID int64) (*models.Review, error)
}

type workflowService struct {
	tx      repository.TxManager
	repos   *repository.Repos
	scoring *ScoringEngine
	lbCache *cache.LeaderboardCache
	logger  *slog.Logger
}

func NewWorkflowService(tx repository.TxManager, repos *repository.Repos, scoring *ScoringEngine, lbCache *cache.LeaderboardCache, logger *slog.Logger) WorkflowService {
	return &workflowService{
		tx:      tx,
		repos:   repos,
		scoring: scoring,
		lbCache: lbCache,
		logger:  logger,
	}
}

// AssignReviewer binds a reviewer to a paper and moves a pending paper to
// under_review. The paper's author or an admin may assign.
func (s *workflowService) AssignReviewer(ctx context.Context, p Principal, paperID int64, reviewerID string, deadline *time.Time) (*models.ReviewAssignment, error) {
	if !roleAllowed(OpAssignReviewer, p.Role) {
		return nil, ErrRoleMismatch
	}

	var assignment *models.ReviewAssignment
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		paper, err := r.Papers.FindByIDForUpdate(ctx, paperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}
		if !isOwnerOrAdmin(p, paper.AuthorID) {
			return ErrNotAuthorized
		}

		reviewer, err := r.Users.FindByID(ctx, reviewerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewerNotFound
			}
			return err
		}
		if reviewer.Role != models.RoleReviewer {
			return ErrRoleMismatch
		}

		// fast-path duplicate check; the (paper_id, reviewer_id) unique
		// index is the authoritative guard
		if _, err := r.Assignments.FindByPaperAndReviewer(ctx, paperID, reviewerID); err == nil {
			return ErrDuplicateAssignment
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment = &models.ReviewAssignment{
			PaperID:    paperID,
			ReviewerID: reviewerID,
			Status:     models.AssignmentStatusAssigned,
			Deadline:   deadline,
		}
		if err := r.Assignments.Create(ctx, assignment); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateAssignment
			}
			return err
		}

		if paper.Status == models.PaperStatusPending {
			paper.Status = models.PaperStatusUnderReview
			if err := r.Papers.Update(ctx, paper); err != nil {
				return err
			}
		}

		return appendAudit(ctx, r, p.ID, OpAssignReviewer, "assignment", strconv.FormatInt(assignment.ID, 10))
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// SubmitReview creates the review for an open assignment and marks the
// assignment completed, then runs scoring and proof generation inside the
// same transaction.
func (s *workflowService) SubmitReview(ctx context.Context, p Principal, paperID int64, reviewText string, rating *float64) (*models.Review, error) {
	if !roleAllowed(OpSubmitReview, p.Role) {
		return nil, ErrRoleMismatch
	}
	if strings.TrimSpace(reviewText) == "" {
		return nil, ErrValidation
	}

	var review *models.Review
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		if _, err := r.Papers.FindByID(ctx, paperID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}

		// Locking the assignment row serializes concurrent submissions
		// for the same (paper, reviewer) pair.
		assignment, err := r.Assignments.FindByPaperAndReviewerForUpdate(ctx, paperID, p.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentRequired
			}
			return err
		}
		if assignment.Status == models.AssignmentStatusCompleted {
			return ErrDuplicateReview
		}

		review = &models.Review{
			PaperID:      paperID,
			ReviewerID:   p.ID,
			AssignmentID: assignment.ID,
			ReviewText:   reviewText,
			Rating:       rating,
		}
		if err := r.Reviews.Create(ctx, review); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateReview
			}
			return err
		}

		assignment.Status = models.AssignmentStatusCompleted
		if err := r.Assignments.Update(ctx, assignment); err != nil {
			return err
		}

		if err := s.scoring.ReviewSubmitted(ctx, r, p.ID); err != nil {
			return err
		}

		if _, err := generateProof(ctx, r, review); err != nil {
			return err
		}

		return appendAudit(ctx, r, p.ID, OpSubmitReview, "review", strconv.FormatInt(review.ID, 10))
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(ctx)
	return review, nil
}

// AddFeedback lets the paper's author rate a review. Feedback is an
// upsert: re-submitting replaces the previous rating and its ranking
// bonus rather than stacking them.
func (s *workflowService) AddFeedback(ctx context.Context, p Principal, reviewID int64, rating *float64, feedbackText *string) (*models.Review, error) {
	if rating == nil && feedbackText == nil {
		return nil, ErrValidation
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrValidation
	}
	if !roleAllowed(OpAddFeedback, p.Role) {
		return nil, ErrRoleMismatch
	}

	var review *models.Review
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		var err error
		review, err = r.Reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		paper, err := r.Papers.FindByID(ctx, review.PaperID)
		if err != nil {
			return err
		}
		// only the paper's author may rate its reviews
		if p.ID != paper.AuthorID {
			return ErrNotAuthorized
		}

		previous := review.AuthorFeedbackRating
		if rating != nil {
			review.AuthorFeedbackRating = rating
		}
		if feedbackText != nil {
			review.AuthorFeedbackText = feedbackText
		}
		if err := r.Reviews.Update(ctx, review); err != nil {
			return err
		}

		if rating != nil {
			if err := s.scoring.FeedbackRated(ctx, r, review, *rating, previous); err != nil {
				return err
			}
		}

		return appendAudit(ctx, r, p.ID, OpAddFeedback, "review", strconv.FormatInt(reviewID, 10))
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(ctx)
	return review, nil
}

// ListAssignments scopes the listing by role: reviewers only ever see
// their own assignments.
func (s *workflowService) ListAssignments(ctx context.Context, p Principal, filters repository.AssignmentFilters) ([]models.ReviewAssignment, error) {
	if p.Role == models.RoleReviewer {
		filters.ReviewerID = p.ID
	}
	return s.repos.Assignments.List(ctx, filters)
}

// ListReviews scopes the listing by role. Reviews of a specific paper are
// visible to the paper's author and admins only.
func (s *workflowService) ListReviews(ctx context.Context, p Principal, filters repository.ReviewFilters) ([]models.Review, error) {
	if filters.PaperID != 0 {
		paper, err := s.repos.Papers.FindByID(ctx, filters.PaperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPaperNotFound
			}
			return nil, err
		}
		if p.Role != models.RoleReviewer && !isOwnerOrAdmin(p, paper.AuthorID) {
			return nil, ErrNotAuthorized
		}
	}
	if p.Role == models.RoleReviewer {
		filters.ReviewerID = p.ID
	}
	return s.repos.Reviews.List(ctx, filters)
}

// GetReview is visible to the review's author, the paper's author and
// admins.
func (s *workflowService) GetReview(ctx context.Context, p Principal, reviewID int64) (*models.Review, error) {
	review, err := s.repos.Reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	paper, err := s.repos.Papers.FindByID(ctx, review.PaperID)
	if err != nil {
		return nil, err
	}
	if p.ID != review.ReviewerID && !isOwnerOrAdmin(p, paper.AuthorID) {
		return nil, ErrNotAuthorized
	}
	return review, nil
}

func (s *workflowService) invalidateLeaderboard(ctx context.Context) {
	if err := s.lbCache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate leaderboard cache", "error", err)
	}
}
