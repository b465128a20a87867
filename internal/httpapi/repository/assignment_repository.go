package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentFilters narrows List results; zero values mean "no filter".
type AssignmentFilters struct {
	PaperID    int64
	ReviewerID string
}

type AssignmentRepository interface {
	WithTx(tx *gorm.DB) AssignmentRepository
	Create(ctx context.Context, assignment *models.ReviewAssignment) error
	FindByPaperAndReviewer(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error)
	FindByPaperAndReviewerForUpdate(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error)
	Update(ctx context.Context, assignment *models.ReviewAssignment) error
	List(ctx context.Context, filters AssignmentFilters) ([]models.ReviewAssignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) WithTx(tx *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: tx}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.ReviewAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) FindByPaperAndReviewer(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	if err := r.db.WithContext(ctx).
		Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByPaperAndReviewerForUpdate locks the assignment row so two
// concurrent review submissions against the same assignment serialize.
func (r *assignmentRepository) FindByPaperAndReviewerForUpdate(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.ReviewAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) List(ctx context.Context, filters AssignmentFilters) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	query := r.db.WithContext(ctx).Order("assigned_at DESC")
	if filters.PaperID != 0 {
		query = query.Where("paper_id = ?", filters.PaperID)
	}
	if filters.ReviewerID != "" {
		query = query.Where("reviewer_id = ?", filters.ReviewerID)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
