package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaperFilters narrows List results; zero values mean "no filter".
type PaperFilters struct {
	AuthorID string
	Status   string
}

type PaperRepository interface {
	WithTx(tx *gorm.DB) PaperRepository
	Create(ctx context.Context, paper *models.Paper) error
	FindByID(ctx context.Context, id int64) (*models.Paper, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Paper, error)
	Update(ctx context.Context, paper *models.Paper) error
	List(ctx context.Context, filters PaperFilters) ([]models.Paper, error)
}

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) WithTx(tx *gorm.DB) PaperRepository {
	return &paperRepository{db: tx}
}

func (r *paperRepository) Create(ctx context.Context, paper *models.Paper) error {
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *paperRepository) FindByID(ctx context.Context, id int64) (*models.Paper, error) {
	var paper models.Paper
	if err := r.db.WithContext(ctx).First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

// FindByIDForUpdate locks the paper row for the duration of the
// surrounding transaction.
func (r *paperRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Paper, error) {
	var paper models.Paper
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) Update(ctx context.Context, paper *models.Paper) error {
	return r.db.WithContext(ctx).Save(paper).Error
}

func (r *paperRepository) List(ctx context.Context, filters PaperFilters) ([]models.Paper, error) {
	var papers []models.Paper
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filters.AuthorID != "" {
		query = query.Where("author_id = ?", filters.AuthorID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if err := query.Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}
