package service

import (
	"context"
	"errors"
	"strconv"

	"reviewhub/internal/filestore"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// PaperInput carries the metadata accepted at upload and update time.
type PaperInput struct {
	Title    string
	Abstract *string
	Keywords *string
	Category *string
	Domain   *string
}

type PaperService interface {
	Create(ctx context.Context, p Principal, input PaperInput, fileData []byte, filename string) (*models.Paper, error)
	Get(ctx context.Context, p Principal, paperID int64) (*models.Paper, error)
	List(ctx context.Context, p Principal, filters repository.PaperFilters) ([]models.Paper, error)
	Update(ctx context.Context, p Principal, paperID int64, input PaperInput) (*models.Paper, error)
	UpdateStatus(ctx context.Context, p Principal, paperID int64, status string) (*models.Paper, error)
	Download(ctx context.Context, p Principal, paperID int64) (*models.Paper, []byte, error)
	FileHash(ctx context.Context, p Principal, paperID int64) (string, error)
}

type paperService struct {
	tx    repository.TxManager
	repos *repository.Repos
	files *filestore.Store
}

func NewPaperService(tx repository.TxManager, repos *repository.Repos, files *filestore.Store) PaperService {
	return &paperService{tx: tx, repos: repos, files: files}
}

// Create stores the uploaded binary through the filestore collaborator
// and records the paper in pending status.
func (s *paperService) Create(ctx context.Context, p Principal, input PaperInput, fileData []byte, filename string) (*models.Paper, error) {
	if !roleAllowed(OpUploadPaper, p.Role) {
		return nil, ErrRoleMismatch
	}
	if input.Title == "" || len(fileData) == 0 {
		return nil, ErrValidation
	}

	locator, err := s.files.Save(fileData, filename)
	if err != nil {
		return nil, err
	}

	paper := &models.Paper{
		AuthorID: p.ID,
		Title:    input.Title,
		Abstract: input.Abstract,
		Keywords: input.Keywords,
		Category: input.Category,
		Domain:   input.Domain,
		FilePath: locator,
		Status:   models.PaperStatusPending,
	}

	err = s.tx.Do(ctx, func(r *repository.Repos) error {
		if err := r.Papers.Create(ctx, paper); err != nil {
			return err
		}
		return appendAudit(ctx, r, p.ID, OpUploadPaper, "paper", strconv.FormatInt(paper.ID, 10))
	})
	if err != nil {
		return nil, err
	}
	return paper, nil
}

func (s *paperService) Get(ctx context.Context, p Principal, paperID int64) (*models.Paper, error) {
	paper, err := s.repos.Papers.FindByID(ctx, paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return paper, nil
}

// List scopes authors to their own papers; reviewers and admins may
// filter freely.
func (s *paperService) List(ctx context.Context, p Principal, filters repository.PaperFilters) ([]models.Paper, error) {
	if p.Role == models.RoleAuthor {
		filters.AuthorID = p.ID
	}
	return s.repos.Papers.List(ctx, filters)
}

// Update edits paper metadata; the owning author or an admin may edit.
func (s *paperService) Update(ctx context.Context, p Principal, paperID int64, input PaperInput) (*models.Paper, error) {
	var paper *models.Paper
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		var err error
		paper, err = r.Papers.FindByIDForUpdate(ctx, paperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}
		if !isOwnerOrAdmin(p, paper.AuthorID) {
			return ErrNotAuthorized
		}

		if input.Title != "" {
			paper.Title = input.Title
		}
		if input.Abstract != nil {
			paper.Abstract = input.Abstract
		}
		if input.Keywords != nil {
			paper.Keywords = input.Keywords
		}
		if input.Category != nil {
			paper.Category = input.Category
		}
		if input.Domain != nil {
			paper.Domain = input.Domain
		}
		if err := r.Papers.Update(ctx, paper); err != nil {
			return err
		}

		return appendAudit(ctx, r, p.ID, OpUpdatePaper, "paper", strconv.FormatInt(paperID, 10))
	})
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// UpdateStatus is the external trigger for the reviewed/completed
// transitions. Admin only; the workflow engine itself never advances a
// paper past under_review.
func (s *paperService) UpdateStatus(ctx context.Context, p Principal, paperID int64, status string) (*models.Paper, error) {
	if !roleAllowed(OpUpdatePaperStatus, p.Role) {
		return nil, ErrRoleMismatch
	}
	switch status {
	case models.PaperStatusPending, models.PaperStatusUnderReview,
		models.PaperStatusReviewed, models.PaperStatusCompleted:
	default:
		return nil, ErrValidation
	}

	var paper *models.Paper
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		var err error
		paper, err = r.Papers.FindByIDForUpdate(ctx, paperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}

		paper.Status = status
		if err := r.Papers.Update(ctx, paper); err != nil {
			return err
		}

		return appendAudit(ctx, r, p.ID, OpUpdatePaperStatus, "paper", strconv.FormatInt(paperID, 10))
	})
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// Download returns the stored binary for the paper's author, an assigned
// reviewer or an admin.
func (s *paperService) Download(ctx context.Context, p Principal, paperID int64) (*models.Paper, []byte, error) {
	paper, err := s.authorizeFileAccess(ctx, p, paperID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.files.Read(paper.FilePath)
	if err != nil {
		return nil, nil, ErrPaperNotFound
	}
	return paper, data, nil
}

// FileHash returns the sha256 of the stored binary for integrity checks,
// under the same access rule as Download.
func (s *paperService) FileHash(ctx context.Context, p Principal, paperID int64) (string, error) {
	paper, err := s.authorizeFileAccess(ctx, p, paperID)
	if err != nil {
		return "", err
	}
	if !s.files.Exists(paper.FilePath) {
		return "", ErrPaperNotFound
	}
	return s.files.Hash(paper.FilePath)
}

func (s *paperService) authorizeFileAccess(ctx context.Context, p Principal, paperID int64) (*models.Paper, error) {
	paper, err := s.repos.Papers.FindByID(ctx, paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}

	if isOwnerOrAdmin(p, paper.AuthorID) {
		return paper, nil
	}
	if _, err := s.repos.Assignments.FindByPaperAndReviewer(ctx, paperID, p.ID); err == nil {
		return paper, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, ErrNotAuthorized
}
