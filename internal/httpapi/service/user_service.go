package service

import (
	"context"
	"errors"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Bio       *string
	Expertise *string
	Interests *string
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, p Principal, userID string, update ProfileUpdate) (*models.User, error)
	ListReviewers(ctx context.Context, expertise string) ([]models.User, error)
}

type userService struct {
	tx    repository.TxManager
	repos *repository.Repos
}

func NewUserService(tx repository.TxManager, repos *repository.Repos) UserService {
	return &userService{tx: tx, repos: repos}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets a user edit their own profile; admins may edit any.
// Role is never touched here.
func (s *userService) UpdateProfile(ctx context.Context, p Principal, userID string, update ProfileUpdate) (*models.User, error) {
	if !isOwnerOrAdmin(p, userID) {
		return nil, ErrNotAuthorized
	}

	var user *models.User
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		var err error
		user, err = r.Users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if update.Bio != nil {
			user.Bio = update.Bio
		}
		if update.Expertise != nil {
			user.Expertise = update.Expertise
		}
		if update.Interests != nil {
			user.Interests = update.Interests
		}
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}

		return appendAudit(ctx, r, p.ID, OpUpdateProfile, "user", userID)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListReviewers(ctx context.Context, expertise string) ([]models.User, error) {
	return s.repos.Users.ListByRole(ctx, models.RoleReviewer, expertise)
}
