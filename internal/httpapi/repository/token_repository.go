package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// TokenRepository handles the static token catalog and the per-user
// award records.
type TokenRepository interface {
	WithTx(tx *gorm.DB) TokenRepository
	Create(ctx context.Context, token *models.Token) error
	FindByID(ctx context.Context, id int64) (*models.Token, error)
	FindByName(ctx context.Context, name string) (*models.Token, error)
	List(ctx context.Context) ([]models.Token, error)

	Award(ctx context.Context, userToken *models.UserToken) error
	FindAward(ctx context.Context, userID string, tokenID int64) (*models.UserToken, error)
	ListAwardsByUser(ctx context.Context, userID string) ([]models.UserToken, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) WithTx(tx *gorm.DB) TokenRepository {
	return &tokenRepository{db: tx}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByID(ctx context.Context, id int64) (*models.Token, error) {
	var token models.Token
	if err := r.db.WithContext(ctx).First(&token, id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByName(ctx context.Context, name string) (*models.Token, error) {
	var token models.Token
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) List(ctx context.Context) ([]models.Token, error) {
	var tokens []models.Token
	if err := r.db.WithContext(ctx).Order("id").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *tokenRepository) Award(ctx context.Context, userToken *models.UserToken) error {
	return r.db.WithContext(ctx).Create(userToken).Error
}

func (r *tokenRepository) FindAward(ctx context.Context, userID string, tokenID int64) (*models.UserToken, error) {
	var userToken models.UserToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_id = ?", userID, tokenID).
		First(&userToken).Error; err != nil {
		return nil, err
	}
	return &userToken, nil
}

func (r *tokenRepository) ListAwardsByUser(ctx context.Context, userID string) ([]models.UserToken, error) {
	var userTokens []models.UserToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Token").
		Order("earned_at DESC").
		Find(&userTokens).Error; err != nil {
		return nil, err
	}
	return userTokens, nil
}
