package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Affiliation *string
	Bio         *string
	Expertise   *string
	Interests   *string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	tx               repository.TxManager
	repos            *repository.Repos
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	logger           *slog.Logger
}

func NewAuthService(
	tx repository.TxManager,
	repos *repository.Repos,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		tx:               tx,
		repos:            repos,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		logger:           logger,
	}
}

// Register creates the user, the reviewer's leaderboard stats row and the
// audit entry in one transaction. Role is immutable after creation.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	switch input.Role {
	case models.RoleAuthor, models.RoleReviewer, models.RoleAdmin:
	default:
		return nil, ErrValidation
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrValidation
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Email:       input.Email,
		Password:    hashedPassword,
		Role:        input.Role,
		Affiliation: input.Affiliation,
		Bio:         input.Bio,
		Expertise:   input.Expertise,
		Interests:   input.Interests,
	}

	err = s.tx.Do(ctx, func(r *repository.Repos) error {
		if _, err := r.Users.FindByEmail(ctx, input.Email); err == nil {
			return ErrEmailInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := r.Users.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrEmailInUse
			}
			return err
		}

		if user.Role == models.RoleReviewer {
			stats := &models.LeaderboardStats{
				UserID: user.ID,
				Level:  models.LevelBronze,
			}
			if err := r.Leaderboard.Create(ctx, stats); err != nil {
				return err
			}
		}

		return appendAudit(ctx, r, user.ID, OpRegister, "user", user.ID)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		// dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	err = s.tx.Do(ctx, func(r *repository.Repos) error {
		now := time.Now()
		user.LastLogin = &now
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}
		return appendAudit(ctx, r, user.ID, OpLogin, "user", user.ID)
	})
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil || refreshToken.Revoked {
		return "", ErrInvalidToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			s.logger.Warn("expired_refresh_token_cleanup_failed", "token_id", refreshToken.ID, "error", err)
		}
		return "", ErrInvalidToken
	}

	user, err := s.repos.Users.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

// ValidateToken parses and verifies an access token and extracts the
// caller's identity claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
