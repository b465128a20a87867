package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// AwardTokenRequest: payload for a manual admin token award
type AwardTokenRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	TokenID int64  `json:"token_id" binding:"required"`
	Reason  string `json:"reason" binding:"required,min=3"`
}

// TokenResponse: one entry of the achievement catalog
type TokenResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Icon        *string `json:"icon,omitempty"`
	Criteria    *string `json:"criteria,omitempty"`
}

// UserTokenResponse: one token held by a user
type UserTokenResponse struct {
	ID       int64         `json:"id"`
	Token    TokenResponse `json:"token"`
	EarnedAt time.Time     `json:"earned_at"`
	Reason   string        `json:"reason"`
}

// FromModelToTokenResponse converts a catalog token to its public view.
func FromModelToTokenResponse(t *models.Token) TokenResponse {
	return TokenResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		Icon:        t.Icon,
		Criteria:    t.Criteria,
	}
}

// FromModelToUserTokenResponse converts an award (with Token preloaded)
// to its public view.
func FromModelToUserTokenResponse(ut *models.UserToken) UserTokenResponse {
	return UserTokenResponse{
		ID:       ut.ID,
		Token:    FromModelToTokenResponse(&ut.Token),
		EarnedAt: ut.EarnedAt,
		Reason:   ut.Reason,
	}
}
