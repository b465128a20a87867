package models

import "time"

// UserToken records a single award of a catalog token to a user.
// The composite unique index is the authoritative guard against
// double-awarding under concurrent evaluation.
type UserToken struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_token"`
	TokenID  int64     `json:"token_id" gorm:"not null;uniqueIndex:idx_user_token"`
	EarnedAt time.Time `json:"earned_at" gorm:"autoCreateTime"`
	Reason   string    `json:"reason"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Token Token `json:"token,omitempty" gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE;"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}
