package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles are fixed at creation: "author", "reviewer" or "admin".
const (
	RoleAuthor   = "author"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role        string     `gorm:"not null" json:"role"`
	Affiliation *string    `json:"affiliation,omitempty"`
	Bio         *string    `gorm:"type:text" json:"bio,omitempty"`
	Expertise   *string    `json:"expertise,omitempty"` // comma-separated
	Interests   *string    `json:"interests,omitempty"` // comma-separated
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
