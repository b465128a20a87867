package models

const (
	TokenTypeBadge       = "badge"
	TokenTypeAchievement = "achievement"
	TokenTypeAccess      = "access"
)

// Token is the static achievement catalog, seeded once at startup.
type Token struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	Type        string  `json:"type" gorm:"not null"`
	Icon        *string `json:"icon,omitempty"`
	Criteria    *string `json:"criteria,omitempty"`
}

func (Token) TableName() string {
	return "tokens"
}
