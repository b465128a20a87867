package models

import "time"

// AuditLog rows are append-only: never updated, never deleted.
type AuditLog struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Action       string    `json:"action" gorm:"not null"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      *string   `json:"details,omitempty" gorm:"type:text"`
	Timestamp    time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
