package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// AuditLogResponse: one append-only audit trail entry
type AuditLogResponse struct {
	ID           int64     `json:"id"`
	UserID       *string   `json:"user_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      *string   `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// FromModelToAuditLogResponse converts an audit log row to its public view.
func FromModelToAuditLogResponse(l *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Details:      l.Details,
		Timestamp:    l.Timestamp,
	}
}
