package service

import (
	"context"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

// appendAudit records one immutable action entry. Called inside the same
// transaction as the mutation it describes, so a rolled-back operation
// leaves no audit trace.
func appendAudit(ctx context.Context, r *repository.Repos, actorID string, action, resourceType, resourceID string) error {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if actorID != "" {
		entry.UserID = &actorID
	}
	return r.AuditLogs.Append(ctx, entry)
}

type AuditService interface {
	ListEntries(ctx context.Context, p Principal, limit int) ([]models.AuditLog, error)
}

type auditService struct {
	repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) AuditService {
	return &auditService{repos: repos}
}

// ListEntries returns the most recent audit records, newest first.
// Admin only.
func (s *auditService) ListEntries(ctx context.Context, p Principal, limit int) ([]models.AuditLog, error) {
	if !roleAllowed(OpListAuditLogs, p.Role) {
		return nil, ErrRoleMismatch
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.repos.AuditLogs.ListRecent(ctx, limit)
}
