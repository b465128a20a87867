package service

import "reviewhub/internal/httpapi/models"

// Principal is the authenticated caller, supplied by the identity
// collaborator (JWT middleware).
type Principal struct {
	ID   string
	Role string
}

// Operation names used by the authorization table and audit actions.
const (
	OpRegister          = "register"
	OpLogin             = "login"
	OpUpdateProfile     = "update_profile"
	OpUploadPaper       = "upload_paper"
	OpUpdatePaper       = "update_paper"
	OpUpdatePaperStatus = "update_paper_status"
	OpAssignReviewer    = "assign_reviewer"
	OpSubmitReview      = "submit_review"
	OpAddFeedback       = "provide_review_feedback"
	OpAwardToken        = "award_token"
	OpGenerateProof     = "generate_proof"
	OpListAuditLogs     = "list_audit_logs"
)

// allowedRoles is the single place role gating lives. Ownership rules
// (paper author, review author) are checked by the owning service after
// the role gate passes.
var allowedRoles = map[string][]string{
	OpUploadPaper:       {models.RoleAuthor, models.RoleAdmin},
	OpUpdatePaper:       {models.RoleAuthor, models.RoleAdmin},
	OpUpdatePaperStatus: {models.RoleAdmin},
	OpAssignReviewer:    {models.RoleAuthor, models.RoleAdmin},
	OpSubmitReview:      {models.RoleReviewer},
	OpAddFeedback:       {models.RoleAuthor},
	OpAwardToken:        {models.RoleAdmin},
	OpListAuditLogs:     {models.RoleAdmin},
}

// roleAllowed consults the table; operations absent from it are open to
// any authenticated principal.
func roleAllowed(op string, role string) bool {
	roles, ok := allowedRoles[op]
	if !ok {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// isOwnerOrAdmin is the shared ownership rule for profile and paper
// mutations.
func isOwnerOrAdmin(p Principal, ownerID string) bool {
	return p.ID == ownerID || p.Role == models.RoleAdmin
}
