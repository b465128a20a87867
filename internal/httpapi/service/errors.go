package service

import "errors"

// Domain error taxonomy. Handlers map these to HTTP status codes; nothing
// below is ever swallowed on the way out.
var (
	// not found
	ErrUserNotFound     = errors.New("user not found")
	ErrPaperNotFound    = errors.New("paper not found")
	ErrReviewerNotFound = errors.New("reviewer not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrTokenNotFound    = errors.New("token not found")
	ErrProofNotFound    = errors.New("proof not found")

	// conflicts
	ErrDuplicateAssignment = errors.New("reviewer already assigned to this paper")
	ErrDuplicateReview     = errors.New("review already submitted for this assignment")
	ErrDuplicateToken      = errors.New("token already awarded to this user")
	ErrEmailInUse          = errors.New("email already in use")

	// authorization
	ErrRoleMismatch  = errors.New("operation not allowed for this role")
	ErrNotAuthorized = errors.New("not authorized")

	// workflow preconditions
	ErrAssignmentRequired = errors.New("no review assignment exists for this reviewer and paper")

	// validation
	ErrValidation = errors.New("missing or invalid field")

	// integrity
	ErrTamperedRecord = errors.New("review content does not match its stored proof")

	// auth
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
