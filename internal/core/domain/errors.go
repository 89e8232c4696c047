package domain

import "errors"

// Sentinel errors shared by every component. Callers add detail with
// fmt.Errorf("%w: ...") and the HTTP layer maps them with errors.Is.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrBanned             = errors.New("account is banned")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
