package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMissingSubject   = errors.New("token has no user_id claim")
	ErrMissingWorkspace = errors.New("token has no workspace_id claim")
	ErrInsufficientRole = errors.New("insufficient role for this action")
	ErrUnknownRole      = errors.New("unknown role")
)
