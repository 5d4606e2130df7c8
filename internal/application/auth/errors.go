package auth

import "gfg-stable-backend/internal/pkg/apperr"

var (
	ErrUserExists         = apperr.BadRequest("User with this email already exists")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrInvalidRole        = apperr.BadRequest("Invalid role ID")
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrMemberNotFound     = apperr.NotFound("Member not found")
	ErrNoFieldsToUpdate   = apperr.BadRequest("No fields to update")
	ErrEmptyName          = apperr.BadRequest("Name fields must not be empty")
	ErrInvalidToken       = apperr.Unauthorized("Invalid or expired token")
	ErrInvalidResetToken  = apperr.BadRequest("Invalid or expired reset token")
)
