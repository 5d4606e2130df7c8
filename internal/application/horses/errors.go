package horses

import "gfg-stable-backend/internal/pkg/apperr"

var (
	ErrHorseNotFound     = apperr.NotFound("Horse not found")
	ErrMemberNotFound    = apperr.NotFound("Member not found")
	ErrNotEnoughShares   = apperr.BadRequest("Not enough shares available")
	ErrInvalidPercentage = apperr.BadRequest("Percentage must be at least 0.01")
	ErrNoFieldsToUpdate  = apperr.BadRequest("No fields to update")
	ErrInvalidShares     = apperr.BadRequest("Current shares cannot exceed initial shares")
	ErrBlankField        = apperr.BadRequest("Field must not be blank")
)
