package taxdocuments

import "gfg-stable-backend/internal/pkg/apperr"

var (
	ErrDocumentNotFound = apperr.NotFound("Document not found")
	ErrFileMissing      = apperr.NotFound("File not found on disk")
	ErrMemberNotFound   = apperr.NotFound("Member not found")
	ErrNoFile           = apperr.BadRequest("No file uploaded")
	ErrFileTooLarge     = apperr.BadRequest("File too large")
	ErrInvalidFileType  = apperr.BadRequest("Invalid file type. Only PDF, images, Word, Excel and CSV files are allowed.")
	ErrDeleteForbidden  = apperr.Forbidden("Unauthorized to delete this document")
)
