package taxdocuments

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"gfg-stable-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const DefaultMaxFileSize int64 = 10 << 20

var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/jpg":          true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/csv": true,
}

type Service struct {
	DB          *gorm.DB
	Storage     Storage
	MaxFileSize int64
}

// UploadMeta is the form part of POST /api/tax-documents/upload/:memberId.
type UploadMeta struct {
	DocumentType string `form:"document_type" validate:"required,notblank,max=100"`
	TaxYear      int    `form:"tax_year" validate:"required,gte=2000,lte=2030"`
}

// UploadInput describes one received file.
type UploadInput struct {
	UploadMeta
	MemberID     uint
	UploadedBy   uint
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

func (s *Service) maxSize() int64 {
	if s.MaxFileSize > 0 {
		return s.MaxFileSize
	}
	return DefaultMaxFileSize
}

// AllowedType reports whether a Content-Type header names an accepted format.
func AllowedType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return allowedTypes[strings.ToLower(mt)]
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (*domain.TaxDocument, error) {
	if in.Body == nil {
		return nil, ErrNoFile
	}
	if in.Size > s.maxSize() {
		return nil, ErrFileTooLarge
	}
	if !AllowedType(in.ContentType) {
		return nil, ErrInvalidFileType
	}
	mediaType, _, _ := mime.ParseMediaType(in.ContentType)

	db := s.DB.WithContext(ctx)
	var members int64
	if err := db.Model(&domain.User{}).Where("id = ? AND is_active = ?", in.MemberID, true).Count(&members).Error; err != nil {
		return nil, err
	}
	if members == 0 {
		return nil, ErrMemberNotFound
	}

	name := "tax-" + uuid.NewString() + strings.ToLower(filepath.Ext(in.OriginalName))
	path, size, err := s.Storage.Save(name, io.LimitReader(in.Body, s.maxSize()+1))
	if err != nil {
		return nil, err
	}
	if size > s.maxSize() {
		_ = s.Storage.Remove(path)
		return nil, ErrFileTooLarge
	}

	doc := domain.TaxDocument{
		MemberID:     in.MemberID,
		FileName:     name,
		OriginalName: filepath.Base(in.OriginalName),
		FilePath:     path,
		FileType:     mediaType,
		FileSize:     size,
		DocumentType: strings.TrimSpace(in.DocumentType),
		TaxYear:      in.TaxYear,
		UploadedBy:   in.UploadedBy,
	}
	if err := db.Create(&doc).Error; err != nil {
		_ = s.Storage.Remove(path)
		return nil, err
	}

	log.Info().
		Uint("document_id", doc.ID).
		Uint("member_id", doc.MemberID).
		Str("document_type", doc.DocumentType).
		Int("tax_year", doc.TaxYear).
		Int64("size", doc.FileSize).
		Msg("tax document uploaded")
	return &doc, nil
}

func (s *Service) list(ctx context.Context, where string, args ...interface{}) ([]domain.TaxDocument, error) {
	docs := []domain.TaxDocument{}
	err := s.DB.WithContext(ctx).
		Where(where, args...).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) ListByMember(ctx context.Context, memberID uint) ([]domain.TaxDocument, error) {
	return s.list(ctx, "member_id = ?", memberID)
}

func (s *Service) ListByYear(ctx context.Context, memberID uint, year int) ([]domain.TaxDocument, error) {
	return s.list(ctx, "member_id = ? AND tax_year = ?", memberID, year)
}

func (s *Service) ListByType(ctx context.Context, memberID uint, documentType string) ([]domain.TaxDocument, error) {
	return s.list(ctx, "member_id = ? AND document_type = ?", memberID, documentType)
}

func (s *Service) GetDocument(ctx context.Context, id uint) (*domain.TaxDocument, error) {
	var doc domain.TaxDocument
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// OpenFile returns the stored body; the caller closes it.
func (s *Service) OpenFile(doc *domain.TaxDocument) (io.ReadCloser, error) {
	return s.Storage.Open(doc.FilePath)
}

// Delete removes the row, then the file. A failed unlink is logged and the
// file is left behind.
func (s *Service) Delete(ctx context.Context, id, actingUserID uint) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc.UploadedBy != actingUserID {
		return ErrDeleteForbidden
	}

	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.TaxDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	if err := s.Storage.Remove(doc.FilePath); err != nil {
		log.Warn().Err(err).Uint("document_id", id).Str("path", doc.FilePath).Msg("tax document file not removed")
	}
	log.Info().Uint("document_id", id).Uint("user_id", actingUserID).Msg("tax document deleted")
	return nil
}
