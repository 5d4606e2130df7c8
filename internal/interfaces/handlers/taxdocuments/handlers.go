package taxdocuments

import (
	"net/url"

	taxsvc "gfg-stable-backend/internal/application/taxdocuments"
	"gfg-stable-backend/internal/constants"
	"gfg-stable-backend/internal/middleware"
	"gfg-stable-backend/internal/pkg/apperr"
	"gfg-stable-backend/internal/pkg/response"
	"gfg-stable-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

const retrievedMessage = "Documents retrieved successfully"

var (
	errAccessDenied = apperr.Forbidden("Access denied")
	errInvalidYear  = apperr.BadRequest("Invalid tax year")
	errInvalidType  = apperr.BadRequest("Invalid document type")
)

// Handlers holds dependencies for tax document endpoints.
type Handlers struct {
	Service *taxsvc.Service
}

// Upload POST /api/tax-documents/upload/:memberId (multipart: file, document_type, tax_year)
func (h *Handlers) Upload(c *fiber.Ctx) error {
	memberID, err := validation.ParamID(c, "memberId")
	if err != nil {
		return err
	}
	var meta taxsvc.UploadMeta
	if err := validation.Body(c, &meta); err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return taxsvc.ErrNoFile
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := h.Service.Upload(c.UserContext(), taxsvc.UploadInput{
		UploadMeta:   meta,
		MemberID:     memberID,
		UploadedBy:   middleware.GetUser(c).UserID,
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Body:         f,
	})
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Document uploaded successfully", doc)
}

// ListByMember GET /api/tax-documents/member/:memberId
func (h *Handlers) ListByMember(c *fiber.Ctx) error {
	memberID, err := validation.ParamID(c, "memberId")
	if err != nil {
		return err
	}
	docs, err := h.Service.ListByMember(c.UserContext(), memberID)
	if err != nil {
		return err
	}
	return response.Success(c, retrievedMessage, docs)
}

// ListByYear GET /api/tax-documents/member/:memberId/year/:year
func (h *Handlers) ListByYear(c *fiber.Ctx) error {
	memberID, err := validation.ParamID(c, "memberId")
	if err != nil {
		return err
	}
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2030 {
		return errInvalidYear
	}
	docs, err := h.Service.ListByYear(c.UserContext(), memberID, year)
	if err != nil {
		return err
	}
	return response.Success(c, retrievedMessage, docs)
}

// ListByType GET /api/tax-documents/member/:memberId/type/:type
func (h *Handlers) ListByType(c *fiber.Ctx) error {
	memberID, err := validation.ParamID(c, "memberId")
	if err != nil {
		return err
	}
	docType, err := url.PathUnescape(c.Params("type"))
	if err != nil || docType == "" {
		return errInvalidType
	}
	docs, err := h.Service.ListByType(c.UserContext(), memberID, docType)
	if err != nil {
		return err
	}
	return response.Success(c, retrievedMessage, docs)
}

// Download GET /api/tax-documents/:documentId/download. Members may only fetch their own files.
func (h *Handlers) Download(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "documentId")
	if err != nil {
		return err
	}
	doc, err := h.Service.GetDocument(c.UserContext(), id)
	if err != nil {
		return err
	}
	user := middleware.GetUser(c)
	if doc.MemberID != user.UserID && !constants.AllowedRole(constants.ViewAnyTaxDocuments, user.RoleName) {
		return errAccessDenied
	}
	rc, err := h.Service.OpenFile(doc)
	if err != nil {
		return err
	}
	c.Attachment(doc.OriginalName)
	c.Set(fiber.HeaderContentType, doc.FileType)
	// fasthttp closes rc once the body is written
	return c.SendStream(rc, int(doc.FileSize))
}

// Delete DELETE /api/tax-documents/:documentId
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "documentId")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.UserContext(), id, middleware.GetUser(c).UserID); err != nil {
		return err
	}
	return response.Success(c, "Document deleted successfully", nil)
}
