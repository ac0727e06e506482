package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docstore/internal/config"
	"docstore/internal/filename"
	"docstore/internal/model"
	"docstore/internal/pagination"
	"docstore/internal/service"
)

// uploadResponse is the body of a successful upload.
type uploadResponse struct {
	Message  string          `json:"message"`
	Document *model.Document `json:"document"`
}

// listResponse is one page of documents.
type listResponse struct {
	Documents  []model.Document `json:"documents"`
	Pagination pagination.Meta  `json:"pagination"`
}

// metadataResponse wraps a single document's metadata.
type metadataResponse struct {
	Document *model.Document `json:"document"`
}

// UploadDocument stores the multipart field "file".
//
// @Summary  Upload a document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "pdf, txt or docx file"
// @Success  201 {object} uploadResponse
// @Failure  400 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			// A part named "file" without a filename is parsed as a plain value.
			if form, ferr := c.MultipartForm(); ferr == nil {
				if _, ok := form.Value["file"]; ok {
					return writeError(c, fiber.StatusBadRequest, "EMPTY_FILENAME", "no file selected")
				}
			}
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if strings.TrimSpace(fh.Filename) == "" {
			return writeError(c, fiber.StatusBadRequest, "EMPTY_FILENAME", "no file selected")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Create(c.UserContext(), fh.Filename, filename.Extension(fh.Filename), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			Message:  "Document uploaded successfully",
			Document: doc,
		})
	}
}

// ListDocuments returns one page of documents, newest first.
//
// @Summary  List documents
// @Tags     documents
// @Produce  json
// @Param    page     query int false "page number, from 1"
// @Param    per_page query int false "items per page"
// @Success  200 {object} listResponse
// @Failure  500 {object} errorPayload
// @Router   /api/documents [get]
func ListDocuments(svc service.DocumentService, pager config.PaginationConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := pagination.Validate(c.Query("page"), c.Query("per_page"), pager.DefaultPerPage, pager.MaxPerPage)

		res, err := svc.List(c.UserContext(), p.Page, p.PerPage)
		if err != nil {
			return writeServiceError(c, err)
		}

		docs := res.Items
		if docs == nil {
			docs = []model.Document{}
		}
		return c.JSON(listResponse{
			Documents:  docs,
			Pagination: pagination.NewMeta(p, res.Total),
		})
	}
}

// GetDocument streams the stored bytes as an attachment named after the
// document's display name.
//
// @Summary  Download a document
// @Tags     documents
// @Produce  octet-stream
// @Param    id path int true "document id"
// @Success  200 {file} file
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
		}

		rc, doc, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(doc.DisplayName)
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(doc.Size))
	}
}

// GetDocumentMetadata returns a document's metadata without its content.
//
// @Summary  Document metadata
// @Tags     documents
// @Produce  json
// @Param    id path int true "document id"
// @Success  200 {object} metadataResponse
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/documents/{id}/metadata [get]
func GetDocumentMetadata(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(metadataResponse{Document: doc})
	}
}

// parseID accepts positive decimal ids only; anything else addresses no document.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
