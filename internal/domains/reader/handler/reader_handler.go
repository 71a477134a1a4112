package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	libhandler "bookshelf-backend/internal/domains/library/handler"
	libmodel "bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/reader/model"
	"bookshelf-backend/internal/domains/reader/service"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/internal/shared/utils"
	"bookshelf-backend/pkg/logger"
)

const (
	epubContentType = "application/epub+zip"
	maxSlugLength   = 60
)

type ReaderHandler struct {
	service service.ServiceInterface
}

func NewReaderHandler(svc service.ServiceInterface) *ReaderHandler {
	return &ReaderHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// PAGE VIEW: GET /v1/books/:id/pages?page=N&chars_per_page=M
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) Page(c *gin.Context) {
	id, err := libhandler.ParseBookID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	var req model.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "page and chars_per_page must be integers")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	view, err := h.service.PageView(c.Request.Context(), id, req.Page, req.CharsPerPage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, view, &response.Meta{Page: view.Page, Total: view.Total})
}

// ════════════════════════════════════════════════════════════════
// EXPORT: GET /v1/books/:id/epub
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) ExportEPUB(c *gin.Context) {
	id, err := libhandler.ParseBookID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	dir, err := os.MkdirTemp("", "bookshelf-epub-*")
	if err != nil {
		logger.Error("Failed to create export dir", err)
		response.InternalServerError(c, "Export failed")
		return
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "book.epub")
	book, _, err := h.service.ExportEPUB(c.Request.Context(), id, 0, out)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", epubContentType)
	c.FileAttachment(out, attachmentName(book))
}

// attachmentName is "book-<id>-<title slug>.epub", or "book-<id>.epub" for untitled books.
func attachmentName(book *libmodel.PublishedBook) string {
	name := fmt.Sprintf("book-%d", book.ID)
	if slug := utils.GenerateSlug(book.Title, maxSlugLength); slug != "" {
		name += "-" + slug
	}
	return name + ".epub"
}

func (h *ReaderHandler) handleError(c *gin.Context, err error) {
	status := libmodel.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Reader request failed", err)
	}
	response.ErrorResponse(c, status, libmodel.ToErrorCode(err), libmodel.ToMessage(err))
}
