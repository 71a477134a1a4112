package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/library/service"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

type LibraryHandler struct {
	service service.ServiceInterface
}

func NewLibraryHandler(svc service.ServiceInterface) *LibraryHandler {
	return &LibraryHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// SAVE DRAFT: POST /v1/drafts
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) SaveDraft(c *gin.Context) {
	var req model.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	draft := req.ToDraft()
	code, err := h.service.SaveDraft(c.Request.Context(), &model.Session{}, draft)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.SaveDraftResponse{
		Code:  code,
		Draft: draft.ToResponse(),
	})
}

// ════════════════════════════════════════════════════════════════
// LOAD DRAFT: GET /v1/drafts/:code
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) LoadDraft(c *gin.Context) {
	sess := &model.Session{}
	draft, err := h.service.LoadDraft(c.Request.Context(), sess, c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.LoadDraftResponse{
		Code:  sess.DraftCode,
		Draft: draft.ToResponse(),
	})
}

// ════════════════════════════════════════════════════════════════
// STATE: GET /v1/drafts/:code/state
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) State(c *gin.Context) {
	sess := model.NewSession(c.Param("code"))

	state, book, err := h.service.State(c.Request.Context(), sess)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := model.StateResponse{Code: sess.DraftCode, State: state}
	if book != nil {
		b := book.ToResponse()
		resp.Book = &b
	}
	response.Success(c, http.StatusOK, resp)
}

// ════════════════════════════════════════════════════════════════
// PUBLISH: POST /v1/books
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) Publish(c *gin.Context) {
	var req model.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	book, created, err := h.service.Publish(c.Request.Context(), model.NewSession(req.DraftCode), req.ToDraft())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.PublishResponse{
		DraftCode:    book.SaveCode,
		DraftCreated: created,
		Book:         book.ToResponse(),
	})
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /v1/books
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) List(c *gin.Context) {
	books, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]model.BookSummaryResponse, len(books))
	for i, b := range books {
		data[i] = b.ToSummary()
	}
	response.Success(c, http.StatusOK, model.BookListResponse{
		Data:  data,
		Total: len(data),
	})
}

// ════════════════════════════════════════════════════════════════
// GET: GET /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) Get(c *gin.Context) {
	id, err := ParseBookID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	book, err := h.service.GetPublished(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UNPUBLISH: DELETE /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *LibraryHandler) Unpublish(c *gin.Context) {
	id, err := ParseBookID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.service.Unpublish(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "unpublished": true})
}

// ParseBookID parses a positive book id from a path segment.
func ParseBookID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrInvalidBookID
	}
	return id, nil
}

func (h *LibraryHandler) handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Library request failed", err)
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), model.ToMessage(err))
}
