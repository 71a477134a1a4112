package service

import (
	"context"

	"bookshelf-backend/internal/domains/library/model"
)

// ServiceInterface is the draft/publish lifecycle.
// Operations that depend on "the current draft" take an explicit *model.Session and update it.
type ServiceInterface interface {
	// GenerateCode returns a fresh 8-character save code. Collisions are not checked.
	GenerateCode() string

	// SaveDraft always generates a new code, writes the draft and binds the session to it.
	SaveDraft(ctx context.Context, sess *model.Session, d model.Draft) (string, error)

	// LoadDraft reads the draft saved under code and binds the session to it.
	// Errors: model.ErrDraftNotFound for a blank or unknown code.
	LoadDraft(ctx context.Context, sess *model.Session, code string) (*model.Draft, error)

	// EnsureDraft saves d as a new draft only when the session has none.
	// created reports whether a draft was written.
	EnsureDraft(ctx context.Context, sess *model.Session, d model.Draft) (code string, created bool, err error)

	// Publish runs EnsureDraft, then appends a snapshot of d to the published collection.
	// The draft's code ends up in book.SaveCode.
	Publish(ctx context.Context, sess *model.Session, d model.Draft) (book *model.PublishedBook, draftCreated bool, err error)

	// ListPublished returns every published book in publish order.
	ListPublished(ctx context.Context) ([]model.PublishedBook, error)

	// GetPublished returns model.ErrBookNotFound when id is not published.
	GetPublished(ctx context.Context, id int64) (*model.PublishedBook, error)

	// Unpublish removes the book with id. Unknown ids are a no-op.
	Unpublish(ctx context.Context, id int64) error

	// FindOwnedBook returns the first book published from the draft with code, or nil.
	FindOwnedBook(ctx context.Context, code string) (*model.PublishedBook, error)

	// State reports the session's lifecycle state and, when published, the owned book.
	State(ctx context.Context, sess *model.Session) (model.SessionState, *model.PublishedBook, error)
}
