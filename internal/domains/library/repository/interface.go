package repository

import (
	"context"

	"bookshelf-backend/internal/domains/library/model"
)

// DraftRepository stores drafts under draft_<code>.
type DraftRepository interface {
	// Save writes d under code, silently overwriting an existing draft.
	Save(ctx context.Context, code string, d model.Draft) error

	// Get returns model.ErrDraftNotFound when nothing is stored under code.
	Get(ctx context.Context, code string) (*model.Draft, error)
}

// BookRepository stores the ordered published collection under a single key.
type BookRepository interface {
	// List returns the collection in publish order; empty when nothing was published.
	List(ctx context.Context) ([]model.PublishedBook, error)

	// Modify runs a read-modify-write over the whole collection.
	// Returning an error from fn aborts without writing.
	Modify(ctx context.Context, fn func(books []model.PublishedBook) ([]model.PublishedBook, error)) error
}
