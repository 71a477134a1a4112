package repository

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/pkg/kv"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type kvDraftRepository struct {
	store kv.Store
}

func NewDraftRepository(store kv.Store) DraftRepository {
	return &kvDraftRepository{store: store}
}

func (r *kvDraftRepository) Save(ctx context.Context, code string, d model.Draft) error {
	data, err := json.MarshalToString(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := r.store.Set(ctx, model.DraftKey(code), data); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *kvDraftRepository) Get(ctx context.Context, code string) (*model.Draft, error) {
	data, found, err := r.store.Get(ctx, model.DraftKey(code))
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	// An empty value counts as absent.
	if !found || data == "" {
		return nil, model.ErrDraftNotFound
	}

	var d model.Draft
	if err := json.UnmarshalFromString(data, &d); err != nil {
		return nil, fmt.Errorf("%w: draft %s: %v", model.ErrCorruptedRecord, code, err)
	}
	return &d, nil
}

type kvBookRepository struct {
	store kv.Store
}

func NewBookRepository(store kv.Store) BookRepository {
	return &kvBookRepository{store: store}
}

func decodeBooks(data string, found bool) ([]model.PublishedBook, error) {
	books := []model.PublishedBook{}
	if !found || data == "" {
		return books, nil
	}
	if err := json.UnmarshalFromString(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptedRecord, model.PublishedKey, err)
	}
	if books == nil {
		// "null" decodes to a nil slice
		books = []model.PublishedBook{}
	}
	return books, nil
}

func (r *kvBookRepository) List(ctx context.Context) ([]model.PublishedBook, error) {
	data, found, err := r.store.Get(ctx, model.PublishedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load published books: %w", err)
	}
	return decodeBooks(data, found)
}

func (r *kvBookRepository) Modify(ctx context.Context, fn func([]model.PublishedBook) ([]model.PublishedBook, error)) error {
	return kv.Update(ctx, r.store, model.PublishedKey, func(current string, found bool) (string, error) {
		books, err := decodeBooks(current, found)
		if err != nil {
			return "", err
		}

		next, err := fn(books)
		if err != nil {
			return "", err
		}
		if next == nil {
			next = []model.PublishedBook{}
		}

		data, err := json.MarshalToString(next)
		if err != nil {
			return "", fmt.Errorf("failed to encode published books: %w", err)
		}
		return data, nil
	})
}
