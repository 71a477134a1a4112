package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/library/repository"
	"bookshelf-backend/pkg/logger"
)

// errUnchanged aborts a Modify that has nothing to write.
var errUnchanged = errors.New("published collection unchanged")

type libraryService struct {
	drafts repository.DraftRepository
	books  repository.BookRepository

	newCode func() string
	now     func() time.Time

	// publishMu serialises read-modify-write of the published collection inside this process.
	publishMu sync.Mutex
}

// Option customises the service; used by tests to pin codes and time.
type Option func(*libraryService)

func WithCodeGenerator(fn func() string) Option {
	return func(s *libraryService) { s.newCode = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *libraryService) { s.now = fn }
}

// NewLibraryService wires the draft and book repositories into the lifecycle service.
func NewLibraryService(drafts repository.DraftRepository, books repository.BookRepository, opts ...Option) ServiceInterface {
	s := &libraryService{
		drafts:  drafts,
		books:   books,
		newCode: GenerateCode,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *libraryService) GenerateCode() string {
	return s.newCode()
}

// ════════════════════════════════════════════════════════════════
// DRAFTS
// ════════════════════════════════════════════════════════════════

func (s *libraryService) SaveDraft(ctx context.Context, sess *model.Session, d model.Draft) (string, error) {
	if sess == nil {
		sess = &model.Session{}
	}

	code := s.newCode()
	if err := s.drafts.Save(ctx, code, d); err != nil {
		return "", err
	}
	sess.Bind(code)

	logger.Info("Draft saved", map[string]interface{}{
		"code":  code,
		"title": d.Title,
		"chars": len([]rune(d.Content)),
	})
	return code, nil
}

func (s *libraryService) LoadDraft(ctx context.Context, sess *model.Session, code string) (*model.Draft, error) {
	code = model.NormalizeCode(code)
	if code == "" {
		return nil, model.ErrDraftNotFound
	}

	d, err := s.drafts.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	if sess != nil {
		sess.Bind(code)
	}
	logger.Debug("Draft loaded", map[string]interface{}{"code": code})
	return d, nil
}

func (s *libraryService) EnsureDraft(ctx context.Context, sess *model.Session, d model.Draft) (string, bool, error) {
	if sess.HasDraft() {
		return sess.DraftCode, false, nil
	}

	code, err := s.SaveDraft(ctx, sess, d)
	if err != nil {
		return "", false, fmt.Errorf("failed to save draft before publishing: %w", err)
	}
	return code, true, nil
}

// ════════════════════════════════════════════════════════════════
// PUBLISHED BOOKS
// ════════════════════════════════════════════════════════════════

func (s *libraryService) Publish(ctx context.Context, sess *model.Session, d model.Draft) (*model.PublishedBook, bool, error) {
	if sess == nil {
		sess = &model.Session{}
	}

	code, created, err := s.EnsureDraft(ctx, sess, d)
	if err != nil {
		return nil, false, err
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	var book model.PublishedBook
	err = s.books.Modify(ctx, func(books []model.PublishedBook) ([]model.PublishedBook, error) {
		book = model.NewSnapshot(nextBookID(books, s.now()), d, code)
		return append(books, book), nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to publish book: %w", err)
	}

	logger.Info("Book published", map[string]interface{}{
		"id":            book.ID,
		"code":          code,
		"draft_created": created,
		"title":         book.Title,
	})
	return &book, created, nil
}

func (s *libraryService) ListPublished(ctx context.Context) ([]model.PublishedBook, error) {
	return s.books.List(ctx)
}

func (s *libraryService) GetPublished(ctx context.Context, id int64) (*model.PublishedBook, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}

	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (s *libraryService) Unpublish(ctx context.Context, id int64) error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	removed := 0
	err := s.books.Modify(ctx, func(books []model.PublishedBook) ([]model.PublishedBook, error) {
		// Modify may retry fn on a write conflict.
		removed = 0
		kept := books[:0]
		for _, b := range books {
			if b.ID == id {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		if removed == 0 {
			return nil, errUnchanged
		}
		return kept, nil
	})
	if errors.Is(err, errUnchanged) {
		logger.Warn("Unpublish of unknown book ignored", map[string]interface{}{"id": id})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to unpublish book: %w", err)
	}

	logger.Info("Book unpublished", map[string]interface{}{"id": id, "removed": removed})
	return nil
}

func (s *libraryService) FindOwnedBook(ctx context.Context, code string) (*model.PublishedBook, error) {
	code = model.NormalizeCode(code)
	if code == "" {
		return nil, nil
	}

	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].IsOwnedBy(code) {
			return &books[i], nil
		}
	}
	return nil, nil
}

func (s *libraryService) State(ctx context.Context, sess *model.Session) (model.SessionState, *model.PublishedBook, error) {
	if !sess.HasDraft() {
		return model.StateNoDraft, nil, nil
	}

	book, err := s.FindOwnedBook(ctx, sess.DraftCode)
	if err != nil {
		return "", nil, err
	}
	if book != nil {
		return model.StatePublished, book, nil
	}
	return model.StateDrafted, nil, nil
}
