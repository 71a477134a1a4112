package service

import (
	"context"
	"fmt"

	libmodel "bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/reader/export"
	"bookshelf-backend/internal/domains/reader/model"
	"bookshelf-backend/pkg/logger"
)

type readerService struct {
	books        BookSource
	charsPerPage int
}

// NewReaderService reads books from src. charsPerPage is the default budget used when a call passes 0.
func NewReaderService(src BookSource, charsPerPage int) ServiceInterface {
	if charsPerPage <= 0 {
		charsPerPage = model.DefaultCharsPerPage
	}
	return &readerService{books: src, charsPerPage: charsPerPage}
}

func (s *readerService) budget(charsPerPage int) int {
	if charsPerPage <= 0 {
		return s.charsPerPage
	}
	return charsPerPage
}

func (s *readerService) Open(ctx context.Context, id int64, charsPerPage int) (*model.Reader, *libmodel.PublishedBook, error) {
	book, err := s.books.GetPublished(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return model.NewReader(book.Content, s.budget(charsPerPage)), book, nil
}

func (s *readerService) PageView(ctx context.Context, id int64, page, charsPerPage int) (*model.PageResponse, error) {
	budget := s.budget(charsPerPage)
	r, book, err := s.Open(ctx, id, budget)
	if err != nil {
		return nil, err
	}

	n := model.Clamp(page, r.Total())
	r.GoTo(n)

	return &model.PageResponse{
		BookID:       book.ID,
		Title:        book.Title,
		Page:         r.Number(),
		Total:        r.Total(),
		CharsPerPage: budget,
		Text:         r.Page(),
		HasPrev:      r.Number() > 1,
		HasNext:      r.Number() < r.Total(),
	}, nil
}

func (s *readerService) ExportEPUB(ctx context.Context, id int64, charsPerPage int, outputPath string) (*libmodel.PublishedBook, int64, error) {
	r, book, err := s.Open(ctx, id, charsPerPage)
	if err != nil {
		return nil, 0, err
	}

	size, err := export.WriteEPUB(export.MetadataFor(*book), r.Pages(), outputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to export book %d: %w", id, err)
	}

	logger.Info("Book exported", map[string]interface{}{
		"id":    id,
		"pages": r.Total(),
		"bytes": size,
	})
	return book, size, nil
}
