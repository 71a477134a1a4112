package service

import (
	"context"

	libmodel "bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/reader/model"
)

// BookSource resolves published books for reading.
type BookSource interface {
	GetPublished(ctx context.Context, id int64) (*libmodel.PublishedBook, error)
}

type ServiceInterface interface {
	// Open paginates a published book and positions a Reader on page 1.
	Open(ctx context.Context, id int64, charsPerPage int) (*model.Reader, *libmodel.PublishedBook, error)

	// PageView returns one page, clamping page into [1, total].
	PageView(ctx context.Context, id int64, page, charsPerPage int) (*model.PageResponse, error)

	// ExportEPUB writes the book as an EPUB to outputPath and returns the exported
	// book with the file size.
	ExportEPUB(ctx context.Context, id int64, charsPerPage int, outputPath string) (*libmodel.PublishedBook, int64, error)
}
