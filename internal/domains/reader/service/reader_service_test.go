package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libmodel "bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/internal/domains/reader/model"
)

// fakeBooks is an in-memory BookSource.
type fakeBooks map[int64]libmodel.PublishedBook

func (f fakeBooks) GetPublished(_ context.Context, id int64) (*libmodel.PublishedBook, error) {
	b, ok := f[id]
	if !ok {
		return nil, libmodel.ErrBookNotFound
	}
	return &b, nil
}

func newTestService() ServiceInterface {
	return NewReaderService(fakeBooks{
		1: {ID: 1, Title: "Long", Author: "A", Content: strings.Repeat("a ", 500)},
		2: {ID: 2, Title: "Empty"},
	}, 900)
}

func Test_PageView(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		wantPage int
		prev     bool
		next     bool
	}{
		{name: "first", page: 1, wantPage: 1, prev: false, next: true},
		{name: "last", page: 2, wantPage: 2, prev: true, next: false},
		{name: "zero clamps to first", page: 0, wantPage: 1, prev: false, next: true},
		{name: "negative clamps to first", page: -3, wantPage: 1, prev: false, next: true},
		{name: "past end clamps to last", page: 40, wantPage: 2, prev: true, next: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.PageView(ctx, 1, tt.page, 0)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, view.Page)
			assert.Equal(t, 2, view.Total)
			assert.Equal(t, 900, view.CharsPerPage)
			assert.Equal(t, tt.prev, view.HasPrev)
			assert.Equal(t, tt.next, view.HasNext)
			assert.NotEmpty(t, view.Text)
		})
	}
}

func Test_PageView_CustomBudget(t *testing.T) {
	view, err := newTestService().PageView(context.Background(), 1, 1, 100)

	require.NoError(t, err)
	assert.Equal(t, 10, view.Total)
	assert.Equal(t, 100, view.CharsPerPage)
}

func Test_PageView_EmptyBook(t *testing.T) {
	view, err := newTestService().PageView(context.Background(), 2, 5, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "", view.Text)
}

func Test_PageView_NotFound(t *testing.T) {
	_, err := newTestService().PageView(context.Background(), 99, 1, 0)

	assert.ErrorIs(t, err, libmodel.ErrBookNotFound)
}

func Test_Open(t *testing.T) {
	r, book, err := newTestService().Open(context.Background(), 1, 0)

	require.NoError(t, err)
	assert.Equal(t, "Long", book.Title)
	assert.Equal(t, 1, r.Number())
	assert.Equal(t, model.Paginate(book.Content, 900), r.Pages())
}

func Test_NewReaderService_DefaultBudget(t *testing.T) {
	svc := NewReaderService(fakeBooks{1: {ID: 1, Content: strings.Repeat("a ", 500)}}, 0)

	view, err := svc.PageView(context.Background(), 1, 1, 0)

	require.NoError(t, err)
	assert.Equal(t, model.DefaultCharsPerPage, view.CharsPerPage)
}

func Test_ExportEPUB(t *testing.T) {
	out := filepath.Join(t.TempDir(), "long.epub")

	book, size, err := newTestService().ExportEPUB(context.Background(), 1, 0, out)

	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	assert.Equal(t, "Long", book.Title)
	stat, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, stat.Size(), size)
}

func Test_ExportEPUB_NotFound(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing.epub")

	book, _, err := newTestService().ExportEPUB(context.Background(), 42, 0, out)

	assert.Nil(t, book)
	assert.ErrorIs(t, err, libmodel.ErrBookNotFound)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
