package export

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libmodel "bookshelf-backend/internal/domains/library/model"
)

func Test_MetadataFor(t *testing.T) {
	tests := []struct {
		name string
		book libmodel.PublishedBook
		want Metadata
	}{
		{
			name: "full",
			book: libmodel.PublishedBook{Title: "Dune", Subtitle: "Book One", Author: "F. Herbert"},
			want: Metadata{Title: "Dune", Author: "F. Herbert", Description: "Book One", Lang: "en"},
		},
		{
			name: "missing author and title",
			book: libmodel.PublishedBook{},
			want: Metadata{Title: "Untitled", Author: "Unknown author", Lang: "en"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MetadataFor(tt.book))
		})
	}
}

func Test_PageHTML(t *testing.T) {
	assert.Equal(t, "<p>a &lt;b&gt; &amp; c</p>\n", PageHTML("a <b> & c"))
	assert.Equal(t, "<p>one</p>\n<p>two</p>\n", PageHTML("one\n\n  two  "))
	assert.Equal(t, "<p></p>\n", PageHTML(""))
}

func Test_WriteEPUB(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "book.epub")
	meta := Metadata{Title: "Dune", Author: "F. Herbert", Lang: "en"}

	size, err := WriteEPUB(meta, []string{"first page", "second & last"}, out)

	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	var sections []string
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".xhtml") && strings.Contains(f.Name, "page") {
			rc, err := f.Open()
			require.NoError(t, err)
			body, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			sections = append(sections, string(body))
		}
	}
	require.Len(t, sections, 2)
	joined := strings.Join(sections, "")
	assert.Contains(t, joined, "first page")
	assert.Contains(t, joined, "second &amp; last")
}

func Test_WriteEPUB_EmptyPath(t *testing.T) {
	_, err := WriteEPUB(Metadata{Title: "x"}, []string{""}, "")

	assert.Error(t, err)
}
