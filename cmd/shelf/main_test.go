package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/config"
)

type harness struct {
	t      *testing.T
	dbPath string
	stdin  string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dbPath: filepath.Join(t.TempDir(), "shelf.db")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	cli := newShelfCLI(&out, strings.NewReader(h.stdin))
	cli.loadConfig = func() (*config.Config, error) {
		return &config.Config{
			App:    config.AppConfig{Environment: "test", Port: "8080"},
			Store:  config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: h.dbPath},
			Reader: config.ReaderConfig{CharsPerPage: config.DefaultCharsPerPage},
		}, nil
	}

	root := newRootCmd(cli)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

var (
	codeRe = regexp.MustCompile(`Your code: ([A-Z0-9]{8})`)
	bookRe = regexp.MustCompile(`Published book (\d+)`)
)

func match(t *testing.T, re *regexp.Regexp, s string) string {
	t.Helper()
	m := re.FindStringSubmatch(s)
	require.Len(t, m, 2, "no match for %s in %q", re, s)
	return m[1]
}

func Test_DraftSaveAndOpen(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("draft", "save", "--title", "Notes", "--author", "Me", "--content", "hello world")
	require.NoError(t, err)
	code := match(t, codeRe, out)

	out, err = h.run("draft", "open", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:    Notes")
	assert.Contains(t, out, "Author:   Me")
	assert.Contains(t, out, "hello world")
}

func Test_DraftOpen_Unknown(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("draft", "open", "ZZZZZZZZ")

	assert.ErrorContains(t, err, "no draft found")
}

func Test_DraftSave_ContentFromStdin(t *testing.T) {
	h := newHarness(t)
	h.stdin = "piped text"

	out, err := h.run("draft", "save", "--title", "Piped", "--content-file", "-")
	require.NoError(t, err)
	code := match(t, codeRe, out)

	out, err = h.run("draft", "open", code)
	require.NoError(t, err)
	assert.Contains(t, out, "piped text")
}

func Test_DraftSave_ContentFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o644))

	out, err := h.run("draft", "save", "--content-file", path)
	require.NoError(t, err)

	out, err = h.run("draft", "open", match(t, codeRe, out))
	require.NoError(t, err)
	assert.Contains(t, out, "from a file")
}

func Test_DraftSave_TitleTooLong(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("draft", "save", "--title", strings.Repeat("t", 501))

	assert.Error(t, err)
}

func Test_PublishReadUnpublish(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("publish", "--title", "Walls", "--content", strings.Repeat("brick ", 400))
	require.NoError(t, err)
	code := match(t, codeRe, out)
	id := match(t, bookRe, out)

	out, err = h.run("books")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Walls")
	assert.Contains(t, out, "Unknown author")

	out, err = h.run("owned", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Published as book "+id)

	out, err = h.run("read", id, "--page", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "[page 3 / 3]")

	out, err = h.run("read", id, "--page=-2")
	require.NoError(t, err)
	assert.Contains(t, out, "[page 1 / 3]")

	out, err = h.run("read", id, "--chars-per-page", "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "[page 1 / 2]")

	_, err = h.run("unpublish", id)
	require.NoError(t, err)

	out, err = h.run("owned", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Not published.")

	out, err = h.run("books")
	require.NoError(t, err)
	assert.Contains(t, out, "No books published yet.")
}

func Test_Publish_WithExistingCode(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("draft", "save", "--title", "Kept")
	require.NoError(t, err)
	code := match(t, codeRe, out)

	out, err = h.run("publish", "--code", code, "--title", "Kept")
	require.NoError(t, err)
	assert.NotContains(t, out, "Your code:")

	out, err = h.run("owned", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Published as book")
}

func Test_Export(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("publish", "--title", "Export me", "--author", "A", "--content", "short book")
	require.NoError(t, err)
	id := match(t, bookRe, out)

	dest := filepath.Join(t.TempDir(), "out.epub")
	out, err = h.run("export", id, "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dest)

	stat, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, stat.Size(), int64(0))
}

func Test_Export_RequiresOut(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("export", "1")

	assert.Error(t, err)
}

func Test_InvalidBookID(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{{"read", "abc"}, {"unpublish", "0"}, {"export", "-1", "--out", "x.epub"}} {
		_, err := h.run(args...)
		assert.Error(t, err, args)
	}
}

func Test_DriverOverride_Invalid(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("books", "--driver", "etcd")

	assert.ErrorContains(t, err, "invalid configuration")
}
