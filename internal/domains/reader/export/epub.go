package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	epub "github.com/go-shiori/go-epub"

	libmodel "bookshelf-backend/internal/domains/library/model"
	"bookshelf-backend/pkg/logger"
)

const (
	defaultLang  = "en"
	untitledBook = "Untitled"
)

// Metadata is what ends up in the EPUB package document.
type Metadata struct {
	Title       string
	Author      string
	Description string
	Lang        string
}

// MetadataFor derives EPUB metadata from a published book.
// An empty author becomes "Unknown author", the subtitle becomes the description.
func MetadataFor(book libmodel.PublishedBook) Metadata {
	title := strings.TrimSpace(book.Title)
	if title == "" {
		title = untitledBook
	}
	return Metadata{
		Title:       title,
		Author:      book.AuthorLabel(),
		Description: book.Subtitle,
		Lang:        defaultLang,
	}
}

// WriteEPUB builds an EPUB with one section per page and writes it to outputPath.
// It returns the size of the written file.
func WriteEPUB(meta Metadata, pages []string, outputPath string) (int64, error) {
	if outputPath == "" {
		return 0, fmt.Errorf("output path cannot be empty")
	}
	startTime := time.Now()

	e, err := epub.NewEpub(meta.Title)
	if err != nil {
		return 0, fmt.Errorf("failed to create epub: %w", err)
	}
	e.SetAuthor(meta.Author)
	if meta.Lang != "" {
		e.SetLang(meta.Lang)
	} else {
		e.SetLang(defaultLang)
	}
	if meta.Description != "" {
		e.SetDescription(meta.Description)
	}

	for i, page := range pages {
		sectionTitle := fmt.Sprintf("Page %d", i+1)
		filename := fmt.Sprintf("page%04d.xhtml", i+1)
		if _, err := e.AddSection(PageHTML(page), sectionTitle, filename, ""); err != nil {
			return 0, fmt.Errorf("failed to add page %d to epub: %w", i+1, err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return 0, fmt.Errorf("failed to create output directory '%s': %w", dir, err)
		}
	}

	if err := e.Write(outputPath); err != nil {
		return 0, fmt.Errorf("failed to write epub file: %w", err)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output file '%s': %w", outputPath, err)
	}

	logger.Info("EPUB written", map[string]interface{}{
		"path":     outputPath,
		"pages":    len(pages),
		"bytes":    stat.Size(),
		"duration": time.Since(startTime).String(),
	})
	return stat.Size(), nil
}

// PageHTML renders one page as escaped paragraphs, one per non-blank line.
func PageHTML(page string) string {
	var b strings.Builder
	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>\n")
	}
	if b.Len() == 0 {
		return "<p></p>\n"
	}
	return b.String()
}
