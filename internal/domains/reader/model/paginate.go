package model

import "strings"

// DefaultCharsPerPage is the page budget used when none is configured.
const DefaultCharsPerPage = 900

// Paginate splits text into pages of roughly charsPerPage characters (runes).
// A page is closed only on an ASCII space once the budget is reached, so words are
// never split and a page may run past the budget up to the next space.
// Each page is trimmed of surrounding whitespace. Empty input yields a single empty page.
func Paginate(text string, charsPerPage int) []string {
	if charsPerPage <= 0 {
		charsPerPage = DefaultCharsPerPage
	}

	var (
		pages []string
		buf   strings.Builder
		n     int
	)
	for _, r := range text {
		buf.WriteRune(r)
		n++
		if n >= charsPerPage && r == ' ' {
			pages = append(pages, strings.TrimSpace(buf.String()))
			buf.Reset()
			n = 0
		}
	}

	if rest := strings.TrimSpace(buf.String()); rest != "" {
		pages = append(pages, rest)
	}
	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}
