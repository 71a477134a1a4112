package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)

	// đ has no canonical decomposition
	strokeReplacer = strings.NewReplacer("đ", "d", "Đ", "D", "ł", "l", "Ł", "L", "ø", "o", "Ø", "O")
)

// GenerateSlug turns a title into a lowercase ASCII slug: "Nguyễn Nhật Ánh" -> "nguyen-nhat-anh".
// maxLen > 0 truncates the result without leaving a trailing hyphen.
func GenerateSlug(input string, maxLen int) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	slug := strings.Trim(multiHyphen.ReplaceAllString(cleaned, "-"), "-")

	if maxLen > 0 && len(slug) > maxLen {
		slug = strings.TrimRight(slug[:maxLen], "-")
	}
	return slug
}

// RemoveDiacritics strips combining marks after NFD decomposition ("Ánh" -> "Anh").
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strokeReplacer.Replace(input))
	if err != nil {
		return input
	}
	return out
}
