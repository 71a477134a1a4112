package model

import "strings"

// Save codes: 8 characters from [A-Z0-9].
const (
	CodeLength   = 8
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Storage keys
const (
	DraftKeyPrefix = "draft_"
	PublishedKey   = "publishedBooks"
)

// Draft is an editable manuscript. Every field may be empty.
// The JSON field names are part of the stored format; do not rename them.
type Draft struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

// DraftKey is the storage key of the draft saved under code.
func DraftKey(code string) string {
	return DraftKeyPrefix + code
}

// NormalizeCode trims surrounding whitespace from a user-supplied save code.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// IsWellFormedCode reports whether code looks like a generated save code.
func IsWellFormedCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(CodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
