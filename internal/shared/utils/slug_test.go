package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateSlug(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "vietnamese", input: "Nguyễn Nhật Ánh", want: "nguyen-nhat-anh"},
		{name: "stroke d", input: "Đường đời", want: "duong-doi"},
		{name: "punctuation", input: "  Hello, World!  The -- Sequel ", want: "hello-world-the-sequel"},
		{name: "french", input: "Les Misérables", want: "les-miserables"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "?!*", want: ""},
		{name: "truncated", input: "a very long title indeed", maxLen: 7, want: "a-very"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input, tt.maxLen))
		})
	}
}

func Test_RemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Creme brulee", RemoveDiacritics("Crème brûlée"))
	assert.Equal(t, "plain", RemoveDiacritics("plain"))
}
