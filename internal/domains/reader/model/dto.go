package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinCharsPerPage = 100
	MaxCharsPerPage = 20000
)

// PageRequest - GET /v1/books/:id/pages?page=N&chars_per_page=M
// Zero values mean "not given". Page is clamped, never rejected.
type PageRequest struct {
	Page         int `form:"page"`
	CharsPerPage int `form:"chars_per_page"`
}

func (r PageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CharsPerPage, validation.Min(MinCharsPerPage), validation.Max(MaxCharsPerPage)),
	)
}

// PageResponse is one page of a published book.
type PageResponse struct {
	BookID       int64  `json:"book_id"`
	Title        string `json:"title"`
	Page         int    `json:"page"`
	Total        int    `json:"total"`
	CharsPerPage int    `json:"chars_per_page"`
	Text         string `json:"text"`
	HasPrev      bool   `json:"has_prev"`
	HasNext      bool   `json:"has_next"`
}
