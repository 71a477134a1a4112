package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxMetaLength caps title, subtitle and author.
const MaxMetaLength = 500

// DraftRequest - POST /v1/drafts
type DraftRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

func (r DraftRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(0, MaxMetaLength)),
		validation.Field(&r.Subtitle, validation.RuneLength(0, MaxMetaLength)),
		validation.Field(&r.Author, validation.RuneLength(0, MaxMetaLength)),
	)
}

func (r DraftRequest) ToDraft() Draft {
	return Draft{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		Author:   r.Author,
		Content:  r.Content,
	}
}

// PublishRequest - POST /v1/books
// DraftCode binds the publish to an existing draft; empty means a draft is saved first.
type PublishRequest struct {
	DraftRequest
	DraftCode string `json:"draft_code"`
}

func (r PublishRequest) Validate() error {
	return r.DraftRequest.Validate()
}

// DraftResponse mirrors Draft for the API.
type DraftResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

type SaveDraftResponse struct {
	Code  string        `json:"code"`
	Draft DraftResponse `json:"draft"`
}

type LoadDraftResponse struct {
	Code  string        `json:"code"`
	Draft DraftResponse `json:"draft"`
}

// BookSummaryResponse is one row of the published list. The save code is never exposed.
type BookSummaryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Author      string `json:"author"`
	AuthorLabel string `json:"author_label"`
}

type BookResponse struct {
	BookSummaryResponse
	Content string `json:"content"`
}

type BookListResponse struct {
	Data  []BookSummaryResponse `json:"data"`
	Total int                   `json:"total"`
}

type PublishResponse struct {
	DraftCode    string       `json:"draft_code"`
	DraftCreated bool         `json:"draft_created"`
	Book         BookResponse `json:"book"`
}

type StateResponse struct {
	Code  string        `json:"code"`
	State SessionState  `json:"state"`
	Book  *BookResponse `json:"book,omitempty"`
}

func (d Draft) ToResponse() DraftResponse {
	return DraftResponse{
		Title:    d.Title,
		Subtitle: d.Subtitle,
		Author:   d.Author,
		Content:  d.Content,
	}
}

func (b PublishedBook) ToSummary() BookSummaryResponse {
	return BookSummaryResponse{
		ID:          b.ID,
		Title:       b.Title,
		Subtitle:    b.Subtitle,
		Author:      b.Author,
		AuthorLabel: b.AuthorLabel(),
	}
}

func (b PublishedBook) ToResponse() BookResponse {
	return BookResponse{
		BookSummaryResponse: b.ToSummary(),
		Content:             b.Content,
	}
}
