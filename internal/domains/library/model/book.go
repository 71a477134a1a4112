package model

// UnknownAuthor labels books published without an author.
const UnknownAuthor = "Unknown author"

// PublishedBook is an immutable snapshot of a draft taken at publish time.
// SaveCode points back at the originating draft; it is only used to answer "is this book mine".
type PublishedBook struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	SaveCode string `json:"saveCode"`
}

// NewSnapshot copies the draft fields into a new book.
func NewSnapshot(id int64, d Draft, saveCode string) PublishedBook {
	return PublishedBook{
		ID:       id,
		Title:    d.Title,
		Subtitle: d.Subtitle,
		Author:   d.Author,
		Content:  d.Content,
		SaveCode: saveCode,
	}
}

// AuthorLabel is the author, or UnknownAuthor when blank.
func (b PublishedBook) AuthorLabel() string {
	if b.Author == "" {
		return UnknownAuthor
	}
	return b.Author
}

// IsOwnedBy reports whether the book was published from the draft with the given code.
func (b PublishedBook) IsOwnedBy(code string) bool {
	return code != "" && b.SaveCode == code
}
