package model

// Reader tracks the current page of a paginated book.
// Navigation outside the page range is ignored.
type Reader struct {
	pages   []string
	current int
}

func NewReader(content string, charsPerPage int) *Reader {
	return &Reader{pages: Paginate(content, charsPerPage)}
}

// Page returns the text of the current page.
func (r *Reader) Page() string {
	return r.pages[r.current]
}

// Number is the 1-based current page.
func (r *Reader) Number() int {
	return r.current + 1
}

func (r *Reader) Total() int {
	return len(r.pages)
}

func (r *Reader) Pages() []string {
	return r.pages
}

func (r *Reader) Next() bool {
	if r.current >= len(r.pages)-1 {
		return false
	}
	r.current++
	return true
}

func (r *Reader) Prev() bool {
	if r.current == 0 {
		return false
	}
	r.current--
	return true
}

// GoTo jumps to the 1-based page n. It reports false and keeps the current page when n is out of range.
func (r *Reader) GoTo(n int) bool {
	if n < 1 || n > len(r.pages) {
		return false
	}
	r.current = n - 1
	return true
}

// Clamp limits a 1-based page number to [1, total].
func Clamp(n, total int) int {
	if total < 1 {
		return 1
	}
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
