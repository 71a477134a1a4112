package model

import (
	"errors"
	"net/http"
)

var (
	ErrDraftNotFound   = errors.New("no draft found")
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidBookID   = errors.New("invalid book id")
	ErrCorruptedRecord = errors.New("stored record could not be decoded")
)

type errorInfo struct {
	Status  int
	Code    string
	Message string
}

var libraryErrorMap = map[error]errorInfo{
	ErrDraftNotFound: {
		Status:  http.StatusNotFound,
		Code:    "DRAFT_NOT_FOUND",
		Message: "No draft found for this save code",
	},
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "The specified book does not exist",
	},
	ErrInvalidBookID: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_BOOK_ID",
		Message: "Book id must be a positive integer",
	},
	ErrCorruptedRecord: {
		Status:  http.StatusInternalServerError,
		Code:    "CORRUPTED_RECORD",
		Message: "Stored data could not be read",
	},
}

func lookup(err error) (errorInfo, bool) {
	for target, info := range libraryErrorMap {
		if errors.Is(err, target) {
			return info, true
		}
	}
	return errorInfo{}, false
}

// ToHTTPStatus maps a library error to an HTTP status code.
func ToHTTPStatus(err error) int {
	if info, ok := lookup(err); ok {
		return info.Status
	}
	return http.StatusInternalServerError
}

// ToErrorCode maps a library error to an API error code.
func ToErrorCode(err error) string {
	if info, ok := lookup(err); ok {
		return info.Code
	}
	return "INTERNAL_ERROR"
}

// ToMessage returns the user-facing message for err.
func ToMessage(err error) string {
	if info, ok := lookup(err); ok {
		return info.Message
	}
	return "Internal server error"
}
