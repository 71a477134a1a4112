package service

import (
	"math/rand/v2"
	"time"

	"bookshelf-backend/internal/domains/library/model"
)

// GenerateCode samples model.CodeLength characters uniformly, with replacement, from model.CodeAlphabet.
// Not suitable where the code must be unguessable.
func GenerateCode() string {
	b := make([]byte, model.CodeLength)
	for i := range b {
		b[i] = model.CodeAlphabet[rand.IntN(len(model.CodeAlphabet))]
	}
	return string(b)
}

// nextBookID is max(now in ms, highest existing id + 1), so ids stay unique within the collection
// and keep increasing when two books are published in the same millisecond.
func nextBookID(books []model.PublishedBook, now time.Time) int64 {
	id := now.UnixMilli()
	for _, b := range books {
		if b.ID >= id {
			id = b.ID + 1
		}
	}
	return id
}
