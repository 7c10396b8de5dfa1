// Package state holds the client-side synchronization core: the search
// overlay, the form session, and the orchestrator that keeps the loaded page
// and the stats snapshot coherent across mutations. Nothing in here knows
// about terminals or rendering, so the CLI and the TUI drive the same code.
package state

import (
	"strings"

	"bookdeck/internal/model"
)

// Filter applies the client-side search overlay to the books already loaded.
// Case-insensitive substring match on title or author; a blank or
// whitespace-only term passes everything through unchanged. Order is always
// preserved, and pagination state is never touched: the overlay sees one
// page, never the collection.
func Filter(books []model.Book, term string) []model.Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) {
			out = append(out, b)
		}
	}
	return out
}
