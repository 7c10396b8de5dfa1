package state

import (
	"context"

	"bookdeck/internal/model"
)

// BooksAPI is the slice of the gateway adapter the orchestrator needs.
type BooksAPI interface {
	ListBooks(ctx context.Context, page int) (model.Page, error)
	CreateBook(ctx context.Context, payload model.BookPayload) (model.Book, error)
	UpdateBook(ctx context.Context, id string, payload model.BookPayload) (model.Book, error)
	DeleteBook(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.Stats, error)
}

// Outcome is the coherent snapshot a mutation chain produces. The caller
// installs Page and Stats atomically; partial updates never escape this
// package. ClearSearch is set when the search overlay must reset so the
// affected record is guaranteed visible (create only).
type Outcome struct {
	Page        model.Page
	Stats       model.Stats
	ClearSearch bool
}

// Orchestrator sequences the multi-request chains that keep the page cache
// and the stats snapshot consistent after a mutation. Each chain is plain
// sequential code: no two calls issued by the same user action ever race.
type Orchestrator struct {
	API BooksAPI
}

// LoadPage fetches one page. The caller replaces all pagination state
// wholesale from the returned value; on error nothing changes.
func (o Orchestrator) LoadPage(ctx context.Context, page int) (model.Page, error) {
	return o.API.ListBooks(ctx, page)
}

// Create runs create -> load page 1 -> refresh stats. The server inserts new
// records first on page 1, and the search overlay resets so the new record
// cannot be filtered out of sight.
func (o Orchestrator) Create(ctx context.Context, payload model.BookPayload) (Outcome, error) {
	if _, err := o.API.CreateBook(ctx, payload); err != nil {
		return Outcome{}, err
	}
	return o.reloadAndStats(ctx, 1, true)
}

// Update runs update -> reload the current page -> refresh stats. The edited
// record's ordering key is server-defined and unchanged by this client, so
// the record stays on the page it was on.
func (o Orchestrator) Update(ctx context.Context, id string, payload model.BookPayload, currentPage int) (Outcome, error) {
	if _, err := o.API.UpdateBook(ctx, id, payload); err != nil {
		return Outcome{}, err
	}
	return o.reloadAndStats(ctx, currentPage, false)
}

// Delete runs delete -> reload the current page -> boundary correction ->
// refresh stats. Deleting the sole item on a trailing page leaves a dangling
// empty page, and the client cannot know the new page count without
// re-querying; the correction is a bounded second load of currentPage-1,
// never a loop. That page is non-empty unless the whole collection now is,
// in which case page 1 legitimately renders empty.
func (o Orchestrator) Delete(ctx context.Context, id string, currentPage int) (Outcome, error) {
	if err := o.API.DeleteBook(ctx, id); err != nil {
		return Outcome{}, err
	}

	page, err := o.API.ListBooks(ctx, currentPage)
	if err != nil {
		return Outcome{}, err
	}
	if len(page.Items) == 0 && currentPage > 1 {
		page, err = o.API.ListBooks(ctx, currentPage-1)
		if err != nil {
			return Outcome{}, err
		}
	}

	stats, err := o.API.Stats(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Page: page, Stats: stats}, nil
}

// RefreshStats fetches the aggregate snapshot on its own (the stats view).
func (o Orchestrator) RefreshStats(ctx context.Context) (model.Stats, error) {
	return o.API.Stats(ctx)
}

func (o Orchestrator) reloadAndStats(ctx context.Context, page int, clearSearch bool) (Outcome, error) {
	p, err := o.API.ListBooks(ctx, page)
	if err != nil {
		return Outcome{}, err
	}
	stats, err := o.API.Stats(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Page: p, Stats: stats, ClearSearch: clearSearch}, nil
}
