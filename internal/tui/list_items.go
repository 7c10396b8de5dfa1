package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"

	"bookdeck/internal/model"
	"bookdeck/internal/state"
)

type bookItem struct {
	book model.Book
}

func (i bookItem) Title() string {
	return i.book.Title
}

func (i bookItem) Description() string {
	return fmt.Sprintf("%s · %d · %s · %s · %s",
		i.book.Author, i.book.Year, i.book.Genre, i.book.Status, ratingDisplay(i.book.Rating))
}

// FilterValue exists to satisfy list.Item; the bubbles filter stays disabled
// because the search overlay owns filtering.
func (i bookItem) FilterValue() string {
	return i.book.Title + " " + i.book.Author
}

// ratingDisplay renders an absent rating as a dash, mirroring the list and
// stats views of the original interface.
func ratingDisplay(r *int) string {
	if r == nil {
		return "—"
	}
	return "★" + strconv.Itoa(*r)
}

func newBooksList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderLeftForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorAccent).BorderLeftForeground(colorAccent)

	l := list.New([]list.Item{}, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	return l
}

// refreshBooksList recomputes the visible rows from the page cache and the
// search overlay, keeping the selection on the same book when it survives the
// refresh.
func (m *appModel) refreshBooksList() {
	curID := ""
	if it, ok := m.booksList.SelectedItem().(bookItem); ok {
		curID = it.book.ID
	}

	filtered := state.Filter(m.page.Items, m.searchInput.Value())
	items := make([]list.Item, 0, len(filtered))
	for _, b := range filtered {
		items = append(items, bookItem{book: b})
	}
	m.booksList.SetItems(items)

	if curID != "" {
		for i, it := range m.booksList.Items() {
			if bi, ok := it.(bookItem); ok && bi.book.ID == curID {
				m.booksList.Select(i)
				break
			}
		}
	}
}
