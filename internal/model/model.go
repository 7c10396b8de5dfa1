package model

// PageSize is fixed server-side; the client never asks for a different size.
const PageSize = 10

// Statuses the server accepts.
const (
	StatusToRead   = "to-read"
	StatusReading  = "reading"
	StatusFinished = "finished"
)

// Statuses lists the valid status values in display order.
var Statuses = []string{StatusToRead, StatusReading, StatusFinished}

// Book is a server-owned record. The client never mutates one in place; after
// a write the record is replaced wholesale by the value the server returns.
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Status string `json:"status"`
	Rating *int   `json:"rating"`
}

// Page is one server-paginated window over the collection.
type Page struct {
	Items      []Book `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
}

// Find looks up a book by id among the items currently on this page.
func (p Page) Find(id string) (Book, bool) {
	for _, b := range p.Items {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// BookPayload is the body for create and update. Year and rating stay raw
// text; numeric coercion and range checks are server-side.
type BookPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	Genre  string `json:"genre"`
	Status string `json:"status"`
	Rating string `json:"rating"`
}

// Stats is the server-computed aggregate snapshot. A nil AvgRating means the
// server has no rated books yet; it is a displayable state, never zero.
type Stats struct {
	Total     int      `json:"total"`
	Finished  int      `json:"finished"`
	AvgRating *float64 `json:"avg_rating"`
}
