package state

import (
	"strconv"
	"strings"

	"bookdeck/internal/model"
)

// Form field names, matching the wire contract's error keys.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldYear   = "year"
	FieldGenre  = "genre"
	FieldStatus = "status"
	FieldRating = "rating"
)

// Fields lists the editable fields in form order.
var Fields = []string{FieldTitle, FieldAuthor, FieldYear, FieldGenre, FieldStatus, FieldRating}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FormSession is the draft state backing the add/edit form, distinct from any
// committed record. Values stay raw editable text until submit.
type FormSession struct {
	Mode   Mode
	BookID string // edit mode only

	Values      map[string]string
	FieldErrors map[string]string
}

// NewCreateSession returns a blank create-mode session.
func NewCreateSession() *FormSession {
	return &FormSession{Mode: ModeCreate, Values: blankValues()}
}

// NewEditSession seeds a session from a book resident on the loaded page.
// An absent rating becomes the empty editable value; year keeps its textual
// form so the server re-validates it like any other input.
func NewEditSession(b model.Book) *FormSession {
	v := blankValues()
	v[FieldTitle] = b.Title
	v[FieldAuthor] = b.Author
	v[FieldYear] = strconv.Itoa(b.Year)
	v[FieldGenre] = b.Genre
	v[FieldStatus] = b.Status
	if b.Rating != nil {
		v[FieldRating] = strconv.Itoa(*b.Rating)
	}
	return &FormSession{Mode: ModeEdit, BookID: b.ID, Values: v}
}

func blankValues() map[string]string {
	v := make(map[string]string, len(Fields))
	for _, f := range Fields {
		v[f] = ""
	}
	return v
}

// Payload trims every field and passes year/rating through as raw text.
// The client performs no semantic validation; that is the server's job.
func (s *FormSession) Payload() model.BookPayload {
	return model.BookPayload{
		Title:  strings.TrimSpace(s.Values[FieldTitle]),
		Author: strings.TrimSpace(s.Values[FieldAuthor]),
		Year:   strings.TrimSpace(s.Values[FieldYear]),
		Genre:  strings.TrimSpace(s.Values[FieldGenre]),
		Status: strings.TrimSpace(s.Values[FieldStatus]),
		Rating: strings.TrimSpace(s.Values[FieldRating]),
	}
}

// SetServerErrors installs the per-field messages from a validation failure.
// Draft values are untouched: the form stays open with prior input intact.
func (s *FormSession) SetServerErrors(fields map[string]string) {
	s.FieldErrors = fields
}

// ClearErrors drops any field errors, e.g. right before a re-submit.
func (s *FormSession) ClearErrors() {
	s.FieldErrors = nil
}

// ErrorFor returns the server message for one field, or "".
func (s *FormSession) ErrorFor(field string) string {
	return s.FieldErrors[field]
}
