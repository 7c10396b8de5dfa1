package state

import (
	"testing"

	"bookdeck/internal/model"
)

func TestNewCreateSession_AllFieldsBlank(t *testing.T) {
	s := NewCreateSession()
	if s.Mode != ModeCreate {
		t.Fatalf("expected create mode")
	}
	for _, f := range Fields {
		if s.Values[f] != "" {
			t.Fatalf("field %s not blank: %q", f, s.Values[f])
		}
	}
	if len(s.FieldErrors) != 0 {
		t.Fatalf("expected no field errors")
	}
}

func TestNewEditSession_SeedsFromBook(t *testing.T) {
	rating := 4
	b := model.Book{
		ID: "b-1", Title: "Dune", Author: "Frank Herbert",
		Year: 1965, Genre: "Science fiction", Status: model.StatusFinished,
		Rating: &rating,
	}

	s := NewEditSession(b)
	if s.Mode != ModeEdit || s.BookID != "b-1" {
		t.Fatalf("bad mode/id: %v %q", s.Mode, s.BookID)
	}
	want := map[string]string{
		FieldTitle: "Dune", FieldAuthor: "Frank Herbert", FieldYear: "1965",
		FieldGenre: "Science fiction", FieldStatus: model.StatusFinished, FieldRating: "4",
	}
	for f, w := range want {
		if s.Values[f] != w {
			t.Fatalf("field %s: got %q want %q", f, s.Values[f], w)
		}
	}
}

func TestNewEditSession_AbsentRatingBecomesEmpty(t *testing.T) {
	s := NewEditSession(model.Book{ID: "b-2", Title: "x", Author: "y", Year: 2001})
	if s.Values[FieldRating] != "" {
		t.Fatalf("expected empty rating, got %q", s.Values[FieldRating])
	}
}

func TestPayload_TrimsButDoesNotCoerce(t *testing.T) {
	s := NewCreateSession()
	s.Values[FieldTitle] = "  Dune  "
	s.Values[FieldAuthor] = "\tFrank Herbert "
	s.Values[FieldYear] = " 1965 "
	s.Values[FieldGenre] = " sf "
	s.Values[FieldStatus] = model.StatusToRead
	s.Values[FieldRating] = " not-a-number "

	p := s.Payload()
	if p.Title != "Dune" || p.Author != "Frank Herbert" || p.Genre != "sf" {
		t.Fatalf("strings not trimmed: %+v", p)
	}
	// Year and rating pass through as raw trimmed text; the server decides
	// whether they are numbers.
	if p.Year != "1965" || p.Rating != "not-a-number" {
		t.Fatalf("year/rating mangled: %+v", p)
	}
}

// Opening an edit session and submitting untouched must produce a payload
// equal to the original record's fields.
func TestEditRoundTrip_UnmodifiedFieldsSurvive(t *testing.T) {
	rating := 5
	b := model.Book{
		ID: "b-3", Title: "Neuromancer", Author: "William Gibson",
		Year: 1984, Genre: "Cyberpunk", Status: model.StatusReading, Rating: &rating,
	}

	p := NewEditSession(b).Payload()
	want := model.BookPayload{
		Title: "Neuromancer", Author: "William Gibson", Year: "1984",
		Genre: "Cyberpunk", Status: model.StatusReading, Rating: "5",
	}
	if p != want {
		t.Fatalf("round trip drifted:\n got %+v\nwant %+v", p, want)
	}
}

func TestSetServerErrors_KeepsDraftValues(t *testing.T) {
	s := NewCreateSession()
	s.Values[FieldTitle] = "Dune"
	s.Values[FieldYear] = "later"

	s.SetServerErrors(map[string]string{"year": "must be a number"})

	if s.ErrorFor(FieldYear) != "must be a number" {
		t.Fatalf("year error missing")
	}
	if s.ErrorFor(FieldTitle) != "" {
		t.Fatalf("unexpected title error")
	}
	if s.Values[FieldTitle] != "Dune" || s.Values[FieldYear] != "later" {
		t.Fatalf("draft values lost: %v", s.Values)
	}

	s.ClearErrors()
	if s.ErrorFor(FieldYear) != "" {
		t.Fatalf("errors should clear")
	}
}
