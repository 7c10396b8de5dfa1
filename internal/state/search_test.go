package state

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"bookdeck/internal/model"
)

func testBooks() []model.Book {
	return []model.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Neuromancer", Author: "William Gibson"},
		{ID: "3", Title: "Dune Messiah", Author: "Frank Herbert"},
		{ID: "4", Title: "The Dispossessed", Author: "Ursula K. Le Guin"},
	}
}

func TestFilter_BlankTermIsNoOp(t *testing.T) {
	books := testBooks()
	for _, term := range []string{"", "   ", "\t"} {
		got := Filter(books, term)
		if !reflect.DeepEqual(got, books) {
			t.Fatalf("term %q: expected all books unchanged, got %v", term, got)
		}
	}
}

func TestFilter_MatchesTitleOrAuthorCaseInsensitive(t *testing.T) {
	books := testBooks()

	got := Filter(books, "dune")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("title match: got %v", got)
	}

	got = Filter(books, "GIBSON")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("author match: got %v", got)
	}

	got = Filter(books, "  le guin ")
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("trimmed term: got %v", got)
	}

	if got = Filter(books, "zzz"); len(got) != 0 {
		t.Fatalf("no match expected, got %v", got)
	}
}

func bookGen() *rapid.Generator[model.Book] {
	return rapid.Custom(func(t *rapid.T) model.Book {
		return model.Book{
			ID:     rapid.StringMatching(`[a-z0-9]{4}`).Draw(t, "id"),
			Title:  rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "title"),
			Author: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "author"),
		}
	})
}

// isSubsequence reports whether sub appears in full in order.
func isSubsequence(sub, full []model.Book) bool {
	j := 0
	for _, b := range full {
		if j < len(sub) && reflect.DeepEqual(sub[j], b) {
			j++
		}
	}
	return j == len(sub)
}

func TestFilter_IdempotentAndOrderPreserving(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		books := rapid.SliceOfN(bookGen(), 0, 30).Draw(t, "books")
		term := rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, "term")

		got := Filter(books, term)

		if !isSubsequence(got, books) {
			t.Fatalf("filter reordered or invented items: %v from %v", got, books)
		}
		if again := Filter(got, term); !reflect.DeepEqual(again, got) {
			t.Fatalf("filter not idempotent: %v then %v", got, again)
		}
	})
}
