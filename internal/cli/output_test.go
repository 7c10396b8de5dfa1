package cli

import "testing"

func TestRatingText(t *testing.T) {
	if got := ratingText(nil); got != "—" {
		t.Fatalf("nil rating: got %q", got)
	}
	four := 4
	if got := ratingText(&four); got != "4" {
		t.Fatalf("rating 4: got %q", got)
	}
}

func TestAvgRatingText(t *testing.T) {
	if got := avgRatingText(nil); got != "—" {
		t.Fatalf("nil average: got %q", got)
	}
	avg := 3.5
	if got := avgRatingText(&avg); got != "3.50" {
		t.Fatalf("avg 3.5: got %q", got)
	}
}
