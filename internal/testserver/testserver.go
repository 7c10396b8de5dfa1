// Package testserver runs an in-process implementation of the book service
// wire contract so tests exercise real HTTP round-trips instead of stubs.
// Semantics mirror the production backend: fixed page size of 10, newest
// records first, field-level validation errors, nullable average rating.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookdeck/internal/model"
)

const pageSize = model.PageSize

type Server struct {
	HTTP *httptest.Server

	mu    sync.Mutex
	books []model.Book // newest first, matching the backend's insert order
}

// New starts a server and registers its shutdown with t.Cleanup.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{}

	r := chi.NewRouter()
	r.Get("/api/books", s.handleList)
	r.Post("/api/books", s.handleCreate)
	r.Put("/api/books/{id}", s.handleUpdate)
	r.Delete("/api/books/{id}", s.handleDelete)
	r.Get("/api/stats", s.handleStats)

	s.HTTP = httptest.NewServer(r)
	t.Cleanup(s.HTTP.Close)
	return s
}

func (s *Server) URL() string { return s.HTTP.URL }

// Seed replaces the collection. Books are stored as given, index 0 being the
// newest (first on page 1).
func (s *Server) Seed(books []model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append([]model.Book(nil), books...)
}

// SeedN fills the collection with n generated books, newest first.
func (s *Server) SeedN(n int) {
	books := make([]model.Book, 0, n)
	for i := n; i >= 1; i-- {
		books = append(books, model.Book{
			ID:     uuid.NewString(),
			Title:  "Book " + strconv.Itoa(i),
			Author: "Author " + strconv.Itoa(i),
			Year:   2000 + i%20,
			Genre:  "Fiction",
			Status: model.StatusToRead,
		})
	}
	s.Seed(books)
}

// Count reports how many books the server holds.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if q := r.URL.Query().Get("page"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": map[string]string{"page": "invalid page number"}})
			return
		}
		page = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.books)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := append([]model.Book{}, s.books[start:end]...)
	writeJSON(w, http.StatusOK, model.Page{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, errs := decodePayload(r)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	b := payloadToBook(payload)
	b.ID = uuid.NewString()

	s.mu.Lock()
	s.books = append([]model.Book{b}, s.books...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, errs := decodePayload(r)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.books {
		if b.ID == id {
			nb := payloadToBook(payload)
			nb.ID = id
			s.books[i] = nb
			writeJSON(w, http.StatusOK, nb)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.Stats{Total: len(s.books)}
	sum, rated := 0, 0
	for _, b := range s.books {
		if b.Status == model.StatusFinished {
			stats.Finished++
		}
		if b.Rating != nil {
			sum += *b.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := float64(sum) / float64(rated)
		stats.AvgRating = &avg
	}
	writeJSON(w, http.StatusOK, stats)
}

// decodePayload validates the raw-string body the way the backend does:
// title/author/genre required, year a number in [0, 3000], status one of the
// known values, rating empty or an integer in [1, 5].
func decodePayload(r *http.Request) (model.BookPayload, map[string]string) {
	var p model.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, map[string]string{"body": "malformed request body"}
	}

	errs := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(p.Author) == "" {
		errs["author"] = "author is required"
	}
	if strings.TrimSpace(p.Genre) == "" {
		errs["genre"] = "genre is required"
	}
	if y, err := strconv.Atoi(strings.TrimSpace(p.Year)); err != nil {
		errs["year"] = "year must be a number"
	} else if y < 0 || y > 3000 {
		errs["year"] = "year out of range"
	}
	valid := false
	for _, st := range model.Statuses {
		if p.Status == st {
			valid = true
		}
	}
	if !valid {
		errs["status"] = "unknown status"
	}
	if rt := strings.TrimSpace(p.Rating); rt != "" {
		if n, err := strconv.Atoi(rt); err != nil || n < 1 || n > 5 {
			errs["rating"] = "rating must be between 1 and 5"
		}
	}
	return p, errs
}

func payloadToBook(p model.BookPayload) model.Book {
	year, _ := strconv.Atoi(strings.TrimSpace(p.Year))
	b := model.Book{
		Title:  strings.TrimSpace(p.Title),
		Author: strings.TrimSpace(p.Author),
		Year:   year,
		Genre:  strings.TrimSpace(p.Genre),
		Status: p.Status,
	}
	if rt := strings.TrimSpace(p.Rating); rt != "" {
		n, _ := strconv.Atoi(rt)
		b.Rating = &n
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
