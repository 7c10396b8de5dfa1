// Package api wraps the remote book service behind a thin HTTP adapter.
//
// Every non-2xx response becomes an *Error carrying the status code and, when
// the body decodes to the {"errors": {...}} shape, the per-field validation
// messages. Callers branch on that; nothing here retries or times out beyond
// the request context and the client's own timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookdeck/internal/model"
)

const defaultTimeout = 15 * time.Second

// Error is a non-success response from the service.
type Error struct {
	Status int
	Fields map[string]string
	Body   []byte
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: status %d (%d field errors)", e.Status, len(e.Fields))
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ValidationFields extracts the per-field messages when err is a server
// validation failure. Any other error (transport, non-validation status)
// reports false.
func ValidationFields(err error) (map[string]string, bool) {
	var ae *Error
	if errors.As(err, &ae) && len(ae.Fields) > 0 {
		return ae.Fields, true
	}
	return nil, false
}

// Client talks to one book service.
type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: defaultTimeout},
	}
}

// do runs one request. The response body is always read and, on non-2xx,
// decoded opportunistically: a failure response may still carry a
// machine-readable error payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Body: raw}
		var ve struct {
			Errors map[string]string `json:"errors"`
		}
		if json.Unmarshal(raw, &ve) == nil && len(ve.Errors) > 0 {
			apiErr.Fields = ve.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) ListBooks(ctx context.Context, page int) (model.Page, error) {
	var p model.Page
	err := c.do(ctx, http.MethodGet, "/api/books?page="+strconv.Itoa(page), nil, &p)
	return p, err
}

func (c *Client) CreateBook(ctx context.Context, payload model.BookPayload) (model.Book, error) {
	var b model.Book
	err := c.do(ctx, http.MethodPost, "/api/books", payload, &b)
	return b, err
}

func (c *Client) UpdateBook(ctx context.Context, id string, payload model.BookPayload) (model.Book, error) {
	var b model.Book
	err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), payload, &b)
	return b, err
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var s model.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &s)
	return s, err
}
