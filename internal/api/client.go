// Package api is the HTTP transport for the notes API.
//
// Every request passes through a chain of request editors before it is sent;
// the bearer credential is attached by one of them. Non-2xx responses are
// returned as *StatusError. There is no retry and no offline queue.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/notehub/internal/note"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 512

// RequestEditorFn mutates an outgoing request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRequestEditor appends fn to the request editor chain.
func WithRequestEditor(fn RequestEditorFn) Option {
	return func(c *Client) { c.editors = append(c.editors, fn) }
}

// WithBearerToken attaches "Authorization: Bearer <token>" to every request.
// An empty token leaves requests unauthenticated.
func WithBearerToken(token string) Option {
	return WithRequestEditor(func(_ context.Context, req *http.Request) error {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	})
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithRequestEditor(func(_ context.Context, req *http.Request) error {
		if ua != "" {
			req.Header.Set("User-Agent", ua)
		}
		return nil
	})
}

// Client talks to the notes API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	editors []RequestEditorFn
}

// New creates a Client for baseURL. The URL is not validated; a missing or
// malformed base surfaces as request errors.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ListParams selects a page of notes.
type ListParams struct {
	Page    int
	PerPage int
	Search  string // empty means no filter
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// CreateRequest is the body of a create call.
type CreateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tag     note.Tag `json:"tag"`
}

// List fetches one page of notes. Every call is a fresh request; callers
// that want to share in-flight fetches go through the query cache.
func (c *Client) List(ctx context.Context, params ListParams) (*note.Page, error) {
	var page note.Page
	if err := c.do(ctx, http.MethodGet, "/notes", params.values(), nil, &page); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if page.Notes == nil {
		page.Notes = []note.Note{}
	}
	return &page, nil
}

// Create creates a note and returns it with its server-assigned ID.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*note.Note, error) {
	var created note.Note
	if err := c.do(ctx, http.MethodPost, "/notes", nil, req, &created); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &created, nil
}

// Delete deletes the note with the given ID and returns the server's
// representation of it.
func (c *Client) Delete(ctx context.Context, id string) (*note.Note, error) {
	if id == "" {
		return nil, fmt.Errorf("delete note: empty id")
	}
	var deleted note.Note
	if err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, &deleted); err != nil {
		return nil, fmt.Errorf("delete note %s: %w", id, err)
	}
	return &deleted, nil
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return fmt.Errorf("request editor: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
