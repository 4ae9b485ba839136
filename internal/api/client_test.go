package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/notehub/internal/note"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListSendsQueryAndBearer(t *testing.T) {
	var gotAuth, gotPath string
	var gotQuery map[string][]string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, note.Page{
			Notes:      []note.Note{{ID: "n1", Title: "first", Tag: note.TagWork}},
			TotalPages: 3,
		})
	})

	c := New(srv.URL+"/", WithBearerToken("secret"))
	page, err := c.List(context.Background(), ListParams{Page: 2, PerPage: 12, Search: "milk"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/notes", gotPath)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"12"}, gotQuery["perPage"])
	assert.Equal(t, []string{"milk"}, gotQuery["search"])
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Notes, 1)
	assert.Equal(t, "n1", page.Notes[0].ID)
}

func TestListOmitsEmptySearch(t *testing.T) {
	var hasSearch bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasSearch = r.URL.Query()["search"]
		writeJSON(w, http.StatusOK, map[string]any{"notes": nil, "totalPages": 0})
	})

	page, err := New(srv.URL).List(context.Background(), ListParams{Page: 1, PerPage: 12})
	require.NoError(t, err)
	assert.False(t, hasSearch, "empty search must not be sent")
	assert.NotNil(t, page.Notes, "nil notes normalized to empty slice")
}

func TestNoTokenLeavesRequestUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, note.Page{})
	})

	_, err := New(srv.URL, WithBearerToken("")).List(context.Background(), ListParams{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCreatePostsBody(t *testing.T) {
	var got CreateRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, note.Note{ID: "new-id", Title: got.Title, Content: got.Content, Tag: got.Tag})
	})

	created, err := New(srv.URL, WithBearerToken("t")).Create(context.Background(), CreateRequest{
		Title: "Groceries", Content: "milk", Tag: note.TagShopping,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, note.TagShopping, got.Tag)
	assert.Equal(t, "Groceries", got.Title)
}

func TestDeleteEscapesID(t *testing.T) {
	var gotPath string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, note.Note{ID: "a/b"})
	})

	deleted, err := New(srv.URL).Delete(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/notes/a%2Fb", gotPath)
	assert.Equal(t, "a/b", deleted.ID)
}

func TestDeleteRejectsEmptyID(t *testing.T) {
	_, err := New("http://unused").Delete(context.Background(), "")
	assert.Error(t, err)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Note not found"})
	})

	_, err := New(srv.URL).Delete(context.Background(), "missing")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Note not found", se.Message)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestUnauthorizedPlainBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	})

	_, err := New(srv.URL).List(context.Background(), ListParams{Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "denied", se.Message)
}

func TestNetworkFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).List(context.Background(), ListParams{Page: 1})
	assert.Error(t, err)
}

func TestRequestEditorErrorAbortsRequest(t *testing.T) {
	called := false
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	boom := errors.New("boom")
	c := New(srv.URL, WithRequestEditor(func(context.Context, *http.Request) error { return boom }))
	_, err := c.Create(context.Background(), CreateRequest{Title: "abc", Tag: note.TagTodo})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

// A list issued while an earlier identical list is still in flight must reach
// the server, so it observes mutations made after the first request started.
func TestListDoesNotShareInFlightResponses(t *testing.T) {
	var (
		mu      sync.Mutex
		notes   = []note.Note{{ID: "b", Title: "bravo"}, {ID: "x", Title: "xray"}}
		calls   int
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		call := calls
		snapshot := append([]note.Note(nil), notes...)
		mu.Unlock()

		if call == 1 {
			close(entered)
			<-release
		}
		writeJSON(w, http.StatusOK, note.Page{Notes: snapshot, TotalPages: 1})
	})

	c := New(srv.URL)
	params := ListParams{Page: 1, PerPage: 12}

	type result struct {
		page *note.Page
		err  error
	}
	first := make(chan result, 1)
	go func() {
		page, err := c.List(context.Background(), params)
		first <- result{page, err}
	}()
	<-entered

	mu.Lock()
	notes = notes[:1]
	mu.Unlock()

	second, err := c.List(context.Background(), params)
	close(release)
	require.NoError(t, err)
	assert.False(t, second.Contains("x"), "list after delete returned the deleted note")
	assert.True(t, second.Contains("b"))

	r := <-first
	require.NoError(t, r.err)
	assert.True(t, r.page.Contains("x"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}
