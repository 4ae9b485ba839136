// Package devserver is a local stand-in for the notes API, backed by SQLite.
package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/marcus/notehub/internal/note"
)

// ErrNotFound is returned when no note has the requested id.
var ErrNotFound = errors.New("note not found")

// ListQuery selects a page of notes.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
}

// Store handles SQLite operations for notes.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens the database at dsn and creates the schema. ":memory:"
// gives a private in-memory database.
func NewStore(dsn string) (*Store, error) {
	memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if !memory {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_busy_timeout=5000&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    tag TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at DESC);
`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts a note with a new id.
func (s *Store) Create(ctx context.Context, title, content string, tag note.Tag) (*note.Note, error) {
	now := s.now().UTC()
	n := &note.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tag:       tag,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, tag, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, n.Title, n.Content, string(n.Tag), now.UnixNano(), now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// Get returns the note with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*note.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, tag, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return n, nil
}

// Delete removes the note with id and returns it.
func (s *Store) Delete(ctx context.Context, id string) (*note.Note, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("delete note %s: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return n, nil
}

// List returns one page of notes, newest first, and the number of notes
// matching q.Search. The search is a case-insensitive substring match on
// title and content.
func (s *Store) List(ctx context.Context, q ListQuery) ([]note.Note, int, error) {
	where := ""
	var args []any
	if q.Search != "" {
		where = `WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`
		pattern := "%" + escapeLike(q.Search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	offset := (q.Page - 1) * q.PerPage
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, tag, created_at, updated_at
		FROM notes `+where+`
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, append(args, q.PerPage, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []note.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(sc scanner) (*note.Note, error) {
	var (
		n                note.Note
		tag              string
		created, updated int64
	)
	if err := sc.Scan(&n.ID, &n.Title, &n.Content, &tag, &created, &updated); err != nil {
		return nil, err
	}
	n.Tag = note.Tag(tag)
	n.CreatedAt = time.Unix(0, created).UTC()
	n.UpdatedAt = time.Unix(0, updated).UTC()
	return &n, nil
}

// escapeLike escapes LIKE wildcards so the search is a plain substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
