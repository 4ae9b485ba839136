// Package note defines the note data model shared by the client and the dev server.
package note

import (
	"fmt"
	"time"
)

// Tag categorizes a note.
type Tag string

const (
	TagTodo     Tag = "Todo"
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagMeeting  Tag = "Meeting"
	TagShopping Tag = "Shopping"
)

// DefaultTag is preselected in the create form.
const DefaultTag = TagTodo

// Field limits enforced by the form and the dev server.
const (
	TitleMinLen   = 3
	TitleMaxLen   = 50
	ContentMaxLen = 500
)

// Tags returns all tags in display order.
func Tags() []Tag {
	return []Tag{TagTodo, TagWork, TagPersonal, TagMeeting, TagShopping}
}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	for _, known := range Tags() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the tag name.
func (t Tag) String() string { return string(t) }

// ParseTag converts s into a Tag.
func ParseTag(s string) (Tag, error) {
	t := Tag(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tag %q", s)
	}
	return t, nil
}

// Note is a single note as returned by the notes API.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       Tag       `json:"tag"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Page is one page of a note listing.
type Page struct {
	Notes      []Note `json:"notes"`
	TotalPages int    `json:"totalPages"`
}

// Contains reports whether a note with the given ID is on the page.
func (p *Page) Contains(id string) bool {
	if p == nil {
		return false
	}
	for _, n := range p.Notes {
		if n.ID == id {
			return true
		}
	}
	return false
}
