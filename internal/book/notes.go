package book

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okravets/sytobook/internal/domain"
)

// UntaggedGroup labels notes without tags in grouped output.
const UntaggedGroup = "—"

// NoteBook holds the note collection in insertion order.
type NoteBook struct {
	notes []*domain.NoteRecord
}

// NewNoteBook builds a book from a loaded collection; notes may be nil
func NewNoteBook(notes []*domain.NoteRecord) *NoteBook {
	return &NoteBook{notes: notes}
}

// Len returns the number of notes
func (nb *NoteBook) Len() int {
	return len(nb.notes)
}

// Notes returns all notes in insertion order
func (nb *NoteBook) Notes() []*domain.NoteRecord {
	return nb.notes
}

// Add appends a new note and returns it
func (nb *NoteBook) Add(text string, tags []string) (*domain.NoteRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("note text cannot be empty")
	}

	note := &domain.NoteRecord{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	note.AddTags(tags...)
	nb.notes = append(nb.notes, note)
	return note, nil
}

// At returns the note at the 1-based display index
func (nb *NoteBook) At(index int) (*domain.NoteRecord, error) {
	if index < 1 || index > len(nb.notes) {
		return nil, errors.New("note index out of range")
	}
	return nb.notes[index-1], nil
}

// AddTags appends tags to the note at the 1-based display index
func (nb *NoteBook) AddTags(index int, tags ...string) error {
	note, err := nb.At(index)
	if err != nil {
		return err
	}
	note.AddTags(tags...)
	return nil
}

// SearchTag returns notes carrying the tag, case-insensitively
func (nb *NoteBook) SearchTag(tag string) []*domain.NoteRecord {
	var out []*domain.NoteRecord
	for _, n := range nb.notes {
		if n.HasTag(tag) {
			out = append(out, n)
		}
	}
	return out
}

// AllTags returns every distinct tag in first-seen order
func (nb *NoteBook) AllTags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range nb.notes {
		for _, t := range n.Tags {
			lower := strings.ToLower(t)
			if !seen[lower] {
				seen[lower] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// TagGroup is a set of notes sharing one lowercased tag.
type TagGroup struct {
	Tag   string
	Notes []*domain.NoteRecord
}

// GroupByTag buckets notes under each of their lowercased tags, with
// untagged notes under UntaggedGroup. Groups are sorted by tag; notes
// within a group keep insertion order.
func (nb *NoteBook) GroupByTag() []TagGroup {
	groups := make(map[string][]*domain.NoteRecord)
	for _, n := range nb.notes {
		if len(n.Tags) == 0 {
			groups[UntaggedGroup] = append(groups[UntaggedGroup], n)
			continue
		}
		for _, t := range n.Tags {
			lower := strings.ToLower(t)
			groups[lower] = append(groups[lower], n)
		}
	}

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	out := make([]TagGroup, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagGroup{Tag: tag, Notes: groups[tag]})
	}
	return out
}
