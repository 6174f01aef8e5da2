package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/okravets/sytobook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_EmptyCollections(t *testing.T) {
	s := newTestStore(t)

	records, order, err := s.LoadContacts()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, order)

	notes, err := s.LoadNotes()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestStore_ContactsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	bd := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	records := map[string]*domain.ContactRecord{
		"john smith": {
			Name: "John", Surname: "Smith",
			Phones:   []string{"0501234567", "0507654321"},
			Birthday: &bd,
			Address:  "Kyiv",
			Email:    "john@smith.io",
			Notes:    []string{"likes coffee"},
		},
		"maria lopez": {Name: "Maria", Surname: "Lopez"},
	}
	order := []string{"john smith", "maria lopez"}

	require.NoError(t, s.SaveContacts(records, order))

	got, gotOrder, err := s.LoadContacts()
	require.NoError(t, err)
	assert.Equal(t, order, gotOrder)
	require.Len(t, got, 2)

	john := got["john smith"]
	require.NotNil(t, john)
	assert.Equal(t, "John", john.Name)
	assert.Equal(t, []string{"0501234567", "0507654321"}, john.Phones)
	require.NotNil(t, john.Birthday)
	assert.True(t, john.Birthday.Equal(bd))
	assert.Equal(t, "Kyiv", john.Address)
	assert.Equal(t, "john@smith.io", john.Email)
	assert.Equal(t, []string{"likes coffee"}, john.Notes)

	maria := got["maria lopez"]
	require.NotNil(t, maria)
	assert.Nil(t, maria.Birthday)
	assert.Empty(t, maria.Phones)
}

func TestStore_SaveContactsReplaces(t *testing.T) {
	s := newTestStore(t)

	records := map[string]*domain.ContactRecord{"john smith": {Name: "John", Surname: "Smith"}}
	require.NoError(t, s.SaveContacts(records, []string{"john smith"}))

	require.NoError(t, s.SaveContacts(
		map[string]*domain.ContactRecord{"maria lopez": {Name: "Maria", Surname: "Lopez"}},
		[]string{"maria lopez"},
	))

	got, gotOrder, err := s.LoadContacts()
	require.NoError(t, err)
	assert.Equal(t, []string{"maria lopez"}, gotOrder)
	assert.Len(t, got, 1)
}

func TestStore_NotesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	notes := []*domain.NoteRecord{
		{ID: "n1", Text: "buy milk", Tags: []string{"Shopping"}, CreatedAt: created},
		{ID: "n2", Text: "call mom", CreatedAt: created.Add(time.Hour)},
	}

	require.NoError(t, s.SaveNotes(notes))

	got, err := s.LoadNotes()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].ID, "insertion order preserved")
	assert.Equal(t, "buy milk", got[0].Text)
	assert.Equal(t, []string{"Shopping"}, got[0].Tags)
	assert.True(t, got[0].CreatedAt.Equal(created))
	assert.Equal(t, "n2", got[1].ID)
	assert.Empty(t, got[1].Tags)
}
