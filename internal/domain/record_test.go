package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("0501234567"))
	assert.Error(t, ValidatePhone("12345"))
	assert.Error(t, ValidatePhone("05012345678"))
	assert.Error(t, ValidatePhone("05o1234567"))
	assert.Error(t, ValidatePhone(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("john@smith.io"))
	assert.NoError(t, ValidateEmail(""), "email is optional")
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
}

func TestParseBirthday(t *testing.T) {
	dt, err := ParseBirthday("02.01.1990")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC), dt)

	_, err = ParseBirthday("1990-01-02")
	assert.Error(t, err)

	future := time.Now().AddDate(1, 0, 0).Format(BirthdayLayout)
	_, err = ParseBirthday(future)
	assert.Error(t, err)
}

func TestNewContactRecord(t *testing.T) {
	rec, err := NewContactRecord(" John ", "Smith", "john@smith.io", "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, "John", rec.Name)
	assert.Equal(t, "john smith", rec.Key())
	assert.Equal(t, "John Smith", rec.FullName())

	_, err = NewContactRecord("", "", "", "")
	assert.Error(t, err)

	_, err = NewContactRecord("John", "", "bad-email", "")
	assert.Error(t, err)
}

func TestContactRecord_Phones(t *testing.T) {
	rec := &ContactRecord{Name: "John"}
	require.NoError(t, rec.AddPhone("0501234567"))
	require.Error(t, rec.AddPhone("123"))

	assert.True(t, rec.RemovePhone("0501234567"))
	assert.False(t, rec.RemovePhone("0501234567"))
	assert.Empty(t, rec.Phones)
}

func TestContactRecord_BirthdaySetOnce(t *testing.T) {
	rec := &ContactRecord{Name: "John"}
	require.NoError(t, rec.SetBirthday("02.01.1990"))
	assert.Error(t, rec.SetBirthday("03.01.1990"))
}

func TestContactRecord_Notes(t *testing.T) {
	rec := &ContactRecord{Name: "John"}
	require.NoError(t, rec.AddNote("  likes coffee  "))
	assert.Equal(t, []string{"likes coffee"}, rec.Notes)
	assert.Error(t, rec.AddNote("   "))
}

func TestMakeKey(t *testing.T) {
	assert.Equal(t, "john smith", MakeKey("John", "Smith"))
	assert.Equal(t, "john", MakeKey("John", ""))
	assert.Equal(t, "john smith", KeyFromInput("  John Smith "))
	assert.Equal(t, "john", KeyFromInput("John"))
}

func TestNoteRecord_Tags(t *testing.T) {
	n := &NoteRecord{Text: "buy milk"}
	n.AddTags("Shopping", "food", "shopping", " ", "")

	assert.Equal(t, []string{"Shopping", "food"}, n.Tags, "duplicates collapse case-insensitively, originals kept as entered")
	assert.True(t, n.HasTag("SHOPPING"))
	assert.False(t, n.HasTag("work"))
}

func TestSearchFields(t *testing.T) {
	bd := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := &ContactRecord{
		Name: "John", Surname: "Smith",
		Phones: []string{"0501234567"}, Email: "john@smith.io",
		Birthday: &bd, Notes: []string{"likes coffee"},
	}
	fields := rec.SearchFields()
	assert.Contains(t, fields, "John Smith")
	assert.Contains(t, fields, "0501234567")
	assert.Contains(t, fields, "likes coffee")

	n := &NoteRecord{Text: "buy milk", Tags: []string{"shopping"}}
	assert.Equal(t, []string{"buy milk", "shopping"}, n.SearchFields())
	assert.Equal(t, "buy milk [tags: shopping]", n.SearchText())
}
