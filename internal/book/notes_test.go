package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteBook_Add(t *testing.T) {
	nb := NewNoteBook(nil)

	note, err := nb.Add("  buy milk  ", []string{"shopping"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", note.Text)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, []string{"shopping"}, note.Tags)
	assert.Equal(t, 1, nb.Len())

	_, err = nb.Add("   ", nil)
	assert.Error(t, err)
}

func TestNoteBook_At(t *testing.T) {
	nb := NewNoteBook(nil)
	_, err := nb.Add("first", nil)
	require.NoError(t, err)
	_, err = nb.Add("second", nil)
	require.NoError(t, err)

	note, err := nb.At(2)
	require.NoError(t, err)
	assert.Equal(t, "second", note.Text)

	_, err = nb.At(0)
	assert.Error(t, err)
	_, err = nb.At(3)
	assert.Error(t, err)
}

func TestNoteBook_AddTags(t *testing.T) {
	nb := NewNoteBook(nil)
	_, err := nb.Add("buy milk", nil)
	require.NoError(t, err)

	require.NoError(t, nb.AddTags(1, "shopping", "Food"))
	assert.Error(t, nb.AddTags(5, "x"))

	note, err := nb.At(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"shopping", "Food"}, note.Tags)
}

func TestNoteBook_SearchTag(t *testing.T) {
	nb := NewNoteBook(nil)
	_, err := nb.Add("buy milk", []string{"Shopping"})
	require.NoError(t, err)
	_, err = nb.Add("call mom", []string{"family"})
	require.NoError(t, err)

	hits := nb.SearchTag("shopping")
	require.Len(t, hits, 1)
	assert.Equal(t, "buy milk", hits[0].Text)

	assert.Empty(t, nb.SearchTag("work"))
}

func TestNoteBook_AllTags(t *testing.T) {
	nb := NewNoteBook(nil)
	_, err := nb.Add("a", []string{"Work", "urgent"})
	require.NoError(t, err)
	_, err = nb.Add("b", []string{"work", "home"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Work", "urgent", "home"}, nb.AllTags())
}

func TestNoteBook_GroupByTag(t *testing.T) {
	nb := NewNoteBook(nil)
	_, err := nb.Add("buy milk", []string{"Shopping"})
	require.NoError(t, err)
	_, err = nb.Add("call mom", []string{"family", "shopping"})
	require.NoError(t, err)
	_, err = nb.Add("loose thought", nil)
	require.NoError(t, err)

	groups := nb.GroupByTag()
	require.Len(t, groups, 3)

	assert.Equal(t, "family", groups[0].Tag)
	assert.Equal(t, "shopping", groups[1].Tag)
	require.Len(t, groups[1].Notes, 2)
	assert.Equal(t, "buy milk", groups[1].Notes[0].Text)
	assert.Equal(t, UntaggedGroup, groups[2].Tag)
	assert.Equal(t, "loose thought", groups[2].Notes[0].Text)
}
