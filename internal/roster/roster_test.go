// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notepacket/pkg/types"
)

func sampleUsers() []types.User {
	return []types.User{
		{Name: "Alice", NoteTitle: "Week 1", NoteNumbers: "1,2,3"},
		{Name: "Bob", NoteTitle: "Week 1", NoteNumbers: "4"},
	}
}

func TestAdd(t *testing.T) {
	r := New(sampleUsers())

	require.NoError(t, r.Add(types.User{Name: "  Carol ", NoteTitle: " Review ", NoteNumbers: " 9, 10 "}))
	u, idx, ok := r.Find("Carol")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, types.User{Name: "Carol", NoteTitle: "Review", NoteNumbers: "9, 10"}, u)

	err := r.Add(types.User{Name: "Alice"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	err = r.Add(types.User{Name: "   "})
	assert.True(t, errors.Is(err, ErrEmptyName))
	assert.Equal(t, 3, r.Len())
}

func TestUpdate(t *testing.T) {
	r := New(sampleUsers())

	require.NoError(t, r.Update("Bob", types.User{Name: "Robert", NoteTitle: "Week 2", NoteNumbers: "5"}))
	u, idx, ok := r.Find("Robert")
	require.True(t, ok)
	assert.Equal(t, 1, idx, "position is kept")
	assert.Equal(t, "Week 2", u.NoteTitle)

	assert.True(t, errors.Is(r.Update("Robert", types.User{Name: "Alice"}), ErrDuplicate))
	assert.True(t, errors.Is(r.Update("Nobody", types.User{Name: "X"}), ErrUnknownUser))
	assert.True(t, errors.Is(r.Update("Alice", types.User{}), ErrEmptyName))
	assert.NoError(t, r.Update("Alice", types.User{Name: "Alice", NoteNumbers: "8"}), "keeping the same name is fine")
}

func TestDelete(t *testing.T) {
	r := New(sampleUsers())
	assert.Equal(t, 1, r.Delete("Alice", "Nobody"))
	assert.Equal(t, []types.User{sampleUsers()[1]}, r.Users())
}

func TestSelect(t *testing.T) {
	r := New(sampleUsers())
	got, err := r.Select([]string{"Bob", "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Equal(t, "Alice", got[1].Name)

	_, err = r.Select([]string{"Zed"})
	assert.True(t, errors.Is(err, ErrUnknownUser))
}

func TestApply(t *testing.T) {
	imported := []types.User{
		{Name: "Bob", NoteTitle: "changed", NoteNumbers: "99"},
		{Name: "Dana", NoteTitle: "new", NoteNumbers: "7"},
		{Name: ""},
	}

	t.Run("merge keeps existing and appends new names", func(t *testing.T) {
		r := New(sampleUsers())
		added := r.Apply(imported, Merge)
		assert.Equal(t, 1, added)
		users := r.Users()
		require.Len(t, users, 3)
		assert.Equal(t, "4", users[1].NoteNumbers, "existing Bob untouched")
		assert.Equal(t, "Dana", users[2].Name)
	})

	t.Run("replace overwrites", func(t *testing.T) {
		r := New(sampleUsers())
		added := r.Apply(imported, Replace)
		assert.Equal(t, 2, added)
		users := r.Users()
		require.Len(t, users, 2)
		assert.Equal(t, "99", users[0].NoteNumbers)
	})
}

func TestLoadDropsRepeatedNames(t *testing.T) {
	r, dropped := Load([]types.User{
		{Name: "Kim", NoteTitle: "A", NoteNumbers: "1"},
		{Name: " Kim ", NoteTitle: "B", NoteNumbers: "2"},
		{Name: ""},
		{Name: "Lee", NoteNumbers: "3"},
	})

	assert.Equal(t, []types.User{
		{Name: "Kim", NoteTitle: "A", NoteNumbers: "1"},
		{Name: "Lee", NoteNumbers: "3"},
	}, r.Users())
	require.Len(t, dropped, 2)
	assert.Equal(t, "B", dropped[0].NoteTitle)

	assert.Equal(t, 2, New([]types.User{{Name: "Kim"}, {Name: "Kim"}, {Name: "Lee"}}).Len())
}

func TestUsersReturnsCopy(t *testing.T) {
	r := New(sampleUsers())
	users := r.Users()
	users[0].Name = "Mallory"
	_, _, ok := r.Find("Alice")
	assert.True(t, ok)
}

func TestParseApplyMode(t *testing.T) {
	for in, want := range map[string]ApplyMode{"": Merge, "merge": Merge, " Replace ": Replace} {
		got, err := ParseApplyMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseApplyMode("append")
	assert.Error(t, err)
}
