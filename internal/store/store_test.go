package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoish/internal/model"
)

func TestCreateListAndAddItem(t *testing.T) {
	st := New(nil)

	l := st.CreateList("groceries")
	require.NotEmpty(t, l.ID)
	assert.Equal(t, "groceries", l.Name)

	it, err := st.AddItem(l.ID, "Buy milk")
	require.NoError(t, err)
	require.NotEmpty(t, it.ID)

	got, err := st.List(l.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Buy milk", got.Items[0].Text)
	assert.False(t, got.Items[0].Done)
	assert.False(t, got.Items[0].Important)
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	st := New(nil)
	l := st.CreateList("a")
	it, err := st.AddItem(l.ID, "x")
	require.NoError(t, err)

	t.Run("done", func(t *testing.T) {
		after, err := st.ToggleDone(it.ID)
		require.NoError(t, err)
		assert.True(t, after.Done)

		after, err = st.ToggleDone(it.ID)
		require.NoError(t, err)
		assert.False(t, after.Done)
	})

	t.Run("important", func(t *testing.T) {
		after, err := st.ToggleImportant(it.ID)
		require.NoError(t, err)
		assert.True(t, after.Important)

		after, err = st.ToggleImportant(it.ID)
		require.NoError(t, err)
		assert.False(t, after.Important)
	})
}

func TestRenameItemChangesOnlyText(t *testing.T) {
	st := New(nil)
	l := st.CreateList("a")
	it, err := st.AddItem(l.ID, "before")
	require.NoError(t, err)
	_, err = st.ToggleImportant(it.ID)
	require.NoError(t, err)

	require.NoError(t, st.RenameItem(it.ID, "after"))

	got, err := st.Item(it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, "after", got.Text)
	assert.True(t, got.Important)
	assert.False(t, got.Done)
}

func TestDeleteListRemovesItems(t *testing.T) {
	st := New(nil)
	keep := st.CreateList("keep")
	gone := st.CreateList("gone")
	kept, err := st.AddItem(keep.ID, "stays")
	require.NoError(t, err)
	doomed, err := st.AddItem(gone.ID, "goes")
	require.NoError(t, err)

	require.NoError(t, st.DeleteList(gone.ID))

	assert.Equal(t, 1, st.Len())
	_, err = st.Item(doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Item(kept.ID)
	assert.NoError(t, err)
}

func TestNotFoundLeavesStateUnchanged(t *testing.T) {
	st := New(nil)
	l := st.CreateList("a")
	it, err := st.AddItem(l.ID, "x")
	require.NoError(t, err)
	before := st.Snapshot()

	cases := []struct {
		name string
		err  error
	}{
		{"rename", st.RenameItem("nope", "y")},
		{"delete item", st.DeleteItem("nope")},
		{"delete list", st.DeleteList("nope")},
	}
	_, toggleErr := st.ToggleDone("nope")
	cases = append(cases, struct {
		name string
		err  error
	}{"toggle", toggleErr})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			assert.ErrorIs(t, tc.err, ErrNotFound)
			var nf *NotFoundError
			assert.True(t, errors.As(tc.err, &nf))
		})
	}

	assert.Equal(t, before, st.Snapshot())
	_, err = st.Item(it.ID)
	assert.NoError(t, err)
}

func TestOnMutateFiresPerMutation(t *testing.T) {
	st := New(nil)
	var calls int
	st.OnMutate(func() { calls++ })

	l := st.CreateList("a")
	it, err := st.AddItem(l.ID, "x")
	require.NoError(t, err)
	_, err = st.ToggleDone(it.ID)
	require.NoError(t, err)
	require.NoError(t, st.DeleteItem(it.ID))

	assert.Equal(t, 4, calls)

	// failed mutations must not fire the hook
	_, err = st.ToggleDone("nope")
	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestRestoreItemKeepsPosition(t *testing.T) {
	st := New(nil)
	l := st.CreateList("a")
	first, err := st.AddItem(l.ID, "first")
	require.NoError(t, err)
	_, err = st.AddItem(l.ID, "second")
	require.NoError(t, err)

	require.NoError(t, st.DeleteItem(first.ID))
	require.NoError(t, st.RestoreItem(l.ID, 0, first))

	got, err := st.List(l.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, first.ID, got.Items[0].ID)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	st := New(nil)
	l := st.CreateList("a")
	it, err := st.AddItem(l.ID, "x")
	require.NoError(t, err)

	snap := st.Snapshot()
	_, err = st.ToggleDone(it.ID)
	require.NoError(t, err)

	assert.False(t, snap[0].Items[0].Done)
}

func TestNewNormalizesNil(t *testing.T) {
	st := New(nil)
	assert.NotNil(t, st.Lists())
	assert.Equal(t, 0, st.Len())

	st2 := New([]model.TodoList{model.NewList("a")})
	assert.Equal(t, 1, st2.Len())
}
