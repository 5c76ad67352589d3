package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoish/internal/store"
	"github.com/idilsaglam/todoish/internal/store/jsonstore"
)

// setupEnv points the config and data file at temp dirs so Run operates on
// a scratch store.
func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	data := filepath.Join(t.TempDir(), "todos.json")
	t.Setenv("TODOISH_DATA", data)
	return data
}

func TestRunLifecycle(t *testing.T) {
	data := setupEnv(t)
	opt := Options{}

	require.Equal(t, 0, Run([]string{"new", "groceries"}, opt))
	require.Equal(t, 0, Run([]string{"add", "groceries", "Buy", "milk"}, opt))
	require.Equal(t, 0, Run([]string{"add", "groceries", "Eggs"}, opt))
	require.Equal(t, 0, Run([]string{"done", "groceries", "1"}, opt))
	require.Equal(t, 0, Run([]string{"flag", "groceries", "2"}, opt))
	require.Equal(t, 0, Run([]string{"edit", "groceries", "2", "Dozen", "eggs"}, opt))

	lists, err := jsonstore.Load(data)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Items, 2)
	assert.True(t, lists[0].Items[0].Done)
	assert.Equal(t, "Dozen eggs", lists[0].Items[1].Text)
	assert.True(t, lists[0].Items[1].Important)

	require.Equal(t, 0, Run([]string{"rm", "groceries", "1"}, opt))
	lists, err = jsonstore.Load(data)
	require.NoError(t, err)
	require.Len(t, lists[0].Items, 1)
	assert.Equal(t, "Dozen eggs", lists[0].Items[0].Text)

	require.Equal(t, 0, Run([]string{"rm-list", "groceries"}, opt))
	lists, err = jsonstore.Load(data)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestRunListAddressableByIndex(t *testing.T) {
	data := setupEnv(t)
	opt := Options{}

	require.Equal(t, 0, Run([]string{"new", "groceries"}, opt))
	require.Equal(t, 0, Run([]string{"new", "chores"}, opt))
	require.Equal(t, 0, Run([]string{"add", "2", "Laundry"}, opt))

	lists, err := jsonstore.Load(data)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	require.Len(t, lists[1].Items, 1)
	assert.Equal(t, "Laundry", lists[1].Items[0].Text)
}

func TestRunUsageErrors(t *testing.T) {
	setupEnv(t)
	opt := Options{}

	cases := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown subcommand", []string{"frobnicate"}},
		{"new without name", []string{"new"}},
		{"add without text", []string{"add", "groceries"}},
		{"done bad index", []string{"done", "groceries", "zope"}},
		{"edit without text", []string{"edit", "groceries", "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 2, Run(tc.args, opt))
		})
	}
}

func TestRunMissingTargets(t *testing.T) {
	data := setupEnv(t)
	opt := Options{}
	require.Equal(t, 0, Run([]string{"new", "groceries"}, opt))

	t.Run("unknown list", func(t *testing.T) {
		assert.Equal(t, 2, Run([]string{"add", "nope", "x"}, opt))
	})
	t.Run("index out of range", func(t *testing.T) {
		assert.Equal(t, 2, Run([]string{"done", "groceries", "5"}, opt))
	})
	t.Run("state unchanged", func(t *testing.T) {
		lists, err := jsonstore.Load(data)
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Empty(t, lists[0].Items)
	})
}

func TestRunReadOnlyCommands(t *testing.T) {
	setupEnv(t)
	opt := Options{}
	require.Equal(t, 0, Run([]string{"new", "groceries"}, opt))
	require.Equal(t, 0, Run([]string{"add", "groceries", "Buy milk"}, opt))

	assert.Equal(t, 0, Run([]string{"lists"}, opt))
	assert.Equal(t, 0, Run([]string{"ls"}, opt))
	assert.Equal(t, 0, Run([]string{"ls", "groceries"}, opt))
	assert.Equal(t, 0, Run([]string{"ls", "groceries"}, Options{Group: true}))
	assert.Equal(t, 2, Run([]string{"ls", "nope"}, opt))
	assert.Equal(t, 0, Run([]string{"help"}, opt))
}

func TestResolveList(t *testing.T) {
	st := store.New(nil)
	groceries := st.CreateList("groceries")
	st.CreateList("2") // name that collides with an index

	t.Run("by name", func(t *testing.T) {
		l, ok := resolveList(st, "groceries")
		require.True(t, ok)
		assert.Equal(t, groceries.ID, l.ID)
	})
	t.Run("by index", func(t *testing.T) {
		l, ok := resolveList(st, "1")
		require.True(t, ok)
		assert.Equal(t, groceries.ID, l.ID)
	})
	t.Run("name wins over index", func(t *testing.T) {
		l, ok := resolveList(st, "2")
		require.True(t, ok)
		assert.Equal(t, "2", l.Name)
	})
	t.Run("missing", func(t *testing.T) {
		_, ok := resolveList(st, "nope")
		assert.False(t, ok)
	})
	t.Run("index out of range", func(t *testing.T) {
		_, ok := resolveList(st, "9")
		assert.False(t, ok)
	})
}
