package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/models"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")

	s := openTestStore(t, path)
	err := s.Update(func(st *State) error {
		st.Users = append(st.Users, &models.User{
			ID:     st.NextUID(),
			Email:  "ada@example.com",
			Handle: "adalovelace",
		})
		return nil
	})
	require.NoError(t, err)

	// A second store over the same file sees the committed graph.
	reopened := openTestStore(t, path)
	err = reopened.View(func(st *State) error {
		require.Len(t, st.Users, 1)
		assert.Equal(t, "adalovelace", st.Users[0].Handle)
		assert.Equal(t, int64(1), st.UIDRoot)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreDiscardOnError(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "database.json"))

	require.NoError(t, s.Update(func(st *State) error {
		st.Users = append(st.Users, &models.User{ID: st.NextUID()})
		return nil
	}))

	boom := errors.New("halfway failure")
	err := s.Update(func(st *State) error {
		st.Users = append(st.Users, &models.User{ID: st.NextUID()})
		st.Sessions = append(st.Sessions, "phantom")
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The failed transaction left no trace.
	require.NoError(t, s.View(func(st *State) error {
		assert.Len(t, st.Users, 1)
		assert.Empty(t, st.Sessions)
		assert.Equal(t, int64(1), st.UIDRoot)
		return nil
	}))
}

func TestStoreReset(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "database.json"))

	require.NoError(t, s.Update(func(st *State) error {
		st.Users = append(st.Users, &models.User{ID: st.NextUID()})
		st.Channels = append(st.Channels, &models.Channel{ID: st.NextCID(), Name: "general"})
		return nil
	}))

	require.NoError(t, s.Reset())

	require.NoError(t, s.View(func(st *State) error {
		assert.Empty(t, st.Users)
		assert.Empty(t, st.Channels)
		// Id counters start over.
		assert.Equal(t, int64(1), st.NextUID())
		return nil
	}))
}

func TestMessageIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	s := openTestStore(t, path)

	require.NoError(t, s.Update(func(st *State) error {
		ch := &models.Channel{ID: st.NextCID(), Name: "general", Messages: []*models.Message{}}
		st.Channels = append(st.Channels, ch)
		dm := &models.DM{ID: st.NextDMID(), Name: "pair", Messages: []*models.Message{}}
		st.DMs = append(st.DMs, dm)

		st.AppendMessage(Container{Channel: ch}, models.NewMessage(st.NextMID(), 1, "in channel", 0))
		st.AppendMessage(Container{DM: dm}, models.NewMessage(st.NextMID(), 1, "in dm", 0))
		return nil
	}))

	t.Run("resolves across container kinds", func(t *testing.T) {
		require.NoError(t, s.View(func(st *State) error {
			m, cont, ok := st.FindMessage(1)
			require.True(t, ok)
			assert.True(t, cont.IsChannel())
			assert.Equal(t, "in channel", m.Content)

			m, cont, ok = st.FindMessage(2)
			require.True(t, ok)
			assert.False(t, cont.IsChannel())
			assert.Equal(t, "in dm", m.Content)
			return nil
		}))
	})

	t.Run("survives a snapshot reload", func(t *testing.T) {
		reopened := openTestStore(t, path)
		require.NoError(t, reopened.View(func(st *State) error {
			_, cont, ok := st.FindMessage(2)
			require.True(t, ok)
			assert.Equal(t, "pair", cont.Name())
			return nil
		}))
	})

	t.Run("delete unindexes", func(t *testing.T) {
		require.NoError(t, s.Update(func(st *State) error {
			require.True(t, st.DeleteMessage(1))
			_, _, ok := st.FindMessage(1)
			assert.False(t, ok)
			assert.False(t, st.DeleteMessage(1))
			return nil
		}))
	})

	t.Run("dropping a DM unindexes its messages", func(t *testing.T) {
		require.NoError(t, s.Update(func(st *State) error {
			st.DropDM(st.FindDM(1))
			_, _, ok := st.FindMessage(2)
			assert.False(t, ok)
			assert.Nil(t, st.FindDM(1))
			return nil
		}))
	})
}

func TestSessions(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "database.json"))

	require.NoError(t, s.Update(func(st *State) error {
		st.AddSession("tok-1")
		st.AddSession("tok-1")
		assert.Len(t, st.Sessions, 1)
		assert.True(t, st.HasSession("tok-1"))

		assert.True(t, st.RemoveSession("tok-1"))
		assert.False(t, st.RemoveSession("tok-1"))
		assert.False(t, st.HasSession("tok-1"))
		return nil
	}))
}
