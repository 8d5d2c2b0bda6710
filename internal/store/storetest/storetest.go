// Package storetest holds the behavioral suite every store.Store backend must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/litnotes/litnotes/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory opens a fresh, empty store for one subtest. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

// Run exercises the store.Store contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("SetThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, store.KeyBooks, []byte(`[{"id":"book-1"}]`)))

		got, err := s.Get(ctx, store.KeyBooks)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"book-1"}]`, string(got))
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, store.KeyNotes, []byte("first")))
		require.NoError(t, s.Set(ctx, store.KeyNotes, []byte("second")))

		got, err := s.Get(ctx, store.KeyNotes)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("EmptyValue", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, store.KeyNotes, []byte{}))

		got, err := s.Get(ctx, store.KeyNotes)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, store.KeyPreferences, []byte("{}")))
		require.NoError(t, s.Delete(ctx, store.KeyPreferences))

		_, err := s.Get(ctx, store.KeyPreferences)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(context.Background(), "never-set"))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, key := range store.AllKeys {
			require.NoError(t, s.Set(ctx, key, []byte(key)))
		}
		require.NoError(t, s.Delete(ctx, store.KeyNotes))

		for _, key := range store.AllKeys {
			got, err := s.Get(ctx, key)
			if key == store.KeyNotes {
				assert.ErrorIs(t, err, store.ErrNotFound)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, key, string(got))
		}
	})

	t.Run("ReturnedValueIsACopy", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		input := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", input))
		input[0] = 'z'

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		got[1] = 'z'

		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}
