package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-lookup-service/internal/catalog"
	"movie-lookup-service/internal/registry"
)

func newTestLookup() (*LookupService, registry.Store) {
	cat := catalog.New()
	cat.Load(catalog.DefaultRecords())
	store := registry.NewMemoryStore()
	return NewLookupService(cat, store, nil), store
}

func TestLookupServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("RegistersAndRecordsHistory", func(t *testing.T) {
		svc, store := newTestLookup()

		results, err := svc.Search(ctx, "u1", "matrix")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "The Matrix", results[0].Title)

		history, err := store.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"matrix"}, history)
	})

	t.Run("NoMatchStillRecordsHistory", func(t *testing.T) {
		svc, store := newTestLookup()

		results, err := svc.Search(ctx, "u1", "xyz-not-present")
		require.NoError(t, err)
		assert.Empty(t, results)

		history, err := store.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"xyz-not-present"}, history)
	})

	t.Run("HistoryKeepsQueryVerbatim", func(t *testing.T) {
		svc, store := newTestLookup()

		_, err := svc.Search(ctx, "u1", "MATRIX")
		require.NoError(t, err)

		history, err := store.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"MATRIX"}, history)
	})

	t.Run("RepeatedSearchesAppendInOrder", func(t *testing.T) {
		svc, store := newTestLookup()

		for _, q := range []string{"matrix", "incep", "matrix"} {
			_, err := svc.Search(ctx, "u1", q)
			require.NoError(t, err)
		}

		history, err := store.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"matrix", "incep", "matrix"}, history)
	})
}

func TestLookupServiceLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("DoesNotTouchUserState", func(t *testing.T) {
		svc, store := newTestLookup()

		results := svc.Lookup(ctx, "inception")
		require.Len(t, results, 1)

		ids, err := store.UserIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
