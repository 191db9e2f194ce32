package state_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mercado/internal/state"
	"github.com/shashiranjanraj/mercado/pkg/database"
)

func newSQLStore(t *testing.T) *state.SQLStore {
	t.Helper()
	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "mercado.db"))
	require.NoError(t, err)
	store, err := state.NewSQLStore(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStore_EmptyDatabaseIsFresh(t *testing.T) {
	store := newSQLStore(t)

	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "sql:sqlite", store.Describe())
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	m := sampleMarket(t)

	require.NoError(t, state.SaveMarket(ctx, store, m))
	restored, err := state.LoadMarket(ctx, store)
	require.NoError(t, err)
	assertSameState(t, m.State(), restored.State())
}

func TestSQLStore_SaveReplacesPreviousRows(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	m := sampleMarket(t)
	require.NoError(t, state.SaveMarket(ctx, store, m))

	_, err := m.Cart.Finalize()
	require.NoError(t, err)
	require.NoError(t, m.Catalog.Delete(2))
	require.NoError(t, state.SaveMarket(ctx, store, m))

	st, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, st.Products, 1)
	assert.Empty(t, st.Cart)
	assert.Len(t, st.Admins, 2)
	assert.Equal(t, 3, st.LastCode)
}
