package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/internal/state"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
	"github.com/shashiranjanraj/mercado/pkg/storage"
)

func newFileStore(t *testing.T) (*state.FileStore, storage.Disk) {
	t.Helper()
	disk, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	return state.NewFileStore(disk, "mercado.json"), disk
}

func TestFileStore_MissingFileIsFresh(t *testing.T) {
	store, _ := newFileStore(t)

	m, err := state.LoadMarket(context.Background(), store, services.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	assert.Zero(t, m.Catalog.Len())
	assert.Zero(t, m.Cart.Len())
	assert.True(t, m.Admins.Authenticate(services.DefaultAdminCPF, services.DefaultAdminSecret))
}

func TestFileStore_RoundTripKeepsBackup(t *testing.T) {
	ctx := context.Background()
	store, disk := newFileStore(t)
	m := sampleMarket(t)

	require.NoError(t, state.SaveMarket(ctx, store, m))
	ok, err := disk.Exists(ctx, "mercado.json.bak")
	require.NoError(t, err)
	assert.False(t, ok, "first save has nothing to back up")

	require.NoError(t, state.SaveMarket(ctx, store, m))
	ok, err = disk.Exists(ctx, "mercado.json.bak")
	require.NoError(t, err)
	assert.True(t, ok)

	restored, err := state.LoadMarket(ctx, store)
	require.NoError(t, err)
	assertSameState(t, m.State(), restored.State())
	assert.True(t, restored.Admins.Authenticate("98765432100", "segredo"))
}

func TestFileStore_CorruptFileFailsWithoutOverwrite(t *testing.T) {
	ctx := context.Background()
	store, disk := newFileStore(t)
	require.NoError(t, disk.Put(ctx, "mercado.json", []byte("{broken")))

	_, err := state.LoadMarket(ctx, store)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptState), "got %v", err)

	data, err := disk.Get(ctx, "mercado.json")
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestFileStore_InvalidRecordsAreCorrupt(t *testing.T) {
	ctx := context.Background()
	store, disk := newFileStore(t)
	doc := `{"produtos":[{"codigo":1,"nome":"A","preco":1,"estoque":-4}],"carrinho":{},"admins":[]}`
	require.NoError(t, disk.Put(ctx, "mercado.json", []byte(doc)))

	_, err := state.LoadMarket(ctx, store)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptState), "got %v", err)
}
