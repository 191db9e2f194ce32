package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/pkg/storage"
)

// ErrNothingSaved is returned by Export when the store is empty.
var ErrNothingSaved = errors.New("state: nothing has been saved yet")

// Export writes the stored state as a snapshot document to path on disk.
func Export(ctx context.Context, store Store, disk storage.Disk, path string) error {
	st, found, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		return ErrNothingSaved
	}
	data, err := Encode(FromState(st))
	if err != nil {
		return err
	}
	if err := disk.Put(ctx, path, data); err != nil {
		return fmt.Errorf("state: export to %s:%s: %w", disk.Name(), path, err)
	}
	return nil
}

// Import reads a snapshot document from disk, checks it restores cleanly and
// replaces the stored state with it.
func Import(ctx context.Context, disk storage.Disk, path string, store Store) error {
	data, err := disk.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("state: import from %s:%s: %w", disk.Name(), path, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return err
	}
	st, err := snap.State()
	if err != nil {
		return err
	}
	m, _, err := services.Restore(st)
	if err != nil {
		return err
	}
	return store.Save(ctx, m.State())
}
