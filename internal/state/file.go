package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/pkg/storage"
)

// FileStore keeps the snapshot as one JSON document on a disk. The previous
// document is copied to "<path>.bak" before it is overwritten.
type FileStore struct {
	disk storage.Disk
	path string
}

func NewFileStore(disk storage.Disk, path string) *FileStore {
	return &FileStore{disk: disk, path: path}
}

func (s *FileStore) Describe() string { return fmt.Sprintf("%s:%s", s.disk.Name(), s.path) }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Load(ctx context.Context) (services.State, bool, error) {
	data, err := s.disk.Get(ctx, s.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return services.State{}, false, nil
		}
		return services.State{}, false, fmt.Errorf("state: read %s: %w", s.Describe(), err)
	}
	snap, err := Decode(data)
	if err != nil {
		return services.State{}, false, err
	}
	st, err := snap.State()
	if err != nil {
		return services.State{}, false, err
	}
	return st, true, nil
}

func (s *FileStore) Save(ctx context.Context, st services.State) error {
	data, err := Encode(FromState(st))
	if err != nil {
		return err
	}
	exists, err := s.disk.Exists(ctx, s.path)
	if err != nil {
		return fmt.Errorf("state: stat %s: %w", s.Describe(), err)
	}
	if exists {
		if err := s.disk.Copy(ctx, s.path, s.path+".bak"); err != nil {
			return fmt.Errorf("state: backup %s: %w", s.Describe(), err)
		}
	}
	if err := s.disk.Put(ctx, s.path, data); err != nil {
		return fmt.Errorf("state: write %s: %w", s.Describe(), err)
	}
	return nil
}
