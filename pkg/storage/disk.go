// Package storage is the filesystem abstraction used to keep snapshots.
//
// Two drivers are available:
//   - "local": local filesystem (default), atomic writes
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	m := storage.NewManager()
//	disk, err := m.Disk("local")
//	err = disk.Put(ctx, "mercado.json", data)
//	data, err = disk.Get(ctx, "mercado.json")
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by Get and Copy when the path does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, replacing any previous content.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Copy creates a copy of src at dst.
	Copy(ctx context.Context, src, dst string) error

	// Name identifies the driver in logs.
	Name() string
}
