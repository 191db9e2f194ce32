package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/mercado/config"
	"github.com/shashiranjanraj/mercado/pkg/logger"
)

// Manager resolves disks by name. The local disk is always present; the s3
// disk is booted only when S3_BUCKET is configured.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager boots the disks described by the loaded config.
func NewManager(ctx context.Context) (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{},
		defaultDisk: config.StorageDefault(),
	}

	local, err := NewLocalDisk(config.StorageLocalRoot())
	if err != nil {
		return nil, err
	}
	m.disks["local"] = local

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			Prefix:   config.StorageS3Prefix(),
		})
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err)
		} else {
			m.disks["s3"] = d
		}
	}
	return m, nil
}

// Register plugs in a disk under name, replacing any previous one.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disks == nil {
		m.disks = map[string]Disk{}
	}
	m.disks[name] = d
}

// Disk returns the named disk; an empty name selects the default disk.
func (m *Manager) Disk(name string) (Disk, error) {
	if name == "" {
		name = m.defaultDisk
	}
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured (have %v)", name, m.Names())
	}
	return d, nil
}

// Names lists the configured disks.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.disks))
	for name := range m.disks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
