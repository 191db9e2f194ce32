// Package state persists the market between runs. The same snapshot can
// live in a file on a storage disk, in a SQL database or under a Redis key.
package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/config"
	"github.com/shashiranjanraj/mercado/pkg/database"
	"github.com/shashiranjanraj/mercado/pkg/logger"
	"github.com/shashiranjanraj/mercado/pkg/storage"
)

// Store loads and saves the whole market state at once.
type Store interface {
	// Load returns found=false when nothing has been saved yet.
	Load(ctx context.Context) (s services.State, found bool, err error)
	// Save replaces whatever was stored before.
	Save(ctx context.Context, s services.State) error
	// Describe names the backend and location for logs.
	Describe() string
	Close() error
}

// Open builds the store selected by STATE_DRIVER.
func Open(ctx context.Context, disks *storage.Manager) (Store, error) {
	switch driver := config.StateDriver(); driver {
	case "sql":
		db, err := database.Connect(config.DatabaseDriver(), config.DatabaseDSN())
		if err != nil {
			return nil, err
		}
		return NewSQLStore(ctx, db)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("state: redis ping %s: %w", config.RedisAddr(), err)
		}
		return NewRedisStore(client, config.RedisKey()), nil
	default:
		disk, err := disks.Disk("")
		if err != nil {
			return nil, err
		}
		return NewFileStore(disk, config.StatePath()), nil
	}
}

// LoadMarket restores the market from store, or starts a fresh one when
// nothing was saved.
func LoadMarket(ctx context.Context, store Store, opts ...services.Option) (*services.Market, error) {
	log := logger.Component("state")

	s, found, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Info("no saved state, starting fresh", "store", store.Describe())
		return services.NewMarket(opts...), nil
	}

	m, report, err := services.Restore(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("state: restore from %s: %w", store.Describe(), err)
	}
	if len(report.DroppedEntries) > 0 {
		log.Warn("dropped cart entries for missing products", "codes", report.DroppedEntries)
	}
	if report.DefaultAdminSeeded {
		log.Warn("no administrators stored, default administrator restored")
	}
	log.Info("state loaded",
		"store", store.Describe(),
		"products", m.Catalog.Len(),
		"cart_entries", m.Cart.Len(),
		"admins", m.Admins.Len())
	return m, nil
}

// SaveMarket persists m.
func SaveMarket(ctx context.Context, store Store, m *services.Market) error {
	if err := store.Save(ctx, m.State()); err != nil {
		return err
	}
	logger.Component("state").Info("state saved",
		"store", store.Describe(),
		"products", m.Catalog.Len(),
		"cart_entries", m.Cart.Len())
	return nil
}
