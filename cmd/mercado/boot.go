package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/config"
	"github.com/shashiranjanraj/mercado/internal/state"
	"github.com/shashiranjanraj/mercado/pkg/event"
	"github.com/shashiranjanraj/mercado/pkg/logger"
	"github.com/shashiranjanraj/mercado/pkg/metrics"
	"github.com/shashiranjanraj/mercado/pkg/storage"
)

// app is everything a command needs once config is loaded.
type app struct {
	disks   *storage.Manager
	store   state.Store
	bus     *event.Bus
	metrics *metrics.Recorder
}

// boot loads config, configures logging and opens the state store.
func boot(ctx context.Context) (*app, error) {
	if err := config.LoadFrom(configPath, envPath); err != nil {
		return nil, err
	}
	logger.Configure(os.Stderr)

	disks, err := storage.NewManager(ctx)
	if err != nil {
		return nil, err
	}

	openCtx, cancel := context.WithTimeout(ctx, config.StateTimeout())
	defer cancel()
	store, err := state.Open(openCtx, disks)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	logger.Subscribe(bus)
	rec := metrics.New()
	rec.Subscribe(bus)

	return &app{disks: disks, store: store, bus: bus, metrics: rec}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("closing state store failed", "error", err)
	}
	if path := config.MetricsTextfile(); path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			logger.Warn("writing metrics failed", "path", path, "error", err)
		}
	}
}

// withMarket loads the market, runs fn and saves the market afterwards, even
// when fn fails. Nothing is saved when loading fails, so an unreadable state
// file is never overwritten.
func withMarket(ctx context.Context, fn func(*services.Market) error) error {
	a, m, err := openMarket(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	runErr := fn(m)

	saveCtx, cancel := context.WithTimeout(context.Background(), config.StateTimeout())
	defer cancel()
	if err := state.SaveMarket(saveCtx, a.store, m); err != nil {
		return errors.Join(runErr, fmt.Errorf("save market: %w", err))
	}
	return runErr
}

// withMarketReadOnly loads the market and runs fn. The store is left as it
// was found.
func withMarketReadOnly(ctx context.Context, fn func(*services.Market) error) error {
	a, m, err := openMarket(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(m)
}

func openMarket(ctx context.Context) (*app, *services.Market, error) {
	a, err := boot(ctx)
	if err != nil {
		return nil, nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, config.StateTimeout())
	m, err := state.LoadMarket(loadCtx, a.store,
		services.WithEvents(a.bus),
		services.WithBcryptCost(config.BcryptCost()))
	cancel()
	if err != nil {
		a.close()
		return nil, nil, fmt.Errorf("load market: %w", err)
	}
	if err := a.metrics.TrackProducts(m.Catalog.Len); err != nil {
		logger.Warn("catalog gauge not registered", "error", err)
	}
	return a, m, nil
}

// withStore is for commands that move snapshots without a live market.
func withStore(ctx context.Context, fn func(*app) error) error {
	a, err := boot(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
