package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deardiary/deardiary/backend/go-services/internal/config"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnconfiguredIsUnavailable(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMongo, CreatedAtPolicy: config.CreatedAtHonor}}
	cfg.MongoDB.URI = "mongodb://localhost:27017"

	g, closeFn := Open(context.Background(), cfg)
	defer closeFn(context.Background())

	require.False(t, store.IsAvailable(g))
	_, err := g.Create(context.Background(), "note", store.Fields{"title": "A"})
	require.True(t, errors.Is(err, store.ErrStoreUnavailable))
}

func TestOpen_MemoryDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, CreatedAtPolicy: config.CreatedAtStamp}}

	g, closeFn := Open(context.Background(), cfg)
	defer closeFn(context.Background())

	require.True(t, store.IsAvailable(g))
	id, err := g.Create(context.Background(), "note", store.Fields{"title": "A"})
	require.NoError(t, err)
	d, err := g.Get(context.Background(), "note", id.String())
	require.NoError(t, err)
	require.Equal(t, "A", d.String("title"))
}

func TestOpen_UnreachableDegrades(t *testing.T) {
	orig := initialBackoff
	initialBackoff = time.Millisecond
	defer func() { initialBackoff = orig }()

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMongo}}
	cfg.MongoDB = config.MongoDBConfig{URI: "mongodb://127.0.0.1:1", Database: "x", Timeout: 200 * time.Millisecond, ConnectAttempts: 2}

	g, closeFn := Open(context.Background(), cfg)
	defer closeFn(context.Background())

	require.False(t, store.IsAvailable(g))
	_, err := g.List(context.Background(), "note", store.ListOptions{})
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestOpen_CancelStopsRetrying(t *testing.T) {
	orig := initialBackoff
	initialBackoff = time.Hour
	defer func() { initialBackoff = orig }()

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMongo}}
	cfg.MongoDB = config.MongoDBConfig{URI: "mongodb://127.0.0.1:1", Database: "x", Timeout: 100 * time.Millisecond, ConnectAttempts: 5}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	g, closeFn := Open(ctx, cfg)
	defer closeFn(context.Background())

	require.Less(t, time.Since(start), 10*time.Second)
	require.False(t, store.IsAvailable(g))
	_, err := g.Get(context.Background(), "note", store.NewID().String())
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
	require.Contains(t, err.Error(), "connect aborted")
}
