package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "stationcast.db")},
		Station:  config.StationConfig{URL: "https://radio.example.com/", APIKey: "secret", PodcastTitle: "Station"},
		Storage: config.StorageConfig{
			Backend: "filesystem",
			Dir:     filepath.Join(dir, "media"),
			TempDir: filepath.Join(dir, "tmp"),
		},
		Processing: config.ProcessingConfig{
			Workers:           2,
			PollInterval:      time.Second,
			ReconcileInterval: time.Hour,
			ReconcileBatch:    10,
			JobRetentionDays:  30,
		},
		Feeds: config.FeedsConfig{Timeout: time.Second, CacheTTL: time.Minute},
	}
	return cfg
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"host", "port", "no-workers"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, workerCmd.Flags().Lookup("count"))
}

func TestNewApp(t *testing.T) {
	cfg := testConfig(t)
	db, err := openDatabase(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, db)
	require.NoError(t, err)
	defer a.close()

	pool := a.newWorkerPool(3)
	assert.Equal(t, 3, pool.Size())

	s, err := startScheduler(ctx, a)
	require.NoError(t, err)
	assert.Len(t, s.Jobs(), 3)
	s.Stop()

	n, err := a.tracker.Poll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewStorage(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	storage, err := newStorage(ctx, cfg.Storage)
	require.NoError(t, err)
	assert.NotNil(t, storage)

	_, err = newStorage(ctx, config.StorageConfig{Backend: "tape"})
	assert.Error(t, err)
}
