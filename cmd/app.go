package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/database"
	"github.com/killallgit/stationcast/internal/services/cache"
	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/internal/services/feeds"
	"github.com/killallgit/stationcast/internal/services/jobs"
	"github.com/killallgit/stationcast/internal/services/media"
	"github.com/killallgit/stationcast/internal/services/podcasts"
	"github.com/killallgit/stationcast/internal/services/workers"
	"github.com/killallgit/stationcast/pkg/config"
	"github.com/killallgit/stationcast/pkg/download"
)

// feedCacheBytes bounds the raw feed documents kept in memory
const feedCacheBytes = 64 << 20

// app holds the wired services shared by the commands
type app struct {
	cfg        *config.Config
	db         *database.DB
	jobs       jobs.Service
	media      *media.Service
	podcasts   *podcasts.Service
	station    *podcasts.Station
	episodes   *episodes.Service
	reconciler *episodes.Reconciler
	tracker    *episodes.Tracker
	feedCache  *cache.MemoryCache
}

// openDatabase opens the configured database and brings its schema up to date
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newApp wires every service over db
func newApp(ctx context.Context, cfg *config.Config, db *database.DB) (*app, error) {
	storage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	feedCache := cache.NewMemoryCache(feedCacheBytes, time.Minute)
	fetcher := feeds.NewFetcher(feeds.Options{
		Timeout:   cfg.Feeds.Timeout,
		CacheTTL:  cfg.Feeds.CacheTTL,
		UserAgent: cfg.Feeds.UserAgent,
	}, feedCache)

	jobService := jobs.NewService(jobs.NewRepository(db.DB))
	podcastRepo := podcasts.NewRepository(db.DB)
	station := podcasts.NewStation(podcasts.StationOptions{
		URL:          cfg.Station.URL,
		APIKey:       cfg.Station.APIKey,
		PodcastTitle: cfg.Station.PodcastTitle,
	}, podcastRepo)
	podcastService := podcasts.NewService(podcastRepo, fetcher)
	mediaService := media.NewService(media.NewRepository(db.DB), storage, cfg.Storage.TempDir)

	episodeRepo := episodes.NewRepository(db.DB)
	reconciler := episodes.NewReconciler(episodeRepo, nil)

	return &app{
		cfg:      cfg,
		db:       db,
		jobs:     jobService,
		media:    mediaService,
		podcasts: podcastService,
		station:  station,
		episodes: episodes.NewService(episodes.Deps{
			Repo:      episodeRepo,
			Downloads: episodes.NewDownloadDispatcher(jobs.NewDispatcher(jobService), station),
			Podcasts:  podcastService,
			Feeds:     fetcher,
			Files:     mediaService,
			Station:   station,
		}),
		reconciler: reconciler,
		tracker:    episodes.NewTracker(jobService, reconciler, cfg.Processing.ReconcileBatch, nil),
		feedCache:  feedCache,
	}, nil
}

// newStorage builds the configured media backend
func newStorage(ctx context.Context, cfg config.StorageConfig) (media.Storage, error) {
	switch cfg.Backend {
	case "s3":
		s3, err := media.NewS3Storage(media.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		log.Printf("[INFO] media stored in bucket %s at %s", cfg.S3.Bucket, cfg.S3.Endpoint)
		return s3, nil
	case "filesystem", "":
		fs, err := media.NewFSStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		log.Printf("[INFO] media stored in %s", cfg.Dir)
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// newWorkerPool builds a pool that downloads episodes and uploads them to
// the callback URL carried by each job
func (a *app) newWorkerPool(count int) *workers.WorkerPool {
	proc := a.cfg.Processing

	opts := download.DefaultOptions()
	opts.TempDir = a.cfg.Storage.TempDir
	if proc.MaxDownloadSize > 0 {
		opts.MaxSize = proc.MaxDownloadSize
	}
	if proc.DownloadTimeout > 0 {
		opts.Timeout = proc.DownloadTimeout
	}
	if proc.UserAgent != "" {
		opts.UserAgent = proc.UserAgent
	}

	pool := workers.NewWorkerPool(a.jobs, count, proc.PollInterval)
	pool.RegisterProcessor(workers.NewDownloadProcessor(a.jobs, download.NewDownloader(opts), workers.NewHTTPUploader(opts.Timeout)))
	return pool
}

// close releases the app's resources
func (a *app) close() {
	a.feedCache.Stop()
	if err := a.db.Close(); err != nil {
		log.Printf("[WARN] closing database: %v", err)
	}
}
