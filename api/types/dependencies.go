package types

import (
	"github.com/killallgit/stationcast/internal/database"
	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/internal/services/jobs"
	"github.com/killallgit/stationcast/internal/services/media"
	"github.com/killallgit/stationcast/internal/services/podcasts"
	"github.com/killallgit/stationcast/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	Podcasts       podcasts.PodcastService
	Episodes       episodes.EpisodeService
	Media          *media.Service
	Reconciler     *episodes.Reconciler
	JobService     jobs.Service
	WorkerPool     *workers.WorkerPool
	APIKey         string
	Version        string
	MaxUploadBytes int64
}
