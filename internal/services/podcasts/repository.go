package podcasts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/killallgit/stationcast/internal/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new podcast repository
func NewRepository(db *gorm.DB) PodcastRepository {
	return &repository{db: db}
}

func (r *repository) CreatePodcast(ctx context.Context, podcast *models.Podcast) error {
	if err := r.db.WithContext(ctx).Create(podcast).Error; err != nil {
		return fmt.Errorf("creating podcast: %w", err)
	}
	return nil
}

func (r *repository) GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *repository) GetPodcastByFeedURL(ctx context.Context, feedURL string) (*models.Podcast, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("feed_url = ? AND is_station = ?", feedURL, false))
}

func (r *repository) GetStationPodcast(ctx context.Context) (*models.Podcast, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("is_station = ?", true).Order("id ASC"))
}

func (r *repository) first(_ context.Context, query *gorm.DB) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := query.First(&podcast).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPodcastNotFound
		}
		return nil, fmt.Errorf("getting podcast: %w", err)
	}
	return &podcast, nil
}

func (r *repository) ListPodcasts(ctx context.Context, offset, limit int) ([]models.Podcast, int64, error) {
	var (
		podcasts []models.Podcast
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&models.Podcast{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting podcasts: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Offset(offset).Order("id ASC").Find(&podcasts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing podcasts: %w", err)
	}
	return podcasts, total, nil
}
