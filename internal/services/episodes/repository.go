package episodes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/killallgit/stationcast/internal/models"
)

type repository struct {
	db *gorm.DB
}

// Ensure repository implements Repository interface
var _ Repository = (*repository)(nil)

// NewRepository creates the gorm backed episode registry
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AddPlaceholder registers an episode whose file has not arrived yet. The
// guid check and the insert share a transaction; the unique index catches
// whatever slips past the check.
func (r *repository) AddPlaceholder(ctx context.Context, podcastID uint, url, guid string, pubDate time.Time) (*models.Episode, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, NewValidationError("guid", "must not be empty")
	}
	if strings.TrimSpace(url) == "" {
		return nil, NewValidationError("url", "must not be empty")
	}

	episode := &models.Episode{
		PodcastID:       podcastID,
		DownloadURL:     url,
		EpisodeGUID:     guid,
		PublicationDate: pubDate.UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Episode{}).Where("episode_guid = ?", guid).Count(&count).Error; err != nil {
			return fmt.Errorf("checking guid: %w", err)
		}
		if count > 0 {
			return DuplicateError{GUID: guid}
		}
		return tx.Create(episode).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, DuplicateError{GUID: guid}
		}
		if errors.Is(err, ErrDuplicateEpisode) {
			return nil, err
		}
		return nil, fmt.Errorf("adding placeholder: %w", err)
	}
	return episode, nil
}

// CreateWithFile inserts a complete episode in one statement
func (r *repository) CreateWithFile(ctx context.Context, episode *models.Episode) error {
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return DuplicateError{GUID: episode.EpisodeGUID}
		}
		return fmt.Errorf("creating episode: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).Preload("File").First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("episode", id)
		}
		return nil, fmt.Errorf("getting episode: %w", err)
	}
	return &episode, nil
}

// ListByPodcast returns a page of a podcast's episodes with their files
func (r *repository) ListByPodcast(ctx context.Context, podcastID uint, opts ListOptions) ([]models.Episode, error) {
	query := r.db.WithContext(ctx).
		Preload("File").
		Where("podcast_id = ?", podcastID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: opts.column()}, Desc: opts.desc()}).
		Order("id ASC")

	switch {
	case opts.Limit > 0:
		query = query.Limit(opts.Limit)
	case opts.Offset > 0:
		// sqlite rejects OFFSET without LIMIT
		query = query.Limit(math.MaxInt32)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var episodes []models.Episode
	if err := query.Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return episodes, nil
}

// ListByPodcastAndGUIDs returns the stored episodes matching any of guids
func (r *repository) ListByPodcastAndGUIDs(ctx context.Context, podcastID uint, guids []string) ([]models.Episode, error) {
	if len(guids) == 0 {
		return nil, nil
	}

	var episodes []models.Episode
	err := r.db.WithContext(ctx).
		Where("podcast_id = ? AND episode_guid IN ?", podcastID, guids).
		Find(&episodes).Error
	if err != nil {
		return nil, fmt.Errorf("listing episodes by guid: %w", err)
	}
	return episodes, nil
}

func (r *repository) FindByPodcastAndFile(ctx context.Context, podcastID, fileID uint) (*models.Episode, error) {
	var episode models.Episode
	err := r.db.WithContext(ctx).
		Where("podcast_id = ? AND file_id = ?", podcastID, fileID).
		Order("id ASC").
		First(&episode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("episode for file", fileID)
		}
		return nil, fmt.Errorf("finding episode by file: %w", err)
	}
	return &episode, nil
}

// AttachFile sets the file of a placeholder in a single statement, so a
// concurrent delete shows up as not found rather than a resurrected row.
// Attaching the file an episode already has is a no-op; any other file is
// ErrNotPlaceholder.
func (r *repository) AttachFile(ctx context.Context, id, fileID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Episode{}).
		Where("id = ? AND (file_id IS NULL OR file_id = ?)", id, fileID).
		Update("file_id", fileID)
	if result.Error != nil {
		return fmt.Errorf("attaching file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missedPlaceholder(ctx, id)
	}
	return nil
}

// DeletePlaceholder removes an episode only while it has no file
func (r *repository) DeletePlaceholder(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND file_id IS NULL", id).
		Delete(&models.Episode{})
	if result.Error != nil {
		return fmt.Errorf("deleting placeholder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missedPlaceholder(ctx, id)
	}
	return nil
}

// missedPlaceholder explains why a placeholder-only statement touched no row
func (r *repository) missedPlaceholder(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("episode %d: %w", id, ErrNotPlaceholder)
}

func (r *repository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Episode{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting episode: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("episode", id)
	}
	return nil
}
