package media

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/killallgit/stationcast/internal/models"
)

// Repository persists file records
type Repository interface {
	CreateFile(ctx context.Context, file *models.File) error
	GetFile(ctx context.Context, id uint) (*models.File, error)
	ListFiles(ctx context.Context, offset, limit int) ([]models.File, int64, error)
	DeleteFile(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new file repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFile(ctx context.Context, file *models.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	return nil
}

func (r *repository) GetFile(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("getting file %d: %w", id, err)
	}
	return &file, nil
}

func (r *repository) ListFiles(ctx context.Context, offset, limit int) ([]models.File, int64, error) {
	var (
		files []models.File
		total int64
	)

	query := r.db.WithContext(ctx).Model(&models.File{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting files: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Offset(offset).Order("id DESC").Find(&files).Error; err != nil {
		return nil, 0, fmt.Errorf("listing files: %w", err)
	}
	return files, total, nil
}

// DeleteFile removes the file record together with every episode that
// points at it, so no listing is left with a dangling file id
func (r *repository) DeleteFile(ctx context.Context, id uint) (int64, error) {
	var episodes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.File{}, id)
		if res.Error != nil {
			return fmt.Errorf("deleting file %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrFileNotFound
		}

		res = tx.Where("file_id = ?", id).Delete(&models.Episode{})
		if res.Error != nil {
			return fmt.Errorf("deleting episodes of file %d: %w", id, res.Error)
		}
		episodes = res.RowsAffected
		return nil
	})
	return episodes, err
}
