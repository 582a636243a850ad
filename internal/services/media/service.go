package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/killallgit/stationcast/internal/models"
)

// Service manages the station media library
type Service struct {
	repo    Repository
	storage Storage
	tempDir string
}

// NewService creates a media service. Uploads are staged in tempDir.
func NewService(repo Repository, storage Storage, tempDir string) *Service {
	return &Service{repo: repo, storage: storage, tempDir: tempDir}
}

// Store saves an uploaded file, extracts its metadata and records it
func (s *Service) Store(ctx context.Context, name, contentType string, r io.Reader) (*models.File, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload.mp3"
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".mp3"
	}
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		} else {
			contentType = "audio/mpeg"
		}
	}

	staged, err := os.CreateTemp(s.tempDir, "upload_*"+ext)
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	defer os.Remove(staged.Name())
	defer staged.Close()

	size, err := io.Copy(staged, r)
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	if size == 0 {
		return nil, ErrEmptyUpload
	}

	meta, err := ExtractMetadata(staged.Name())
	if err != nil {
		log.Printf("[WARN] can't read metadata of %s, %v", name, err)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding upload: %w", err)
	}

	key := uuid.NewString() + ext
	if err := s.storage.Put(ctx, key, staged, size, contentType); err != nil {
		return nil, fmt.Errorf("storing %s: %w", name, err)
	}

	file := &models.File{
		Name:          name,
		MimeType:      contentType,
		Size:          size,
		StorageKey:    key,
		TrackTitle:    meta.Title,
		Artist:        meta.Artist,
		LengthSeconds: meta.LengthSeconds,
	}
	if err := s.repo.CreateFile(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("[WARN] can't remove orphaned object %s, %v", key, delErr)
		}
		return nil, err
	}

	log.Printf("[INFO] stored file %d (%s, %d bytes)", file.ID, name, size)
	return file, nil
}

// GetFile returns the file record, ErrFileNotFound when absent
func (s *Service) GetFile(ctx context.Context, id uint) (*models.File, error) {
	return s.repo.GetFile(ctx, id)
}

// ListFiles returns a page of files, newest first
func (s *Service) ListFiles(ctx context.Context, offset, limit int) ([]models.File, int64, error) {
	return s.repo.ListFiles(ctx, offset, limit)
}

// Open returns the record and a reader over its contents
func (s *Service) Open(ctx context.Context, id uint) (*models.File, io.ReadCloser, error) {
	file, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			log.Printf("[WARN] file %d has no stored object %s", id, file.StorageKey)
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}
	return file, rc, nil
}

// DeleteFile removes the record and the episodes using it, then its blob.
// Imported episodes go back to not ingested; the station feed drops the file.
func (s *Service) DeleteFile(ctx context.Context, id uint) error {
	file, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return err
	}
	removed, err := s.repo.DeleteFile(ctx, id)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("[INFO] file %d removed from %d episode(s)", id, removed)
	}
	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		log.Printf("[WARN] can't delete object %s of file %d, %v", file.StorageKey, id, err)
	}
	return nil
}
