package types

import (
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/internal/services/feeds"
	"github.com/killallgit/stationcast/internal/services/media"
	"github.com/killallgit/stationcast/internal/services/podcasts"
	apperrors "github.com/killallgit/stationcast/pkg/errors"
)

// AppError classifies a service error for the API
func AppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, episodes.ErrEpisodeNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "episode not found")
	case errors.Is(err, podcasts.ErrPodcastNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "podcast not found")
	case errors.Is(err, media.ErrFileNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "file not found")
	case errors.Is(err, episodes.ErrDuplicateEpisode):
		return apperrors.Wrap(err, apperrors.ErrCodeAlreadyExists, "episode already exists")
	case errors.Is(err, episodes.ErrInvalidInput),
		errors.Is(err, podcasts.ErrInvalidFeedURL),
		errors.Is(err, feeds.ErrInvalidFeed),
		errors.Is(err, media.ErrEmptyUpload):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	case errors.Is(err, feeds.ErrFeedUnavailable):
		return apperrors.ExternalServiceError("feed", err)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}
}

// SendError renders err as an ErrorResponse with the matching status code
func SendError(c *gin.Context, err error) {
	appErr := AppError(err)
	code := appErr.GetHTTPCode()
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		log.Printf("[DEBUG] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	resp := ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
	}
	if len(appErr.Details) > 0 {
		resp.Details = appErr.Details
	}
	c.JSON(code, resp)
}
