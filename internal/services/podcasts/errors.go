package podcasts

import "errors"

var (
	ErrPodcastNotFound = errors.New("podcast not found")
	ErrInvalidFeedURL  = errors.New("invalid feed url")
)
