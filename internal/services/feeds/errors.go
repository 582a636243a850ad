package feeds

import "errors"

var (
	ErrFeedUnavailable = errors.New("feed unavailable")
	ErrInvalidFeed     = errors.New("invalid feed")
)
