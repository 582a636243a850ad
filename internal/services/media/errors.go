package media

import "errors"

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrObjectNotFound = errors.New("stored object not found")
	ErrInvalidKey     = errors.New("invalid storage key")
	ErrEmptyUpload    = errors.New("empty upload")
)
