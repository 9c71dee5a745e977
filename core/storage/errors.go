package storage

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrInvalidPath        = errors.New("invalid storage path")
	ErrFileNotFound       = errors.New("file not found")
	ErrAccessDenied       = errors.New("storage access denied")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrOperationTimeout   = errors.New("storage operation timed out")
	ErrOperationCanceled  = errors.New("storage operation canceled")
)
