package custom_errors

import "errors"

var (
	ErrPostValidation   = errors.New("post validation failed")
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDatabaseQuery    = errors.New("database query failed")
	ErrCacheMiss        = errors.New("cache miss")
)
