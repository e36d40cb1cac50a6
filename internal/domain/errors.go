package domain

import "errors"

var (
	// ErrTitleRequired is returned when a compare request has no title
	ErrTitleRequired = errors.New("title required")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSourceUnavailable is returned when a marketplace fetch fails
	ErrSourceUnavailable = errors.New("marketplace source unavailable")

	// ErrNoResults is returned when a marketplace returns an empty result set
	ErrNoResults = errors.New("no results from marketplace")

	// ErrCleanerUnavailable is returned when the AI title cleaner request fails
	ErrCleanerUnavailable = errors.New("title cleaning service unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
