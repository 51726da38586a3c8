package domain

import "errors"

var (
	ErrMissingTerm        = errors.New("search term is required")
	ErrNegativeMaxResults = errors.New("max results must be non-negative")
	ErrInvalidFilter      = errors.New("invalid filter value")
	ErrInvalidDate        = errors.New("invalid RFC3339 timestamp")
	ErrFilterConflict     = errors.New("video filters require result type video")
)

var (
	ErrUnauthorized   = errors.New("invalid or missing API key")
	ErrQuotaExceeded  = errors.New("API quota exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrRequestFailed  = errors.New("API request failed")
)

var (
	ErrVideoNotFound = errors.New("video not found")
)
