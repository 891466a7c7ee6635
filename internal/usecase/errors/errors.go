package errors

import "errors"

// Extraction errors
var (
	ErrUnknownStrategy = errors.New("unknown extraction strategy")
)

// Cache errors
var (
	ErrCacheUnavailable = errors.New("cache unavailable")
	ErrUnknownCache     = errors.New("unknown cache driver")
)

// NLP errors
var (
	ErrUnknownProvider = errors.New("unknown nlp provider")
)
