package entities

import "errors"

// Domain errors
var (
	// Action item errors
	ErrEmptyTask = errors.New("action item task is empty")
)
