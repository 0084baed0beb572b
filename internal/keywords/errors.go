package keywords

import "errors"

var (
	// ErrNotFound is returned when a keyword entry does not exist
	ErrNotFound = errors.New("keyword not found")

	// ErrEmptyKeyword is returned when a keyword is blank after normalization
	ErrEmptyKeyword = errors.New("keyword is required")

	// ErrEmptyResponses is returned when a replace carries no responses
	ErrEmptyResponses = errors.New("responses list is required")
)
