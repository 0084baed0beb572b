package chat

import "errors"

var (
	// ErrNotFound is returned when a transcript does not exist
	ErrNotFound = errors.New("chat not found")

	// ErrNoMessages is returned when an append carries no messages
	ErrNoMessages = errors.New("no messages to append")
)
