// Package feedback records per-message ratings from the chat UI and
// free-text feedback submitted by patients.
package feedback

import "time"

// MessageFeedback is one rating attached to a transcript message. The
// index is positional within the transcript and is not validated against
// the transcript length.
type MessageFeedback struct {
	ID           string    `json:"feedback_id"`
	ChatID       string    `json:"chat_id"`
	MessageIndex int       `json:"message_index"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TextFeedback is a free-text submission tied to a patient account.
type TextFeedback struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}
