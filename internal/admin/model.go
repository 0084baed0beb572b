// Package admin manages console accounts and the analytics dashboard.
package admin

import "time"

// Admin is one console account.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats is the analytics dashboard payload. Counts are computed from live
// collections and may be stale by the time they are returned.
type Stats struct {
	TotalUsers      int     `json:"total_users"`
	ApprovedUsers   int     `json:"approved_users"`
	PendingUsers    int     `json:"pending_users"`
	FeedbackCount   int     `json:"feedback_count"`
	KeywordCount    int     `json:"keyword_count"`
	AverageFeedback float64 `json:"average_feedback"`
}
