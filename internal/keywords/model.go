package keywords

import (
	"strings"
	"time"
)

// Entry maps a keyword to its ordered response set.
type Entry struct {
	ID        string    `json:"_id"`
	Keyword   string    `json:"keyword"`
	Responses []string  `json:"responses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is a point-in-time, ordered read of the keyword set. The order is
// creation order and is the first-match-wins order used by the resolver.
type Snapshot []Entry

// Normalize folds a keyword the way it is stored: trimmed and lower-cased.
// The incoming chat message is folded the same way before matching, so
// matching never misses on case.
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// containsResponse reports whether resp is already in the response set.
func containsResponse(responses []string, resp string) bool {
	for _, r := range responses {
		if r == resp {
			return true
		}
	}
	return false
}
