package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry. Messages are immutable once
// appended.
type Message struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the ordered conversation record for one chat session.
// Messages are append-only; UpdatedAt is bumped on every append.
type Transcript struct {
	ID        string    `json:"chat_id"`
	OwnerID   string    `json:"user_id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the listing shape for the history sidebar.
type Summary struct {
	ChatID      string    `json:"chat_id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
}

// MatchingMessage is one message hit inside a search result, carrying a
// contextual snippet around the first match.
type MatchingMessage struct {
	Text          string    `json:"text"`
	Snippet       string    `json:"snippet"`
	Sender        Sender    `json:"sender"`
	Timestamp     time.Time `json:"timestamp"`
	MatchPosition int       `json:"match_position"`
}

// SearchResult is one transcript hit for a search query.
type SearchResult struct {
	ChatID           string            `json:"chat_id"`
	Title            string            `json:"title"`
	LastMessage      string            `json:"last_message"`
	Preview          string            `json:"preview"`
	MatchingMessages []MatchingMessage `json:"matching_messages,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
	MessageCount     int               `json:"message_count"`
	MatchCount       int               `json:"match_count"`
	IsRecent         bool              `json:"is_recent,omitempty"`
}

const (
	// defaultTitle is used when a transcript is created without one.
	defaultTitle = "New Chat"
	// recentLimit caps the empty-query search listing.
	recentLimit = 50
)
