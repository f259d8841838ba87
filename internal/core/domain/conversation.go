package domain

import "time"

// Conversation is a saved chat transcript owned by the UI.
// The chat pipeline never reads it; the UI loads it and sends the
// messages back as history.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
