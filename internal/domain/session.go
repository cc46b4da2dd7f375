package domain

import "time"

// Session is an ordered, append-only conversation transcript.
// The first message, if present, is always the system prompt; clearing a
// session drops all messages and re-appends exactly that system message.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages,omitempty"`
}
