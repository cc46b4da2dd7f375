// Package llm defines the completion client interface and its providers.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Message is a single turn in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest describes one completion call.
type CompletionRequest struct {
	Model     string
	System    string
	Messages  []Message
	MaxTokens int
	// Temperature is optional. Nil means the provider default.
	Temperature *float64
}

// CompletionResponse is the provider's answer to a CompletionRequest.
type CompletionResponse struct {
	Content  string
	Model    string
	Duration time.Duration
}

// Client is implemented by completion providers.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Name() string
}

// ProviderError is returned when a provider rejects or fails a request.
type ProviderError struct {
	Provider string
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsUnavailable reports whether err means the provider failed to
// produce a completion. Every non-nil error counts as unavailability.
// An empty or unhelpful completion arrives as a nil error with empty
// Content, which callers handle as a separate degraded path.
func IsUnavailable(err error) bool {
	return err != nil
}

// Temp returns a pointer to t, for CompletionRequest.Temperature.
func Temp(t float64) *float64 {
	return &t
}
