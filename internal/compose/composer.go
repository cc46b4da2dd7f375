// Package compose turns API results and chat history into user-facing answers.
package compose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openhill/hillbot/internal/congress"
	"github.com/openhill/hillbot/internal/domain"
	"github.com/openhill/hillbot/internal/llm"
	"github.com/openhill/hillbot/internal/logging"
)

// Fixed fallback texts. The bot never returns an empty answer.
const (
	FetchApology   = "Sorry, I encountered an error fetching that information from Congress.gov. Please try again in a moment."
	ComposeApology = "Sorry, I'm having trouble putting together an answer right now. Please try again in a moment."
)

const groundedSystemPrompt = `You are Hillbot, a helpful assistant for questions about the United States Congress. Answer using the conversation and the JSON data fetched from the official Congress.gov API. Extract the most relevant details, prioritize the most recent information, and note plainly when the data is sparse or does not contain what the user asked for. Answer conversationally, never enumerate raw fields or echo JSON.`

const directSystemPrompt = `You are Hillbot, a helpful assistant for questions about the United States Congress. No API data is available for this turn, so answer from your general knowledge. Do not ask the user for more details. When your information may be outdated, say so.`

// Composer produces the final answer text for a turn.
type Composer struct {
	client      llm.Client
	model       string
	maxTokens   int
	temperature float64
	log         *logging.Logger
}

func New(client llm.Client, model string, maxTokens int, temperature float64, log *logging.Logger) *Composer {
	return &Composer{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		log:         log.Sub("compose"),
	}
}

// FromAPIResult writes an answer grounded in fetched Congress.gov data.
// An empty completion falls back to a direct answer, a failed one yields
// the fixed apology.
func (c *Composer) FromAPIResult(ctx context.Context, history []domain.Message, question string, result *congress.Result) string {
	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		c.log.Error().Err(err).Msg("marshal api data")
		return c.Direct(ctx, history, question)
	}

	grounding := fmt.Sprintf("Data fetched from the Congress.gov %s endpoint:\n%s\n\nUser question: %s",
		result.Endpoint, data, question)

	answer, err := c.complete(ctx, groundedSystemPrompt, history, grounding)
	if llm.IsUnavailable(err) {
		c.log.Warn().Err(err).Msg("grounded completion failed")
		return ComposeApology
	}
	if answer == "" {
		c.log.Warn().Str("endpoint", result.Endpoint).Msg("grounded completion empty, answering directly")
		return c.Direct(ctx, history, question)
	}
	return answer
}

// Direct writes an answer from the conversation alone, with no API data.
func (c *Composer) Direct(ctx context.Context, history []domain.Message, question string) string {
	answer, err := c.complete(ctx, directSystemPrompt, history, question)
	if llm.IsUnavailable(err) {
		c.log.Warn().Err(err).Msg("direct completion failed")
		return ComposeApology
	}
	if answer == "" {
		c.log.Warn().Msg("direct completion empty")
		return ComposeApology
	}
	return answer
}

func (c *Composer) complete(ctx context.Context, system string, history []domain.Message, finalUser string) (string, error) {
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Role == domain.RoleSystem {
			continue
		}
		msgs = append(msgs, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: finalUser})

	resp, err := c.client.Complete(ctx, llm.CompletionRequest{
		Model:       c.model,
		System:      system,
		Messages:    msgs,
		MaxTokens:   c.maxTokens,
		Temperature: llm.Temp(c.temperature),
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("nil completion response")
	}
	return strings.TrimSpace(resp.Content), nil
}
