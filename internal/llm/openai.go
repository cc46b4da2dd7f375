package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openhill/hillbot/internal/logging"
)

// OpenAIClient speaks the OpenAI-compatible chat completions protocol.
// It works against api.openai.com as well as any compatible gateway.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logging.Logger
}

func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration, log *logging.Logger) *OpenAIClient {
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.Sub("llm"),
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: RoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("error", msg).Msg("completion failed")
		return nil, &ProviderError{Provider: c.Name(), Code: resp.StatusCode, Message: msg}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "decode response: " + err.Error()}
	}
	if len(completion.Choices) == 0 {
		return nil, &ProviderError{Provider: c.Name(), Message: "no choices in response"}
	}

	duration := time.Since(start)
	c.log.Debug().Str("model", completion.Model).Dur("duration", duration).Msg("completion ok")

	return &CompletionResponse{
		Content:  completion.Choices[0].Message.Content,
		Model:    completion.Model,
		Duration: duration,
	}, nil
}
