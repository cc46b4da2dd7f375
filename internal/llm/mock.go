package llm

import "context"

// MockClient is a test double. Each call is recorded and answered by
// CompleteFunc, or by popping from Responses when CompleteFunc is nil.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Responses    []string
	Calls        []CompletionRequest
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.Calls = append(m.Calls, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	if len(m.Responses) == 0 {
		return &CompletionResponse{Content: "", Model: "mock"}, nil
	}
	content := m.Responses[0]
	m.Responses = m.Responses[1:]
	return &CompletionResponse{Content: content, Model: "mock"}, nil
}
