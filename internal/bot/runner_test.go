package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhill/hillbot/internal/cache"
	"github.com/openhill/hillbot/internal/compose"
	"github.com/openhill/hillbot/internal/congress"
	"github.com/openhill/hillbot/internal/domain"
	"github.com/openhill/hillbot/internal/llm"
	"github.com/openhill/hillbot/internal/logging"
	"github.com/openhill/hillbot/internal/router"
)

// newTestRunner wires a full pipeline against a stub upstream. The mock
// client answers the planner call first, then the composer call.
func newTestRunner(t *testing.T, mock *llm.MockClient, upstream http.Handler) (*Runner, *MemorySessionStore) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := logging.New(nil, "silent")
	cg := congress.NewClient(congress.ClientOptions{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		Timeout:   5 * time.Second,
		ListTTL:   10 * time.Minute,
		EntityTTL: time.Hour,
	}, cache.New(), log)

	store := NewMemorySessionStore()
	runner := NewRunner(
		router.New(mock, "test-model", log),
		cg,
		compose.New(mock, "test-model", 1024, 0.7, log),
		store,
		log,
	)
	return runner, store
}

func billHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bill": {"title": "Border Act", "number": "1234"}}`))
	})
}

func TestRunRoutedTurn(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr", "billNumber": "1234"}}`,
		"HR 1234 is the Border Act.",
	}}
	runner, store := newTestRunner(t, mock, billHandler())

	result := runner.Run(context.Background(), "", "what is HR 1234?", nil)
	assert.Equal(t, "HR 1234 is the Border Act.", result.Response)
	assert.Equal(t, "get_bill", result.Endpoint)
	assert.False(t, result.Direct)
	assert.NotEmpty(t, result.SessionID)

	// both turn messages were recorded after the system prompt
	h := store.History(result.SessionID)
	require.Len(t, h, 3)
	assert.Equal(t, domain.RoleUser, h[1].Role)
	assert.Equal(t, "what is HR 1234?", h[1].Content)
	assert.Equal(t, domain.RoleAssistant, h[2].Role)
	assert.Equal(t, result.Response, h[2].Content)
}

func TestRunDirectTurn(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "none"}`,
		"Congress has two chambers, the House and the Senate.",
	}}
	runner, _ := newTestRunner(t, mock, billHandler())

	result := runner.Run(context.Background(), "", "how does Congress work?", nil)
	assert.True(t, result.Direct)
	assert.Empty(t, result.Endpoint)
	assert.Equal(t, "Congress has two chambers, the House and the Senate.", result.Response)
}

func TestRunUpstreamFailureApologizes(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr", "billNumber": "1234"}}`,
	}}
	runner, store := newTestRunner(t, mock, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	result := runner.Run(context.Background(), "", "what is HR 1234?", nil)
	assert.Equal(t, compose.FetchApology, result.Response)
	assert.Empty(t, result.Endpoint)

	// only the planner call was made, the composer never ran
	assert.Len(t, mock.Calls, 1)

	// the apology still lands in history
	h := store.History(result.SessionID)
	assert.Equal(t, compose.FetchApology, h[len(h)-1].Content)
}

func TestRunNeedMoreInfoAnswersDirectly(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "need_more_info", "missing": "which bill you mean"}`,
		"Bills in Congress generally go through committee review before a floor vote.",
	}}
	runner, _ := newTestRunner(t, mock, billHandler())

	result := runner.Run(context.Background(), "", "what does the bill say?", nil)
	assert.True(t, result.Direct)
	assert.Equal(t, "Bills in Congress generally go through committee review before a floor vote.", result.Response)
	assert.NotContains(t, result.Response, "more information")
	assert.Len(t, mock.Calls, 2)
}

func TestRunNeverReturnsEmptyResponse(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "none"}`,
		"",
	}}
	runner, _ := newTestRunner(t, mock, billHandler())

	result := runner.Run(context.Background(), "", "hm", nil)
	assert.NotEmpty(t, result.Response)
	assert.Equal(t, compose.ComposeApology, result.Response)
}

func TestRunSecondIdenticalQuestionHitsCache(t *testing.T) {
	plan := `{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr", "billNumber": "1234"}}`
	mock := &llm.MockClient{Responses: []string{plan, "answer one", plan, "answer two"}}
	runner, _ := newTestRunner(t, mock, billHandler())

	r1 := runner.Run(context.Background(), "s1", "what is HR 1234?", nil)
	assert.False(t, r1.Cached)

	r2 := runner.Run(context.Background(), "s1", "what is HR 1234?", nil)
	assert.True(t, r2.Cached)
}

func TestRunSessionContinuity(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "none"}`, "first answer",
		`{"endpoint": "none"}`, "second answer",
	}}
	runner, store := newTestRunner(t, mock, billHandler())

	r1 := runner.Run(context.Background(), "", "first question", nil)
	r2 := runner.Run(context.Background(), r1.SessionID, "second question", nil)
	assert.Equal(t, r1.SessionID, r2.SessionID)

	h := store.History(r1.SessionID)
	assert.Len(t, h, 5)

	// the second composer call saw the first exchange as history
	last := mock.Calls[3]
	require.Len(t, last.Messages, 3)
	assert.Equal(t, "first question", last.Messages[0].Content)
	assert.Equal(t, "first answer", last.Messages[1].Content)
}

func TestRunEmitsEvents(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr", "billNumber": "1234"}}`,
		"HR 1234 is the Border Act.",
	}}
	runner, _ := newTestRunner(t, mock, billHandler())

	var events []Event
	runner.Run(context.Background(), "", "what is HR 1234?", func(e Event) {
		events = append(events, e)
	})

	require.Len(t, events, 2)
	assert.Equal(t, "routing", events[0].Type)
	assert.Equal(t, "get_bill", events[0].Endpoint)
	assert.Equal(t, "response", events[1].Type)
	assert.Equal(t, "HR 1234 is the Border Act.", events[1].Text)
}
