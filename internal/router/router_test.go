package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhill/hillbot/internal/llm"
	"github.com/openhill/hillbot/internal/logging"
)

func newTestRouter(responses ...string) (*Router, *llm.MockClient) {
	mock := &llm.MockClient{Responses: responses}
	return New(mock, "test-model", logging.New(nil, "silent")), mock
}

func TestClassifyRouted(t *testing.T) {
	r, mock := newTestRouter(`{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr", "billNumber": "1234"}}`)

	d := r.Classify(context.Background(), "what is the status of HR 1234?")
	assert.Equal(t, OutcomeRouted, d.Outcome)
	assert.Equal(t, "get_bill", d.Endpoint)
	assert.Equal(t, "hr", d.Params["billType"])

	// planning runs at temperature zero
	require.Len(t, mock.Calls, 1)
	require.NotNil(t, mock.Calls[0].Temperature)
	assert.Equal(t, 0.0, *mock.Calls[0].Temperature)
	assert.Contains(t, mock.Calls[0].System, "get_bill")
}

func TestClassifyCoercesNumericParams(t *testing.T) {
	r, _ := newTestRouter(`{"endpoint": "get_bill", "parameters": {"congress": 119, "billType": "hr", "billNumber": 1234}}`)

	d := r.Classify(context.Background(), "tell me about HR 1234 in the 119th congress")
	assert.Equal(t, OutcomeRouted, d.Outcome)
	assert.Equal(t, "119", d.Params["congress"])
	assert.Equal(t, "1234", d.Params["billNumber"])
}

func TestClassifyFencedJSON(t *testing.T) {
	r, _ := newTestRouter("```json\n{\"endpoint\": \"search_bills\", \"parameters\": {\"congress\": \"119\"}}\n```")

	d := r.Classify(context.Background(), "recent bills?")
	assert.Equal(t, OutcomeRouted, d.Outcome)
	assert.Equal(t, "search_bills", d.Endpoint)
}

func TestClassifyJSONEmbeddedInProse(t *testing.T) {
	r, _ := newTestRouter(`Sure, here is the plan: {"endpoint": "search_members", "parameters": {"stateCode": "CA"}} Hope that helps!`)

	d := r.Classify(context.Background(), "who represents California?")
	assert.Equal(t, OutcomeRouted, d.Outcome)
	assert.Equal(t, "search_members", d.Endpoint)
	assert.Equal(t, "CA", d.Params["stateCode"])
}

func TestClassifyNeedMoreInfoFallsThrough(t *testing.T) {
	r, _ := newTestRouter(`{"endpoint": "need_more_info", "missing": "which bill you mean"}`)

	d := r.Classify(context.Background(), "what does the bill say?")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestClassifyNone(t *testing.T) {
	r, _ := newTestRouter(`{"endpoint": "none"}`)

	d := r.Classify(context.Background(), "hello!")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestClassifyUnknownEndpointFallsThrough(t *testing.T) {
	r, _ := newTestRouter(`{"endpoint": "get_weather", "parameters": {"city": "DC"}}`)

	d := r.Classify(context.Background(), "weather in DC?")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestClassifyMissingRequiredParamFallsThrough(t *testing.T) {
	r, _ := newTestRouter(`{"endpoint": "get_bill", "parameters": {"congress": "119", "billType": "hr"}}`)

	d := r.Classify(context.Background(), "status of that house bill?")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestClassifyUnparseableFallsThrough(t *testing.T) {
	r, _ := newTestRouter(`I could not decide on an endpoint for that question.`)

	d := r.Classify(context.Background(), "hm")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestClassifyProviderErrorFallsThrough(t *testing.T) {
	mock := &llm.MockClient{CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("boom")
	}}
	r := New(mock, "test-model", logging.New(nil, "silent"))

	d := r.Classify(context.Background(), "recent bills?")
	assert.Equal(t, OutcomeDirect, d.Outcome)
}

func TestExtractPlanBracesInsideStrings(t *testing.T) {
	reply, err := extractPlan(`{"endpoint": "none", "missing": "a { tricky } value"}`)
	require.NoError(t, err)
	assert.Equal(t, "none", reply.Endpoint)
}

func TestStripFencesWithoutLanguageTag(t *testing.T) {
	out := stripFences("```\n{\"endpoint\": \"none\"}\n```")
	assert.Equal(t, `{"endpoint": "none"}`, out)
}
