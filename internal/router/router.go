// Package router classifies user questions into Congress.gov API calls.
package router

import (
	"context"

	"github.com/openhill/hillbot/internal/congress"
	"github.com/openhill/hillbot/internal/llm"
	"github.com/openhill/hillbot/internal/logging"
)

// Outcome is the result category of a classification.
type Outcome int

const (
	// OutcomeRouted means the question maps to an API endpoint.
	OutcomeRouted Outcome = iota
	// OutcomeDirect means the question should be answered from the model
	// alone. This covers questions no endpoint fits, questions the planner
	// could not pin down, and planner failures.
	OutcomeDirect
)

// Decision is the routing verdict for one user question.
type Decision struct {
	Outcome  Outcome
	Endpoint string
	Params   map[string]string
}

// Router runs the planning completion and validates its verdict.
type Router struct {
	client llm.Client
	model  string
	log    *logging.Logger
}

func New(client llm.Client, model string, log *logging.Logger) *Router {
	return &Router{client: client, model: model, log: log.Sub("router")}
}

const plannerPromptHeader = `You are a query planner for a Congress.gov assistant. Map the user's question to exactly one of the API endpoints below, or decide that no endpoint applies.

Endpoints:
`

const plannerPromptFooter = `
Rules:
- Respond with a single JSON object and nothing else.
- To call an endpoint: {"endpoint": "<name>", "parameters": {"<param>": "<value>"}}
- If the question needs a specific bill, member, or amendment but does not identify it: {"endpoint": "need_more_info", "missing": "<what is needed>"}
- If no endpoint fits the question, for example greetings or questions about how Congress works in general: {"endpoint": "none"}
- All parameter values must be strings.
- When a question says "current" or "this congress" without a number, use congress 119.
- When a question fits both a search endpoint and a get endpoint, prefer the get endpoint if the record is fully identified, otherwise the search endpoint.`

// Classify maps a user question to a Decision. Planning failures never
// surface as errors, the question falls through to a direct answer.
func (r *Router) Classify(ctx context.Context, question string) Decision {
	prompt := plannerPromptHeader + congress.CatalogPrompt() + plannerPromptFooter

	resp, err := r.client.Complete(ctx, llm.CompletionRequest{
		Model:       r.model,
		System:      prompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		MaxTokens:   512,
		Temperature: llm.Temp(0),
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("planner unavailable, answering directly")
		return Decision{Outcome: OutcomeDirect}
	}

	reply, err := extractPlan(resp.Content)
	if err != nil {
		r.log.Warn().Err(err).Msg("unparseable plan, answering directly")
		return Decision{Outcome: OutcomeDirect}
	}

	return r.validate(reply)
}

// validate checks the verdict against the catalog. An under-specified
// plan degrades to a direct answer instead of asking the user for more
// input, some answer beats blocking on a clarification.
func (r *Router) validate(reply *plannerReply) Decision {
	switch reply.Endpoint {
	case congress.NeedMoreInfo:
		r.log.Debug().Str("missing", reply.Missing).Msg("planner needs more info, answering directly")
		return Decision{Outcome: OutcomeDirect}
	case "", "none":
		return Decision{Outcome: OutcomeDirect}
	}

	ep, ok := congress.Lookup(reply.Endpoint)
	if !ok {
		r.log.Warn().Str("endpoint", reply.Endpoint).Msg("planner chose unknown endpoint")
		return Decision{Outcome: OutcomeDirect}
	}

	params := reply.stringParams()
	for _, name := range ep.RequiredParams() {
		if params[name] == "" {
			r.log.Debug().Str("endpoint", ep.Name).Str("param", name).Msg("plan missing required parameter, answering directly")
			return Decision{Outcome: OutcomeDirect}
		}
	}

	r.log.Debug().Str("endpoint", ep.Name).Interface("params", params).Msg("routed")
	return Decision{Outcome: OutcomeRouted, Endpoint: ep.Name, Params: params}
}
