package bot

import (
	"context"
	"time"

	"github.com/openhill/hillbot/internal/compose"
	"github.com/openhill/hillbot/internal/congress"
	"github.com/openhill/hillbot/internal/domain"
	"github.com/openhill/hillbot/internal/logging"
	"github.com/openhill/hillbot/internal/router"
)

// Event is a progress notification emitted while a turn runs. Transports
// that support it, like the websocket surface, relay events live.
type Event struct {
	Type     string `json:"type"` // "routing" or "response"
	Endpoint string `json:"endpoint,omitempty"`
	Text     string `json:"text,omitempty"`
}

// TurnResult is the outcome of one chat turn. There is no error variant,
// failures degrade into apology answers.
type TurnResult struct {
	SessionID string
	Response  string
	// Endpoint is set when the turn was answered from an API call.
	Endpoint string
	Cached   bool
	Direct   bool
	Duration time.Duration
}

// Runner drives the route, fetch, compose pipeline for chat turns.
type Runner struct {
	router   *router.Router
	congress *congress.Client
	composer *compose.Composer
	sessions SessionStore
	log      *logging.Logger
}

func NewRunner(rt *router.Router, cg *congress.Client, cp *compose.Composer, store SessionStore, log *logging.Logger) *Runner {
	return &Runner{
		router:   rt,
		congress: cg,
		composer: cp,
		sessions: store,
		log:      log.Sub("bot"),
	}
}

// Run executes one chat turn. onEvent may be nil. The returned response
// is never empty.
func (r *Runner) Run(ctx context.Context, sessionID, text string, onEvent func(Event)) *TurnResult {
	start := time.Now()
	emit := func(e Event) {
		if onEvent != nil {
			onEvent(e)
		}
	}

	sess := r.sessions.GetOrCreate(sessionID)
	history := sess.Messages
	r.sessions.Append(sess.ID, domain.Message{Role: domain.RoleUser, Content: text})

	result := &TurnResult{SessionID: sess.ID}
	decision := r.router.Classify(ctx, text)

	if decision.Outcome == router.OutcomeRouted {
		emit(Event{Type: "routing", Endpoint: decision.Endpoint})
		apiResult, err := r.congress.Call(ctx, decision.Endpoint, decision.Params)
		if err != nil {
			r.log.Warn().Err(err).Str("endpoint", decision.Endpoint).Msg("fetch failed")
			result.Response = compose.FetchApology
		} else {
			result.Endpoint = decision.Endpoint
			result.Cached = apiResult.Cached
			result.Response = r.composer.FromAPIResult(ctx, history, text, apiResult)
		}
	} else {
		result.Direct = true
		result.Response = r.composer.Direct(ctx, history, text)
	}

	r.sessions.Append(sess.ID, domain.Message{Role: domain.RoleAssistant, Content: result.Response})
	result.Duration = time.Since(start)

	r.log.Info().
		Str("session", result.SessionID).
		Str("endpoint", result.Endpoint).
		Bool("direct", result.Direct).
		Bool("cached", result.Cached).
		Dur("duration", result.Duration).
		Msg("turn complete")

	emit(Event{Type: "response", Text: result.Response})
	return result
}
