package cli

import (
	"fmt"
	"time"

	"github.com/openhill/hillbot/internal/bot"
	"github.com/openhill/hillbot/internal/cache"
	"github.com/openhill/hillbot/internal/compose"
	"github.com/openhill/hillbot/internal/config"
	"github.com/openhill/hillbot/internal/congress"
	"github.com/openhill/hillbot/internal/llm"
	"github.com/openhill/hillbot/internal/logging"
	"github.com/openhill/hillbot/internal/router"
)

// loadValidConfig loads the config file and fails on validation issues.
func loadValidConfig() (config.Config, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return cfg, err
	}

	issues := config.Validate(&cfg)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return cfg, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}
	return cfg, nil
}

// buildPipeline assembles the chat pipeline from config.
func buildPipeline(cfg config.Config, log *logging.Logger) (*bot.Runner, bot.SessionStore, *cache.Cache) {
	llmClient := llm.NewOpenAIClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APIKey,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		log,
	)

	responses := cache.New()
	cg := congress.NewClient(congress.ClientOptions{
		BaseURL:   cfg.Congress.BaseURL,
		APIKey:    cfg.Congress.APIKey,
		Timeout:   time.Duration(cfg.Congress.TimeoutSeconds) * time.Second,
		ListTTL:   time.Duration(cfg.Congress.ListTTLMinutes) * time.Minute,
		EntityTTL: time.Duration(cfg.Congress.EntityTTLMinutes) * time.Minute,
	}, responses, log)

	sessions := bot.NewMemorySessionStore()
	runner := bot.NewRunner(
		router.New(llmClient, cfg.LLM.Model, log),
		cg,
		compose.New(llmClient, cfg.LLM.Model, cfg.LLM.MaxTokens, cfg.LLM.ComposerTemperature, log),
		sessions,
		log,
	)
	return runner, sessions, responses
}
