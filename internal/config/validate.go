package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}

	if cfg.Congress.APIKey == "" {
		issues = append(issues, ValidationIssue{
			Path:    "congress.apiKey",
			Message: "required (set congress.apiKey or HILLBOT_CONGRESS_API_KEY)",
		})
	} else if strings.Contains(cfg.Congress.APIKey, "${") {
		issues = append(issues, ValidationIssue{
			Path:    "congress.apiKey",
			Message: "references an unset environment variable: " + cfg.Congress.APIKey,
		})
	}

	if cfg.LLM.APIKey == "" {
		issues = append(issues, ValidationIssue{
			Path:    "llm.apiKey",
			Message: "required (set llm.apiKey or HILLBOT_LLM_API_KEY)",
		})
	} else if strings.Contains(cfg.LLM.APIKey, "${") {
		issues = append(issues, ValidationIssue{
			Path:    "llm.apiKey",
			Message: "references an unset environment variable: " + cfg.LLM.APIKey,
		})
	}

	if cfg.LLM.Model == "" {
		issues = append(issues, ValidationIssue{
			Path:    "llm.model",
			Message: "required",
		})
	}

	if cfg.LLM.ComposerTemperature < 0 || cfg.LLM.ComposerTemperature > 2 {
		issues = append(issues, ValidationIssue{
			Path:    "llm.composerTemperature",
			Message: fmt.Sprintf("must be 0-2, got %g", cfg.LLM.ComposerTemperature),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	return issues
}
