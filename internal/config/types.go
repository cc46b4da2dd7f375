package config

// Config is the root configuration for Hillbot.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Congress CongressConfig `yaml:"congress,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServerConfig controls the chat HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// CongressConfig configures the Congress.gov data API client.
type CongressConfig struct {
	APIKey           string `yaml:"apiKey,omitempty"` // supports ${ENV_VAR} references
	BaseURL          string `yaml:"baseUrl,omitempty"`
	TimeoutSeconds   int    `yaml:"timeoutSeconds,omitempty"`
	ListTTLMinutes   int    `yaml:"listTtlMinutes,omitempty"`   // cache TTL for list/search endpoints
	EntityTTLMinutes int    `yaml:"entityTtlMinutes,omitempty"` // cache TTL for single-entity endpoints
}

// LLMConfig configures the OpenAI-compatible completion endpoint.
type LLMConfig struct {
	APIKey              string  `yaml:"apiKey,omitempty"` // supports ${ENV_VAR} references
	BaseURL             string  `yaml:"baseUrl,omitempty"`
	Model               string  `yaml:"model,omitempty"`
	MaxTokens           int     `yaml:"maxTokens,omitempty"`
	ComposerTemperature float64 `yaml:"composerTemperature,omitempty"`
	TimeoutSeconds      int     `yaml:"timeoutSeconds,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}
