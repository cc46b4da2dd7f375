package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 18750,
			Bind: "loopback",
		},
		Congress: CongressConfig{
			BaseURL:          "https://api.congress.gov/v3",
			TimeoutSeconds:   30,
			ListTTLMinutes:   10,
			EntityTTLMinutes: 60,
		},
		LLM: LLMConfig{
			BaseURL:             "https://api.openai.com",
			Model:               "gpt-4o-mini",
			MaxTokens:           1024,
			ComposerTemperature: 0.7,
			TimeoutSeconds:      120,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
