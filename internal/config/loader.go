package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so API keys can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Congress.APIKey = expandEnvVars(cfg.Congress.APIKey)
	cfg.LLM.APIKey = expandEnvVars(cfg.LLM.APIKey)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = def.Server.Bind
	}
	if cfg.Congress.BaseURL == "" {
		cfg.Congress.BaseURL = def.Congress.BaseURL
	}
	if cfg.Congress.TimeoutSeconds == 0 {
		cfg.Congress.TimeoutSeconds = def.Congress.TimeoutSeconds
	}
	if cfg.Congress.ListTTLMinutes == 0 {
		cfg.Congress.ListTTLMinutes = def.Congress.ListTTLMinutes
	}
	if cfg.Congress.EntityTTLMinutes == 0 {
		cfg.Congress.EntityTTLMinutes = def.Congress.EntityTTLMinutes
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = def.LLM.BaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if cfg.LLM.ComposerTemperature == 0 {
		cfg.LLM.ComposerTemperature = def.LLM.ComposerTemperature
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = def.LLM.TimeoutSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = def.Logging.ConsoleStyle
	}
}

// applyEnvOverrides reads HILLBOT_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HILLBOT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HILLBOT_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("HILLBOT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("HILLBOT_CONGRESS_API_KEY"); v != "" {
		cfg.Congress.APIKey = v
	}
	if v := os.Getenv("HILLBOT_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("HILLBOT_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("HILLBOT_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}
