package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config describes the top-level application configuration loaded from YAML and ENV.
type Config struct {
	Version string        `mapstructure:"version"`
	Model   ModelConfig   `mapstructure:"model"`
	Latency LatencyConfig `mapstructure:"latency"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// ModelConfig describes the emulated model identity and sampling metadata.
type ModelConfig struct {
	ID            string  `mapstructure:"id"`
	Temperature   float64 `mapstructure:"temperature"`
	TopP          float64 `mapstructure:"top_p"`
	ContextWindow int     `mapstructure:"context_window"` // informational token window
	HistoryLimit  int     `mapstructure:"history_limit"`  // enforced turn cap, 0 = unbounded
	Seed          int64   `mapstructure:"seed"`           // 0 = time-derived
}

// LatencyConfig controls the simulated inference delays.
type LatencyConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	CompletionMinMS int  `mapstructure:"completion_min_ms"`
	CompletionMaxMS int  `mapstructure:"completion_max_ms"`
	ChatMinMS       int  `mapstructure:"chat_min_ms"`
	ChatMaxMS       int  `mapstructure:"chat_max_ms"`
}

// AgentConfig describes pacing for the scripted agent loop.
type AgentConfig struct {
	Name              string  `mapstructure:"name"`
	StepPauseMS       int     `mapstructure:"step_pause_ms"`
	GoalPauseMS       int     `mapstructure:"goal_pause_ms"`
	TypingMinMS       int     `mapstructure:"typing_min_ms"`
	TypingMaxMS       int     `mapstructure:"typing_max_ms"`
	HesitationMS      int     `mapstructure:"hesitation_ms"`
	HesitationChance  float64 `mapstructure:"hesitation_chance"`
	CommandSettleMS   int     `mapstructure:"command_settle_ms"`
	CommandRunMS      int     `mapstructure:"command_run_ms"`
	CommandElapsedMin int     `mapstructure:"command_elapsed_min_ms"`
	CommandElapsedMax int     `mapstructure:"command_elapsed_max_ms"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig describes daemon settings.
type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	Transport      string `mapstructure:"transport"` // connect or ndjson
}

// Load reads configuration from the provided path or defaults to configs/config.yaml.
// Environment variables override file values (prefix: CATSDK_, dots replaced with underscores).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CATSDK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			v.SetConfigName("config.example")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates sensible defaults for optional fields.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("model.id", "CatLLM-14B-Distill-v1")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.top_p", 0.9)
	v.SetDefault("model.context_window", 4096)
	v.SetDefault("model.history_limit", 256)
	v.SetDefault("model.seed", 0)

	v.SetDefault("latency.enabled", true)
	v.SetDefault("latency.completion_min_ms", 30)
	v.SetDefault("latency.completion_max_ms", 100)
	v.SetDefault("latency.chat_min_ms", 150)
	v.SetDefault("latency.chat_max_ms", 400)

	v.SetDefault("agent.name", "Ralph")
	v.SetDefault("agent.step_pause_ms", 1000)
	v.SetDefault("agent.goal_pause_ms", 3000)
	v.SetDefault("agent.typing_min_ms", 10)
	v.SetDefault("agent.typing_max_ms", 80)
	v.SetDefault("agent.hesitation_ms", 300)
	v.SetDefault("agent.hesitation_chance", 0.05)
	v.SetDefault("agent.command_settle_ms", 500)
	v.SetDefault("agent.command_run_ms", 1500)
	v.SetDefault("agent.command_elapsed_min_ms", 100)
	v.SetDefault("agent.command_elapsed_max_ms", 900)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.transport", "connect")
}

// Validate performs basic sanity checks on configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model.ID) == "" {
		return errors.New("model.id must be set")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return errors.New("model.temperature must be within [0,2]")
	}
	if c.Model.TopP <= 0 || c.Model.TopP > 1 {
		return errors.New("model.top_p must be within (0,1]")
	}
	if c.Model.ContextWindow <= 0 {
		return errors.New("model.context_window must be > 0")
	}
	if c.Model.HistoryLimit < 0 {
		return errors.New("model.history_limit must be >= 0")
	}

	if c.Latency.CompletionMinMS < 0 || c.Latency.ChatMinMS < 0 {
		return errors.New("latency minimums must be >= 0")
	}
	if c.Latency.CompletionMaxMS < c.Latency.CompletionMinMS {
		return errors.New("latency.completion_max_ms must be >= latency.completion_min_ms")
	}
	if c.Latency.ChatMaxMS < c.Latency.ChatMinMS {
		return errors.New("latency.chat_max_ms must be >= latency.chat_min_ms")
	}

	if strings.TrimSpace(c.Agent.Name) == "" {
		return errors.New("agent.name must be set")
	}
	if c.Agent.StepPauseMS < 0 || c.Agent.GoalPauseMS < 0 {
		return errors.New("agent pauses must be >= 0")
	}
	if c.Agent.TypingMinMS < 0 || c.Agent.TypingMaxMS < c.Agent.TypingMinMS {
		return errors.New("agent typing delays must satisfy 0 <= min <= max")
	}
	if c.Agent.HesitationChance < 0 || c.Agent.HesitationChance > 1 {
		return errors.New("agent.hesitation_chance must be within [0,1]")
	}
	if c.Agent.CommandSettleMS < 0 || c.Agent.CommandRunMS < 0 {
		return errors.New("agent command pauses must be >= 0")
	}
	if c.Agent.CommandElapsedMax < c.Agent.CommandElapsedMin || c.Agent.CommandElapsedMin < 0 {
		return errors.New("agent command elapsed bounds must satisfy 0 <= min <= max")
	}

	switch strings.ToLower(strings.TrimSpace(c.Server.Transport)) {
	case "", "connect", "ndjson":
	default:
		return fmt.Errorf("server.transport must be one of connect or ndjson, got %q", c.Server.Transport)
	}

	return nil
}
