package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Backend LLM/tool API
	Backend BackendConfig

	// Conversation turn driver
	Orchestrator OrchestratorConfig

	// Resource lifecycle manager
	Lifecycle LifecycleConfig

	// Chat submission rate limiting
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// BackendConfig points at the external chat/tool-orchestration API.
type BackendConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// LLMConfigID selects the backend model configuration used when a
	// request does not name one. Zero means requests must carry their own.
	LLMConfigID int64
}

// OrchestratorConfig tunes the per-turn protocol.
type OrchestratorConfig struct {
	// RetryBackoff is the fixed delay before the single final-synthesis retry.
	RetryBackoff time.Duration
	// ToolCallTimeout bounds each tool invocation.
	ToolCallTimeout time.Duration
	// InterToolDelay is the pause between sequential tool calls.
	InterToolDelay time.Duration
	// ToolCacheTTL bounds how long discovered tool sets are reused.
	ToolCacheTTL time.Duration
}

// LifecycleConfig tunes the resource lifecycle manager.
type LifecycleConfig struct {
	// MaxActiveResources is the registration ceiling that triggers a
	// synchronous low-priority cleanup pass.
	MaxActiveResources int
	// SampleInterval is the memory pressure sampling period.
	SampleInterval time.Duration
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Backend API
	cfg.Backend.URL = viper.GetString("backend.url")
	cfg.Backend.APIKey = viper.GetString("backend.api_key")
	cfg.Backend.Timeout = viper.GetDuration("backend.timeout")
	cfg.Backend.LLMConfigID = viper.GetInt64("backend.llm_config_id")
	if backendURL := viper.GetString("backend_url"); backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if backendKey := viper.GetString("backend_api_key"); backendKey != "" {
		cfg.Backend.APIKey = backendKey
	}
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("backend.url is required - please set backend.url in config.yaml or BACKEND_URL")
	}

	// Orchestrator
	cfg.Orchestrator.RetryBackoff = viper.GetDuration("orchestrator.retry_backoff")
	cfg.Orchestrator.ToolCallTimeout = viper.GetDuration("orchestrator.tool_call_timeout")
	cfg.Orchestrator.InterToolDelay = viper.GetDuration("orchestrator.inter_tool_delay")
	cfg.Orchestrator.ToolCacheTTL = viper.GetDuration("orchestrator.tool_cache_ttl")

	// Lifecycle
	cfg.Lifecycle.MaxActiveResources = viper.GetInt("lifecycle.max_active_resources")
	cfg.Lifecycle.SampleInterval = viper.GetDuration("lifecycle.sample_interval")

	// Rate limiting
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("backend.timeout", "30s")

	viper.SetDefault("orchestrator.retry_backoff", "2s")
	viper.SetDefault("orchestrator.tool_call_timeout", "60s")
	viper.SetDefault("orchestrator.inter_tool_delay", "100ms")
	viper.SetDefault("orchestrator.tool_cache_ttl", "30s")

	viper.SetDefault("lifecycle.max_active_resources", 100)
	viper.SetDefault("lifecycle.sample_interval", "5s")

	viper.SetDefault("rate_limit.requests_per_min", 60)
}
