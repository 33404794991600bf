package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the docsense service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Cache        CacheConfig        `yaml:"cache"`
	Database     DatabaseConfig     `yaml:"database"`
	AI           AIConfig           `yaml:"ai"`
	Pipeline     PipelineConfig     `yaml:"pipeline"`
	Conversation ConversationConfig `yaml:"conversation"`
	Auth         AuthConfig         `yaml:"auth"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int `yaml:"max_body_bytes"`
}

// CacheConfig holds the shared key-value cache settings.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	DSN              string `yaml:"dsn"`
	MaxConns         int32  `yaml:"max_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// AIConfig holds the OpenAI-compatible provider settings.
type AIConfig struct {
	APIKey          string  `yaml:"api_key"`
	BaseURL         string  `yaml:"base_url"`
	CompletionModel string  `yaml:"completion_model"`
	EmbeddingModel  string  `yaml:"embedding_model"`
	Dimensions      int     `yaml:"dimensions"`
	Temperature     float32 `yaml:"temperature"`
	TimeoutSec      int     `yaml:"timeout_sec"`
}

// PipelineConfig holds text budgets and cache lifetimes.
type PipelineConfig struct {
	ChunkChars       int `yaml:"chunk_chars"`
	MessageTokens    int `yaml:"message_tokens"`
	ExcerptTokens    int `yaml:"excerpt_tokens"`
	EmbeddingTokens  int `yaml:"embedding_tokens"`
	SummaryTTLHours  int `yaml:"summary_ttl_hours"`
	EmbeddingTTLDays int `yaml:"embedding_ttl_days"`
	IngestTimeoutSec int `yaml:"ingest_timeout_sec"`
}

// ConversationConfig holds conversation memory bounds.
type ConversationConfig struct {
	HistoryTurns      int `yaml:"history_turns"`
	HistoryTTLMinutes int `yaml:"history_ttl_minutes"`
	SessionCapacity   int `yaml:"session_capacity"`
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	defaultInt(&c.HTTP.ReadTimeoutSec, 10)
	defaultInt(&c.HTTP.WriteTimeoutSec, 120)
	defaultInt(&c.HTTP.ShutdownSec, 30)
	defaultInt(&c.HTTP.MaxBodyBytes, 32<<20)

	defaultInt(&c.Cache.ReadinessTimeout, 10)
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "docsense:"
	}

	defaultInt(&c.Database.ReadinessTimeout, 10)

	if c.AI.CompletionModel == "" {
		c.AI.CompletionModel = "gpt-4o-mini"
	}
	if c.AI.EmbeddingModel == "" {
		c.AI.EmbeddingModel = "text-embedding-3-small"
	}
	defaultInt(&c.AI.Dimensions, 1536)
	defaultInt(&c.AI.TimeoutSec, 60)

	defaultInt(&c.Pipeline.ChunkChars, 4000)
	defaultInt(&c.Pipeline.MessageTokens, 6000)
	defaultInt(&c.Pipeline.ExcerptTokens, 4000)
	defaultInt(&c.Pipeline.EmbeddingTokens, 8000)
	defaultInt(&c.Pipeline.SummaryTTLHours, 24)
	defaultInt(&c.Pipeline.EmbeddingTTLDays, 7)
	defaultInt(&c.Pipeline.IngestTimeoutSec, 300)

	defaultInt(&c.Conversation.HistoryTurns, 10)
	defaultInt(&c.Conversation.HistoryTTLMinutes, 120)
	defaultInt(&c.Conversation.SessionCapacity, 1024)
	defaultInt(&c.Conversation.SessionTTLMinutes, 120)
}

func defaultInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %g", c.AI.Temperature)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
