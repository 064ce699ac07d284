package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerHost     string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort     int           `env:"SERVER_PORT" envDefault:"8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"180s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Authentication. Leaving AUTH_PASSWORD empty disables login entirely.
	AuthPassword string        `env:"AUTH_PASSWORD"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Embedding cache. Leaving REDIS_URL empty disables caching.
	RedisURL          string        `env:"REDIS_URL"`
	EmbeddingCacheTTL time.Duration `env:"EMBEDDING_CACHE_TTL" envDefault:"168h"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"` // 10 MiB

	// Chunking and retrieval
	ChunkSize         int  `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap      int  `env:"CHUNK_OVERLAP" envDefault:"200"`
	PreserveSentences bool `env:"PRESERVE_SENTENCES" envDefault:"true"`
	MaxChunks         int  `env:"MAX_CHUNKS" envDefault:"2000"`
	TopK              int  `env:"TOP_K" envDefault:"3"`

	// Prompt assembly
	MaxPromptChars  int `env:"MAX_PROMPT_CHARS" envDefault:"8000"`
	MaxHistoryTurns int `env:"MAX_HISTORY_TURNS" envDefault:"6"`

	// AI provider configuration
	EmbeddingCfg  AIServiceConfig `envPrefix:"EMBEDDING_"`
	GenerationCfg AIServiceConfig `envPrefix:"GENERATION_"`

	// Models selectable per upload, as "name:provider" pairs. The first
	// entry that matches GenerationCfg is the default.
	GenerationModels []string `env:"GENERATION_MODELS" envSeparator:","`
}

// AIServiceConfig configures one AI provider connection
type AIServiceConfig struct {
	Provider string `env:"PROVIDER"`
	Model    string `env:"MODEL"`
	APIKey   string `env:"API_KEY"`
	BaseURL  string `env:"BASE_URL"`
}

// EmbeddingSettings converts the config into domain settings
func (c *AIServiceConfig) EmbeddingSettings() *domain.EmbeddingSettings {
	if c.Provider == "" {
		return nil
	}
	return &domain.EmbeddingSettings{
		Provider: domain.AIProvider(c.Provider),
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}

// GenerationSettings converts the config into domain settings
func (c *AIServiceConfig) GenerationSettings() *domain.GenerationSettings {
	if c.Provider == "" {
		return nil
	}
	return &domain.GenerationSettings{
		Provider: domain.AIProvider(c.Provider),
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}

// ServerAddr returns the host:port to listen on
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// ModelOptions parses GENERATION_MODELS entries into model options.
// Malformed entries are skipped rather than failing startup.
func (c *Config) ModelOptions() []domain.ModelOption {
	var options []domain.ModelOption
	for _, entry := range c.GenerationModels {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, provider := entry, c.GenerationCfg.Provider
		if idx := strings.LastIndex(entry, ":"); idx != -1 {
			name, provider = entry[:idx], entry[idx+1:]
		}
		p := domain.AIProvider(provider)
		if name == "" || !p.IsValid() {
			continue
		}
		options = append(options, domain.ModelOption{Name: name, Provider: p})
	}
	return options
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when present. Missing .env is fine; in containerized environments
// variables are set externally.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return fmt.Errorf("%w: SERVER_PORT must be between 1 and 65535, got %d", domain.ErrInvalidConfig, cfg.ServerPort)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("%w: CHUNK_SIZE must be positive, got %d", domain.ErrInvalidConfig, cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return fmt.Errorf("%w: CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", domain.ErrInvalidConfig, cfg.ChunkOverlap)
	}
	if cfg.MaxChunks <= 0 {
		return fmt.Errorf("%w: MAX_CHUNKS must be positive, got %d", domain.ErrInvalidConfig, cfg.MaxChunks)
	}
	if cfg.TopK <= 0 {
		return fmt.Errorf("%w: TOP_K must be positive, got %d", domain.ErrInvalidConfig, cfg.TopK)
	}
	if cfg.MaxPromptChars <= 0 {
		return fmt.Errorf("%w: MAX_PROMPT_CHARS must be positive, got %d", domain.ErrInvalidConfig, cfg.MaxPromptChars)
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: MAX_UPLOAD_BYTES must be positive, got %d", domain.ErrInvalidConfig, cfg.MaxUploadBytes)
	}
	if cfg.AuthPassword != "" && cfg.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET is required when AUTH_PASSWORD is set", domain.ErrInvalidConfig)
	}
	if cfg.EmbeddingCfg.Provider != "" && !domain.AIProvider(cfg.EmbeddingCfg.Provider).IsValid() {
		return fmt.Errorf("%w: unknown EMBEDDING_PROVIDER %q", domain.ErrInvalidConfig, cfg.EmbeddingCfg.Provider)
	}
	if cfg.GenerationCfg.Provider != "" && !domain.AIProvider(cfg.GenerationCfg.Provider).IsValid() {
		return fmt.Errorf("%w: unknown GENERATION_PROVIDER %q", domain.ErrInvalidConfig, cfg.GenerationCfg.Provider)
	}
	return nil
}
