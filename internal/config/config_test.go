package config

import (
	"errors"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Errorf("expected default chunking 1000/200, got %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if !cfg.PreserveSentences {
		t.Error("expected sentence preservation enabled by default")
	}
	if cfg.TopK != 3 {
		t.Errorf("expected default top-k 3, got %d", cfg.TopK)
	}
	if cfg.MaxPromptChars != 8000 {
		t.Errorf("expected default prompt budget 8000, got %d", cfg.MaxPromptChars)
	}
	if cfg.ServerAddr() != "0.0.0.0:8080" {
		t.Errorf("unexpected server addr %q", cfg.ServerAddr())
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("EMBEDDING_MODEL", "text-embedding-3-small")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.ServerPort)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("expected chunking 500/50, got %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}

	settings := cfg.EmbeddingCfg.EmbeddingSettings()
	if settings == nil {
		t.Fatal("expected embedding settings")
	}
	if settings.Provider != domain.AIProviderOpenAI || settings.APIKey != "sk-test" {
		t.Errorf("unexpected settings %+v", settings)
	}
}

func TestLoadConfig_InvalidOverlap(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := LoadConfig()
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_AuthNeedsSecret(t *testing.T) {
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	t.Setenv("JWT_SECRET", "a-secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuthPassword != "hunter2" {
		t.Errorf("unexpected password %q", cfg.AuthPassword)
	}
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "watson")

	_, err := LoadConfig()
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_ModelOptions(t *testing.T) {
	cfg := &Config{
		GenerationCfg:    AIServiceConfig{Provider: "openai"},
		GenerationModels: []string{"gpt-4o-mini:openai", "llama3:ollama", "", "bare-name", "bad:provider"},
	}

	options := cfg.ModelOptions()
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d: %+v", len(options), options)
	}
	if options[0].Name != "gpt-4o-mini" || options[0].Provider != domain.AIProviderOpenAI {
		t.Errorf("unexpected first option %+v", options[0])
	}
	if options[1].Name != "llama3" || options[1].Provider != domain.AIProviderOllama {
		t.Errorf("unexpected second option %+v", options[1])
	}
	// A bare name falls back to the configured generation provider.
	if options[2].Name != "bare-name" || options[2].Provider != domain.AIProviderOpenAI {
		t.Errorf("unexpected third option %+v", options[2])
	}
}
