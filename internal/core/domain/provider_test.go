package domain

import "testing"

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		want     bool
	}{
		{AIProviderOpenAI, true},
		{AIProviderOllama, true},
		{AIProvider("anthropic"), false},
		{AIProvider(""), false},
	}

	for _, tt := range tests {
		if got := tt.provider.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.provider, got, tt.want)
		}
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	var nilSettings *EmbeddingSettings
	if nilSettings.IsConfigured() {
		t.Error("nil settings should not be configured")
	}
	if (&EmbeddingSettings{}).IsConfigured() {
		t.Error("empty settings should not be configured")
	}
	if !(&EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small"}).IsConfigured() {
		t.Error("expected configured settings")
	}
}

func TestGenerationSettings_IsConfigured(t *testing.T) {
	var nilSettings *GenerationSettings
	if nilSettings.IsConfigured() {
		t.Error("nil settings should not be configured")
	}
	if !(&GenerationSettings{Provider: AIProviderOllama, Model: "llama3"}).IsConfigured() {
		t.Error("expected configured settings")
	}
}
