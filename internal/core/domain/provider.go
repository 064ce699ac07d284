package domain

// AIProvider identifies an AI service provider
type AIProvider string

const (
	// AIProviderOpenAI uses the OpenAI API (or any compatible endpoint)
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama uses a local Ollama instance
	AIProviderOllama AIProvider = "ollama"
)

// IsValid checks if the provider is known
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOllama:
		return true
	}
	return false
}

// EmbeddingSettings configures the embedding service for a session
type EmbeddingSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"`
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured reports whether the settings name a usable provider
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider != ""
}

// GenerationSettings configures the text generation service for a session
type GenerationSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"`
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured reports whether the settings name a usable provider
func (s *GenerationSettings) IsConfigured() bool {
	return s != nil && s.Provider != ""
}

// ModelOption is a generation model the caller may select per upload
type ModelOption struct {
	Name        string     `json:"name"`
	Provider    AIProvider `json:"provider"`
	Description string     `json:"description,omitempty"`
}
