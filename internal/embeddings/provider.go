// Package embeddings is the external embedding collaborator: it turns text
// into the fixed-shape float vectors persisted by the entry store. Vector
// generation itself is outside the store's guarantees.
package embeddings

import (
	"context"
	"fmt"

	"github.com/sysread/fnord/internal/config"
)

// Provider embeds text into a fixed-length float vector.
//
// Implementations must be deterministic for the same input text and model.
type Provider interface {
	ModelID() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config contains the resolved embeddings configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// LoadConfig resolves embeddings config from environment variables first,
// then ~/.fnord/.env.
func LoadConfig(ctx *config.Context) (*Config, error) {
	provider, err := ctx.GetConfigValue("FNORD_EMBEDDINGS_PROVIDER")
	if err != nil {
		return nil, err
	}
	model, err := ctx.GetConfigValue("FNORD_EMBEDDINGS_MODEL")
	if err != nil {
		return nil, err
	}
	apiKey, err := ctx.GetConfigValue("FNORD_EMBEDDINGS_API_KEY")
	if err != nil {
		return nil, err
	}
	baseURL, err := ctx.GetConfigValue("FNORD_EMBEDDINGS_BASE_URL")
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Config{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}, nil
}

// NewFromConfig returns an embeddings provider.
func NewFromConfig(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("embeddings config is nil")
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("embeddings provider is not configured (set FNORD_EMBEDDINGS_PROVIDER)")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported embeddings provider: %s", cfg.Provider)
	}
}
