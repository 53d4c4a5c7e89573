package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

// NewOpenAI creates a provider pinned to one model. Purpose-specific options
// (temperature, token caps) are set per instance so each bot task can carry
// its own tuning.
func NewOpenAI(apiKey, model string, opts ...Option) *OpenAI {
	cfg := OpenAICompatibleConfig{
		BaseURL:    "https://api.openai.com",
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OpenAI{OpenAICompatible: NewOpenAICompatible(cfg)}
}

type Option func(*OpenAICompatibleConfig)

func WithTemperature(t float64) Option {
	return func(cfg *OpenAICompatibleConfig) {
		cfg.Temperature = &t
	}
}

func WithMaxTokens(n int) Option {
	return func(cfg *OpenAICompatibleConfig) {
		cfg.MaxTokens = n
	}
}

func WithBaseURL(url string) Option {
	return func(cfg *OpenAICompatibleConfig) {
		if url != "" {
			cfg.BaseURL = url
		}
	}
}

func (o *OpenAI) Models(ctx context.Context) ([]string, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}

	resp, err := o.doRequest(ctx, http.MethodGet, "/v1/models", nil, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var apiResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}

	models := make([]string, 0, len(apiResp.Data))
	for _, m := range apiResp.Data {
		models = append(models, m.ID)
	}
	return models, nil
}
