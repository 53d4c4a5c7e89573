package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/recapbot/internal/core"
)

type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
	temperature  *float64
	maxTokens    int
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
	Temperature  *float64
	MaxTokens    int
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
	}
}

// wireMessage is the chat-completions request shape. Content is a string for
// plain messages and an array of parts for vision requests.
type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

func toWire(history []core.Message) []wireMessage {
	out := make([]wireMessage, 0, len(history))
	for _, m := range history {
		wm := wireMessage{Role: m.Role}
		if len(m.Parts) > 0 {
			wm.Content = m.Parts
		} else {
			wm.Content = m.Content
		}
		out = append(out, wm)
	}
	return out
}

func (o *OpenAICompatible) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": toWire(history),
	}
	if o.temperature != nil {
		payload["temperature"] = *o.temperature
	}
	if o.maxTokens > 0 {
		payload["max_tokens"] = o.maxTokens
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	return parseChatResponse(resp)
}

func parseChatResponse(resp *http.Response) (core.Message, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return core.Message{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices: %s", string(data))
	}

	msg := result.Choices[0].Message
	return core.Message{Role: msg.Role, Content: msg.Content}, nil
}
