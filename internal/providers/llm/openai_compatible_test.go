package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/recapbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(url string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    url,
		APIKey:     "test-key",
		Model:      "test-model",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}

func TestChat_SendsWirePayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello there"}},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	msg, err := p.Chat(context.Background(), []core.Message{
		core.TextMessage(core.RoleSystem, "be brief"),
		core.TextMessage(core.RoleUser, "hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, core.RoleAssistant, msg.Role)
	assert.Equal(t, "hello there", msg.Content)

	assert.Equal(t, "test-model", captured["model"])
	msgs, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "be brief", first["content"])
}

func TestChat_ImagePartsEncodedAsArray(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "a chart"}},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), []core.Message{
		{
			Role: core.RoleUser,
			Parts: []core.ContentPart{
				{Type: "text", Text: "what is this?"},
				{Type: "image_url", ImageURL: &core.ImageURL{URL: "data:image/png;base64,AAAA"}},
			},
		},
	})
	require.NoError(t, err)

	msgs := captured["messages"].([]any)
	content, ok := msgs[0].(map[string]any)["content"].([]any)
	require.True(t, ok, "vision content should be an array of parts")
	require.Len(t, content, 2)
	img := content[1].(map[string]any)
	assert.Equal(t, "image_url", img["type"])
}

func TestChat_HTTPErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), []core.Message{core.TextMessage(core.RoleUser, "hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 429")
}

func TestChat_EmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), []core.Message{core.TextMessage(core.RoleUser, "hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
