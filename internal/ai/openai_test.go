package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/okravets/sytobook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, "gpt-4o-mini", "text-embedding-3-small", 2*time.Second)
}

func TestNew_NoKeyIsUnavailable(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := config.DefaultConfig()
	cfg.KeyFile = filepath.Join(t.TempDir(), "missing.txt")

	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNew_KeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	client, err := New(config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "sk-test", client.apiKey)
}

func TestEmbed(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"buy milk"}, req.Input)
		assert.Equal(t, "text-embedding-3-small", req.Model)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.1, 0.2, 0.3}}},
		})
	})

	vec, err := client.Embed(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_APIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Embed(context.Background(), "buy milk")
	assert.ErrorContains(t, err, "status 429")
}

func TestComplete(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "search"}},
			},
		})
	})

	answer, err := client.Complete(context.Background(), "fix this command: serch")
	require.NoError(t, err)
	assert.Equal(t, "search", answer)
}

func TestComplete_EmptyChoices(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "empty response")
}

func TestSuggestTags(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "```json\n{\"tags\": [\"shopping\", \"food\"]}\n```"}},
			},
		})
	})

	tags, err := client.SuggestTags(context.Background(), "buy milk", []string{"food"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shopping", "food"}, tags)
}

func TestSuggestTags_BadJSON(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "sure, here are some tags!"}},
			},
		})
	})

	_, err := client.SuggestTags(context.Background(), "buy milk", nil)
	assert.ErrorContains(t, err, "parse json")
}
