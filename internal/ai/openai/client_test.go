package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, status int, reply string, got *goopenai.ChatCompletionRequest, auth *string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
			Choices: []goopenai.ChatCompletionChoice{{
				Message: goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeneratorDefaults(t *testing.T) {
	var req goopenai.ChatCompletionRequest
	var auth string
	srv := newChatServer(t, http.StatusOK, "  Final Score: 77\n", &req, &auth)

	g, err := NewGenerator(Options{APIKey: " sk-test ", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	out, err := g.GenerateContent(context.Background(), "score me")
	require.NoError(t, err)

	assert.Equal(t, "Final Score: 77", out)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.InDelta(t, DefaultTemperature, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, goopenai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Equal(t, "score me", req.Messages[0].Content)
	assert.Equal(t, DefaultModel, g.Model())
}

func TestGeneratorGroqOptions(t *testing.T) {
	var req goopenai.ChatCompletionRequest
	srv := newChatServer(t, http.StatusOK, "ok", &req, nil)

	opts := GroqOptions("gsk")
	assert.Equal(t, GroqBaseURL, opts.BaseURL)

	opts.BaseURL = srv.URL + "/v1"
	g, err := NewGenerator(opts)
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, GroqDefaultModel, req.Model)
}

func TestGeneratorAPIError(t *testing.T) {
	srv := newChatServer(t, http.StatusUnauthorized, "", nil, nil)

	g, err := NewGenerator(Options{APIKey: "bad", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)

	var apiErr *goopenai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
}

func TestGeneratorEmptyReply(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "   ", nil, nil)

	g, err := NewGenerator(Options{APIKey: "k", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), "prompt")
	assert.ErrorContains(t, err, "empty content")
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(Options{})
	assert.Error(t, err)
}

func TestGeneratorTemperature(t *testing.T) {
	zero := float32(0)
	custom := float32(0.7)

	tests := []struct {
		name        string
		temperature *float32
		want        float32
	}{
		{name: "unset uses default", want: DefaultTemperature},
		{name: "explicit zero", temperature: &zero, want: 0},
		{name: "custom", temperature: &custom, want: 0.7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var raw map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&raw)
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
					Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: "ok"}}},
				})
			}))
			defer srv.Close()

			g, err := NewGenerator(Options{APIKey: "k", BaseURL: srv.URL + "/v1", Temperature: tc.temperature})
			require.NoError(t, err)

			_, err = g.GenerateContent(context.Background(), "prompt")
			require.NoError(t, err)

			got, ok := raw["temperature"].(float64)
			require.True(t, ok, "temperature must be sent, got %v", raw["temperature"])
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}
