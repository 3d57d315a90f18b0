package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagesRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int64   `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newMessagesServer(t *testing.T, status int, body string, got *messagesRequest, apiKey *string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		if apiKey != nil {
			*apiKey = r.Header.Get("X-Api-Key")
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okBody = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-7-sonnet-latest",
  "content": [
    {"type": "text", "text": "Education Score: 70"},
    {"type": "text", "text": "Final Score: 72 "}
  ],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 8}
}`

func TestGeneratorGenerateContent(t *testing.T) {
	var req messagesRequest
	var key string
	srv := newMessagesServer(t, http.StatusOK, okBody, &req, &key)

	g, err := NewGenerator(Options{APIKey: "sk-ant", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	out, err := g.GenerateContent(context.Background(), " grade this ")
	require.NoError(t, err)

	assert.Equal(t, "Education Score: 70\nFinal Score: 72", out)
	assert.Equal(t, "sk-ant", key)
	assert.Equal(t, DefaultModel, req.Model)
	assert.EqualValues(t, DefaultMaxTokens, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, DefaultTemperature, *req.Temperature, 0.0001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	require.Len(t, req.Messages[0].Content, 1)
	assert.Equal(t, "grade this", req.Messages[0].Content[0].Text)
}

func TestGeneratorAPIError(t *testing.T) {
	body := `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`
	srv := newMessagesServer(t, http.StatusUnauthorized, body, nil, nil)

	g, err := NewGenerator(Options{APIKey: "bad", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)

	var apiErr *anthropic.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestGeneratorNoText(t *testing.T) {
	body := `{"id":"msg_02","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`
	srv := newMessagesServer(t, http.StatusOK, body, nil, nil)

	g, err := NewGenerator(Options{APIKey: "k", Model: "claude-sonnet-4-0", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-0", g.Model())

	_, err = g.GenerateContent(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no text content")
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(Options{APIKey: " "})
	assert.Error(t, err)
}

func TestGeneratorSendsExplicitZeroTemperature(t *testing.T) {
	var req messagesRequest
	srv := newMessagesServer(t, http.StatusOK, okBody, &req, nil)

	zero := 0.0
	g, err := NewGenerator(Options{APIKey: "k", BaseURL: srv.URL + "/", Temperature: &zero})
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)

	require.NotNil(t, req.Temperature)
	assert.Zero(t, *req.Temperature)
}
