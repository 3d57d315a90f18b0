// Package openai talks to OpenAI-compatible chat completion APIs. It serves
// both OpenAI itself and Groq.
package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel       = goopenai.GPT4o
	DefaultMaxTokens   = 600
	DefaultTemperature = 0.2

	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqDefaultModel = "mixtral-8x7b-32768"
)

// Options configures a Generator. Zero values and a nil Temperature fall back
// to the OpenAI defaults.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature *float32
}

// GroqOptions returns options pointing at the Groq endpoint.
func GroqOptions(apiKey string) Options {
	return Options{APIKey: apiKey, Model: GroqDefaultModel, BaseURL: GroqBaseURL}
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Generator sends single-message chat completions.
type Generator struct {
	client      chatCompleter
	model       string
	maxTokens   int
	temperature float32
}

func NewGenerator(opts Options) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	g := &Generator{
		client:      goopenai.NewClientWithConfig(cfg),
		model:       strings.TrimSpace(opts.Model),
		maxTokens:   opts.MaxTokens,
		temperature: DefaultTemperature,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	if opts.Temperature != nil {
		g.temperature = *opts.Temperature
	}

	return g, nil
}

// GenerateContent returns the content of the first choice.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("openai generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	// The request field is omitempty, so an explicit zero has to be nudged.
	temperature := g.temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens:   g.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
