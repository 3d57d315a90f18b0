// Package anthropic adapts the Claude Messages API to the ai.Generator shape.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel       = string(anthropic.ModelClaude3_7SonnetLatest)
	DefaultMaxTokens   = 600
	DefaultTemperature = 0.2
)

type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature *float64
	MaxRetries  int
}

type Generator struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

func NewGenerator(opts Options) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(baseURL))
	}
	if opts.MaxRetries > 0 {
		requestOpts = append(requestOpts, option.WithMaxRetries(opts.MaxRetries))
	}

	g := &Generator{
		client:      anthropic.NewClient(requestOpts...),
		model:       strings.TrimSpace(opts.Model),
		maxTokens:   int64(opts.MaxTokens),
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

// GenerateContent sends prompt as a single user message and joins the text
// blocks of the reply.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", errors.New("anthropic generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(g.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(text)
	}

	if builder.Len() == 0 {
		return "", errors.New("claude returned no text content")
	}
	return builder.String(), nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
