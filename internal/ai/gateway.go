package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

// Generator sends a single prompt to a model and returns its text reply.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Factory builds a Generator for the given API key.
type Factory func(ctx context.Context, apiKey string) (Generator, error)

// ProviderError reports a failed LLM call. It is the only error type returned
// by Gateway.Query.
type ProviderError struct {
	Provider Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Provider.Label(), e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Gateway routes prompts to the registered provider factories.
type Gateway struct {
	mu        sync.RWMutex
	factories map[Provider]Factory

	logger    *zap.Logger
	maxLogLen int
}

// NewGateway returns a gateway without any provider registered.
func NewGateway(log *zap.Logger, maxLogLength int) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Gateway{
		factories: make(map[Provider]Factory),
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Register installs the factory used for p, replacing any previous one.
func (g *Gateway) Register(p Provider, factory Factory) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.factories[p] = factory
}

// Query sends prompt to provider using the key from creds.
func (g *Gateway) Query(ctx context.Context, provider Provider, prompt string, creds Credentials) (string, error) {
	g.mu.RLock()
	factory, ok := g.factories[provider]
	g.mu.RUnlock()
	if !ok {
		return "", &ProviderError{Provider: provider, Err: errors.New("provider is not supported")}
	}

	apiKey := creds.Key(provider)
	if apiKey == "" {
		return "", &ProviderError{Provider: provider, Err: errors.New("api key is not configured")}
	}

	generator, err := factory(ctx, apiKey)
	if err != nil {
		return "", &ProviderError{Provider: provider, Err: fmt.Errorf("create client: %w", err)}
	}

	log := logger.WithFields(g.logger, logger.ProviderFields(string(provider), generator.Model())...)
	log.Debug("llm request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	reply, err := generator.GenerateContent(ctx, prompt)
	if err != nil {
		log.Warn("llm request failed", zap.Error(err))
		return "", &ProviderError{Provider: provider, Err: err}
	}

	if strings.TrimSpace(reply) == "" {
		return "", &ProviderError{Provider: provider, Err: errors.New("empty response")}
	}

	log.Debug("llm response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", utils.TruncateForLog(reply, g.maxLogLen)),
	)

	return reply, nil
}
