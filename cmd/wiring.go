package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/ai/anthropic"
	"github.com/spigell/ats-scorer/internal/ai/gemini"
	"github.com/spigell/ats-scorer/internal/ai/openai"
	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/secrets"
)

var providerEnv = map[ai.Provider]string{
	ai.ProviderOpenAI: "OPENAI_API_KEY",
	ai.ProviderGroq:   "GROQ_API_KEY",
	ai.ProviderGemini: "GEMINI_API_KEY",
	ai.ProviderClaude: "ANTHROPIC_API_KEY",
}

// session holds what every command needs before doing real work.
type session struct {
	config *Config
	logger *zap.Logger
	format ats.Format
}

func newSession() (*session, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	format, err := ats.ParseFormat(config.Format)
	if err != nil {
		return nil, err
	}

	log.Debug("starting the ats-scorer", zap.String("version", version))

	return &session{config: config, logger: log, format: format}, nil
}

// settings returns the configuration of p, never nil.
func (c *AIConfig) settings(p ai.Provider) *ProviderConfig {
	var settings *ProviderConfig
	if c != nil {
		switch p {
		case ai.ProviderOpenAI:
			settings = c.OpenAI
		case ai.ProviderGroq:
			settings = c.Groq
		case ai.ProviderGemini:
			settings = c.Gemini
		case ai.ProviderClaude:
			settings = c.Claude
		}
	}
	if settings == nil {
		return &ProviderConfig{}
	}
	return settings
}

// temperature32 converts the configured temperature; nil means the provider
// default.
func (c *ProviderConfig) temperature32() *float32 {
	if c.Temperature == nil {
		return nil
	}
	t := float32(*c.Temperature)
	return &t
}

// resolveCredentials loads an API key for every provider that has one. Only
// an explicitly configured key file that cannot be read is an error.
func resolveCredentials(cfg *AIConfig, log *zap.Logger) (ai.Credentials, error) {
	log = logger.WithFields(log)
	creds := ai.Credentials{}

	for _, p := range ai.Providers() {
		settings := cfg.settings(p)
		key, err := secrets.Load(secrets.Source{
			Name:  string(p) + " api key",
			Value: settings.APIKey,
			File:  settings.APIKeyFile,
			Env:   providerEnv[p],
		})
		if err != nil {
			if strings.TrimSpace(settings.APIKeyFile) != "" {
				return nil, err
			}
			log.Debug("provider is not configured", zap.String(logger.FieldProvider, string(p)), zap.Error(err))
			continue
		}
		creds[p] = key
	}

	return creds, nil
}

// chooseProvider picks the provider named by choice, asks via selector when
// interactive, or falls back to the first configured provider.
func chooseProvider(choice string, creds ai.Credentials, interactive bool, selector func(labels []string) (string, error)) (ai.Provider, error) {
	if strings.TrimSpace(choice) != "" {
		return ai.ParseProvider(choice)
	}

	configured := creds.Configured()
	if len(configured) == 0 {
		return "", errors.New("no llm provider has an api key (set OPENAI_API_KEY, GROQ_API_KEY, GEMINI_API_KEY or ANTHROPIC_API_KEY)")
	}

	if !interactive {
		return configured[0], nil
	}

	labels := make([]string, 0, len(configured))
	for _, p := range configured {
		labels = append(labels, p.Label())
	}

	selected, err := selector(labels)
	if err != nil {
		return "", fmt.Errorf("selecting a provider: %w", err)
	}

	return ai.ParseProvider(selected)
}

func promptProvider(labels []string) (string, error) {
	prompt := promptui.Select{
		Label: "Choose an LLM provider",
		Items: labels,
	}

	_, selected, err := prompt.Run()
	return selected, err
}

// newGateway registers a factory for every supported provider.
func newGateway(cfg *Config, log *zap.Logger) *ai.Gateway {
	gateway := ai.NewGateway(log, cfg.MaxLogLength)

	gateway.Register(ai.ProviderOpenAI, func(_ context.Context, apiKey string) (ai.Generator, error) {
		settings := cfg.AI.settings(ai.ProviderOpenAI)
		generator, err := openai.NewGenerator(openai.Options{
			APIKey:      apiKey,
			Model:       settings.Model,
			BaseURL:     settings.BaseURL,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.temperature32(),
		})
		if err != nil {
			return nil, err
		}
		return generator, nil
	})

	gateway.Register(ai.ProviderGroq, func(_ context.Context, apiKey string) (ai.Generator, error) {
		settings := cfg.AI.settings(ai.ProviderGroq)
		opts := openai.GroqOptions(apiKey)
		if settings.Model != "" {
			opts.Model = settings.Model
		}
		if settings.BaseURL != "" {
			opts.BaseURL = settings.BaseURL
		}
		opts.MaxTokens = settings.MaxTokens
		opts.Temperature = settings.temperature32()

		generator, err := openai.NewGenerator(opts)
		if err != nil {
			return nil, err
		}
		return generator, nil
	})

	gateway.Register(ai.ProviderGemini, func(ctx context.Context, apiKey string) (ai.Generator, error) {
		settings := cfg.AI.settings(ai.ProviderGemini)
		generator, err := gemini.NewGenerator(ctx, gemini.Options{
			APIKey:      apiKey,
			Model:       settings.Model,
			MaxRetries:  settings.MaxRetries,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.temperature32(),
			Logger:      logger.WithFields(log, logger.ProviderFields(string(ai.ProviderGemini), settings.Model)...),
		})
		if err != nil {
			return nil, err
		}
		return generator, nil
	})

	gateway.Register(ai.ProviderClaude, func(_ context.Context, apiKey string) (ai.Generator, error) {
		settings := cfg.AI.settings(ai.ProviderClaude)
		generator, err := anthropic.NewGenerator(anthropic.Options{
			APIKey:      apiKey,
			Model:       settings.Model,
			BaseURL:     settings.BaseURL,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
			MaxRetries:  settings.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		return generator, nil
	})

	return gateway
}

// readDocument extracts the text of path. Unsupported or empty documents are
// logged and yield empty text.
func readDocument(log *zap.Logger, path string) (string, error) {
	text, err := document.ExtractFile(path)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("no text extracted",
			zap.String("file", path),
			zap.String("format", string(document.DetectFormat(path))),
		)
	}

	return text, nil
}
