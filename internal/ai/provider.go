// Package ai is the boundary between scoring and the LLM providers.
package ai

import (
	"fmt"
	"strings"
)

// Provider names an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
)

var providerLabels = map[Provider]string{
	ProviderOpenAI: "OpenAI GPT-4o",
	ProviderGroq:   "Groq (Mixtral)",
	ProviderGemini: "Gemini Pro",
	ProviderClaude: "Claude Sonnet",
}

// Providers lists every supported provider in menu order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGroq, ProviderGemini, ProviderClaude}
}

// Label is the human readable menu entry for p.
func (p Provider) Label() string {
	if label, ok := providerLabels[p]; ok {
		return label
	}
	return string(p)
}

// ParseProvider resolves a provider from its name or a menu label such as
// "Groq (Mixtral)". Matching is by case-insensitive prefix.
func ParseProvider(choice string) (Provider, error) {
	normalized := strings.ToLower(strings.TrimSpace(choice))
	if normalized == "" {
		return "", fmt.Errorf("provider is required")
	}

	for _, p := range Providers() {
		if strings.HasPrefix(normalized, string(p)) {
			return p, nil
		}
	}

	if strings.HasPrefix(normalized, "anthropic") {
		return ProviderClaude, nil
	}

	return "", fmt.Errorf("unknown provider %q", choice)
}

// Credentials maps providers to their API keys.
type Credentials map[Provider]string

// Key returns the trimmed API key for p.
func (c Credentials) Key(p Provider) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c[p])
}

// Configured returns the providers that have a key, in menu order.
func (c Credentials) Configured() []Provider {
	var out []Provider
	for _, p := range Providers() {
		if c.Key(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
