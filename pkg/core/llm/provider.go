// Package llm abstracts the chat-completion providers the assumption advisor
// can run on. Providers are stateless; configuration comes from env vars and
// per-call options.
package llm

import "context"

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
