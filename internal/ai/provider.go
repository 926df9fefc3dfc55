// Package ai provides the text-completion provider gateway used by the
// insight pipeline. Providers are tried in a fixed priority order; a
// provider failure falls through to the next one.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the provider gateway
var (
	// ErrNoProviderAvailable indicates every configured provider failed or
	// none is configured
	ErrNoProviderAvailable = errors.New("no AI provider available")
	// ErrMalformedResponse indicates a provider returned a response that
	// could not be parsed as expected
	ErrMalformedResponse = errors.New("malformed AI response")
)

// CompletionOptions controls a single completion request
type CompletionOptions struct {
	// Temperature is the sampling temperature passed to the provider
	Temperature float64
	// MaxTokens caps the length of the generated completion. Zero means
	// DefaultMaxTokens.
	MaxTokens int
	// JSONMode requests strictly machine-parseable JSON output. Callers
	// parse the returned string as JSON unconditionally when set.
	JSONMode bool
}

// DefaultMaxTokens is used when the caller does not set MaxTokens
const DefaultMaxTokens = 1024

// Validate ensures the options are usable
func (o CompletionOptions) Validate() error {
	if o.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative")
	}
	return nil
}

// Provider is a single text-generation backend
type Provider interface {
	// Name returns a short identifier for logging and metrics
	Name() string
	// Complete produces a text completion for the prompt. A single attempt
	// is made; the gateway owns retries across providers.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
