package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/studyhub-dev/studyhub/internal/logger"
)

// Gateway selects and calls one of the configured providers in priority
// order. Each provider gets a single attempt per call; any provider error is
// logged and swallowed, and only total exhaustion surfaces to the caller.
type Gateway struct {
	providers []Provider
	breakers  map[string]*gobreaker.CircuitBreaker
}

// NewGateway creates a gateway over the given providers. Order is priority:
// the first provider is primary, the rest are fallbacks. A nil or empty list
// yields a gateway whose Complete always returns ErrNoProviderAvailable.
func NewGateway(providers ...Provider) *Gateway {
	g := &Gateway{
		providers: providers,
		breakers:  make(map[string]*gobreaker.CircuitBreaker, len(providers)),
	}
	for _, p := range providers {
		name := p.Name()
		g.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: name,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.WarnWithFields("AI provider breaker state change", map[string]interface{}{
					"provider": name,
					"from":     from.String(),
					"to":       to.String(),
				})
			},
		})
	}
	return g
}

// Available reports whether at least one provider is configured
func (g *Gateway) Available() bool {
	return len(g.providers) > 0
}

// Complete produces a text completion for the prompt, trying providers in
// priority order. When JSONMode is set, markdown code fences are stripped
// from the raw response so callers can parse it as JSON directly.
func (g *Gateway) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if !g.Available() {
		providerRequests.WithLabelValues("none", "unavailable").Inc()
		return "", ErrNoProviderAvailable
	}

	for _, p := range g.providers {
		name := p.Name()
		result, err := g.breakers[name].Execute(func() (interface{}, error) {
			return p.Complete(ctx, prompt, opts)
		})
		if err != nil {
			providerRequests.WithLabelValues(name, "error").Inc()
			logger.WarnWithFields("AI provider call failed, falling through", map[string]interface{}{
				"provider": name,
				"error":    err.Error(),
			})
			continue
		}

		providerRequests.WithLabelValues(name, "success").Inc()
		out := result.(string)
		if opts.JSONMode {
			out = StripJSONFences(out)
		}
		return out, nil
	}

	return "", ErrNoProviderAvailable
}

// StripJSONFences removes a markdown code fence wrapper (```json ... ``` or
// ``` ... ```) from a raw model response, returning the inner text. Input
// without fences is returned trimmed but otherwise untouched.
func StripJSONFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language tag such as "json" on the opening fence line
	if idx := strings.Index(s, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[\"") {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
