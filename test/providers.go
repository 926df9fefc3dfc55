package test

import (
	"context"
	"errors"
	"sync"

	"github.com/studyhub-dev/studyhub/internal/ai"
)

// StubProvider is a scripted AI provider for integration tests. Responses
// are consumed in order; once exhausted, every call fails.
type StubProvider struct {
	mu        sync.Mutex
	responses []string
	calls     int
}

// NewStubProvider creates a provider that returns the given responses in order
func NewStubProvider(responses ...string) *StubProvider {
	return &StubProvider{responses: responses}
}

// Name returns the provider identifier
func (p *StubProvider) Name() string { return "stub" }

// Complete pops the next scripted response
func (p *StubProvider) Complete(_ context.Context, _ string, _ ai.CompletionOptions) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.responses) == 0 {
		return "", errors.New("stub provider exhausted")
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

// Calls returns how many completions were requested
func (p *StubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Enqueue appends further scripted responses
func (p *StubProvider) Enqueue(responses ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, responses...)
}
