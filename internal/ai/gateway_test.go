package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a scripted provider for gateway tests
type stubProvider struct {
	name   string
	result string
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, _ string, _ CompletionOptions) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.result, nil
}

func TestGateway_Available(t *testing.T) {
	assert.False(t, NewGateway().Available())
	assert.True(t, NewGateway(&stubProvider{name: "primary"}).Available())
}

func TestGateway_Complete_NoProviders(t *testing.T) {
	g := NewGateway()
	_, err := g.Complete(context.Background(), "prompt", CompletionOptions{})
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}

func TestGateway_Complete_EmptyPrompt(t *testing.T) {
	primary := &stubProvider{name: "primary", result: "ok"}
	g := NewGateway(primary)

	_, err := g.Complete(context.Background(), "", CompletionOptions{})
	require.Error(t, err)
	assert.Zero(t, primary.calls, "provider must not be called for an empty prompt")
}

func TestGateway_Complete_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", result: "primary answer"}
	secondary := &stubProvider{name: "secondary", result: "secondary answer"}
	g := NewGateway(primary, secondary)

	out, err := g.Complete(context.Background(), "prompt", CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "primary answer", out)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls, "secondary must not be tried when primary succeeds")
}

func TestGateway_Complete_FallsThroughToSecondary(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("rate limited")}
	secondary := &stubProvider{name: "secondary", result: "secondary answer"}
	g := NewGateway(primary, secondary)

	out, err := g.Complete(context.Background(), "prompt", CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "secondary answer", out)
	assert.Equal(t, 1, primary.calls, "each provider gets exactly one attempt")
	assert.Equal(t, 1, secondary.calls)
}

func TestGateway_Complete_AllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("boom")}
	secondary := &stubProvider{name: "secondary", err: errors.New("also boom")}
	g := NewGateway(primary, secondary)

	_, err := g.Complete(context.Background(), "prompt", CompletionOptions{})
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestGateway_Complete_JSONModeStripsFences(t *testing.T) {
	primary := &stubProvider{name: "primary", result: "```json\n{\"score\": 90}\n```"}
	g := NewGateway(primary)

	out, err := g.Complete(context.Background(), "prompt", CompletionOptions{JSONMode: true})
	require.NoError(t, err)
	assert.Equal(t, `{"score": 90}`, out)
}

func TestGateway_Complete_PlainModeKeepsFences(t *testing.T) {
	fenced := "```json\n{\"score\": 90}\n```"
	primary := &stubProvider{name: "primary", result: fenced}
	g := NewGateway(primary)

	out, err := g.Complete(context.Background(), "prompt", CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, fenced, out)
}

func TestGateway_Complete_InvalidOptions(t *testing.T) {
	primary := &stubProvider{name: "primary", result: "ok"}
	g := NewGateway(primary)

	_, err := g.Complete(context.Background(), "prompt", CompletionOptions{MaxTokens: -1})
	require.Error(t, err)
	assert.Zero(t, primary.calls)
}

func TestCompletionOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    CompletionOptions
		wantErr string
	}{
		{
			name: "defaults",
			opts: CompletionOptions{},
		},
		{
			name: "explicit max tokens",
			opts: CompletionOptions{MaxTokens: 512},
		},
		{
			name:    "negative max tokens",
			opts:    CompletionOptions{MaxTokens: -1},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "no fences",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "json language tag",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fences",
			raw:  "```\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{\"a\": 1}\n```\n  ",
			want: `{"a": 1}`,
		},
		{
			name: "payload on opening fence line",
			raw:  "```{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "multiline payload",
			raw:  "```json\n{\n  \"a\": 1\n}\n```",
			want: "{\n  \"a\": 1\n}",
		},
		{
			name: "empty string",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripJSONFences(tt.raw))
		})
	}
}
