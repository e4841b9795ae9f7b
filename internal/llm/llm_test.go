package llm

import (
	"context"
	"testing"
	"time"
)

type countingProvider struct {
	calls int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Complete(_ context.Context, _ CompletionRequest) (*CompletionResponse, error) {
	p.calls++
	return &CompletionResponse{Content: "ok"}, nil
}

func TestRateLimiterAllowsBurstUpToRPM(t *testing.T) {
	inner := &countingProvider{}
	limited := NewRateLimitedProvider(inner, 5)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := limited.Complete(ctx, CompletionRequest{}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if inner.calls != 5 {
		t.Errorf("expected 5 calls, got %d", inner.calls)
	}
}

func TestRateLimiterBlocksUntilContextCancel(t *testing.T) {
	inner := &countingProvider{}
	limited := NewRateLimitedProvider(inner, 1)

	ctx := context.Background()
	if _, err := limited.Complete(ctx, CompletionRequest{}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	shortCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	if _, err := limited.Complete(shortCtx, CompletionRequest{}); err == nil {
		t.Error("expected context deadline error on exhausted bucket")
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
}

func TestNewProviderUnknownType(t *testing.T) {
	if _, err := NewProvider("watson", "m"); err == nil {
		t.Error("expected error for unknown provider type")
	}
}

func TestNewProviderOllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("ollama provider: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name = %q", p.Name())
	}
}
