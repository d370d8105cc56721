package story

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campuslife/internal/domain/life"
)

const (
	DefaultGenerateTimeout = 15 * time.Second
	DefaultPingTimeout     = 30 * time.Second
)

// Provider implements ports.StoryProvider over a text-completion client.
// GenerateEvent is total: every failure mode of the client, the network, or
// the response body resolves to a fallback event within the deadline.
type Provider struct {
	client   Client
	fallback *FallbackGenerator
	timeout  time.Duration
	pingTO   time.Duration
}

type ProviderOption func(*Provider)

func WithGenerateTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func WithPingTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.pingTO = d
		}
	}
}

// NewProvider wires a client and a fallback pool. A nil client means no
// credential was configured; the provider then serves fallback events
// synchronously without spawning goroutines.
func NewProvider(client Client, fallback *FallbackGenerator, opts ...ProviderOption) *Provider {
	p := &Provider{
		client:   client,
		fallback: fallback,
		timeout:  DefaultGenerateTimeout,
		pingTO:   DefaultPingTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) GenerateEvent(ctx context.Context, state life.PlayerStateAggregate, trigger string) life.NarrativeEvent {
	if p.client == nil {
		return p.fallback.Event(state.Calendar)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	// Buffered so a response arriving after the deadline is dropped on the
	// floor instead of leaking the goroutine.
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("generate panicked: %v", r)}
			}
		}()
		text, err := p.client.Generate(callCtx, systemPrompt, buildUserPrompt(state, trigger))
		ch <- result{text: text, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			log.Printf("story provider failed, using fallback: %v", res.err)
			return p.fallback.Event(state.Calendar)
		}
		event, err := ParseEvent(res.text)
		if err != nil {
			log.Printf("story response rejected, using fallback: %v", err)
			return p.fallback.Event(state.Calendar)
		}
		event.ID = fmt.Sprintf("provider-%s", state.Calendar.TurnKey())
		return event
	case <-callCtx.Done():
		log.Printf("story provider timed out after %s, using fallback", p.timeout)
		return p.fallback.Event(state.Calendar)
	}
}

// Ping performs the connectivity self-test with a longer deadline than the
// turn path so slow-but-working credentials are reported as healthy.
func (p *Provider) Ping(ctx context.Context) error {
	if p.client == nil {
		return errors.New("no story credential configured")
	}
	pingCtx, cancel := context.WithTimeout(ctx, p.pingTO)
	defer cancel()
	_, err := p.client.Generate(pingCtx, "Reply with the single word OK.", "ping")
	if err != nil {
		return fmt.Errorf("story self-test failed: %w", err)
	}
	return nil
}
