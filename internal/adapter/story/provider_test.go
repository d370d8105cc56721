package story

import (
	"context"
	"errors"
	"testing"
	"time"

	"campuslife/internal/domain/life"
)

type fakeClient struct {
	text  string
	err   error
	block bool
	panic bool
}

func (c *fakeClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.panic {
		panic("client exploded")
	}
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.text, c.err
}

func testState() life.PlayerStateAggregate {
	return life.NewPlayerState("p1", life.Profile{Name: "Mona", Age: 18})
}

func assertValidEvent(t *testing.T, event life.NarrativeEvent, wantSource life.EventSource) {
	t.Helper()
	if event.Title == "" || event.Description == "" {
		t.Fatalf("event missing title or description: %+v", event)
	}
	if n := len(event.Choices); n < life.MinEventChoices || n > life.MaxEventChoices {
		t.Fatalf("event has %d choices", n)
	}
	if event.Source != wantSource {
		t.Fatalf("source = %q, want %q", event.Source, wantSource)
	}
}

func TestProvider_NilClientServesFallback(t *testing.T) {
	p := NewProvider(nil, NewFallbackGenerator(1))
	event := p.GenerateEvent(context.Background(), testState(), "")
	assertValidEvent(t, event, life.SourceFallback)
}

func TestProvider_ValidResponse(t *testing.T) {
	client := &fakeClient{text: `{
		"title": "Pop Quiz",
		"description": "The professor hands out a surprise quiz.",
		"choices": [
			{"label": "Wing it", "effects": [{"kind": "gpa", "delta": -0.1}]},
			{"label": "Recall last night's reading", "effects": [{"kind": "gpa", "delta": 0.1}, {"kind": "attribute", "attribute": "stress", "delta": 5}]}
		]
	}`}
	p := NewProvider(client, NewFallbackGenerator(1))
	event := p.GenerateEvent(context.Background(), testState(), "")
	assertValidEvent(t, event, life.SourceProvider)
	if event.Choices[0].ID != "choice-1" {
		t.Fatalf("missing choice id not defaulted: %q", event.Choices[0].ID)
	}
}

func TestProvider_TimeoutFallsBack(t *testing.T) {
	p := NewProvider(&fakeClient{block: true}, NewFallbackGenerator(1),
		WithGenerateTimeout(10*time.Millisecond))
	start := time.Now()
	event := p.GenerateEvent(context.Background(), testState(), "")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("fallback took %s, deadline not enforced", elapsed)
	}
	assertValidEvent(t, event, life.SourceFallback)
}

func TestProvider_ClientErrorFallsBack(t *testing.T) {
	p := NewProvider(&fakeClient{err: errors.New("connection refused")}, NewFallbackGenerator(1))
	event := p.GenerateEvent(context.Background(), testState(), "")
	assertValidEvent(t, event, life.SourceFallback)
}

func TestProvider_GarbageResponseFallsBack(t *testing.T) {
	p := NewProvider(&fakeClient{text: "Sure! Here's an event for you..."}, NewFallbackGenerator(1))
	event := p.GenerateEvent(context.Background(), testState(), "")
	assertValidEvent(t, event, life.SourceFallback)
}

func TestProvider_ClientPanicFallsBack(t *testing.T) {
	p := NewProvider(&fakeClient{panic: true}, NewFallbackGenerator(1))
	event := p.GenerateEvent(context.Background(), testState(), "")
	assertValidEvent(t, event, life.SourceFallback)
}

func TestProvider_PingWithoutCredential(t *testing.T) {
	p := NewProvider(nil, NewFallbackGenerator(1))
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("expected error when no client configured")
	}
}

func TestProvider_PingReportsClientError(t *testing.T) {
	p := NewProvider(&fakeClient{err: errors.New("401 unauthorized")}, NewFallbackGenerator(1))
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to surface client error")
	}
	p = NewProvider(&fakeClient{text: "OK"}, NewFallbackGenerator(1))
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed on healthy client: %v", err)
	}
}
