package ports

import (
	"context"

	"campuslife/internal/domain/life"
)

// StoryProvider produces the next narrative event. GenerateEvent is total:
// it always returns an event with 2-4 well-typed choices within its
// configured deadline and never returns an error; transport, timeout and
// parse failures are absorbed by the implementation's fallback path.
type StoryProvider interface {
	GenerateEvent(ctx context.Context, state life.PlayerStateAggregate, trigger string) life.NarrativeEvent
	// Ping is the connectivity self-test; unlike GenerateEvent it reports
	// failures so operators can distinguish offline mode from a broken key.
	Ping(ctx context.Context) error
}
