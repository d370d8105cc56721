package ports

import (
	"context"
	"time"

	"campuslife/internal/domain/life"
)

type PlayerStateRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (life.PlayerStateAggregate, error)
	// SaveWithVersion persists the aggregate only if the stored version still
	// equals expectedVersion; expectedVersion 0 means "create".
	SaveWithVersion(ctx context.Context, state life.PlayerStateAggregate, expectedVersion int64) error
	Delete(ctx context.Context, playerID string) error
}

type EventRepository interface {
	Append(ctx context.Context, playerID string, events []life.DomainEvent) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]life.DomainEvent, error)
}

type TurnResult struct {
	UpdatedState life.PlayerStateAggregate
	Events       []life.DomainEvent
	Ended        bool
}

// TurnExecutionRecord makes turn advancement idempotent: the calendar tuple
// the turn advanced to is its natural key.
type TurnExecutionRecord struct {
	PlayerID  string
	TurnKey   string
	Result    TurnResult
	AppliedAt time.Time
}

type TurnExecutionRepository interface {
	GetByTurnKey(ctx context.Context, playerID, turnKey string) (*TurnExecutionRecord, error)
	SaveExecution(ctx context.Context, record TurnExecutionRecord) error
}

// SaveSlotRepository holds the exported snapshot blob, one slot per player.
type SaveSlotRepository interface {
	Put(ctx context.Context, playerID, blob string) error
	Get(ctx context.Context, playerID string) (string, error)
}
