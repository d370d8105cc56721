package memory

import (
	"context"

	"campuslife/internal/domain/life"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) *EventRepo {
	return &EventRepo{store: store}
}

func (r *EventRepo) Append(ctx context.Context, playerID string, events []life.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[playerID] = append(r.store.events[playerID], events...)
	return nil
}

// ListByPlayerID returns the newest events first, up to limit.
func (r *EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]life.DomainEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	journal := r.store.events[playerID]
	out := make([]life.DomainEvent, 0, limit)
	for i := len(journal) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, journal[i])
	}
	return out, nil
}
