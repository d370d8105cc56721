package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

type PlayerStateRepo struct {
	store *Store
}

func NewPlayerStateRepo(store *Store) *PlayerStateRepo {
	return &PlayerStateRepo{store: store}
}

func (r *PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (life.PlayerStateAggregate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getStateLocked(playerID)
}

func (r *PlayerStateRepo) SaveWithVersion(ctx context.Context, state life.PlayerStateAggregate, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, exists := r.store.versions[state.PlayerID]
	if expectedVersion == 0 {
		if exists {
			return ports.ErrConflict
		}
	} else if !exists {
		return ports.ErrNotFound
	} else if current != expectedVersion {
		return ports.ErrConflict
	}

	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	r.store.states[state.PlayerID] = blob
	r.store.versions[state.PlayerID] = state.Version
	return nil
}

func (r *PlayerStateRepo) Delete(ctx context.Context, playerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.states[playerID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.states, playerID)
	delete(r.store.versions, playerID)
	return nil
}
