package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"campuslife/internal/app/ports"
)

type TurnExecutionRepo struct {
	store *Store
}

func NewTurnExecutionRepo(store *Store) *TurnExecutionRepo {
	return &TurnExecutionRepo{store: store}
}

func (r *TurnExecutionRepo) GetByTurnKey(ctx context.Context, playerID, turnKey string) (*ports.TurnExecutionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	blob, ok := r.store.executions[execKey(playerID, turnKey)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	var record ports.TurnExecutionRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, fmt.Errorf("decode execution record: %w", err)
	}
	return &record, nil
}

func (r *TurnExecutionRepo) SaveExecution(ctx context.Context, record ports.TurnExecutionRecord) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode execution record: %w", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.executions[execKey(record.PlayerID, record.TurnKey)] = blob
	return nil
}
