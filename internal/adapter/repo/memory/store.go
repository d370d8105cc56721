// Package memory provides process-local repository implementations. They
// back tests and the no-database dev mode; durability comes from the gorm
// adapter.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

// Store is the shared backing for all memory repositories. Each operation
// locks the store mutex; cross-operation atomicity is approximated by the
// usecase-level guard and the optimistic version check, which is enough for
// tests and single-process dev mode.
type Store struct {
	mu sync.Mutex

	states     map[string][]byte
	versions   map[string]int64
	events     map[string][]life.DomainEvent
	executions map[string][]byte
	slots      map[string]string
}

func NewStore() *Store {
	return &Store{
		states:     make(map[string][]byte),
		versions:   make(map[string]int64),
		events:     make(map[string][]life.DomainEvent),
		executions: make(map[string][]byte),
		slots:      make(map[string]string),
	}
}

// SeedState installs an aggregate directly, bypassing version checks.
// Test setup only.
func (s *Store) SeedState(state life.PlayerStateAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Sprintf("seed state: %v", err))
	}
	s.states[state.PlayerID] = blob
	s.versions[state.PlayerID] = state.Version
}

func execKey(playerID, turnKey string) string {
	return playerID + "::" + turnKey
}

func (s *Store) getStateLocked(playerID string) (life.PlayerStateAggregate, error) {
	blob, ok := s.states[playerID]
	if !ok {
		return life.PlayerStateAggregate{}, ports.ErrNotFound
	}
	var state life.PlayerStateAggregate
	if err := json.Unmarshal(blob, &state); err != nil {
		return life.PlayerStateAggregate{}, fmt.Errorf("decode stored state: %w", err)
	}
	return state, nil
}
