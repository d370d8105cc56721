package memory

import (
	"context"

	"campuslife/internal/app/ports"
)

type SaveSlotRepo struct {
	store *Store
}

func NewSaveSlotRepo(store *Store) *SaveSlotRepo {
	return &SaveSlotRepo{store: store}
}

func (r *SaveSlotRepo) Put(ctx context.Context, playerID, blob string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.slots[playerID] = blob
	return nil
}

func (r *SaveSlotRepo) Get(ctx context.Context, playerID string) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	blob, ok := r.store.slots[playerID]
	if !ok {
		return "", ports.ErrNotFound
	}
	return blob, nil
}
