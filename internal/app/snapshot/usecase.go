package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var (
	ErrInvalidRequest  = errors.New("invalid snapshot request")
	ErrCorruptSnapshot = errors.New("corrupt snapshot rejected")
)

const SchemaVersion = 1

// Config is the engine configuration carried alongside the record in the
// exported blob so a restored session keeps its provider setup.
type Config struct {
	ProviderEnabled bool   `json:"provider_enabled"`
	Model           string `json:"model,omitempty"`
}

// Snapshot is the transportable form: {record, config, phase}. Phase mirrors
// Record.Phase; it is kept explicit in the wire format so a reader can check
// the state machine position without unpacking the record.
type Snapshot struct {
	SchemaVersion int                       `json:"schema_version"`
	Record        life.PlayerStateAggregate `json:"record"`
	Config        Config                    `json:"config"`
	Phase         life.Phase                `json:"phase"`
}

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	Slots     ports.SaveSlotRepository
	Config    Config
}

// Export serializes the player's current state and writes it through to the
// save slot.
func (u UseCase) Export(ctx context.Context, playerID string) (string, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return "", ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return "", err
	}
	blob, err := json.Marshal(Snapshot{
		SchemaVersion: SchemaVersion,
		Record:        state,
		Config:        u.Config,
		Phase:         state.Phase,
	})
	if err != nil {
		return "", err
	}
	if u.Slots != nil {
		if err := u.Slots.Put(ctx, playerID, string(blob)); err != nil {
			return "", err
		}
	}
	return string(blob), nil
}

// Import replaces the live state wholesale from a snapshot string. A parse
// failure or a corrupted record returns ok=false without touching current
// state. Partial repair is never attempted.
func (u UseCase) Import(ctx context.Context, playerID, blob string) (bool, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" || strings.TrimSpace(blob) == "" {
		return false, ErrInvalidRequest
	}
	restored, err := decode(blob)
	if err != nil {
		return false, nil
	}

	restored.Record.PlayerID = playerID
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.StateRepo.GetByPlayerID(txCtx, playerID)
		switch {
		case err == nil:
			restored.Record.Version = current.Version + 1
			return u.StateRepo.SaveWithVersion(txCtx, restored.Record, current.Version)
		case errors.Is(err, ports.ErrNotFound):
			restored.Record.Version = 1
			return u.StateRepo.SaveWithVersion(txCtx, restored.Record, 0)
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RestoreOnLoad reads the persisted slot and returns it as the live state
// only if every bounded numeric field validates. Any corruption rejects the
// whole snapshot in favor of the fallback state.
func (u UseCase) RestoreOnLoad(ctx context.Context, playerID string, fallback life.PlayerStateAggregate) (life.PlayerStateAggregate, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fallback, ErrInvalidRequest
	}
	if u.Slots == nil {
		return fallback, nil
	}
	blob, err := u.Slots.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}
	restored, err := decode(blob)
	if err != nil {
		return fallback, ErrCorruptSnapshot
	}
	return restored.Record, nil
}

func decode(blob string) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return Snapshot{}, err
	}
	if err := snap.Record.Validate(); err != nil {
		return Snapshot{}, errors.Join(ErrCorruptSnapshot, err)
	}
	return snap, nil
}
