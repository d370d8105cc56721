package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"campuslife/internal/adapter/repo/gorm/model"
	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"

	"gorm.io/gorm"
)

type PlayerStateRepo struct {
	db *gorm.DB
}

func NewPlayerStateRepo(db *gorm.DB) PlayerStateRepo {
	return PlayerStateRepo{db: db}
}

func (r PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (life.PlayerStateAggregate, error) {
	var m model.PlayerState
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return life.PlayerStateAggregate{}, ports.ErrNotFound
		}
		return life.PlayerStateAggregate{}, err
	}
	var state life.PlayerStateAggregate
	if err := json.Unmarshal(m.State, &state); err != nil {
		return life.PlayerStateAggregate{}, fmt.Errorf("decode player state %s: %w", playerID, err)
	}
	// Columns are authoritative over the document for the version guard.
	state.PlayerID = m.PlayerID
	state.Version = m.Version
	return state, nil
}

func (r PlayerStateRepo) SaveWithVersion(ctx context.Context, state life.PlayerStateAggregate, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode player state %s: %w", state.PlayerID, err)
	}

	if expectedVersion == 0 {
		m := model.PlayerState{
			PlayerID:  state.PlayerID,
			State:     blob,
			Version:   state.Version,
			UpdatedAt: state.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.PlayerState{}).
		Where("player_id = ? AND version = ?", state.PlayerID, expectedVersion).
		Updates(map[string]any{
			"state":      blob,
			"version":    state.Version,
			"updated_at": state.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PlayerStateRepo) Delete(ctx context.Context, playerID string) error {
	res := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).Delete(&model.PlayerState{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
