package gormrepo

import (
	"context"
	"errors"
	"time"

	"campuslife/internal/adapter/repo/gorm/model"
	"campuslife/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveSlotRepo struct {
	db *gorm.DB
}

func NewSaveSlotRepo(db *gorm.DB) SaveSlotRepo {
	return SaveSlotRepo{db: db}
}

func (r SaveSlotRepo) Put(ctx context.Context, playerID, blob string) error {
	m := model.SaveSlot{
		PlayerID:  playerID,
		Blob:      blob,
		UpdatedAt: time.Now().UTC(),
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob", "updated_at"}),
		}).
		Create(&m).Error
}

func (r SaveSlotRepo) Get(ctx context.Context, playerID string) (string, error) {
	var m model.SaveSlot
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	return m.Blob, nil
}
