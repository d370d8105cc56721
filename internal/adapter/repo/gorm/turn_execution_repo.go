package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"campuslife/internal/adapter/repo/gorm/model"
	"campuslife/internal/app/ports"

	"gorm.io/gorm"
)

type TurnExecutionRepo struct {
	db *gorm.DB
}

func NewTurnExecutionRepo(db *gorm.DB) TurnExecutionRepo {
	return TurnExecutionRepo{db: db}
}

func (r TurnExecutionRepo) GetByTurnKey(ctx context.Context, playerID, turnKey string) (*ports.TurnExecutionRecord, error) {
	var m model.TurnExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.TurnExecution{PlayerID: playerID, TurnKey: turnKey}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var result ports.TurnResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, fmt.Errorf("decode turn execution %s/%s: %w", playerID, turnKey, err)
	}
	return &ports.TurnExecutionRecord{
		PlayerID:  m.PlayerID,
		TurnKey:   m.TurnKey,
		Result:    result,
		AppliedAt: m.AppliedAt,
	}, nil
}

func (r TurnExecutionRepo) SaveExecution(ctx context.Context, record ports.TurnExecutionRecord) error {
	blob, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("encode turn execution %s/%s: %w", record.PlayerID, record.TurnKey, err)
	}
	m := model.TurnExecution{
		PlayerID:  record.PlayerID,
		TurnKey:   record.TurnKey,
		Result:    blob,
		AppliedAt: record.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}
