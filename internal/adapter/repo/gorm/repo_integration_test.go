package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("CAMPUSLIFE_DB_DSN")
	if dsn == "" {
		t.Skip("CAMPUSLIFE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestPlayerStateRepo_RoundTripAndVersionGuard(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	playerID := "it-state-roundtrip"
	_ = db.Exec("DELETE FROM player_states WHERE player_id = ?", playerID).Error

	repo := NewPlayerStateRepo(db)
	seed := life.NewPlayerState(playerID, life.Profile{Name: "Mona", Gender: "f", Age: 18})
	seed.Quests = []life.QuestInstance{{
		TemplateID: "quest-orientation",
		Status:     life.QuestActive,
		Stages:     []life.QuestStage{{Name: "Attend orientation"}},
		StartedAt:  seed.Calendar,
	}}
	seed.UpdatedAt = time.Now().UTC()
	if err := repo.SaveWithVersion(ctx, seed, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByPlayerID(ctx, playerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Attributes.IQ != seed.Attributes.IQ || len(got.Quests) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	got.Money += 250
	got.Version = 2
	if err := repo.SaveWithVersion(ctx, got, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	stale := got
	if err := repo.SaveWithVersion(ctx, stale, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale update, want conflict: %v", err)
	}
}

func TestTurnExecutionRepo_UniquePerTurnKey(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	playerID := "it-turn-execution"
	_ = db.Exec("DELETE FROM turn_executions WHERE player_id = ?", playerID).Error

	repo := NewTurnExecutionRepo(db)
	record := ports.TurnExecutionRecord{
		PlayerID:  playerID,
		TurnKey:   "y1-s1-w2",
		Result:    ports.TurnResult{UpdatedState: life.NewPlayerState(playerID, life.Profile{Name: "Mona", Age: 18})},
		AppliedAt: time.Now().UTC(),
	}
	if err := repo.SaveExecution(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveExecution(ctx, record); err == nil {
		t.Fatal("duplicate turn key accepted")
	}
	got, err := repo.GetByTurnKey(ctx, playerID, "y1-s1-w2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Result.UpdatedState.PlayerID != playerID {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSaveSlotRepo_Upsert(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	playerID := "it-save-slot"
	_ = db.Exec("DELETE FROM save_slots WHERE player_id = ?", playerID).Error

	repo := NewSaveSlotRepo(db)
	if err := repo.Put(ctx, playerID, `{"schema_version":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, playerID, `{"schema_version":2}`); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	blob, err := repo.Get(ctx, playerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if blob != `{"schema_version":2}` {
		t.Fatalf("blob = %s", blob)
	}
}
