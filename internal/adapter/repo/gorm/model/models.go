package model

import "time"

// PlayerState stores the whole aggregate as a JSON document. The engine
// reads and writes the aggregate as a unit, so a document column plus the
// version guard is simpler than normalizing quests, inventory and
// relationships into their own tables.
type PlayerState struct {
	PlayerID  string    `gorm:"column:player_id;primaryKey"`
	State     []byte    `gorm:"column:state;type:jsonb"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PlayerState) TableName() string { return "player_states" }

type DomainEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID   string    `gorm:"column:player_id;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }

type TurnExecution struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID  string    `gorm:"column:player_id;uniqueIndex:idx_turn_executions_player_turn"`
	TurnKey   string    `gorm:"column:turn_key;uniqueIndex:idx_turn_executions_player_turn"`
	Result    []byte    `gorm:"column:result;type:jsonb"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

func (TurnExecution) TableName() string { return "turn_executions" }

type SaveSlot struct {
	PlayerID  string    `gorm:"column:player_id;primaryKey"`
	Blob      string    `gorm:"column:blob;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SaveSlot) TableName() string { return "save_slots" }
