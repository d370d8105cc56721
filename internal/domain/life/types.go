package life

import "time"

// Phase is the engine's top-level state machine position. playing and event
// alternate for the life of a run; ending is terminal.
type Phase string

const (
	PhaseMainMenu          Phase = "main_menu"
	PhaseCharacterCreation Phase = "character_creation"
	PhasePlaying           Phase = "playing"
	PhaseEvent             Phase = "event"
	PhaseEnding            Phase = "ending"
)

// Calendar is strictly monotonically advanced by the turn engine only.
// Week wraps into Semester, Semester wraps into Year. All fields are 1-based.
type Calendar struct {
	Year     int `json:"year"`
	Semester int `json:"semester"`
	Week     int `json:"week"`
}

type AttributeKey string

const (
	AttrIQ      AttributeKey = "iq"
	AttrEQ      AttributeKey = "eq"
	AttrCharm   AttributeKey = "charm"
	AttrStamina AttributeKey = "stamina"
	AttrStress  AttributeKey = "stress"
)

type Attributes struct {
	IQ      float64 `json:"iq"`
	EQ      float64 `json:"eq"`
	Charm   float64 `json:"charm"`
	Stamina float64 `json:"stamina"`
	Stress  float64 `json:"stress"`
}

type Profile struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

type InventoryItem struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type Relationship struct {
	NPCID string  `json:"npc_id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type Flags struct {
	Employed bool     `json:"employed"`
	JobID    string   `json:"job_id,omitempty"`
	Unlocks  []string `json:"unlocks,omitempty"`
}

type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

type QuestStage struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

type QuestInstance struct {
	TemplateID   string       `json:"template_id"`
	Status       QuestStatus  `json:"status"`
	Progress     float64      `json:"progress"`
	CurrentStage int          `json:"current_stage"`
	Stages       []QuestStage `json:"stages,omitempty"`
	StartedAt    Calendar     `json:"started_at"`
}

type EffectKind string

const (
	EffectMoney        EffectKind = "money"
	EffectAttribute    EffectKind = "attribute"
	EffectGPA          EffectKind = "gpa"
	EffectRelationship EffectKind = "relationship"
)

// Effect is the closed set of mutations the engine accepts from untrusted
// sources (provider responses, quest rewards, direct UI actions).
type Effect struct {
	Kind      EffectKind   `json:"kind"`
	Attribute AttributeKey `json:"attribute,omitempty"`
	NPCID     string       `json:"npc_id,omitempty"`
	Delta     float64      `json:"delta"`
}

type EventSource string

const (
	SourceProvider EventSource = "provider"
	SourceFallback EventSource = "fallback"
	SourceStatic   EventSource = "static"
)

type EventChoice struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Effects []Effect `json:"effects,omitempty"`
}

// NarrativeEvent always carries 2-4 choices; the turn engine depends on the
// choices list being non-empty.
type NarrativeEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Source      EventSource   `json:"source"`
	Choices     []EventChoice `json:"choices"`
}

// PlayerStateAggregate is the single mutable aggregate root. Version backs
// the optimistic save used by every repository implementation.
type PlayerStateAggregate struct {
	PlayerID      string           `json:"player_id"`
	Profile       Profile          `json:"profile"`
	Calendar      Calendar         `json:"calendar"`
	Attributes    Attributes       `json:"attributes"`
	Money         int64            `json:"money"`
	GPA           float64          `json:"gpa"`
	ActionPoints  int              `json:"action_points"`
	Inventory     []InventoryItem  `json:"inventory,omitempty"`
	Relationships []Relationship   `json:"relationships,omitempty"`
	Quests        []QuestInstance  `json:"quests,omitempty"`
	History       []NarrativeEvent `json:"history,omitempty"`
	Achievements  []string         `json:"achievements,omitempty"`
	Flags         Flags            `json:"flags"`
	Phase         Phase            `json:"phase"`
	CurrentEvent  *NarrativeEvent  `json:"current_event,omitempty"`
	Version       int64            `json:"version"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
