package turn

import "campuslife/internal/domain/life"

type Request struct {
	PlayerID string
}

type Response struct {
	TurnKey      string                    `json:"turn_key"`
	UpdatedState life.PlayerStateAggregate `json:"updated_state"`
	Events       []life.DomainEvent        `json:"events"`
	Ended        bool                      `json:"ended"`
}
