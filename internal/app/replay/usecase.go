package replay

import (
	"context"
	"errors"
	"strings"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 50

type Request struct {
	PlayerID string
	Limit    int
	Type     string
}

type Response struct {
	Events []life.DomainEvent `json:"events"`
}

// UseCase queries the append-only domain event journal: what the engine did
// and when, for display and debugging. History here is never replayed into
// live state.
type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	events, err := u.Events.ListByPlayerID(ctx, req.PlayerID, limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []life.DomainEvent{}}, nil
		}
		return Response{}, err
	}
	if t := strings.TrimSpace(req.Type); t != "" {
		filtered := events[:0]
		for _, evt := range events {
			if evt.Type == t {
				filtered = append(filtered, evt)
			}
		}
		events = filtered
	}
	return Response{Events: events}, nil
}
