package effects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var ErrInvalidRequest = errors.New("invalid effects request")

type Request struct {
	PlayerID string
	Effects  []life.Effect
	// Reason feeds the notification shown to the player, e.g. "part-time shift".
	Reason string
}

type Response struct {
	UpdatedState life.PlayerStateAggregate `json:"updated_state"`
	Outcomes     []life.EffectOutcome      `json:"outcomes"`
}

// UseCase is the direct-action path: the UI applies a batch of effects
// (study, work a shift, buy an item) outside of event resolution. The domain
// engine guarantees the record stays valid whatever the batch contains.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	EventRepo ports.EventRepository
	Notifier  ports.Notifier
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" || len(req.Effects) == 0 {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}
		expected := state.Version
		outcomes := life.ApplyEffects(&state, req.Effects)
		state.UpdatedAt = nowFn()
		state.Version++

		if err := u.StateRepo.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}
		if u.EventRepo != nil {
			evt := life.DomainEvent{
				Type:       "effects_applied",
				OccurredAt: nowFn(),
				Payload:    map[string]any{"reason": req.Reason, "count": len(req.Effects)},
			}
			if err := u.EventRepo.Append(txCtx, req.PlayerID, []life.DomainEvent{evt}); err != nil {
				return err
			}
		}
		out = Response{UpdatedState: state, Outcomes: outcomes}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if u.Notifier != nil {
		u.Notifier.Notify(req.PlayerID, composeMessage(req.Reason, out.Outcomes))
	}
	return out, nil
}

func composeMessage(reason string, outcomes []life.EffectOutcome) string {
	applied := 0
	for _, o := range outcomes {
		if o.Applied {
			applied++
		}
	}
	if reason == "" {
		reason = "action"
	}
	if applied == len(outcomes) {
		return fmt.Sprintf("%s: %d change(s) applied", reason, applied)
	}
	return fmt.Sprintf("%s: %d change(s) applied, %d dropped", reason, applied, len(outcomes)-applied)
}
