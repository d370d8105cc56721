package choice

import (
	"context"
	"errors"
	"strings"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var ErrInvalidRequest = errors.New("invalid choice request")

type Request struct {
	PlayerID string
	ChoiceID string
}

type Response struct {
	// Resolved is false when the choice id did not match the pending event
	// (stale UI state). The event stays pending and nothing is mutated.
	Resolved     bool                      `json:"resolved"`
	UpdatedState life.PlayerStateAggregate `json:"updated_state"`
	Outcomes     []life.EffectOutcome      `json:"outcomes,omitempty"`
}

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	EventRepo ports.EventRepository
	Notifier  ports.Notifier
	Now       func() time.Time
}

// Execute applies the chosen branch of the pending event and returns the
// phase to playing. An unknown choice id or an absent event resolves to a
// no-op response rather than an error: the caller's view was stale.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.ChoiceID = strings.TrimSpace(req.ChoiceID)
	if req.PlayerID == "" || req.ChoiceID == "" {
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
		if state.CurrentEvent == nil {
			out = Response{Resolved: false, UpdatedState: state}
			return nil
		}
		chosen := findChoice(state.CurrentEvent.Choices, req.ChoiceID)
		if chosen == nil {
			out = Response{Resolved: false, UpdatedState: state}
			return nil
		}

		resolved := *state.CurrentEvent
		expected := state.Version
		outcomes := life.ApplyEffects(&state, chosen.Effects)
		state.AppendHistory(resolved)
		state.CurrentEvent = nil
		state.Phase = life.PhasePlaying
		state.UpdatedAt = nowFn()
		state.Version++

		if err := u.StateRepo.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}
		if u.EventRepo != nil {
			evt := life.DomainEvent{
				Type:       "event_resolved",
				OccurredAt: nowFn(),
				Payload: map[string]any{
					"event_id":  resolved.ID,
					"choice_id": chosen.ID,
					"applied":   countApplied(outcomes),
					"skipped":   len(outcomes) - countApplied(outcomes),
				},
			}
			if err := u.EventRepo.Append(txCtx, req.PlayerID, []life.DomainEvent{evt}); err != nil {
				return err
			}
		}

		out = Response{Resolved: true, UpdatedState: state, Outcomes: outcomes}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if out.Resolved && u.Notifier != nil {
		u.Notifier.Notify(req.PlayerID, "Resolved: "+summarize(out.Outcomes))
	}
	return out, nil
}

func findChoice(choices []life.EventChoice, id string) *life.EventChoice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}

func countApplied(outcomes []life.EffectOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Applied {
			n++
		}
	}
	return n
}

func summarize(outcomes []life.EffectOutcome) string {
	applied := countApplied(outcomes)
	switch {
	case len(outcomes) == 0:
		return "no lasting consequences"
	case applied == len(outcomes):
		return "the consequences take hold"
	default:
		return "some consequences took hold"
	}
}
