package quests

import (
	"context"
	"errors"
	"strings"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

var (
	ErrInvalidRequest  = errors.New("invalid quest request")
	ErrUnknownTemplate = errors.New("unknown quest template")
)

type Request struct {
	PlayerID   string
	TemplateID string
}

type Response struct {
	UpdatedState life.PlayerStateAggregate `json:"updated_state"`
	Quest        *life.QuestInstance       `json:"quest,omitempty"`
	Changed      bool                      `json:"changed"`
	Completed    bool                      `json:"completed"`
}

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	EventRepo ports.EventRepository
	Templates []life.QuestTemplate
	Notifier  ports.Notifier
	Now       func() time.Time
}

// AdvanceStage completes the current stage of an active quest; exhausting
// the stage list completes the quest and applies rewards.
func (u UseCase) AdvanceStage(ctx context.Context, req Request) (Response, error) {
	return u.mutate(ctx, req, func(state *life.PlayerStateAggregate, tpl life.QuestTemplate) (changed, completed bool) {
		return life.AdvanceQuestStage(state, tpl)
	})
}

// Complete finishes a quest directly. Idempotent: completing a quest twice
// applies rewards once; the second call reports Changed=false.
func (u UseCase) Complete(ctx context.Context, req Request) (Response, error) {
	return u.mutate(ctx, req, func(state *life.PlayerStateAggregate, tpl life.QuestTemplate) (changed, completed bool) {
		ok := life.CompleteQuest(state, tpl)
		return ok, ok
	})
}

// Fail marks a quest failed. Terminal; no rewards.
func (u UseCase) Fail(ctx context.Context, req Request) (Response, error) {
	return u.mutate(ctx, req, func(state *life.PlayerStateAggregate, tpl life.QuestTemplate) (changed, completed bool) {
		return life.FailQuest(state, tpl.ID), false
	})
}

func (u UseCase) mutate(ctx context.Context, req Request, op func(*life.PlayerStateAggregate, life.QuestTemplate) (bool, bool)) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.TemplateID = strings.TrimSpace(req.TemplateID)
	if req.PlayerID == "" || req.TemplateID == "" {
		return Response{}, ErrInvalidRequest
	}
	tpl, ok := u.templateByID(req.TemplateID)
	if !ok {
		return Response{}, ErrUnknownTemplate
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
		changed, completed := op(&state, tpl)
		if !changed {
			// Stale quest reference or terminal quest: no-op, not an error.
			out = Response{UpdatedState: state, Quest: state.QuestByTemplateID(tpl.ID)}
			return nil
		}
		state.UpdatedAt = nowFn()
		state.Version++

		if err := u.StateRepo.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}
		if u.EventRepo != nil {
			q := state.QuestByTemplateID(tpl.ID)
			evt := life.DomainEvent{
				Type:       "quest_updated",
				OccurredAt: nowFn(),
				Payload: map[string]any{
					"template_id": tpl.ID,
					"status":      string(q.Status),
					"progress":    q.Progress,
				},
			}
			if err := u.EventRepo.Append(txCtx, req.PlayerID, []life.DomainEvent{evt}); err != nil {
				return err
			}
		}
		out = Response{
			UpdatedState: state,
			Quest:        state.QuestByTemplateID(tpl.ID),
			Changed:      true,
			Completed:    completed,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if out.Completed && u.Notifier != nil {
		u.Notifier.Notify(req.PlayerID, "Quest completed: "+tpl.Title)
		if tpl.Reward.Honor != "" {
			u.Notifier.Notify(req.PlayerID, "Honor earned: "+tpl.Reward.Honor)
		}
	}
	return out, nil
}

func (u UseCase) templateByID(id string) (life.QuestTemplate, bool) {
	for _, t := range u.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return life.QuestTemplate{}, false
}
