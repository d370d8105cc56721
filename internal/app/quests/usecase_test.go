package quests

import (
	"context"
	"errors"
	"testing"
	"time"

	"campuslife/internal/app/ports"
	"campuslife/internal/domain/life"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	byPlayer map[string]life.PlayerStateAggregate
}

func (r *stubStateRepo) GetByPlayerID(_ context.Context, playerID string) (life.PlayerStateAggregate, error) {
	state, ok := r.byPlayer[playerID]
	if !ok {
		return life.PlayerStateAggregate{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, state life.PlayerStateAggregate, expectedVersion int64) error {
	current, ok := r.byPlayer[state.PlayerID]
	if !ok || current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byPlayer[state.PlayerID] = state
	return nil
}

func (r *stubStateRepo) Delete(_ context.Context, playerID string) error {
	delete(r.byPlayer, playerID)
	return nil
}

type stubEventRepo struct {
	events []life.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []life.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByPlayerID(_ context.Context, _ string, limit int) ([]life.DomainEvent, error) {
	return r.events, nil
}

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Notify(_ string, message string) {
	n.messages = append(n.messages, message)
}

func clubTemplate() life.QuestTemplate {
	return life.QuestTemplate{
		ID:     "quest-club",
		Title:  "Join the Debate Society",
		Stages: []string{"Attend a meeting", "Pass the tryout"},
		Reward: life.RewardSpec{
			Attributes: map[life.AttributeKey]float64{life.AttrEQ: 4},
			Money:      100,
			Honor:      "Debater",
		},
	}
}

func stateWithQuest(tpl life.QuestTemplate) life.PlayerStateAggregate {
	state := life.NewPlayerState("p1", life.Profile{Name: "Mona", Age: 18})
	state.Quests = append(state.Quests, life.NewQuestInstance(tpl, state.Calendar))
	return state
}

func newUseCase(state life.PlayerStateAggregate, tpl life.QuestTemplate) (UseCase, *stubStateRepo, *stubEventRepo, *stubNotifier) {
	states := &stubStateRepo{byPlayer: map[string]life.PlayerStateAggregate{state.PlayerID: state}}
	events := &stubEventRepo{}
	notifier := &stubNotifier{}
	uc := UseCase{
		TxManager: stubTxManager{},
		StateRepo: states,
		EventRepo: events,
		Templates: []life.QuestTemplate{tpl},
		Notifier:  notifier,
		Now:       func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) },
	}
	return uc, states, events, notifier
}

func TestAdvanceStage_ToCompletion(t *testing.T) {
	ctx := context.Background()
	tpl := clubTemplate()
	uc, states, events, notifier := newUseCase(stateWithQuest(tpl), tpl)

	resp, err := uc.AdvanceStage(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil {
		t.Fatalf("first advance: %v", err)
	}
	if !resp.Changed || resp.Completed {
		t.Fatalf("first advance: %+v", resp)
	}
	if resp.Quest.Progress != 50 {
		t.Fatalf("progress = %v", resp.Quest.Progress)
	}

	resp, err = uc.AdvanceStage(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if !resp.Completed {
		t.Fatalf("quest not completed: %+v", resp.Quest)
	}
	final := states.byPlayer["p1"]
	if q := final.QuestByTemplateID("quest-club"); q.Status != life.QuestCompleted || q.Progress != 100 {
		t.Fatalf("quest = %+v", q)
	}
	if final.Money != 1100 {
		t.Fatalf("reward money not applied: %d", final.Money)
	}
	if final.Attributes.EQ != 59 {
		t.Fatalf("reward attribute not applied: %v", final.Attributes.EQ)
	}
	if len(final.Achievements) != 1 || final.Achievements[0] != "Debater" {
		t.Fatalf("achievements = %v", final.Achievements)
	}
	if len(events.events) != 2 {
		t.Fatalf("journal = %+v", events.events)
	}
	if len(notifier.messages) != 2 {
		t.Fatalf("notifications = %v", notifier.messages)
	}
}

func TestComplete_Idempotent(t *testing.T) {
	ctx := context.Background()
	tpl := clubTemplate()
	uc, states, _, _ := newUseCase(stateWithQuest(tpl), tpl)

	resp, err := uc.Complete(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil || !resp.Completed {
		t.Fatalf("complete: %+v err=%v", resp, err)
	}
	moneyAfterFirst := states.byPlayer["p1"].Money

	resp, err = uc.Complete(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if resp.Changed {
		t.Fatal("second complete reported a change")
	}
	if states.byPlayer["p1"].Money != moneyAfterFirst {
		t.Fatal("rewards applied twice")
	}
}

func TestFail_TerminalWithoutRewards(t *testing.T) {
	ctx := context.Background()
	tpl := clubTemplate()
	uc, states, _, notifier := newUseCase(stateWithQuest(tpl), tpl)

	resp, err := uc.Fail(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil || !resp.Changed {
		t.Fatalf("fail: %+v err=%v", resp, err)
	}
	state := states.byPlayer["p1"]
	if q := state.QuestByTemplateID("quest-club"); q.Status != life.QuestFailed {
		t.Fatalf("status = %q", q.Status)
	}
	if state.Money != 1000 || len(state.Achievements) != 0 {
		t.Fatal("failed quest granted rewards")
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("notifications = %v", notifier.messages)
	}

	// Failure is terminal: neither advancing nor completing revives it.
	resp, _ = uc.AdvanceStage(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if resp.Changed {
		t.Fatal("advance changed a failed quest")
	}
	resp, _ = uc.Complete(ctx, Request{PlayerID: "p1", TemplateID: "quest-club"})
	if resp.Changed {
		t.Fatal("complete changed a failed quest")
	}
}

func TestQuestOps_UnknownTemplate(t *testing.T) {
	tpl := clubTemplate()
	uc, _, _, _ := newUseCase(stateWithQuest(tpl), tpl)

	if _, err := uc.Complete(context.Background(), Request{PlayerID: "p1", TemplateID: "quest-ghost"}); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v", err)
	}
	if _, err := uc.Complete(context.Background(), Request{PlayerID: "p1", TemplateID: " "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v", err)
	}
}

func TestQuestOps_QuestNotStartedIsNoOp(t *testing.T) {
	tpl := clubTemplate()
	state := life.NewPlayerState("p1", life.Profile{Name: "Mona", Age: 18})
	uc, _, events, _ := newUseCase(state, tpl)

	resp, err := uc.AdvanceStage(context.Background(), Request{PlayerID: "p1", TemplateID: "quest-club"})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if resp.Changed || resp.Quest != nil {
		t.Fatalf("resp = %+v", resp)
	}
	if len(events.events) != 0 {
		t.Fatalf("journal = %+v", events.events)
	}
}
