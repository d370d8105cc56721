package turn

import (
	"context"

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
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byPlayer[state.PlayerID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byPlayer[state.PlayerID] = state
	return nil
}

func (r *stubStateRepo) Delete(_ context.Context, playerID string) error {
	if _, ok := r.byPlayer[playerID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byPlayer, playerID)
	return nil
}

type stubTurnRepo struct {
	byKey map[string]ports.TurnExecutionRecord
}

func (r *stubTurnRepo) GetByTurnKey(_ context.Context, playerID, turnKey string) (*ports.TurnExecutionRecord, error) {
	record, ok := r.byKey[playerID+"|"+turnKey]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubTurnRepo) SaveExecution(_ context.Context, record ports.TurnExecutionRecord) error {
	r.byKey[record.PlayerID+"|"+record.TurnKey] = record
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
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]life.DomainEvent, limit)
	copy(out, r.events[:limit])
	return out, nil
}

func (r *stubEventRepo) typeCounts() map[string]int {
	out := map[string]int{}
	for _, e := range r.events {
		out[e.Type]++
	}
	return out
}

type stubMetrics struct {
	turnCalls     int
	fallbackCalls int
	conflictCalls int
	failureCalls  int
	lastResult    string
}

func (m *stubMetrics) RecordTurn(result string) {
	m.turnCalls++
	m.lastResult = result
}

func (m *stubMetrics) RecordFallback() { m.fallbackCalls++ }
func (m *stubMetrics) RecordConflict() { m.conflictCalls++ }
func (m *stubMetrics) RecordFailure()  { m.failureCalls++ }

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Notify(_ string, message string) {
	n.messages = append(n.messages, message)
}

type stubStory struct {
	event     life.NarrativeEvent
	panicking bool
	calls     int
}

func (s *stubStory) GenerateEvent(_ context.Context, state life.PlayerStateAggregate, _ string) life.NarrativeEvent {
	s.calls++
	if s.panicking {
		panic("provider contract violated")
	}
	event := s.event
	if event.ID == "" {
		event.ID = "evt-" + state.Calendar.TurnKey()
	}
	return event
}

func (s *stubStory) Ping(_ context.Context) error { return nil }

func providerEvent() life.NarrativeEvent {
	return life.NarrativeEvent{
		Title:       "Guest Lecture",
		Description: "A visiting professor gives a talk on game theory.",
		Source:      life.SourceProvider,
		Choices: []life.EventChoice{
			{ID: "choice-1", Label: "Attend and take notes", Effects: []life.Effect{
				{Kind: life.EffectAttribute, Attribute: life.AttrIQ, Delta: 2},
			}},
			{ID: "choice-2", Label: "Skip it", Effects: nil},
		},
	}
}
