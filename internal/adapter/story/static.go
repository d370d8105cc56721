package story

import (
	"context"
	"fmt"
	"sync"

	"campuslife/internal/domain/life"
)

// StaticProvider serves a fixed rotation of authored events. It backs demo
// mode and deterministic tests where neither the network path nor the
// random fallback pool is wanted.
type StaticProvider struct {
	mu     sync.Mutex
	events []life.NarrativeEvent
	next   int
}

func NewStaticProvider(events []life.NarrativeEvent) *StaticProvider {
	return &StaticProvider{events: events}
}

func (p *StaticProvider) GenerateEvent(ctx context.Context, state life.PlayerStateAggregate, trigger string) life.NarrativeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return quietWeek(state.Calendar)
	}
	event := p.events[p.next%len(p.events)]
	p.next++
	event.Source = life.SourceStatic
	if event.ID == "" {
		event.ID = fmt.Sprintf("static-%s", state.Calendar.TurnKey())
	}
	return event
}

func (p *StaticProvider) Ping(ctx context.Context) error {
	return nil
}

func quietWeek(cal life.Calendar) life.NarrativeEvent {
	return life.NarrativeEvent{
		ID:          fmt.Sprintf("static-%s", cal.TurnKey()),
		Title:       "A Quiet Week",
		Description: "Nothing out of the ordinary happens. Classes, meals, sleep.",
		Source:      life.SourceStatic,
		Choices: []life.EventChoice{
			{ID: "choice-1", Label: "Keep to your routine", Effects: []life.Effect{
				{Kind: life.EffectAttribute, Attribute: life.AttrStress, Delta: -2},
			}},
			{ID: "choice-2", Label: "Shake things up a little", Effects: []life.Effect{
				{Kind: life.EffectAttribute, Attribute: life.AttrCharm, Delta: 1},
				{Kind: life.EffectAttribute, Attribute: life.AttrStamina, Delta: -2},
			}},
		},
	}
}
