package story

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"campuslife/internal/domain/life"
)

// Fallback templates express effects as a flat key->delta map so the pool
// stays declarative. Keys: an attribute name, "money", "gpa", or
// "rel:<npc_id>".
type fallbackTemplate struct {
	title       string
	description string
	choices     []fallbackChoice
}

type fallbackChoice struct {
	label   string
	effects map[string]float64
}

var fallbackPool = []fallbackTemplate{
	{
		title:       "Library Marathon",
		description: "Midterms are approaching and the library is packed. You find a free desk near the window and your notes are actually in order for once.",
		choices: []fallbackChoice{
			{label: "Study through the evening", effects: map[string]float64{"iq": 3, "gpa": 0.1, "stamina": -8}},
			{label: "Study for an hour, then head home", effects: map[string]float64{"iq": 1, "stress": -3}},
			{label: "Give up and browse your phone", effects: map[string]float64{"stress": -5, "gpa": -0.05}},
		},
	},
	{
		title:       "Cafeteria Encounter",
		description: "Your roommate waves you over at lunch. They look like they have something on their mind.",
		choices: []fallbackChoice{
			{label: "Sit down and listen", effects: map[string]float64{"rel:npc-roommate": 6, "eq": 2}},
			{label: "Apologize, you're in a hurry", effects: map[string]float64{"rel:npc-roommate": -3}},
		},
	},
	{
		title:       "Flyer on the Notice Board",
		description: "A part-time tutoring gig is advertised on the student union board. The pay is decent and the hours are short.",
		choices: []fallbackChoice{
			{label: "Take a shift this weekend", effects: map[string]float64{"money": 150, "stamina": -6}},
			{label: "Note it down for later", effects: map[string]float64{}},
			{label: "Spend the weekend at the gym instead", effects: map[string]float64{"stamina": 5, "stress": -4}},
		},
	},
	{
		title:       "Advisor Check-in",
		description: "Your advisor emails asking how the semester is going. A short meeting could not hurt.",
		choices: []fallbackChoice{
			{label: "Book the meeting and prepare questions", effects: map[string]float64{"rel:npc-advisor": 5, "iq": 1}},
			{label: "Reply that everything is fine", effects: map[string]float64{"stress": -2}},
		},
	},
	{
		title:       "Rainy Week",
		description: "It rains all week. Classes feel longer than usual and your umbrella has a hole in it.",
		choices: []fallbackChoice{
			{label: "Buy a proper umbrella", effects: map[string]float64{"money": -40, "stress": -2}},
			{label: "Run between buildings", effects: map[string]float64{"stamina": -4, "charm": -1}},
			{label: "Stay in and catch up on reading", effects: map[string]float64{"iq": 2, "eq": -1}},
		},
	},
}

// FallbackGenerator serves events from the local pool. It is the totality
// guarantee behind the provider: no network, no parsing, always a valid
// 2-4 choice event.
type FallbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFallbackGenerator(seed int64) *FallbackGenerator {
	return &FallbackGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *FallbackGenerator) Event(cal life.Calendar) life.NarrativeEvent {
	g.mu.Lock()
	tpl := fallbackPool[g.rng.Intn(len(fallbackPool))]
	g.mu.Unlock()

	event := life.NarrativeEvent{
		ID:          fmt.Sprintf("fallback-%s", cal.TurnKey()),
		Title:       tpl.title,
		Description: tpl.description,
		Source:      life.SourceFallback,
	}
	for i, fc := range tpl.choices {
		choice := life.EventChoice{
			ID:    fmt.Sprintf("choice-%d", i+1),
			Label: fc.label,
		}
		for key, delta := range fc.effects {
			if effect, ok := effectFromKey(key, delta); ok {
				choice.Effects = append(choice.Effects, effect)
			}
		}
		event.Choices = append(event.Choices, choice)
	}
	return event
}

func effectFromKey(key string, delta float64) (life.Effect, bool) {
	switch {
	case key == "money":
		return life.Effect{Kind: life.EffectMoney, Delta: delta}, true
	case key == "gpa":
		return life.Effect{Kind: life.EffectGPA, Delta: delta}, true
	case strings.HasPrefix(key, "rel:"):
		npcID := strings.TrimPrefix(key, "rel:")
		if npcID == "" {
			return life.Effect{}, false
		}
		return life.Effect{Kind: life.EffectRelationship, NPCID: npcID, Delta: delta}, true
	default:
		attr := life.AttributeKey(key)
		if !life.ValidAttributeKey(attr) {
			return life.Effect{}, false
		}
		return life.Effect{Kind: life.EffectAttribute, Attribute: attr, Delta: delta}, true
	}
}
