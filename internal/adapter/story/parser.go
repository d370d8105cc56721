package story

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"campuslife/internal/domain/life"
)

// Wire schema the model is instructed to emit. Anything outside it is a
// parse failure; the caller substitutes a fallback event instead of letting
// a partially understood payload touch player state.
type wireEvent struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Choices     []wireChoice `json:"choices"`
}

type wireChoice struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Effects []wireEffect `json:"effects"`
}

type wireEffect struct {
	Kind      string  `json:"kind"`
	Attribute string  `json:"attribute,omitempty"`
	NPCID     string  `json:"npc_id,omitempty"`
	Delta     float64 `json:"delta"`
}

// ParseEvent decodes a model response into a narrative event. Code fences
// around the JSON body are tolerated because models add them no matter how
// firmly the prompt forbids it.
func ParseEvent(raw string) (life.NarrativeEvent, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return life.NarrativeEvent{}, fmt.Errorf("empty response body")
	}

	var wire wireEvent
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return life.NarrativeEvent{}, fmt.Errorf("decode event: %w", err)
	}

	if strings.TrimSpace(wire.Title) == "" {
		return life.NarrativeEvent{}, fmt.Errorf("event title is empty")
	}
	if strings.TrimSpace(wire.Description) == "" {
		return life.NarrativeEvent{}, fmt.Errorf("event description is empty")
	}
	if len(wire.Choices) < life.MinEventChoices || len(wire.Choices) > life.MaxEventChoices {
		return life.NarrativeEvent{}, fmt.Errorf("event has %d choices, want %d-%d",
			len(wire.Choices), life.MinEventChoices, life.MaxEventChoices)
	}

	event := life.NarrativeEvent{
		Title:       strings.TrimSpace(wire.Title),
		Description: strings.TrimSpace(wire.Description),
		Source:      life.SourceProvider,
	}
	for i, wc := range wire.Choices {
		if strings.TrimSpace(wc.Label) == "" {
			return life.NarrativeEvent{}, fmt.Errorf("choice %d label is empty", i)
		}
		choice := life.EventChoice{
			ID:    strings.TrimSpace(wc.ID),
			Label: strings.TrimSpace(wc.Label),
		}
		if choice.ID == "" {
			choice.ID = fmt.Sprintf("choice-%d", i+1)
		}
		for j, we := range wc.Effects {
			effect, err := effectFromWire(we)
			if err != nil {
				return life.NarrativeEvent{}, fmt.Errorf("choice %d effect %d: %w", i, j, err)
			}
			choice.Effects = append(choice.Effects, effect)
		}
		event.Choices = append(event.Choices, choice)
	}
	return event, nil
}

func effectFromWire(we wireEffect) (life.Effect, error) {
	if math.IsNaN(we.Delta) || math.IsInf(we.Delta, 0) {
		return life.Effect{}, fmt.Errorf("delta is not finite")
	}
	switch life.EffectKind(we.Kind) {
	case life.EffectMoney:
		return life.Effect{Kind: life.EffectMoney, Delta: we.Delta}, nil
	case life.EffectGPA:
		return life.Effect{Kind: life.EffectGPA, Delta: we.Delta}, nil
	case life.EffectAttribute:
		key := life.AttributeKey(strings.TrimSpace(we.Attribute))
		if !life.ValidAttributeKey(key) {
			return life.Effect{}, fmt.Errorf("unknown attribute %q", we.Attribute)
		}
		return life.Effect{Kind: life.EffectAttribute, Attribute: key, Delta: we.Delta}, nil
	case life.EffectRelationship:
		npcID := strings.TrimSpace(we.NPCID)
		if npcID == "" {
			return life.Effect{}, fmt.Errorf("relationship effect missing npc_id")
		}
		return life.Effect{Kind: life.EffectRelationship, NPCID: npcID, Delta: we.Delta}, nil
	default:
		return life.Effect{}, fmt.Errorf("unknown effect kind %q", we.Kind)
	}
}

// stripCodeFence removes a surrounding ```json ... ``` block if present and
// otherwise trims to the outermost JSON object.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
