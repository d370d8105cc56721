package story

import (
	"fmt"
	"strings"

	"campuslife/internal/domain/life"
)

const systemPrompt = `You are the event writer for a university life simulation. Each week you produce exactly one short event the player reacts to.

Respond with a single JSON object and nothing else. No markdown, no code fences, no commentary. Schema:

{
  "title": "short event title",
  "description": "2-4 sentences of second-person narration",
  "choices": [
    {
      "id": "choice-1",
      "label": "what the player does",
      "effects": [
        {"kind": "attribute", "attribute": "iq|eq|charm|stamina|stress", "delta": -10},
        {"kind": "money", "delta": 200},
        {"kind": "gpa", "delta": 0.1},
        {"kind": "relationship", "npc_id": "npc-roommate", "delta": 5}
      ]
    }
  ]
}

Rules:
- Provide between 2 and 4 choices.
- Deltas are modest: attributes within -20..20, money within -500..500, gpa within -0.3..0.3, relationships within -15..15.
- Only reference NPC ids listed in the player context.
- Keep the event grounded in campus life at the given point in the calendar.`

// buildUserPrompt flattens the player record into the context block the
// model writes against. Only what shapes the event is included; the full
// aggregate never leaves the process.
func buildUserPrompt(state life.PlayerStateAggregate, trigger string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calendar: year %d, semester %d, week %d\n",
		state.Calendar.Year, state.Calendar.Semester, state.Calendar.Week)
	fmt.Fprintf(&b, "Player: %s, age %d\n", state.Profile.Name, state.Profile.Age)
	fmt.Fprintf(&b, "Attributes: iq=%.0f eq=%.0f charm=%.0f stamina=%.0f stress=%.0f\n",
		state.Attributes.IQ, state.Attributes.EQ, state.Attributes.Charm,
		state.Attributes.Stamina, state.Attributes.Stress)
	fmt.Fprintf(&b, "Money: %d, GPA: %.2f\n", state.Money, state.GPA)
	if state.Flags.Employed {
		fmt.Fprintf(&b, "Employed: yes (job %s)\n", state.Flags.JobID)
	}

	if len(state.Relationships) > 0 {
		b.WriteString("NPCs:\n")
		for i, rel := range state.Relationships {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (%s), score %.0f\n", rel.Name, rel.NPCID, rel.Score)
		}
	}

	if len(state.History) > 0 {
		b.WriteString("Recent events:\n")
		start := len(state.History) - 3
		if start < 0 {
			start = 0
		}
		for _, past := range state.History[start:] {
			fmt.Fprintf(&b, "- %s\n", past.Title)
		}
	}

	if trigger = strings.TrimSpace(trigger); trigger != "" {
		fmt.Fprintf(&b, "Situation hint: %s\n", trigger)
	}
	b.WriteString("Write this week's event.")
	return b.String()
}
