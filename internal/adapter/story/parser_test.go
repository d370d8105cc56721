package story

import (
	"math"
	"testing"

	"campuslife/internal/domain/life"
)

const validEventJSON = `{
	"title": "Club Fair",
	"description": "Stalls line the quad. Every club wants your signature.",
	"choices": [
		{"id": "join", "label": "Join the debate club", "effects": [{"kind": "attribute", "attribute": "eq", "delta": 3}]},
		{"label": "Walk past", "effects": []},
		{"label": "Grab free snacks", "effects": [{"kind": "money", "delta": 0}, {"kind": "relationship", "npc_id": "npc-roommate", "delta": 2}]}
	]
}`

func TestParseEvent_Valid(t *testing.T) {
	event, err := ParseEvent(validEventJSON)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if event.Title != "Club Fair" || len(event.Choices) != 3 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Choices[0].ID != "join" {
		t.Fatalf("explicit id dropped: %q", event.Choices[0].ID)
	}
	if event.Choices[1].ID != "choice-2" {
		t.Fatalf("missing id not defaulted: %q", event.Choices[1].ID)
	}
	if event.Source != life.SourceProvider {
		t.Fatalf("source = %q", event.Source)
	}
}

func TestParseEvent_ToleratesCodeFence(t *testing.T) {
	fenced := "```json\n" + validEventJSON + "\n```"
	if _, err := ParseEvent(fenced); err != nil {
		t.Fatalf("fenced JSON rejected: %v", err)
	}
	prefixed := "Here is the event:\n" + validEventJSON
	if _, err := ParseEvent(prefixed); err != nil {
		t.Fatalf("prefixed JSON rejected: %v", err)
	}
}

func TestParseEvent_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "the model apologizes"},
		{"one choice", `{"title":"t","description":"d","choices":[{"label":"only"}]}`},
		{"five choices", `{"title":"t","description":"d","choices":[
			{"label":"a"},{"label":"b"},{"label":"c"},{"label":"d"},{"label":"e"}]}`},
		{"missing title", `{"description":"d","choices":[{"label":"a"},{"label":"b"}]}`},
		{"blank label", `{"title":"t","description":"d","choices":[{"label":"a"},{"label":"  "}]}`},
		{"unknown attribute", `{"title":"t","description":"d","choices":[
			{"label":"a","effects":[{"kind":"attribute","attribute":"luck","delta":5}]},{"label":"b"}]}`},
		{"relationship without npc", `{"title":"t","description":"d","choices":[
			{"label":"a","effects":[{"kind":"relationship","delta":5}]},{"label":"b"}]}`},
		{"unknown kind", `{"title":"t","description":"d","choices":[
			{"label":"a","effects":[{"kind":"karma","delta":5}]},{"label":"b"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseEvent(tc.raw); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestEffectFromWire_RejectsNonFinite(t *testing.T) {
	if _, err := effectFromWire(wireEffect{Kind: "money", Delta: math.NaN()}); err == nil {
		t.Fatal("NaN delta accepted")
	}
	if _, err := effectFromWire(wireEffect{Kind: "gpa", Delta: math.Inf(1)}); err == nil {
		t.Fatal("Inf delta accepted")
	}
}
