package life

import "math"

// EffectOutcome records what happened to a single effect. Skipped effects
// carry a reason; the caller decides whether to surface it.
type EffectOutcome struct {
	Effect  Effect  `json:"effect"`
	Applied bool    `json:"applied"`
	Reason  string  `json:"reason,omitempty"`
	Before  float64 `json:"before"`
	After   float64 `json:"after"`
}

const (
	SkipNonFiniteDelta = "non_finite_delta"
	SkipUnknownAttr    = "unknown_attribute"
	SkipUnknownNPC     = "unknown_npc"
	SkipUnknownKind    = "unknown_effect_kind"
)

type attributeField struct {
	get func(*Attributes) float64
	set func(*Attributes, float64)
}

// attributeFields keeps the "any attribute can be targeted generically"
// ergonomics while the Effect variant stays a closed set.
var attributeFields = map[AttributeKey]attributeField{
	AttrIQ:      {get: func(a *Attributes) float64 { return a.IQ }, set: func(a *Attributes, v float64) { a.IQ = v }},
	AttrEQ:      {get: func(a *Attributes) float64 { return a.EQ }, set: func(a *Attributes, v float64) { a.EQ = v }},
	AttrCharm:   {get: func(a *Attributes) float64 { return a.Charm }, set: func(a *Attributes, v float64) { a.Charm = v }},
	AttrStamina: {get: func(a *Attributes) float64 { return a.Stamina }, set: func(a *Attributes, v float64) { a.Stamina = v }},
	AttrStress:  {get: func(a *Attributes) float64 { return a.Stress }, set: func(a *Attributes, v float64) { a.Stress = v }},
}

// ApplyEffects mutates state in list order. Each effect is applied
// independently: a malformed one is skipped with a diagnostic outcome and
// the remainder still applies. The function never panics and never leaves a
// NaN behind; after the loop a final sweep re-clamps money and GPA.
func ApplyEffects(state *PlayerStateAggregate, effects []Effect) []EffectOutcome {
	outcomes := make([]EffectOutcome, 0, len(effects))
	for _, e := range effects {
		outcomes = append(outcomes, applyOne(state, e))
	}
	SanitizeMoneyAndGPA(state)
	return outcomes
}

func applyOne(state *PlayerStateAggregate, e Effect) EffectOutcome {
	out := EffectOutcome{Effect: e}
	if !isFinite(e.Delta) {
		out.Reason = SkipNonFiniteDelta
		return out
	}

	switch e.Kind {
	case EffectMoney:
		before := float64(state.Money)
		next := state.Money + int64(math.Round(e.Delta))
		if next < 0 {
			next = 0
		}
		state.Money = next
		out.Applied, out.Before, out.After = true, before, float64(next)

	case EffectAttribute:
		field, ok := attributeFields[e.Attribute]
		if !ok {
			out.Reason = SkipUnknownAttr
			return out
		}
		before := field.get(&state.Attributes)
		after := clamp(before+e.Delta, AttributeMin, AttributeMax)
		field.set(&state.Attributes, after)
		out.Applied, out.Before, out.After = true, before, after

	case EffectGPA:
		before := state.GPA
		after := clamp(before+e.Delta, GPAMin, GPAMax)
		state.GPA = after
		out.Applied, out.Before, out.After = true, before, after

	case EffectRelationship:
		rel := state.RelationshipByNPC(e.NPCID)
		if rel == nil {
			out.Reason = SkipUnknownNPC
			return out
		}
		before := rel.Score
		after := clamp(before+e.Delta, RelationshipMin, RelationshipMax)
		rel.Score = after
		out.Applied, out.Before, out.After = true, before, after

	default:
		out.Reason = SkipUnknownKind
	}
	return out
}

// SanitizeMoneyAndGPA re-checks money and GPA after a batch of effects so
// no code path can leave them negative or NaN.
func SanitizeMoneyAndGPA(state *PlayerStateAggregate) {
	if state.Money < 0 {
		state.Money = 0
	}
	if !isFinite(state.GPA) {
		state.GPA = GPAMin
	}
	state.GPA = clamp(state.GPA, GPAMin, GPAMax)
}

// ValidAttributeKey reports whether k names one of the bounded attributes.
// Adapters use it to reject untrusted effect payloads before they reach
// ApplyEffects.
func ValidAttributeKey(k AttributeKey) bool {
	_, ok := attributeFields[k]
	return ok
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
