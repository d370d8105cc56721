package life

import (
	"errors"
	"fmt"
	"math"
)

var ErrCorruptState = errors.New("corrupt player state")

// Validate walks every bounded numeric field of the record and rejects the
// whole aggregate on the first violation. This is the all-or-nothing policy
// used at snapshot restore: once one numeric invariant is broken, derived
// state cannot be trusted, so no partial repair is attempted.
func (s *PlayerStateAggregate) Validate() error {
	checks := []struct {
		name   string
		value  float64
		lo, hi float64
	}{
		{"attributes.iq", s.Attributes.IQ, AttributeMin, AttributeMax},
		{"attributes.eq", s.Attributes.EQ, AttributeMin, AttributeMax},
		{"attributes.charm", s.Attributes.Charm, AttributeMin, AttributeMax},
		{"attributes.stamina", s.Attributes.Stamina, AttributeMin, AttributeMax},
		{"attributes.stress", s.Attributes.Stress, AttributeMin, AttributeMax},
		{"gpa", s.GPA, GPAMin, GPAMax},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) {
			return fmt.Errorf("%w: %s is NaN", ErrCorruptState, c.name)
		}
		if c.value < c.lo || c.value > c.hi {
			return fmt.Errorf("%w: %s=%v outside [%v,%v]", ErrCorruptState, c.name, c.value, c.lo, c.hi)
		}
	}

	if s.Money < 0 {
		return fmt.Errorf("%w: money=%d is negative", ErrCorruptState, s.Money)
	}
	if s.ActionPoints < 0 || s.ActionPoints > MaxActionPoints {
		return fmt.Errorf("%w: action_points=%d outside [0,%d]", ErrCorruptState, s.ActionPoints, MaxActionPoints)
	}

	if s.Calendar.Year < 1 || s.Calendar.Semester < 1 || s.Calendar.Semester > SemestersPerYear ||
		s.Calendar.Week < 1 || s.Calendar.Week > WeeksPerSemester {
		return fmt.Errorf("%w: calendar %+v out of range", ErrCorruptState, s.Calendar)
	}

	for _, rel := range s.Relationships {
		if math.IsNaN(rel.Score) || rel.Score < RelationshipMin || rel.Score > RelationshipMax {
			return fmt.Errorf("%w: relationship %s score=%v outside [%v,%v]",
				ErrCorruptState, rel.NPCID, rel.Score, RelationshipMin, RelationshipMax)
		}
	}

	for _, q := range s.Quests {
		if math.IsNaN(q.Progress) || q.Progress < 0 || q.Progress > 100 {
			return fmt.Errorf("%w: quest %s progress=%v outside [0,100]", ErrCorruptState, q.TemplateID, q.Progress)
		}
		switch q.Status {
		case QuestActive, QuestCompleted, QuestFailed:
		default:
			return fmt.Errorf("%w: quest %s has unknown status %q", ErrCorruptState, q.TemplateID, q.Status)
		}
	}

	// Phase/event coupling: an event is pending exactly when the state
	// machine says so.
	if (s.Phase == PhaseEvent) != (s.CurrentEvent != nil) {
		return fmt.Errorf("%w: phase=%q with current_event=%v", ErrCorruptState, s.Phase, s.CurrentEvent != nil)
	}

	return nil
}
