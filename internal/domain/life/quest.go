package life

// RewardSpec is the declarative reward attached to a quest template.
// Attribute deltas flow through the effect engine so the usual clamping
// applies; money is added directly.
type RewardSpec struct {
	Attributes map[AttributeKey]float64 `json:"attributes,omitempty"`
	Money      int64                    `json:"money,omitempty"`
	Honor      string                   `json:"honor,omitempty"`
	Unlocks    []string                 `json:"unlocks,omitempty"`
}

// TriggerSpec is a declarative trigger predicate evaluated against the
// record once per completed turn. A nil/empty field means "no constraint".
// "Not already present" is implicit: a template whose quest instance exists
// in the ledger never fires again.
type TriggerSpec struct {
	MinAttributes map[AttributeKey]float64 `json:"min_attributes,omitempty"`
	MinMoney      int64                    `json:"min_money,omitempty"`
	MinYear       int                      `json:"min_year,omitempty"`
	RequiresJob   bool                     `json:"requires_job,omitempty"`
}

type QuestTemplate struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Stages      []string    `json:"stages,omitempty"`
	Reward      RewardSpec  `json:"reward"`
	Trigger     TriggerSpec `json:"trigger"`
}

// TriggerFires evaluates the template's trigger against the record. Pure;
// no mutation.
func (t QuestTemplate) TriggerFires(state *PlayerStateAggregate) bool {
	if state.QuestByTemplateID(t.ID) != nil {
		return false
	}
	for key, min := range t.Trigger.MinAttributes {
		field, ok := attributeFields[key]
		if !ok || field.get(&state.Attributes) < min {
			return false
		}
	}
	if t.Trigger.MinMoney > 0 && state.Money < t.Trigger.MinMoney {
		return false
	}
	if t.Trigger.MinYear > 0 && state.Calendar.Year < t.Trigger.MinYear {
		return false
	}
	if t.Trigger.RequiresJob && !state.Flags.Employed {
		return false
	}
	return true
}

func NewQuestInstance(t QuestTemplate, at Calendar) QuestInstance {
	stages := make([]QuestStage, 0, len(t.Stages))
	for _, name := range t.Stages {
		stages = append(stages, QuestStage{Name: name})
	}
	return QuestInstance{
		TemplateID: t.ID,
		Status:     QuestActive,
		Stages:     stages,
		StartedAt:  at,
	}
}

// CheckTriggers instantiates a quest for every template whose trigger newly
// fires and returns the started instances.
func CheckTriggers(state *PlayerStateAggregate, templates []QuestTemplate) []QuestInstance {
	var started []QuestInstance
	for _, t := range templates {
		if !t.TriggerFires(state) {
			continue
		}
		q := NewQuestInstance(t, state.Calendar)
		state.Quests = append(state.Quests, q)
		started = append(started, q)
	}
	return started
}

// AdvanceQuestStage marks the current stage complete and moves to the next;
// exhausting the stage list completes the quest. Returns whether anything
// changed and whether the quest finished as a result.
func AdvanceQuestStage(state *PlayerStateAggregate, t QuestTemplate) (advanced, completed bool) {
	q := state.QuestByTemplateID(t.ID)
	if q == nil || q.Status != QuestActive {
		return false, false
	}
	if q.CurrentStage < len(q.Stages) {
		q.Stages[q.CurrentStage].Done = true
		q.CurrentStage++
	}
	if q.CurrentStage >= len(q.Stages) {
		CompleteQuest(state, t)
		return true, true
	}
	q.Progress = float64(q.CurrentStage) / float64(len(q.Stages)) * 100
	return true, false
}

// CompleteQuest is idempotent: a quest already completed (or failed) is left
// untouched. Rewards apply exactly once.
func CompleteQuest(state *PlayerStateAggregate, t QuestTemplate) bool {
	q := state.QuestByTemplateID(t.ID)
	if q == nil || q.Status != QuestActive {
		return false
	}

	effects := make([]Effect, 0, len(t.Reward.Attributes))
	for key, delta := range t.Reward.Attributes {
		effects = append(effects, Effect{Kind: EffectAttribute, Attribute: key, Delta: delta})
	}
	ApplyEffects(state, effects)
	if t.Reward.Money != 0 {
		state.Money += t.Reward.Money
		SanitizeMoneyAndGPA(state)
	}
	if t.Reward.Honor != "" {
		state.Achievements = append(state.Achievements, t.Reward.Honor)
	}
	state.Flags.Unlocks = append(state.Flags.Unlocks, t.Reward.Unlocks...)

	q.Status = QuestCompleted
	q.Progress = 100
	for i := range q.Stages {
		q.Stages[i].Done = true
	}
	q.CurrentStage = len(q.Stages)
	return true
}

// FailQuest is terminal; no rewards.
func FailQuest(state *PlayerStateAggregate, templateID string) bool {
	q := state.QuestByTemplateID(templateID)
	if q == nil || q.Status != QuestActive {
		return false
	}
	q.Status = QuestFailed
	return true
}
