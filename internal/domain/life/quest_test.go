package life

import "testing"

func threeStageTemplate() QuestTemplate {
	return QuestTemplate{
		ID:     "quest-club",
		Title:  "Found a Club",
		Stages: []string{"recruit members", "register with the union", "hold first meeting"},
		Reward: RewardSpec{
			Attributes: map[AttributeKey]float64{AttrCharm: 5},
			Money:      200,
			Honor:      "Club Founder",
		},
		Trigger: TriggerSpec{MinAttributes: map[AttributeKey]float64{AttrCharm: 60}},
	}
}

func TestTriggerFires_ThresholdAndNotAlreadyPresent(t *testing.T) {
	tpl := threeStageTemplate()
	state := baseState()

	state.Attributes.Charm = 59
	if tpl.TriggerFires(&state) {
		t.Fatal("trigger must not fire below threshold")
	}

	state.Attributes.Charm = 60
	if !tpl.TriggerFires(&state) {
		t.Fatal("trigger must fire at threshold")
	}

	started := CheckTriggers(&state, []QuestTemplate{tpl})
	if len(started) != 1 {
		t.Fatalf("started %d quests, want 1", len(started))
	}
	if tpl.TriggerFires(&state) {
		t.Fatal("trigger must not fire once the quest is in the ledger")
	}
	if again := CheckTriggers(&state, []QuestTemplate{tpl}); len(again) != 0 {
		t.Fatalf("second check started %d quests, want 0", len(again))
	}
}

func TestAdvanceQuestStage_ThreeStagesToCompletion(t *testing.T) {
	tpl := threeStageTemplate()
	state := baseState()
	state.Attributes.Charm = 70
	CheckTriggers(&state, []QuestTemplate{tpl})

	wantProgress := []float64{100.0 / 3, 200.0 / 3, 100}
	for i := 0; i < 3; i++ {
		advanced, completed := AdvanceQuestStage(&state, tpl)
		if !advanced {
			t.Fatalf("stage %d: not advanced", i)
		}
		q := state.QuestByTemplateID(tpl.ID)
		if i < 2 {
			if completed {
				t.Fatalf("stage %d: completed too early", i)
			}
			if diff := q.Progress - wantProgress[i]; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("stage %d: progress = %v, want %v", i, q.Progress, wantProgress[i])
			}
		} else if !completed {
			t.Fatal("third advance must complete the quest")
		}
	}

	q := state.QuestByTemplateID(tpl.ID)
	if q.Status != QuestCompleted || q.Progress != 100 {
		t.Fatalf("quest = %+v, want completed/100", q)
	}
	for i, stage := range q.Stages {
		if !stage.Done {
			t.Fatalf("stage %d not marked done", i)
		}
	}
}

func TestCompleteQuest_Idempotent(t *testing.T) {
	tpl := threeStageTemplate()
	state := baseState()
	state.Attributes.Charm = 70
	state.Money = 0
	CheckTriggers(&state, []QuestTemplate{tpl})

	if !CompleteQuest(&state, tpl) {
		t.Fatal("first completion must apply")
	}
	moneyAfterFirst := state.Money
	charmAfterFirst := state.Attributes.Charm
	honors := len(state.Achievements)

	if CompleteQuest(&state, tpl) {
		t.Fatal("second completion must be a no-op")
	}
	if state.Money != moneyAfterFirst || state.Attributes.Charm != charmAfterFirst {
		t.Fatalf("rewards applied twice: money=%d charm=%v", state.Money, state.Attributes.Charm)
	}
	if len(state.Achievements) != honors {
		t.Fatalf("honor granted twice: %v", state.Achievements)
	}
}

func TestFailQuest_Terminal(t *testing.T) {
	tpl := threeStageTemplate()
	state := baseState()
	state.Attributes.Charm = 70
	CheckTriggers(&state, []QuestTemplate{tpl})

	if !FailQuest(&state, tpl.ID) {
		t.Fatal("fail must apply to an active quest")
	}
	if CompleteQuest(&state, tpl) {
		t.Fatal("failed quest must not complete")
	}
	if advanced, _ := AdvanceQuestStage(&state, tpl); advanced {
		t.Fatal("failed quest must not advance")
	}
	if q := state.QuestByTemplateID(tpl.ID); q.Status != QuestFailed {
		t.Fatalf("status = %q, want failed", q.Status)
	}
}

func TestQuestWithoutStages_CompletesDirectly(t *testing.T) {
	tpl := QuestTemplate{ID: "quest-flat", Title: "Flat", Reward: RewardSpec{Money: 50}}
	state := baseState()
	state.Quests = append(state.Quests, NewQuestInstance(tpl, state.Calendar))

	advanced, completed := AdvanceQuestStage(&state, tpl)
	if !advanced || !completed {
		t.Fatalf("stageless quest: advanced=%v completed=%v, want both true", advanced, completed)
	}
}
