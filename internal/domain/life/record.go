package life

func (s *PlayerStateAggregate) RelationshipByNPC(npcID string) *Relationship {
	if npcID == "" {
		return nil
	}
	for i := range s.Relationships {
		if s.Relationships[i].NPCID == npcID {
			return &s.Relationships[i]
		}
	}
	return nil
}

func (s *PlayerStateAggregate) AddItem(itemID, name string, count int) {
	if itemID == "" || count <= 0 {
		return
	}
	for i := range s.Inventory {
		if s.Inventory[i].ItemID == itemID {
			s.Inventory[i].Count += count
			return
		}
	}
	s.Inventory = append(s.Inventory, InventoryItem{ItemID: itemID, Name: name, Count: count})
}

func (s *PlayerStateAggregate) ConsumeItem(itemID string, count int) bool {
	if itemID == "" || count <= 0 {
		return false
	}
	for i := range s.Inventory {
		if s.Inventory[i].ItemID != itemID {
			continue
		}
		if s.Inventory[i].Count < count {
			return false
		}
		s.Inventory[i].Count -= count
		if s.Inventory[i].Count == 0 {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
		}
		return true
	}
	return false
}

func (s *PlayerStateAggregate) QuestByTemplateID(templateID string) *QuestInstance {
	if templateID == "" {
		return nil
	}
	for i := range s.Quests {
		if s.Quests[i].TemplateID == templateID {
			return &s.Quests[i]
		}
	}
	return nil
}

// AppendHistory keeps the most recent HistoryCap resolved events. History is
// display/context only and never replayed.
func (s *PlayerStateAggregate) AppendHistory(event NarrativeEvent) {
	s.History = append(s.History, event)
	if len(s.History) > HistoryCap {
		s.History = s.History[len(s.History)-HistoryCap:]
	}
}

// NewPlayerState seeds a fresh record at the start of year 1. The profile is
// immutable after creation.
func NewPlayerState(playerID string, profile Profile) PlayerStateAggregate {
	return PlayerStateAggregate{
		PlayerID: playerID,
		Profile:  profile,
		Calendar: StartCalendar(),
		Attributes: Attributes{
			IQ:      60,
			EQ:      55,
			Charm:   50,
			Stamina: 70,
			Stress:  20,
		},
		Money:        1000,
		GPA:          3.0,
		ActionPoints: MaxActionPoints,
		Relationships: []Relationship{
			{NPCID: "npc-roommate", Name: "Roommate", Score: 10},
			{NPCID: "npc-advisor", Name: "Advisor", Score: 0},
		},
		Phase:   PhasePlaying,
		Version: 1,
	}
}
