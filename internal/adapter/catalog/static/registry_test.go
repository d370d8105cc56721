package static

import (
	"context"
	"encoding/json"
	"testing"

	"campuslife/internal/domain/life"
)

func TestRegistry_IndexAndCatalogs(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	blob, err := reg.Index(context.Background())
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	var index struct {
		Catalogs []string `json:"catalogs"`
	}
	if err := json.Unmarshal(blob, &index); err != nil {
		t.Fatalf("unmarshal index: %v", err)
	}
	if len(index.Catalogs) == 0 {
		t.Fatal("index lists no catalogs")
	}

	for _, name := range index.Catalogs {
		payload, err := reg.Catalog(context.Background(), name)
		if err != nil {
			t.Fatalf("Catalog(%s): %v", name, err)
		}
		if !json.Valid(payload) {
			t.Fatalf("catalog %s is not valid JSON", name)
		}
	}

	if _, err := reg.Catalog(context.Background(), "nonsense"); err == nil {
		t.Fatal("unknown catalog accepted")
	}
}

func TestJobSalaries_CoversEveryJob(t *testing.T) {
	salaries := JobSalaries()
	if len(salaries) != len(jobs) {
		t.Fatalf("got %d salaries for %d jobs", len(salaries), len(jobs))
	}
	for id, salary := range salaries {
		if salary <= 0 {
			t.Fatalf("job %s has non-positive salary %d", id, salary)
		}
	}
}

func TestQuestTemplates_AreWellFormed(t *testing.T) {
	templates := QuestTemplates()
	if len(templates) == 0 {
		t.Fatal("no quest templates")
	}
	seen := map[string]bool{}
	for _, tpl := range templates {
		if tpl.ID == "" || tpl.Title == "" {
			t.Fatalf("template missing id or title: %+v", tpl)
		}
		if seen[tpl.ID] {
			t.Fatalf("duplicate template id %s", tpl.ID)
		}
		seen[tpl.ID] = true
		for key := range tpl.Reward.Attributes {
			if !life.ValidAttributeKey(key) {
				t.Fatalf("template %s rewards unknown attribute %q", tpl.ID, key)
			}
		}
		for key := range tpl.Trigger.MinAttributes {
			if !life.ValidAttributeKey(key) {
				t.Fatalf("template %s triggers on unknown attribute %q", tpl.ID, key)
			}
		}
	}
}

func TestQuestTemplates_ReturnsCopy(t *testing.T) {
	first := QuestTemplates()
	first[0].Title = "mutated"
	if QuestTemplates()[0].Title == "mutated" {
		t.Fatal("QuestTemplates exposes internal slice")
	}
}
