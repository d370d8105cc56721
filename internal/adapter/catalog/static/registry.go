// Package static holds the built-in reference tables. They are compiled in
// rather than loaded from disk so a fresh binary is always playable; an
// external catalog source can replace this adapter without touching the core.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"campuslife/internal/domain/life"
)

type Job struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	WeeklySalary int64  `json:"weekly_salary"`
	MinYear      int    `json:"min_year"`
}

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type University struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tier string `json:"tier"`
}

type Major struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Club struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Certificate struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	MinIQ float64 `json:"min_iq"`
}

var jobs = []Job{
	{ID: "job-tutor", Title: "Peer Tutor", WeeklySalary: 200, MinYear: 1},
	{ID: "job-barista", Title: "Campus Cafe Barista", WeeklySalary: 150, MinYear: 1},
	{ID: "job-library", Title: "Library Assistant", WeeklySalary: 180, MinYear: 1},
	{ID: "job-lab", Title: "Research Lab Assistant", WeeklySalary: 300, MinYear: 2},
	{ID: "job-ta", Title: "Teaching Assistant", WeeklySalary: 350, MinYear: 3},
}

var items = []Item{
	{ID: "item-coffee", Name: "Coffee Voucher", Price: 20, Description: "Restores a little stamina between classes."},
	{ID: "item-textbook", Name: "Used Textbook", Price: 120, Description: "Last year's edition, still mostly accurate."},
	{ID: "item-laptop", Name: "Refurbished Laptop", Price: 900, Description: "Runs everything the CS department requires."},
	{ID: "item-gymcard", Name: "Gym Membership Card", Price: 200, Description: "One semester of access to the campus gym."},
}

var universities = []University{
	{ID: "uni-state", Name: "Ridgefield State University", Tier: "standard"},
	{ID: "uni-tech", Name: "Harborview Institute of Technology", Tier: "selective"},
	{ID: "uni-liberal", Name: "Elmwood College", Tier: "standard"},
}

var majors = []Major{
	{ID: "major-cs", Name: "Computer Science"},
	{ID: "major-econ", Name: "Economics"},
	{ID: "major-bio", Name: "Biology"},
	{ID: "major-lit", Name: "Literature"},
}

var clubs = []Club{
	{ID: "club-debate", Name: "Debate Society"},
	{ID: "club-robotics", Name: "Robotics Club"},
	{ID: "club-film", Name: "Film Appreciation Club"},
	{ID: "club-hiking", Name: "Hiking Club"},
}

var certificates = []Certificate{
	{ID: "cert-language", Name: "Foreign Language Certificate", MinIQ: 60},
	{ID: "cert-accounting", Name: "Accounting Fundamentals", MinIQ: 55},
	{ID: "cert-firstaid", Name: "First Aid Certification", MinIQ: 0},
}

var questTemplates = []life.QuestTemplate{
	{
		ID:          "quest-orientation",
		Title:       "Find Your Footing",
		Description: "The first weeks are about learning where everything is.",
		Stages:      []string{"Attend orientation", "Meet your advisor", "Join a club fair"},
		Reward:      life.RewardSpec{Attributes: map[life.AttributeKey]float64{life.AttrEQ: 3}, Honor: "Settled In"},
		Trigger:     life.TriggerSpec{},
	},
	{
		ID:          "quest-deans-list",
		Title:       "Chase the Dean's List",
		Description: "Your grades are strong enough that the dean's list is within reach.",
		Stages:      []string{"Keep GPA up for a semester", "Sit the honors review"},
		Reward:      life.RewardSpec{Attributes: map[life.AttributeKey]float64{life.AttrIQ: 5}, Honor: "Dean's List", Unlocks: []string{"honors-seminar"}},
		Trigger:     life.TriggerSpec{MinAttributes: map[life.AttributeKey]float64{life.AttrIQ: 75}},
	},
	{
		ID:          "quest-first-paycheck",
		Title:       "Earning Your Keep",
		Description: "A job means responsibilities. Hold on to it for a month.",
		Stages:      []string{"Work four weeks without quitting"},
		Reward:      life.RewardSpec{Money: 300, Honor: "Reliable Worker"},
		Trigger:     life.TriggerSpec{RequiresJob: true},
	},
	{
		ID:          "quest-nest-egg",
		Title:       "Nest Egg",
		Description: "You have saved more than most students see in a year.",
		Reward:      life.RewardSpec{Attributes: map[life.AttributeKey]float64{life.AttrEQ: 2}, Honor: "Saver"},
		Trigger:     life.TriggerSpec{MinMoney: 5000},
	},
	{
		ID:          "quest-senior-thesis",
		Title:       "The Senior Thesis",
		Description: "Final year. Time to produce something with your name on it.",
		Stages:      []string{"Pick a topic", "Find a supervisor", "Submit the draft", "Defend"},
		Reward:      life.RewardSpec{Attributes: map[life.AttributeKey]float64{life.AttrIQ: 8}, Honor: "Thesis Defended", Unlocks: []string{"grad-school-track"}},
		Trigger:     life.TriggerSpec{MinYear: 4},
	},
}

// Registry implements ports.CatalogProvider over the in-code tables.
type Registry struct {
	catalogs map[string]json.RawMessage
}

func NewRegistry() (*Registry, error) {
	r := &Registry{catalogs: make(map[string]json.RawMessage)}
	for name, table := range map[string]any{
		"jobs":            jobs,
		"items":           items,
		"universities":    universities,
		"majors":          majors,
		"clubs":           clubs,
		"certificates":    certificates,
		"quest_templates": questTemplates,
	} {
		blob, err := json.Marshal(table)
		if err != nil {
			return nil, fmt.Errorf("marshal catalog %s: %w", name, err)
		}
		r.catalogs[name] = blob
	}
	return r, nil
}

func (r *Registry) Index(ctx context.Context) ([]byte, error) {
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return json.Marshal(map[string]any{"catalogs": names})
}

func (r *Registry) Catalog(ctx context.Context, name string) ([]byte, error) {
	blob, ok := r.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q", name)
	}
	return blob, nil
}

// QuestTemplates returns the built-in quest set the turn engine evaluates
// triggers against.
func QuestTemplates() []life.QuestTemplate {
	out := make([]life.QuestTemplate, len(questTemplates))
	copy(out, questTemplates)
	return out
}

// JobSalaries maps job id to weekly salary for the turn accrual step.
func JobSalaries() map[string]int64 {
	out := make(map[string]int64, len(jobs))
	for _, job := range jobs {
		out[job.ID] = job.WeeklySalary
	}
	return out
}
