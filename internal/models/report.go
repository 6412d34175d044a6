package models

import "gopkg.in/yaml.v3"

// achievements in display order.
var achievements = []struct {
	flag  Flag
	title string
}{
	{FlagSavedOwl, "Saved the Mechanical Owl"},
	{FlagHasTimeSap, "Healed the Crystal Tree"},
	{FlagHasTemporalHammer, "Forged Temporal Hammer"},
	{FlagHelpedRobot, "Repaired the Assistant Robot"},
	{FlagMechanicalFixed, "Healed Mechanical Fracture"},
	{FlagOrganicFixed, "Healed Organic Fracture"},
	{FlagElementalFixed, "Healed Elemental Fracture"},
}

// Report is the end-of-run summary shown after an ending.
type Report struct {
	Hero         string   `yaml:"hero"`
	Ending       string   `yaml:"ending"`
	Chapter      int      `yaml:"chapter"`
	Health       int      `yaml:"health"`
	Knowledge    int      `yaml:"knowledge"`
	Courage      int      `yaml:"courage"`
	Compassion   int      `yaml:"compassion"`
	Inventory    []string `yaml:"inventory"`
	Achievements []string `yaml:"achievements"`
}

// NewReport derives the summary from a final state.
func NewReport(s PlayerState) Report {
	r := Report{
		Hero:         s.Name,
		Ending:       s.Ending,
		Chapter:      s.Chapter,
		Health:       s.Health,
		Knowledge:    s.Knowledge,
		Courage:      s.Courage,
		Compassion:   s.Compassion,
		Inventory:    append([]string{}, s.Inventory...),
		Achievements: []string{},
	}
	for _, a := range achievements {
		if s.Flag(a.flag) {
			r.Achievements = append(r.Achievements, a.title)
		}
	}
	return r
}

// YAML renders the report as a YAML document.
func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
