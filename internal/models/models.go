package models

import "slices"

// DefaultName replaces an empty player name.
const DefaultName = "Hero"

// MaxHealth is the ceiling health is clamped to.
const MaxHealth = 100

// Item names as they appear in the inventory.
const (
	ItemCrystalChronicle = "Crystal Chronicle"
	ItemGearKey          = "Gear Key"
	ItemOilCan           = "Oil Can"
	ItemTimeSap          = "Time Sap"
	ItemLuminaBlossom    = "Lumina Blossom"
	ItemTemporalHammer   = "Temporal Hammer"
	ItemHeatGloves       = "Heat Gloves"
	ItemRepairManual     = "Repair Manual"
)

// Flag names a one-time event.
type Flag string

const (
	FlagVisitedVolcanic     Flag = "visited_volcanic"
	FlagVisitedMechanical   Flag = "visited_mechanical"
	FlagVisitedGarden       Flag = "visited_garden"
	FlagHasCrystalChronicle Flag = "has_crystal_chronicle"
	FlagSavedOwl            Flag = "saved_owl"
	FlagHasTimeSap          Flag = "has_time_sap"
	FlagHasTemporalHammer   Flag = "has_temporal_hammer"
	FlagHasLuminaBlossom    Flag = "has_lumina_blossom"
	FlagMechanicalFixed     Flag = "mechanical_fixed"
	FlagOrganicFixed        Flag = "organic_fixed"
	FlagElementalFixed      Flag = "elemental_fixed"
	FlagHelpedRobot         Flag = "helped_robot"
)

// Stat identifies one of the numeric player stats.
type Stat string

const (
	StatHealth     Stat = "health"
	StatKnowledge  Stat = "knowledge"
	StatCourage    Stat = "courage"
	StatCompassion Stat = "compassion"
)

// PlayerState is the whole mutable record of a run. It is a value: Apply
// returns a new state and never shares the inventory or flag storage with
// the receiver.
type PlayerState struct {
	Name       string        `yaml:"name"`
	Health     int           `yaml:"health"`
	Knowledge  int           `yaml:"knowledge"`
	Courage    int           `yaml:"courage"`
	Compassion int           `yaml:"compassion"`
	Inventory  []string      `yaml:"inventory"`
	Flags      map[Flag]bool `yaml:"flags,omitempty"`
	Chapter    int           `yaml:"chapter"`
	Ending     string        `yaml:"ending,omitempty"`
}

// Effect names the fields a transition changes. Zero fields change nothing.
type Effect struct {
	Health     int
	Knowledge  int
	Courage    int
	Compassion int
	Grant      []string
	Set        []Flag
	Chapter    int // advance to this chapter; lower values are ignored
}

// NewPlayerState returns the initial state for a run.
func NewPlayerState(name string) PlayerState {
	if name == "" {
		name = DefaultName
	}
	return PlayerState{
		Name:    name,
		Health:  MaxHealth,
		Flags:   map[Flag]bool{},
		Chapter: 1,
	}
}

// Reset returns a fresh initial state for the same player.
func (s PlayerState) Reset() PlayerState {
	return NewPlayerState(s.Name)
}

func (s PlayerState) clone() PlayerState {
	c := s
	c.Inventory = slices.Clone(s.Inventory)
	c.Flags = make(map[Flag]bool, len(s.Flags))
	for k, v := range s.Flags {
		c.Flags[k] = v
	}
	return c
}

// Apply returns the state after e. Health is clamped to [0, MaxHealth].
func (s PlayerState) Apply(e Effect) PlayerState {
	n := s.clone()
	n.Health += e.Health
	n.Knowledge += e.Knowledge
	n.Courage += e.Courage
	n.Compassion += e.Compassion
	for _, item := range e.Grant {
		if !slices.Contains(n.Inventory, item) {
			n.Inventory = append(n.Inventory, item)
		}
	}
	for _, f := range e.Set {
		n.Flags[f] = true
	}
	if e.Chapter > n.Chapter {
		n.Chapter = e.Chapter
	}
	n.Health = min(max(n.Health, 0), MaxHealth)
	return n
}

// WithEnding records the ending. It reports false and leaves the state
// untouched when an ending was already recorded.
func (s PlayerState) WithEnding(title string) (PlayerState, bool) {
	if s.Ending != "" {
		return s, false
	}
	n := s.clone()
	n.Ending = title
	return n, true
}

// Query evaluates p against the state.
func (s PlayerState) Query(p Predicate) bool {
	return p(s)
}

// Has reports whether item is in the inventory.
func (s PlayerState) Has(item string) bool {
	return slices.Contains(s.Inventory, item)
}

// Flag reports whether f has been set.
func (s PlayerState) Flag(f Flag) bool {
	return s.Flags[f]
}

// Stat returns the current value of st.
func (s PlayerState) Stat(st Stat) int {
	switch st {
	case StatHealth:
		return s.Health
	case StatKnowledge:
		return s.Knowledge
	case StatCourage:
		return s.Courage
	case StatCompassion:
		return s.Compassion
	}
	return 0
}

// Dead reports whether health has been depleted.
func (s PlayerState) Dead() bool {
	return s.Health <= 0
}
