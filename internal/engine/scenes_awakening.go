package engine

import "github.com/tatianab/timekeeper/internal/models"

// Chapter 1: the Awakening Chamber hub and its three archway areas.

func awakeningScenes() []*Scene {
	return []*Scene{entranceScene(), mechanicalScene(), gardenScene(), volcanicScene()}
}

var backToEntrance = Consequence{Next: SceneEntrance}

func entranceScene() *Scene {
	return &Scene{
		ID:      SceneEntrance,
		Title:   "The Awakening Chamber",
		Chapter: 1,
		Failure: "Lost in Time",
		Options: []Option{
			{
				Token:   "1",
				Label:   "Take the Crystal Chronicle",
				Aliases: []string{"take", "chronicle", "crystal", "pedestal"},
				Gate: Unless(models.FlagSet(models.FlagHasCrystalChronicle), "entrance.chronicle.held",
					Fixed("entrance.chronicle.taken")),
			},
			{Token: "2", Label: "Enter BLUE archway (Mechanical)", Aliases: []string{"blue"}, Gate: Fixed("entrance.blue")},
			{Token: "3", Label: "Enter GREEN archway (Garden)", Aliases: []string{"green"}, Gate: Fixed("entrance.green")},
			{Token: "4", Label: "Enter RED archway (Volcanic)", Aliases: []string{"red"}, Gate: Fixed("entrance.red")},
			{
				Token:   "5",
				Label:   "Ready to proceed to Chapter 2",
				Aliases: []string{"proceed", "portal", "next"},
				Gate:    ItemGate(models.ItemCrystalChronicle, "entrance.proceed", "entrance.proceed.blocked"),
			},
		},
		Outcomes: map[Outcome]Consequence{
			"entrance.chronicle.taken": {Effect: models.Effect{
				Knowledge: 15,
				Grant:     []string{models.ItemCrystalChronicle},
				Set:       []models.Flag{models.FlagHasCrystalChronicle},
			}},
			"entrance.chronicle.held": {},
			"entrance.blue":           {Next: SceneMechanical},
			"entrance.green":          {Next: SceneGarden},
			"entrance.red":            {Next: SceneVolcanic},
			// Chapter completion bonus plus the +10 courage for reaching
			// the Chrono-Core.
			"entrance.proceed": {
				Effect: models.Effect{Health: 20, Courage: 20 + 10, Knowledge: 10, Compassion: 10, Chapter: 2},
				Next:   SceneCore,
			},
			"entrance.proceed.blocked": {},
		},
	}
}

func mechanicalScene() *Scene {
	return &Scene{
		ID:      SceneMechanical,
		Title:   "Mechanical Labyrinth",
		Chapter: 1,
		Failure: "Crushed by Gears",
		Enter:   Once(models.FlagVisitedMechanical, "mechanical.enter.first", "mechanical.enter.again"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Try to free the owl",
				Aliases: []string{"owl", "free", "lift", "gear"},
				Gate: Unless(models.FlagSet(models.FlagSavedOwl), "mechanical.owl.free",
					When(models.AnyOf(
						models.StatAtLeast(models.StatCourage, 20),
						models.HasItem(models.ItemTemporalHammer),
					), "mechanical.owl.freed", "mechanical.owl.strain")),
			},
			{
				Token:   "2",
				Label:   "Search for tools",
				Aliases: []string{"search", "tools", "toolbox"},
				Gate:    ItemGate(models.ItemOilCan, "mechanical.tools.searched", "mechanical.tools.found"),
			},
			{
				Token:   "3",
				Label:   "Examine control panel",
				Aliases: []string{"panel", "examine", "control"},
				Gate:    ItemGate(models.ItemCrystalChronicle, "mechanical.panel.read", "mechanical.panel.cryptic"),
			},
			{Token: "4", Label: "Return to entrance", Aliases: []string{"return", "back", "leave"}, Gate: Fixed("mechanical.return")},
		},
		Outcomes: map[Outcome]Consequence{
			"mechanical.enter.first": {Effect: models.Effect{Courage: 10, Set: []models.Flag{models.FlagVisitedMechanical}}},
			"mechanical.enter.again": {},
			"mechanical.owl.freed": {Effect: models.Effect{
				Compassion: 20,
				Courage:    10,
				Grant:      []string{models.ItemGearKey},
				Set:        []models.Flag{models.FlagSavedOwl},
			}},
			"mechanical.owl.strain": {Effect: models.Effect{Courage: 5, Health: -5}},
			"mechanical.owl.free":   {},
			"mechanical.tools.found": {Effect: models.Effect{
				Courage: 5,
				Grant:   []string{models.ItemOilCan},
			}},
			"mechanical.tools.searched": {},
			"mechanical.panel.read":     {Effect: models.Effect{Knowledge: 10}},
			"mechanical.panel.cryptic":  {},
			"mechanical.return":         backToEntrance,
		},
	}
}

func gardenScene() *Scene {
	return &Scene{
		ID:      SceneGarden,
		Title:   "Eternal Garden",
		Chapter: 1,
		Failure: "Lost in Time",
		Enter:   Once(models.FlagVisitedGarden, "garden.enter.first", "garden.enter.again"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Examine the crystal tree",
				Aliases: []string{"tree", "branch", "sap"},
				Gate: Unless(models.FlagSet(models.FlagHasTimeSap), "garden.tree.healed",
					ItemGate(models.ItemOilCan, "garden.tree.sap", "garden.tree.untended")),
			},
			{
				Token:   "2",
				Label:   "Collect glowing flowers",
				Aliases: []string{"flowers", "collect", "blossom"},
				Gate:    ItemGate(models.ItemLuminaBlossom, "garden.flowers.held", "garden.flowers.picked"),
			},
			{
				Token:   "3",
				Label:   "Look for the garden keeper",
				Aliases: []string{"keeper", "look"},
				Gate:    Fixed("garden.keeper"),
			},
			{Token: "4", Label: "Return to entrance", Aliases: []string{"return", "back", "leave"}, Gate: Fixed("garden.return")},
		},
		Outcomes: map[Outcome]Consequence{
			"garden.enter.first": {Effect: models.Effect{Courage: 5, Set: []models.Flag{models.FlagVisitedGarden}}},
			"garden.enter.again": {},
			"garden.tree.sap": {Effect: models.Effect{
				Compassion: 15,
				Courage:    5,
				Grant:      []string{models.ItemTimeSap},
				Set:        []models.Flag{models.FlagHasTimeSap},
			}},
			"garden.tree.untended": {},
			"garden.tree.healed":   {},
			"garden.flowers.picked": {Effect: models.Effect{
				Courage: 3,
				Grant:   []string{models.ItemLuminaBlossom},
				Set:     []models.Flag{models.FlagHasLuminaBlossom},
			}},
			"garden.flowers.held": {},
			"garden.keeper":       {Effect: models.Effect{Compassion: 5}},
			"garden.return":       backToEntrance,
		},
	}
}

// heat is taken on every entry to the forge, after any first-visit bonus.
const heat = -15

func volcanicScene() *Scene {
	return &Scene{
		ID:      SceneVolcanic,
		Title:   "Volcanic Forge",
		Chapter: 1,
		Failure: "Heat Exhaustion",
		Enter:   Once(models.FlagVisitedVolcanic, "volcanic.enter.first", "volcanic.enter.again"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Try to complete the hammer (requires 30 courage)",
				Aliases: []string{"hammer", "complete", "forge"},
				Gate: Unless(models.FlagSet(models.FlagHasTemporalHammer), "volcanic.hammer.forged",
					ThresholdGate(models.StatCourage, 30, "volcanic.hammer.complete", "volcanic.hammer.scorched")),
			},
			{
				Token:   "2",
				Label:   "Search for protective gear",
				Aliases: []string{"gloves", "gear", "search", "protective"},
				Gate:    ItemGate(models.ItemHeatGloves, "volcanic.gloves.held", "volcanic.gloves.found"),
			},
			{
				Token:   "3",
				Label:   "Study the forge's patterns",
				Aliases: []string{"study", "runes", "patterns"},
				Gate:    Fixed("volcanic.runes"),
			},
			{Token: "4", Label: "Retreat to entrance", Aliases: []string{"retreat", "return", "back", "leave"}, Gate: Fixed("volcanic.retreat")},
		},
		Outcomes: map[Outcome]Consequence{
			"volcanic.enter.first": {Effect: models.Effect{
				Courage: 15,
				Health:  heat,
				Set:     []models.Flag{models.FlagVisitedVolcanic},
			}},
			"volcanic.enter.again": {Effect: models.Effect{Health: heat}},
			"volcanic.hammer.complete": {Effect: models.Effect{
				Courage: 25,
				Grant:   []string{models.ItemTemporalHammer},
				Set:     []models.Flag{models.FlagHasTemporalHammer},
			}},
			"volcanic.hammer.scorched": {Effect: models.Effect{Courage: 10, Health: -10}},
			"volcanic.hammer.forged":   {},
			"volcanic.gloves.found": {Effect: models.Effect{
				Courage: 8,
				Grant:   []string{models.ItemHeatGloves},
			}},
			"volcanic.gloves.held": {},
			"volcanic.runes":       {Effect: models.Effect{Knowledge: 15, Courage: 5}},
			"volcanic.retreat":     backToEntrance,
		},
	}
}
