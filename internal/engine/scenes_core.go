package engine

import "github.com/tatianab/timekeeper/internal/models"

// Chapter 2: the Chrono-Core Chamber hub, the three fractures and the
// damaged robot.

func coreScenes() []*Scene {
	return []*Scene{
		coreScene(),
		mechanicalFractureScene(),
		organicFractureScene(),
		elementalFractureScene(),
		robotScene(),
	}
}

var coreRestorable = models.AllOf(
	models.FlagSet(models.FlagMechanicalFixed),
	models.FlagSet(models.FlagOrganicFixed),
	models.FlagSet(models.FlagElementalFixed),
)

var backToCore = Consequence{Next: SceneCore}

func coreScene() *Scene {
	return &Scene{
		ID:      SceneCore,
		Title:   "Chrono-Core Chamber",
		Chapter: 2,
		Failure: "Temporal Collapse",
		Options: []Option{
			{Token: "1", Label: "Heal MECHANICAL fracture (Blue)", Aliases: []string{"blue"}, Gate: Fixed("core.mechanical")},
			{Token: "2", Label: "Heal ORGANIC fracture (Green)", Aliases: []string{"green"}, Gate: Fixed("core.organic")},
			{Token: "3", Label: "Heal ELEMENTAL fracture (Red)", Aliases: []string{"red"}, Gate: Fixed("core.elemental")},
			{Token: "4", Label: "Check damaged robot assistant", Aliases: []string{"robot", "assistant"}, Gate: Fixed("core.robot")},
			{
				Token:   "5",
				Label:   "ACTIVATE CORE RESTORATION",
				Aliases: []string{"activate", "restore", "restoration"},
				Visible: coreRestorable,
				Gate:    When(coreRestorable, "core.restore", "core.unstable"),
			},
		},
		Outcomes: map[Outcome]Consequence{
			"core.mechanical": {Next: SceneMechanicalFracture},
			"core.organic":    {Next: SceneOrganicFracture},
			"core.elemental":  {Next: SceneElementalFracture},
			"core.robot":      {Next: SceneRobot},
			"core.restore": {
				Effect: models.Effect{Courage: 30, Chapter: 3},
				Next:   SceneFinal,
			},
			"core.unstable": {},
		},
	}
}

// sealed redirects an already-healed fracture back to the core on entry.
func sealed(f models.Flag, o Outcome) Gate {
	return When(models.FlagSet(f), o, "")
}

func mechanicalFractureScene() *Scene {
	fixed := []models.Flag{models.FlagMechanicalFixed}
	return &Scene{
		ID:      SceneMechanicalFracture,
		Title:   "Mechanical Fracture",
		Chapter: 2,
		Failure: "Mainspring Recoil",
		Enter:   sealed(models.FlagMechanicalFixed, "fracture.mechanical.sealed"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Use Temporal Hammer (if you have it)",
				Aliases: []string{"hammer"},
				Gate:    ItemGate(models.ItemTemporalHammer, "fracture.mechanical.hammer", "fracture.mechanical.no_hammer"),
			},
			{
				Token:   "2",
				Label:   "Use Gear Key (if you have it)",
				Aliases: []string{"key"},
				Gate:    ItemGate(models.ItemGearKey, "fracture.mechanical.key", "fracture.mechanical.no_key"),
			},
			{
				Token:   "3",
				Label:   "Try manual repair (dangerous - requires courage)",
				Aliases: []string{"manual", "repair"},
				Gate:    ThresholdGate(models.StatCourage, 40, "fracture.mechanical.manual", "fracture.mechanical.injured"),
			},
			{Token: "4", Label: "Return to core chamber", Aliases: []string{"return", "back", "leave"}, Gate: Fixed("fracture.mechanical.return")},
		},
		Outcomes: map[Outcome]Consequence{
			"fracture.mechanical.sealed": backToCore,
			"fracture.mechanical.hammer": {
				Effect: models.Effect{Courage: 15, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.mechanical.no_hammer": backToCore,
			"fracture.mechanical.key": {
				Effect: models.Effect{Knowledge: 10, Courage: 10, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.mechanical.no_key": backToCore,
			"fracture.mechanical.manual": {
				Effect: models.Effect{Courage: 25, Health: -15, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.mechanical.injured": {
				Effect: models.Effect{Courage: 5, Health: -25},
				Next:   SceneCore,
			},
			"fracture.mechanical.return": backToCore,
		},
	}
}

func organicFractureScene() *Scene {
	fixed := []models.Flag{models.FlagOrganicFixed}
	return &Scene{
		ID:      SceneOrganicFracture,
		Title:   "Organic Fracture",
		Chapter: 2,
		Failure: "Withered Away",
		Enter:   sealed(models.FlagOrganicFixed, "fracture.organic.sealed"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Use Time Sap (if you have it)",
				Aliases: []string{"sap"},
				Gate:    ItemGate(models.ItemTimeSap, "fracture.organic.sap", "fracture.organic.no_sap"),
			},
			{
				Token:   "2",
				Label:   "Use Lumina Blossom (if you have it)",
				Aliases: []string{"blossom", "lumina"},
				Gate:    ItemGate(models.ItemLuminaBlossom, "fracture.organic.blossom", "fracture.organic.no_blossom"),
			},
			{
				Token:   "3",
				Label:   "Try compassionate healing (requires compassion)",
				Aliases: []string{"compassion", "compassionate"},
				Gate:    ThresholdGate(models.StatCompassion, 50, "fracture.organic.kindness", "fracture.organic.unmoved"),
			},
			{Token: "4", Label: "Return to core chamber", Aliases: []string{"return", "back", "leave"}, Gate: Fixed("fracture.organic.return")},
		},
		Outcomes: map[Outcome]Consequence{
			"fracture.organic.sealed": backToCore,
			"fracture.organic.sap": {
				Effect: models.Effect{Compassion: 20, Courage: 5, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.organic.no_sap": backToCore,
			"fracture.organic.blossom": {
				Effect: models.Effect{Compassion: 15, Courage: 5, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.organic.no_blossom": backToCore,
			"fracture.organic.kindness": {
				Effect: models.Effect{Compassion: 10, Courage: 15, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.organic.unmoved": backToCore,
			"fracture.organic.return":  backToCore,
		},
	}
}

func elementalFractureScene() *Scene {
	fixed := []models.Flag{models.FlagElementalFixed}
	return &Scene{
		ID:      SceneElementalFracture,
		Title:   "Elemental Fracture",
		Chapter: 2,
		Failure: "Temporal Burn",
		Enter:   sealed(models.FlagElementalFixed, "fracture.elemental.sealed"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Use Crystal Chronicle (if you have it)",
				Aliases: []string{"chronicle", "crystal"},
				Gate:    ItemGate(models.ItemCrystalChronicle, "fracture.elemental.chronicle", "fracture.elemental.no_chronicle"),
			},
			{
				Token:   "2",
				Label:   "Use Heat Gloves (if you have them)",
				Aliases: []string{"gloves"},
				Gate:    ItemGate(models.ItemHeatGloves, "fracture.elemental.gloves", "fracture.elemental.no_gloves"),
			},
			{
				Token:   "3",
				Label:   "Try to contain energy (requires knowledge)",
				Aliases: []string{"contain", "energy"},
				Gate:    ThresholdGate(models.StatKnowledge, 60, "fracture.elemental.contained", "fracture.elemental.burned"),
			},
			{Token: "4", Label: "Return to core chamber", Aliases: []string{"return", "back", "leave"}, Gate: Fixed("fracture.elemental.return")},
		},
		Outcomes: map[Outcome]Consequence{
			"fracture.elemental.sealed": backToCore,
			"fracture.elemental.chronicle": {
				Effect: models.Effect{Knowledge: 25, Courage: 20, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.elemental.no_chronicle": backToCore,
			"fracture.elemental.gloves": {
				Effect: models.Effect{Courage: 25, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.elemental.no_gloves": backToCore,
			"fracture.elemental.contained": {
				Effect: models.Effect{Knowledge: 15, Courage: 20, Health: -10, Set: fixed},
				Next:   SceneCore,
			},
			"fracture.elemental.burned": {
				Effect: models.Effect{Courage: 5, Health: -20},
				Next:   SceneCore,
			},
			"fracture.elemental.return": backToCore,
		},
	}
}

func robotScene() *Scene {
	return &Scene{
		ID:      SceneRobot,
		Title:   "Damaged Assistant",
		Chapter: 2,
		Failure: "Electrocuted",
		Enter:   sealed(models.FlagHelpedRobot, "robot.content"),
		Options: []Option{
			{
				Token:   "1",
				Label:   "Yes, try to repair it (requires Oil Can)",
				Aliases: []string{"yes", "repair", "help", "oil"},
				Gate:    ItemGate(models.ItemOilCan, "robot.repaired", "robot.no_tools"),
			},
			{Token: "2", Label: "No, focus on the core", Aliases: []string{"no", "focus", "leave"}, Gate: Fixed("robot.ignored")},
		},
		Outcomes: map[Outcome]Consequence{
			"robot.content": backToCore,
			"robot.repaired": {
				Effect: models.Effect{
					Compassion: 25,
					Courage:    15,
					Grant:      []string{models.ItemRepairManual},
					Set:        []models.Flag{models.FlagHelpedRobot},
				},
				Next: SceneCore,
			},
			"robot.no_tools": backToCore,
			"robot.ignored":  backToCore,
		},
	}
}
