package engine

import "github.com/tatianab/timekeeper/internal/models"

// Path is the player's final choice for the future of time.
type Path string

const (
	PathOrder         Path = "order"
	PathBalance       Path = "balance"
	PathEvolution     Path = "evolution"
	PathEnlightenment Path = "enlightenment"
)

// Ending is a terminal outcome. Key selects its narration.
type Ending struct {
	Key     Outcome
	Path    Path
	Title   string
	Failure bool
	Reason  string
}

var (
	endingOrder = Ending{Key: "ending.order", Path: PathOrder, Title: "ORDER ENDING: The Perfect Clock"}

	endingBalancePerfect = Ending{Key: "ending.balance.perfect", Path: PathBalance, Title: "PERFECT ENDING: Master of Balance"}
	endingBalanceGood    = Ending{Key: "ending.balance.good", Path: PathBalance, Title: "GOOD ENDING: Harmony Restored"}

	endingEvolutionGuided  = Ending{Key: "ending.evolution.guided", Path: PathEvolution, Title: "EVOLUTION ENDING: Guided Progress"}
	endingEvolutionChaotic = Ending{Key: "ending.evolution.chaotic", Path: PathEvolution, Title: "CHAOTIC ENDING: Unchecked Evolution"}

	endingEnlightened = Ending{Key: "ending.enlightenment", Path: PathEnlightenment, Title: "SECRET ENDING: The Enlightened"}
)

// Endings lists every non-failure ending.
func Endings() []Ending {
	return []Ending{
		endingOrder,
		endingBalancePerfect, endingBalanceGood,
		endingEvolutionGuided, endingEvolutionChaotic,
		endingEnlightened,
	}
}

var (
	enlightenmentUnlocked = models.AllOf(
		models.StatAtLeast(models.StatKnowledge, 70),
		models.StatAtLeast(models.StatCourage, 70),
		models.StatAtLeast(models.StatCompassion, 70),
	)
	perfectBalance = models.AllOf(
		models.StatAtLeast(models.StatCompassion, 60),
		models.FlagSet(models.FlagHelpedRobot),
		models.FlagSet(models.FlagSavedOwl),
	)
	guidedEvolution = models.AllOf(
		models.StatAtLeast(models.StatKnowledge, 70),
		models.FlagSet(models.FlagHasCrystalChronicle),
	)
)

// Paths returns the paths offered at the final choice.
func Paths(s models.PlayerState) []Path {
	paths := []Path{PathOrder, PathBalance, PathEvolution}
	if s.Query(enlightenmentUnlocked) {
		paths = append(paths, PathEnlightenment)
	}
	return paths
}

// Resolve picks the ending for path. The variant predicate of a path is only
// evaluated once that path has been chosen. Resolve reads s and nothing else.
func Resolve(path Path, s models.PlayerState) (Ending, bool) {
	switch path {
	case PathOrder:
		return endingOrder, true
	case PathBalance:
		if s.Query(perfectBalance) {
			return endingBalancePerfect, true
		}
		return endingBalanceGood, true
	case PathEvolution:
		if s.Query(guidedEvolution) {
			return endingEvolutionGuided, true
		}
		return endingEvolutionChaotic, true
	case PathEnlightenment:
		return endingEnlightened, true
	}
	return Ending{}, false
}

// Failure is the ending reached when health runs out.
func Failure(reason string) Ending {
	return Ending{Key: "ending.failure", Title: "GAME OVER: " + reason, Failure: true, Reason: reason}
}

func finalScene() *Scene {
	return &Scene{
		ID:      SceneFinal,
		Title:   "Final Convergence",
		Chapter: 3,
		Failure: "Unmade by Time",
		Options: []Option{
			{Token: "1", Label: "ORDER - Perfect stability, no surprises", Aliases: []string{"order"}, Gate: Fixed("final.order")},
			{Token: "2", Label: "BALANCE - Harmony between change and stability", Aliases: []string{"balance"}, Gate: Fixed("final.balance")},
			{Token: "3", Label: "EVOLUTION - Constant change and growth", Aliases: []string{"evolution"}, Gate: Fixed("final.evolution")},
			{
				Token:   "4",
				Label:   "ENLIGHTENMENT - Become one with time (Secret Ending)",
				Aliases: []string{"enlightenment"},
				Visible: enlightenmentUnlocked,
				Gate:    Fixed("final.enlightenment"),
			},
		},
		Outcomes: map[Outcome]Consequence{
			"final.order":         {Path: PathOrder},
			"final.balance":       {Path: PathBalance},
			"final.evolution":     {Path: PathEvolution},
			"final.enlightenment": {Path: PathEnlightenment},
		},
	}
}
