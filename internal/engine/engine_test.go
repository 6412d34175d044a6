package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/tatianab/timekeeper/internal/models"
)

func choose(t *testing.T, e *Engine, tokens ...string) Step {
	t.Helper()
	var step Step
	for _, tok := range tokens {
		var err error
		step, err = e.Choose(tok)
		if err != nil {
			t.Fatalf("Choose(%q) in %s: %v", tok, e.scene, err)
		}
	}
	return step
}

func assertStats(t *testing.T, s models.PlayerState, health, knowledge, courage, compassion int) {
	t.Helper()
	if s.Health != health || s.Knowledge != knowledge || s.Courage != courage || s.Compassion != compassion {
		t.Fatalf("Expected hp=%d kno=%d cou=%d com=%d, got hp=%d kno=%d cou=%d com=%d",
			health, knowledge, courage, compassion, s.Health, s.Knowledge, s.Courage, s.Compassion)
	}
}

func TestVolcanicHammerScenario(t *testing.T) {
	e := New("Ada")
	assertStats(t, e.State(), 100, 0, 0, 0)

	choose(t, e, "4")
	if e.scene != SceneVolcanic {
		t.Fatalf("Expected to be in the forge, got %s", e.scene)
	}
	assertStats(t, e.State(), 85, 0, 15, 0)

	choose(t, e, "1")
	assertStats(t, e.State(), 75, 0, 25, 0)
	if e.State().Has(models.ItemTemporalHammer) {
		t.Fatal("Hammer granted below the courage threshold")
	}

	choose(t, e, "1")
	assertStats(t, e.State(), 65, 0, 35, 0)

	choose(t, e, "1")
	assertStats(t, e.State(), 65, 0, 60, 0)
	if !e.State().Has(models.ItemTemporalHammer) || !e.State().Flag(models.FlagHasTemporalHammer) {
		t.Fatal("Expected the Temporal Hammer after reaching 30 courage")
	}

	step := choose(t, e, "1")
	assertStats(t, e.State(), 65, 0, 60, 0)
	if len(e.State().Inventory) != 1 {
		t.Errorf("Re-forging changed the inventory: %v", e.State().Inventory)
	}
	if !slices.Equal(step.Outcomes, []Outcome{"volcanic.hammer.forged"}) {
		t.Errorf("Unexpected outcomes %v", step.Outcomes)
	}
}

func TestFirstVisitBonusOnce(t *testing.T) {
	e := New("Ada")
	choose(t, e, "4", "4", "4")
	// Only the heat applies on the second entry.
	assertStats(t, e.State(), 70, 0, 15, 0)

	choose(t, e, "4", "2", "4", "2")
	assertStats(t, e.State(), 70, 0, 25, 0)
}

func TestOilCanHealsTreeOnce(t *testing.T) {
	e := New("Ada")
	choose(t, e, "2", "2", "4")
	if !e.State().Has(models.ItemOilCan) {
		t.Fatal("Expected the Oil Can")
	}
	choose(t, e, "3")
	before := e.State()

	choose(t, e, "1")
	after := e.State()
	if !after.Has(models.ItemTimeSap) || !after.Flag(models.FlagHasTimeSap) {
		t.Fatal("Expected Time Sap and its flag")
	}
	if after.Compassion != before.Compassion+15 || after.Courage != before.Courage+5 {
		t.Errorf("Expected +15 compassion and +5 courage, got %+v -> %+v", before, after)
	}

	choose(t, e, "1")
	again := e.State()
	if !reflect.DeepEqual(again, after) {
		t.Errorf("Re-examining the tree changed state: %+v -> %+v", after, again)
	}
}

func TestItemOptionsAreIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		setup  []string
		repeat string
	}{
		{"chronicle", nil, "1"},
		{"oil can", []string{"2"}, "2"},
		{"lumina blossom", []string{"3"}, "2"},
		{"heat gloves", []string{"4"}, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("Ada")
			choose(t, e, tt.setup...)
			choose(t, e, tt.repeat)
			first := e.State()
			choose(t, e, tt.repeat)
			if !reflect.DeepEqual(first, e.State()) {
				t.Errorf("Second selection changed state: %+v -> %+v", first, e.State())
			}
		})
	}
}

func TestOwlFreedByHammerWithoutCourage(t *testing.T) {
	e := New("Ada")
	e.state = e.state.Apply(models.Effect{Grant: []string{models.ItemTemporalHammer}})
	choose(t, e, "2", "1")
	s := e.State()
	if !s.Flag(models.FlagSavedOwl) || !s.Has(models.ItemGearKey) {
		t.Fatalf("Expected the owl to be freed with the hammer: %+v", s)
	}
	assertStats(t, s, 100, 0, 20, 20)
}

func TestHealthDepletionEndsRun(t *testing.T) {
	e := New("Ada")
	for i := 0; i < 6; i++ {
		choose(t, e, "4", "4")
	}
	assertStats(t, e.State(), 10, 0, 15, 0)

	step := choose(t, e, "4")
	if !e.Done() || step.Ending == nil {
		t.Fatal("Expected the run to end")
	}
	if !step.Ending.Failure {
		t.Errorf("Expected a failure ending, got %+v", step.Ending)
	}
	if got := e.State().Ending; got != "GAME OVER: Heat Exhaustion" {
		t.Errorf("Unexpected ending %q", got)
	}
	if e.State().Health != 0 {
		t.Errorf("Expected health clamped to 0, got %d", e.State().Health)
	}
	if len(e.Tokens()) != 0 {
		t.Errorf("Expected no options after the ending, got %v", e.Tokens())
	}
	if _, err := e.Choose("1"); !errors.Is(err, ErrRunOver) {
		t.Errorf("Expected ErrRunOver, got %v", err)
	}
}

func TestDepletionShortCircuitsInsideScene(t *testing.T) {
	e := New("Ada")
	e.state.Health = 5
	step := choose(t, e, "2", "1")
	if !e.Done() || step.Ending == nil || step.Ending.Title != "GAME OVER: Crushed by Gears" {
		t.Fatalf("Expected a failure ending from the owl attempt, got %+v", step.Ending)
	}
}

func TestProceedRequiresChronicle(t *testing.T) {
	e := New("Ada")
	step := choose(t, e, "5")
	if e.State().Chapter != 1 || e.scene != SceneEntrance {
		t.Fatalf("Proceeded without the Chronicle: chapter=%d scene=%s", e.State().Chapter, e.scene)
	}
	if !slices.Equal(step.Outcomes, []Outcome{"entrance.proceed.blocked"}) {
		t.Errorf("Unexpected outcomes %v", step.Outcomes)
	}

	choose(t, e, "1", "5")
	if e.State().Chapter != 2 || e.scene != SceneCore {
		t.Fatalf("Expected chapter 2 at the core, got chapter=%d scene=%s", e.State().Chapter, e.scene)
	}
	assertStats(t, e.State(), 100, 25, 30, 10)
}

func TestRestorationOfferedOnlyWhenAllFracturesHealed(t *testing.T) {
	flags := []models.Flag{models.FlagMechanicalFixed, models.FlagOrganicFixed, models.FlagElementalFixed}
	for mask := 0; mask < 8; mask++ {
		e := New("Ada")
		e.scene = SceneCore
		for i, f := range flags {
			if mask&(1<<i) != 0 {
				e.state = e.state.Apply(models.Effect{Set: []models.Flag{f}})
			}
		}
		offered := slices.Contains(e.Tokens(), "5")
		if want := mask == 7; offered != want {
			t.Errorf("mask %03b: restoration offered=%v want %v", mask, offered, want)
		}
	}
}

func TestHealedFractureRedirectsToCore(t *testing.T) {
	e := New("Ada")
	e.scene = SceneCore
	e.state = e.state.Apply(models.Effect{Set: []models.Flag{models.FlagMechanicalFixed}})
	step := choose(t, e, "1")
	if e.scene != SceneCore {
		t.Fatalf("Expected redirect back to the core, got %s", e.scene)
	}
	want := []Outcome{"core.mechanical", "fracture.mechanical.sealed"}
	if !slices.Equal(step.Outcomes, want) {
		t.Errorf("Expected outcomes %v, got %v", want, step.Outcomes)
	}
}

func TestMissingItemIsSafeNoOp(t *testing.T) {
	e := New("Ada")
	e.scene = SceneMechanicalFracture
	before := e.State()
	step := choose(t, e, "2")
	if !reflect.DeepEqual(before, e.State()) {
		t.Errorf("Missing Gear Key changed state: %+v -> %+v", before, e.State())
	}
	if len(step.Lines) == 0 || step.Lines[0] != "You don't have the Gear Key." {
		t.Errorf("Unexpected narration %v", step.Lines)
	}
}

func TestInvalidChoiceLeavesStateUntouched(t *testing.T) {
	e := New("Ada")
	choose(t, e, "4")
	before := e.State()
	for _, tok := range []string{"", "9", "volcanic", "5"} {
		_, err := e.Choose(tok)
		if !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("Choose(%q): expected ErrInvalidChoice, got %v", tok, err)
		}
	}
	if !reflect.DeepEqual(before, e.State()) || e.scene != SceneVolcanic {
		t.Errorf("Invalid input changed state")
	}
}

func TestReset(t *testing.T) {
	e := New("Ada")
	choose(t, e, "1", "4")
	e.Reset()
	if e.scene != SceneEntrance || e.Done() {
		t.Fatalf("Reset left scene=%s done=%v", e.scene, e.Done())
	}
	if !reflect.DeepEqual(e.State(), models.NewPlayerState("Ada")) {
		t.Errorf("Reset state = %+v", e.State())
	}
}

// perfectRun reaches the final choice with every achievement.
var perfectRun = []string{
	"1",
	"2", "2", "3", "1", "1", "4",
	"3", "1", "2", "3", "4",
	"4", "1", "2", "3", "4",
	"5",
	"4", "1",
	"1", "2",
	"2", "1",
	"3", "1",
	"5",
}

func TestPerfectRun(t *testing.T) {
	e := New("Ada")
	choose(t, e, perfectRun...)
	if e.scene != SceneFinal || e.State().Chapter != 3 {
		t.Fatalf("Expected the final choice in chapter 3, got scene=%s chapter=%d", e.scene, e.State().Chapter)
	}
	assertStats(t, e.State(), 100, 85, 206, 95)
	if !slices.Equal(e.Tokens(), []string{"1", "2", "3", "4"}) {
		t.Fatalf("Expected the secret ending to be offered, got %v", e.Tokens())
	}

	step := choose(t, e, "2")
	if step.Ending == nil || step.Ending.Title != "PERFECT ENDING: Master of Balance" {
		t.Fatalf("Unexpected ending %+v", step.Ending)
	}
	r := models.NewReport(e.State())
	if len(r.Achievements) != 7 {
		t.Errorf("Expected 7 achievements, got %v", r.Achievements)
	}
}

func TestSecretEndingThreshold(t *testing.T) {
	tests := []struct {
		name                          string
		knowledge, courage, compassion int
		want                          bool
	}{
		{"all exactly 70", 70, 70, 70, true},
		{"courage 69", 70, 69, 70, false},
		{"knowledge 69", 69, 90, 90, false},
		{"compassion 69", 90, 90, 69, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("Ada")
			e.scene = SceneFinal
			e.state = e.state.Apply(models.Effect{Knowledge: tt.knowledge, Courage: tt.courage, Compassion: tt.compassion})
			if got := slices.Contains(e.Tokens(), "4"); got != tt.want {
				t.Errorf("Secret option offered=%v want %v", got, tt.want)
			}
			if got := slices.Contains(Paths(e.state), PathEnlightenment); got != tt.want {
				t.Errorf("Paths offered enlightenment=%v want %v", got, tt.want)
			}
		})
	}
}

func TestResolveNestedVariants(t *testing.T) {
	base := models.NewPlayerState("Ada")
	helped := base.Apply(models.Effect{
		Compassion: 60,
		Set:        []models.Flag{models.FlagHelpedRobot, models.FlagSavedOwl},
	})
	scholar := base.Apply(models.Effect{Knowledge: 70, Set: []models.Flag{models.FlagHasCrystalChronicle}})

	tests := []struct {
		name  string
		path  Path
		state models.PlayerState
		want  string
	}{
		{"order ignores stats", PathOrder, helped, "ORDER ENDING: The Perfect Clock"},
		{"balance perfect", PathBalance, helped, "PERFECT ENDING: Master of Balance"},
		{"balance without robot", PathBalance, base.Apply(models.Effect{Compassion: 90, Set: []models.Flag{models.FlagSavedOwl}}), "GOOD ENDING: Harmony Restored"},
		{"balance low compassion", PathBalance, base.Apply(models.Effect{
			Compassion: 59,
			Set:        []models.Flag{models.FlagHelpedRobot, models.FlagSavedOwl},
		}), "GOOD ENDING: Harmony Restored"},
		{"evolution guided", PathEvolution, scholar, "EVOLUTION ENDING: Guided Progress"},
		{"evolution without chronicle", PathEvolution, base.Apply(models.Effect{Knowledge: 99}), "CHAOTIC ENDING: Unchecked Evolution"},
		{"evolution ignores compassion", PathEvolution, helped, "CHAOTIC ENDING: Unchecked Evolution"},
		{"enlightenment", PathEnlightenment, base, "SECRET ENDING: The Enlightened"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.path, tt.state)
			if !ok || got.Title != tt.want {
				t.Errorf("Resolve(%s) = %q, %v; want %q", tt.path, got.Title, ok, tt.want)
			}
		})
	}
	if _, ok := Resolve("nowhere", base); ok {
		t.Error("Expected unknown path to be rejected")
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := New("Ada")
		chapter := 1
		for i := 0; i < 400 && !e.Done(); i++ {
			tokens := e.Tokens()
			if len(tokens) == 0 {
				t.Fatalf("seed %d: dead end in %s", seed, e.scene)
			}
			step := choose(t, e, tokens[rng.Intn(len(tokens))])
			s := e.State()
			if s.Health < 0 || s.Health > 100 {
				t.Fatalf("seed %d: health %d out of range", seed, s.Health)
			}
			if s.Chapter < chapter {
				t.Fatalf("seed %d: chapter regressed %d -> %d", seed, chapter, s.Chapter)
			}
			chapter = s.Chapter
			if s.Dead() && (step.Ending == nil || !step.Ending.Failure) {
				t.Fatalf("seed %d: depleted health without a failure ending", seed)
			}
			if (step.Ending != nil) != e.Done() {
				t.Fatalf("seed %d: ending reported inconsistently", seed)
			}
		}
	}
}

func TestNarrationCoversGraph(t *testing.T) {
	s := models.NewPlayerState("Ada")
	d := newNarrationData(s)
	d.Reason = "Testing"
	for id, sc := range graph {
		if len(narrate(Outcome("scene."+string(id)), d)) == 0 {
			t.Errorf("scene %s has no description", id)
		}
		for o := range sc.Outcomes {
			if len(narrate(o, d)) == 0 {
				t.Errorf("outcome %s has no narration", o)
			}
		}
	}
	for _, ending := range append(Endings(), Failure("Testing")) {
		if len(narrate(ending.Key, d)) == 0 {
			t.Errorf("ending %s has no narration", ending.Key)
		}
	}
}

func TestGatesReferenceKnownOutcomes(t *testing.T) {
	// Drive each gate through both branches by toggling the state it reads.
	states := []models.PlayerState{
		models.NewPlayerState("Ada"),
		models.NewPlayerState("Ada").Apply(models.Effect{
			Knowledge: 100, Courage: 100, Compassion: 100,
			Grant: []string{
				models.ItemCrystalChronicle, models.ItemGearKey, models.ItemOilCan, models.ItemTimeSap,
				models.ItemLuminaBlossom, models.ItemTemporalHammer, models.ItemHeatGloves,
			},
			Set: []models.Flag{
				models.FlagVisitedVolcanic, models.FlagVisitedMechanical, models.FlagVisitedGarden,
				models.FlagHasCrystalChronicle, models.FlagSavedOwl, models.FlagHasTimeSap,
				models.FlagHasTemporalHammer, models.FlagMechanicalFixed, models.FlagOrganicFixed,
				models.FlagElementalFixed, models.FlagHelpedRobot,
			},
		}),
	}
	for id, sc := range graph {
		for _, s := range states {
			if sc.Enter != nil {
				if o := sc.Enter(s); o != "" {
					if _, ok := sc.Outcomes[o]; !ok {
						t.Errorf("scene %s: entry outcome %s has no consequence", id, o)
					}
				}
			}
			for _, opt := range sc.Options {
				o := opt.Gate(s)
				if _, ok := sc.Outcomes[o]; !ok {
					t.Errorf("scene %s option %s: outcome %s has no consequence", id, opt.Token, o)
				}
			}
		}
	}
}
