package engine

import (
	"strings"

	"github.com/tatianab/timekeeper/internal/models"
)

// SceneID names a node in the scene graph.
type SceneID string

const (
	SceneEntrance           SceneID = "entrance"
	SceneMechanical         SceneID = "mechanical"
	SceneGarden             SceneID = "garden"
	SceneVolcanic           SceneID = "volcanic"
	SceneCore               SceneID = "core"
	SceneMechanicalFracture SceneID = "fracture_mechanical"
	SceneOrganicFracture    SceneID = "fracture_organic"
	SceneElementalFracture  SceneID = "fracture_elemental"
	SceneRobot              SceneID = "robot"
	SceneFinal              SceneID = "final"
	SceneEnding             SceneID = "ending"
)

// Outcome tags the result of a gate. It keys both the consequence table of
// the scene and the narration catalog.
type Outcome string

// Consequence is what an outcome does to the run. An empty Next keeps the
// player in the current scene. A non-empty Path hands the run to the ending
// resolver.
type Consequence struct {
	Effect models.Effect
	Next   SceneID
	Path   Path
}

// Option is one menu entry of a scene.
type Option struct {
	Token   string
	Label   string
	Aliases []string
	Visible models.Predicate
	Gate    Gate
}

func (o Option) offered(s models.PlayerState) bool {
	return o.Visible == nil || s.Query(o.Visible)
}

// Scene is a node of the narrative graph.
type Scene struct {
	ID      SceneID
	Title   string
	Chapter int
	// Failure names the cause of death when health runs out here.
	Failure string
	// Enter, when set, is evaluated every time the scene is entered. An
	// empty outcome means nothing happens on entry.
	Enter    Gate
	Options  []Option
	Outcomes map[Outcome]Consequence
}

// Choice is the presentation-facing view of an offered option.
type Choice struct {
	Token   string
	Label   string
	Aliases []string
}

func (c Choice) Key() string { return c.Token }

// Words returns the aliases plus the lowercased words of the label.
func (c Choice) Words() []string {
	words := append([]string{}, c.Aliases...)
	for _, w := range strings.Fields(strings.ToLower(c.Label)) {
		w = strings.Trim(w, "()")
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

var graph = buildGraph()

func buildGraph() map[SceneID]*Scene {
	g := make(map[SceneID]*Scene)
	for _, s := range append(awakeningScenes(), coreScenes()...) {
		g[s.ID] = s
	}
	g[SceneFinal] = finalScene()
	return g
}

// Lookup returns the scene with the given id.
func Lookup(id SceneID) (*Scene, bool) {
	s, ok := graph[id]
	return s, ok
}
