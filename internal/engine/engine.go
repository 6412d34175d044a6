// Package engine is the narrative state machine: it owns the PlayerState of
// a run, offers the options of the current scene and applies the outcome of
// whichever option the player picks.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/timekeeper/internal/models"
)

var (
	// ErrInvalidChoice is returned for a token that is not currently offered.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrRunOver is returned once an ending has been reached.
	ErrRunOver = errors.New("run is over")
)

// maxRedirects bounds scene-entry redirects within a single step.
const maxRedirects = 8

// Step is everything that happened in response to one choice.
type Step struct {
	Outcomes []Outcome
	Lines    []string
	Scene    SceneID
	Ending   *Ending
}

type Engine struct {
	state  models.PlayerState
	scene  SceneID
	ending *Ending
}

// New starts a run for the named player in the Awakening Chamber.
func New(name string) *Engine {
	return &Engine{
		state: models.NewPlayerState(name),
		scene: SceneEntrance,
	}
}

// Reset discards the current run and starts over with the same player.
func (e *Engine) Reset() {
	e.state = e.state.Reset()
	e.scene = SceneEntrance
	e.ending = nil
}

// State returns a copy of the current state.
func (e *Engine) State() models.PlayerState {
	return e.state.Apply(models.Effect{})
}

func (e *Engine) Scene() *Scene {
	s, _ := Lookup(e.scene)
	return s
}

func (e *Engine) Done() bool {
	return e.ending != nil
}

// Ending returns the ending reached, if any.
func (e *Engine) Ending() (Ending, bool) {
	if e.ending == nil {
		return Ending{}, false
	}
	return *e.ending, true
}

// Start returns the opening narration of the run.
func (e *Engine) Start() Step {
	return Step{
		Lines: narrate("intro", newNarrationData(e.state)),
		Scene: e.scene,
	}
}

// Describe renders the current scene's description for the current state.
func (e *Engine) Describe() []string {
	return narrate(Outcome("scene."+string(e.scene)), newNarrationData(e.state))
}

// Options returns the options offered in the current state, in menu order.
func (e *Engine) Options() []Option {
	sc := e.Scene()
	if sc == nil || e.Done() {
		return nil
	}
	var opts []Option
	for _, o := range sc.Options {
		if o.offered(e.state) {
			opts = append(opts, o)
		}
	}
	return opts
}

// Choices is Options as seen by a presentation surface.
func (e *Engine) Choices() []Choice {
	opts := e.Options()
	cs := make([]Choice, 0, len(opts))
	for _, o := range opts {
		cs = append(cs, Choice{Token: o.Token, Label: o.Label, Aliases: o.Aliases})
	}
	return cs
}

// Tokens returns the currently valid choice tokens.
func (e *Engine) Tokens() []string {
	opts := e.Options()
	tokens := make([]string, 0, len(opts))
	for _, o := range opts {
		tokens = append(tokens, o.Token)
	}
	return tokens
}

// Choose applies the option selected by token. Invalid tokens and choices
// made after the run ended leave the state untouched.
func (e *Engine) Choose(token string) (Step, error) {
	if e.Done() {
		return Step{}, ErrRunOver
	}
	var opt *Option
	for _, o := range e.Options() {
		if o.Token == token {
			opt = &o
			break
		}
	}
	if opt == nil {
		return Step{}, fmt.Errorf("%w %q: want one of %s", ErrInvalidChoice, token, strings.Join(e.Tokens(), ", "))
	}

	var step Step
	e.resolve(opt.Gate(e.state), &step)
	step.Scene = e.scene
	return step, nil
}

// resolve applies outcome o of the current scene and follows any scene
// change, including entry effects and redirects of the scene entered.
func (e *Engine) resolve(o Outcome, step *Step) {
	for hops := 0; o != "" && hops <= maxRedirects; hops++ {
		sc := e.Scene()
		c, ok := sc.Outcomes[o]
		if !ok {
			return
		}

		before := e.state
		e.state = e.state.Apply(c.Effect)
		step.Outcomes = append(step.Outcomes, o)
		step.Lines = append(step.Lines, narrate(o, newNarrationData(before))...)

		if e.state.Dead() {
			e.finish(Failure(sc.Failure), step)
			return
		}
		if c.Path != "" {
			if ending, ok := Resolve(c.Path, e.state); ok {
				e.finish(ending, step)
			}
			return
		}
		if c.Next == "" {
			return
		}

		e.scene = c.Next
		o = ""
		if next := e.Scene(); next != nil && next.Enter != nil {
			o = next.Enter(e.state)
		}
	}
}

func (e *Engine) finish(ending Ending, step *Step) {
	d := newNarrationData(e.state)
	d.Reason = ending.Reason

	state, ok := e.state.WithEnding(ending.Title)
	if !ok {
		return
	}
	e.state = state
	e.ending = &ending
	e.scene = SceneEnding
	step.Ending = &ending
	step.Lines = append(step.Lines, narrate(ending.Key, d)...)
}
