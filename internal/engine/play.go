package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/timekeeper/internal/models"
)

// Surface is the presentation side of a run. PromptChoice must only return
// one of the offered tokens; PromptText may return an empty string.
type Surface interface {
	Display(text string)
	DisplayStats(s models.PlayerState)
	PromptChoice(ctx context.Context, choices []Choice) (string, error)
	PromptText(ctx context.Context, label string) (string, error)
	Clear()
}

// Pauser is implemented by surfaces that must hold narration on screen
// until the player acknowledges it, because Clear would erase it.
type Pauser interface {
	Pause(ctx context.Context) error
}

func pause(ctx context.Context, s Surface) error {
	if p, ok := s.(Pauser); ok {
		return p.Pause(ctx)
	}
	return nil
}

// NamePrompt is the label used to ask for the player's name.
const NamePrompt = "What is your name, destined Timekeeper?"

// Play runs one game on s from name entry to an ending and returns the
// outcome report. A surface error abandons the run.
func Play(ctx context.Context, s Surface) (models.Report, error) {
	s.Clear()
	name, err := s.PromptText(ctx, NamePrompt)
	if err != nil {
		return models.Report{}, fmt.Errorf("read name: %w", err)
	}
	eng := New(strings.TrimSpace(name))
	s.Display(fmt.Sprintf("Welcome, %s! Your journey begins...", eng.State().Name))
	show(s, eng.Start())
	if err := pause(ctx, s); err != nil {
		return models.Report{}, fmt.Errorf("pause: %w", err)
	}
	return Continue(ctx, eng, s)
}

// Continue drives eng on s until the run ends.
func Continue(ctx context.Context, eng *Engine, s Surface) (models.Report, error) {
	for !eng.Done() {
		if err := ctx.Err(); err != nil {
			return models.Report{}, err
		}

		s.Clear()
		s.Display(strings.ToUpper(eng.Scene().Title))
		for _, line := range eng.Describe() {
			s.Display(line)
		}
		s.DisplayStats(eng.State())

		token, err := s.PromptChoice(ctx, eng.Choices())
		if err != nil {
			return models.Report{}, fmt.Errorf("prompt choice: %w", err)
		}
		step, err := eng.Choose(token)
		switch {
		case errors.Is(err, ErrInvalidChoice):
			s.Display(fmt.Sprintf("Please enter one of: %s", strings.Join(eng.Tokens(), ", ")))
		case err != nil:
			return models.Report{}, err
		default:
			show(s, step)
			if len(step.Lines) == 0 || eng.Done() {
				continue
			}
		}
		if err := pause(ctx, s); err != nil {
			return models.Report{}, fmt.Errorf("pause: %w", err)
		}
	}
	return models.NewReport(eng.State()), nil
}

func show(s Surface, step Step) {
	for _, line := range step.Lines {
		s.Display(line)
	}
	if step.Ending != nil {
		s.Display("ENDING: " + step.Ending.Title)
	}
}
