package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tatianab/timekeeper/internal/engine"
	"github.com/tatianab/timekeeper/internal/models"
)

// HowToPlay is the static help text of the main menu.
const HowToPlay = `OBJECTIVE:
  Restore the Chrono-Core and choose time's future

CONTROLS:
  - Type numbers (or a keyword such as "red") to make choices
  - Collect items to solve puzzles
  - Manage your stats (Health, Knowledge, Courage, Compassion)

TIPS:
  - Explore all areas in Chapter 1
  - Help characters you meet
  - Different stats unlock different choices
  - Your choices determine the ending

COURAGE TIPS:
  - Enter Volcanic area: +15 Courage
  - Enter Mechanical area: +10 Courage
  - Try dangerous actions: +5-25 Courage
  - Complete chapters: +20-30 Courage`

var (
	// MenuChoices are the main-menu options.
	MenuChoices = []engine.Choice{
		{Token: "1", Label: "Start New Game", Aliases: []string{"start", "new", "play"}},
		{Token: "2", Label: "How to Play", Aliases: []string{"help", "how"}},
		{Token: "3", Label: "Exit", Aliases: []string{"exit", "quit"}},
	}
	// AgainChoices are offered after a run's report.
	AgainChoices = []engine.Choice{
		{Token: "1", Label: "Play Again", Aliases: []string{"again", "play", "yes"}},
		{Token: "2", Label: "Exit Game", Aliases: []string{"exit", "quit", "no"}},
	}
)

// Run shows the main menu until the player exits or input runs out.
func (s *Surface) Run(ctx context.Context) error {
	for {
		s.Clear()
		s.Banner("TIMEKEEPER CHRONICLES")
		choice, err := s.PromptChoice(ctx, MenuChoices)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := s.playLoop(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			s.Banner("THANK YOU FOR PLAYING!")
			return nil
		case "2":
			s.Clear()
			s.Banner("HOW TO PLAY")
			fmt.Fprintln(s.out, HowToPlay)
			if err := s.Pause(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "3":
			s.Banner("GOODBYE!")
			s.Display("May your time be well spent!")
			return nil
		}
	}
}

// playLoop plays runs until the player declines to play again.
func (s *Surface) playLoop(ctx context.Context) error {
	for {
		s.Banner("TIMEKEEPER CHRONICLES")
		report, err := engine.Play(ctx, s)
		if err != nil {
			return err
		}
		s.ShowReport(report)
		again, err := s.PromptChoice(ctx, AgainChoices)
		if err != nil {
			return err
		}
		if again != "1" {
			return nil
		}
	}
}

// ShowReport writes the end-of-run summary.
func (s *Surface) ShowReport(r models.Report) {
	s.Banner("ADVENTURE COMPLETE")
	fmt.Fprintf(s.out, "HERO: %s\nENDING: %s\n\n", r.Hero, r.Ending)
	fmt.Fprintln(s.out, "FINAL STATISTICS:")
	fmt.Fprintf(s.out, "  Health: %d/%d\n  Knowledge: %d\n  Courage: %d\n  Compassion: %d\n",
		r.Health, models.MaxHealth, r.Knowledge, r.Courage, r.Compassion)
	fmt.Fprintln(s.out, "\nINVENTORY:")
	fmt.Fprintln(s.out, bullets(r.Inventory, "  (Empty)"))
	fmt.Fprintln(s.out, "\nACHIEVEMENTS:")
	fmt.Fprintln(s.out, bullets(r.Achievements, "  (No achievements)"))
}

func bullets(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}
