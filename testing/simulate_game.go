package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/timekeeper/internal/config"
	"github.com/tatianab/timekeeper/internal/console"
	"github.com/tatianab/timekeeper/internal/engine"
	"github.com/tatianab/timekeeper/internal/input"
	"github.com/tatianab/timekeeper/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

// historyLines is how much of the transcript the player model sees.
const historyLines = 40

var (
	errTurnLimit       = errors.New("turn limit reached")
	errUnknownChoice   = errors.New("choice matches no option")
	errScriptExhausted = errors.New("script exhausted")
)

// player decides what the simulated hero does.
type player interface {
	Name() string
	Choose(ctx context.Context, transcript []string, s models.PlayerState, choices []engine.Choice) (string, error)
}

// script is a recorded playthrough loaded from YAML.
type script struct {
	Name    string   `yaml:"name"`
	Choices []string `yaml:"choices"`
}

type scriptPlayer struct {
	script
	next int
}

func loadScript(path string) (*scriptPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var sp scriptPlayer
	if err := yaml.Unmarshal(data, &sp.script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return &sp, nil
}

func (p *scriptPlayer) Name() string { return p.script.Name }

func (p *scriptPlayer) Choose(_ context.Context, _ []string, _ models.PlayerState, _ []engine.Choice) (string, error) {
	if p.next >= len(p.Choices) {
		return "", fmt.Errorf("%w after %d choices", errScriptExhausted, p.next)
	}
	c := p.Choices[p.next]
	p.next++
	return c, nil
}

type geminiPlayer struct {
	model *genai.GenerativeModel
}

func (p *geminiPlayer) Name() string { return "Gemini" }

func (p *geminiPlayer) Choose(ctx context.Context, transcript []string, s models.PlayerState, choices []engine.Choice) (string, error) {
	if len(transcript) > historyLines {
		transcript = transcript[len(transcript)-historyLines:]
	}
	var opts strings.Builder
	for _, c := range choices {
		fmt.Fprintf(&opts, "%s. %s\n", c.Token, c.Label)
	}

	prompt := fmt.Sprintf(`You are playing a text adventure about a Timekeeper restoring a broken clockwork world.
Your goal is to reach the best ending without running out of health.

Recent story:
%s

%s

Options:
%s
Which option do you pick? Return ONLY the option number.`,
		strings.Join(transcript, "\n"),
		console.StatusLine(s),
		opts.String(),
	)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate choice: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return choices[0].Token, nil
	}
	answer := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if tok, ok := input.Resolve(answer, choices); ok {
		return tok, nil
	}
	log.Printf("unusable answer %q, taking option %s", answer, choices[0].Token)
	return choices[0].Token, nil
}

// simSurface prints the run to stdout and lets a player pick the options.
type simSurface struct {
	player     player
	maxTurns   int
	turns      int
	transcript []string
	state      models.PlayerState
}

func (s *simSurface) Display(text string) {
	fmt.Println(text)
	s.transcript = append(s.transcript, text)
}

func (s *simSurface) DisplayStats(st models.PlayerState) {
	s.state = st
	fmt.Println(console.StatusLine(st))
}

func (s *simSurface) Clear() {
	fmt.Println()
}

func (s *simSurface) PromptText(context.Context, string) (string, error) {
	return s.player.Name(), nil
}

func (s *simSurface) PromptChoice(ctx context.Context, choices []engine.Choice) (string, error) {
	s.turns++
	if s.turns > s.maxTurns {
		return "", fmt.Errorf("%w after %d turns", errTurnLimit, s.maxTurns)
	}
	fmt.Printf("--- Turn %d ---\n", s.turns)
	action, err := s.player.Choose(ctx, s.transcript, s.state, choices)
	if err != nil {
		return "", err
	}
	tok, ok := input.Resolve(action, choices)
	if !ok {
		return "", fmt.Errorf("%w: %q on turn %d", errUnknownChoice, action, s.turns)
	}
	fmt.Printf("Player Action: %s (%s)\n", action, tok)
	return tok, nil
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var p player
	if cfg.SimScript != "" {
		sp, err := loadScript(cfg.SimScript)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		p = sp
	} else {
		if err := cfg.RequireGemini(); err != nil {
			log.Fatalf("No script and no player model: %v", err)
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		p = &geminiPlayer{model: client.GenerativeModel(cfg.PlayerModel)}
	}

	report, err := engine.Play(ctx, &simSurface{player: p, maxTurns: cfg.SimMaxTurns})
	if err != nil {
		log.Fatalf("Simulation stopped: %v", err)
	}

	out, err := report.YAML()
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	fmt.Println("--- Report ---")
	fmt.Print(string(out))
}
