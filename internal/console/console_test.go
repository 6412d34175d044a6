package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tatianab/timekeeper/internal/engine"
	"github.com/tatianab/timekeeper/internal/models"
)

func lines(ls ...string) io.Reader {
	return strings.NewReader(strings.Join(ls, "\n") + "\n")
}

func TestPromptChoiceRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	s := New(lines("", "banana", "7", "volcanic"), &out)
	choices := engine.New("Ada").Choices()

	tok, err := s.PromptChoice(context.Background(), choices)
	if err != nil {
		t.Fatalf("PromptChoice failed: %v", err)
	}
	if tok != "4" {
		t.Errorf("Expected token 4, got %q", tok)
	}
	if got := strings.Count(out.String(), "Please enter one of: 1, 2, 3, 4, 5"); got != 3 {
		t.Errorf("Expected 3 re-prompts, got %d\n%s", got, out.String())
	}
}

func TestPromptChoiceEOF(t *testing.T) {
	s := New(strings.NewReader(""), io.Discard)
	_, err := s.PromptChoice(context.Background(), engine.New("Ada").Choices())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Expected io.EOF, got %v", err)
	}
}

func TestPromptTextTrims(t *testing.T) {
	s := New(lines("  Ada  "), io.Discard)
	name, err := s.PromptText(context.Background(), engine.NamePrompt)
	if err != nil || name != "Ada" {
		t.Fatalf("PromptText = %q, %v", name, err)
	}
}

func TestDisplayTypesOneRuneAtATime(t *testing.T) {
	var out bytes.Buffer
	var slept int
	s := New(strings.NewReader(""), &out, WithTypingDelay(time.Millisecond))
	s.sleep = func(time.Duration) { slept++ }

	s.Display("héllo")
	if out.String() != "héllo\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if slept != 5 {
		t.Errorf("Expected 5 pauses, got %d", slept)
	}
}

func TestStatusLine(t *testing.T) {
	st := models.NewPlayerState("Ada").Apply(models.Effect{Courage: 15, Grant: []string{models.ItemOilCan}})
	want := "HEALTH: 100/100 | KNOWLEDGE: 0 | COURAGE: 15 | COMPASSION: 0\nINVENTORY: Oil Can"
	if got := StatusLine(st); got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
}

func TestRunFullGame(t *testing.T) {
	script := []string{
		"help", // main menu
		"1",
		"Ada",
		"take chronicle",
		"blue", "tools", "panel", "owl", "owl", "back",
		"green", "tree", "flowers", "keeper", "back",
		"red", "hammer", "gloves", "runes", "retreat",
		"proceed",
		"robot", "yes",
		"1", "key",
		"2", "sap",
		"3", "chronicle",
		"activate",
		"order",
		"exit",
	}
	var out bytes.Buffer
	s := New(lines(script...), &out)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"HOW TO PLAY",
		"Welcome, Ada!",
		"ENDING: ORDER ENDING: The Perfect Clock",
		"HERO: Ada",
		"  - Healed Elemental Fracture",
		"THANK YOU FOR PLAYING!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q", want)
		}
	}
	if strings.Contains(got, "Please enter one of") {
		t.Errorf("Unexpected re-prompt in output:\n%s", got)
	}
}

func TestClearScreenKeepsNarrationUntilEnter(t *testing.T) {
	var out bytes.Buffer
	s := New(lines("help", "", "1", "Ada", "", "1", ""), &out, WithClearScreen())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	screens := strings.Split(out.String(), "\033[H\033[2J")
	for _, text := range []string{"OBJECTIVE:", "Welcome, Ada!", "You take the CRYSTAL CHRONICLE."} {
		found := false
		for _, screen := range screens {
			at := strings.Index(screen, text)
			if at < 0 {
				continue
			}
			found = true
			if !strings.Contains(screen[at:], "Press Enter to continue...") {
				t.Errorf("%q was cleared before a pause:\n%s", text, screen)
			}
		}
		if !found {
			t.Errorf("Output missing %q", text)
		}
	}
}

func TestPauseIsNoOpWithoutClearing(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)
	if err := s.Pause(context.Background()); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Unexpected output %q", out.String())
	}
}
