// Package console is a line-oriented presentation surface: it writes
// narration to a writer and reads choices one line at a time.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/timekeeper/internal/engine"
	"github.com/tatianab/timekeeper/internal/input"
	"github.com/tatianab/timekeeper/internal/models"
)

type Surface struct {
	in    *bufio.Scanner
	out   io.Writer
	delay time.Duration
	clear bool
	sleep func(time.Duration)

	bannerStyle lipgloss.Style
	statsStyle  lipgloss.Style
	promptStyle lipgloss.Style
}

type Option func(*Surface)

// WithTypingDelay reveals displayed text one character at a time.
func WithTypingDelay(d time.Duration) Option {
	return func(s *Surface) { s.delay = d }
}

// WithClearScreen makes Clear emit the ANSI clear-screen sequence.
func WithClearScreen() Option {
	return func(s *Surface) { s.clear = true }
}

func New(r io.Reader, w io.Writer, opts ...Option) *Surface {
	renderer := lipgloss.NewRenderer(w)
	s := &Surface{
		in:    bufio.NewScanner(r),
		out:   w,
		sleep: time.Sleep,
		bannerStyle: renderer.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2),
		statsStyle: renderer.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Border(lipgloss.NormalBorder(), true, false),
		promptStyle: renderer.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Display writes text followed by a newline, typing it out when a delay is
// configured.
func (s *Surface) Display(text string) {
	if s.delay <= 0 {
		fmt.Fprintln(s.out, text)
		return
	}
	for _, r := range text {
		fmt.Fprint(s.out, string(r))
		s.sleep(s.delay)
	}
	fmt.Fprintln(s.out)
}

func (s *Surface) DisplayStats(st models.PlayerState) {
	fmt.Fprintln(s.out, s.statsStyle.Render(StatusLine(st)))
}

// StatusLine formats the stats and inventory of st.
func StatusLine(st models.PlayerState) string {
	line := fmt.Sprintf("HEALTH: %d/%d | KNOWLEDGE: %d | COURAGE: %d | COMPASSION: %d",
		st.Health, models.MaxHealth, st.Knowledge, st.Courage, st.Compassion)
	if len(st.Inventory) > 0 {
		line += "\nINVENTORY: " + strings.Join(st.Inventory, ", ")
	}
	return line
}

func (s *Surface) Clear() {
	if s.clear {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

// Banner writes a framed title.
func (s *Surface) Banner(title string) {
	fmt.Fprintln(s.out, s.bannerStyle.Render(title))
}

func (s *Surface) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// PromptChoice lists choices and reads lines until one resolves to an
// offered token.
func (s *Surface) PromptChoice(ctx context.Context, choices []engine.Choice) (string, error) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "What will you do?")
	tokens := make([]string, 0, len(choices))
	for _, c := range choices {
		fmt.Fprintf(s.out, "%s. %s\n", c.Token, c.Label)
		tokens = append(tokens, c.Token)
	}
	for {
		fmt.Fprint(s.out, s.promptStyle.Render("Your choice: "))
		line, err := s.readLine(ctx)
		if err != nil {
			return "", err
		}
		if tok, ok := input.Resolve(line, choices); ok {
			return tok, nil
		}
		s.Display(fmt.Sprintf("Please enter one of: %s", strings.Join(tokens, ", ")))
	}
}

// Pause waits for Enter before narration can be cleared away. Without
// screen clearing nothing is lost, so it returns at once.
func (s *Surface) Pause(ctx context.Context) error {
	if !s.clear {
		return nil
	}
	fmt.Fprint(s.out, s.promptStyle.Render("Press Enter to continue..."))
	_, err := s.readLine(ctx)
	return err
}

func (s *Surface) PromptText(ctx context.Context, label string) (string, error) {
	s.Display(label)
	fmt.Fprint(s.out, "> ")
	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var (
	_ engine.Surface = (*Surface)(nil)
	_ engine.Pauser  = (*Surface)(nil)
)
