package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tatianab/timekeeper/internal/config"
	"github.com/tatianab/timekeeper/internal/console"
	"github.com/tatianab/timekeeper/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Plain {
		c := console.New(os.Stdin, os.Stdout,
			console.WithTypingDelay(cfg.TypingDelay),
			console.WithClearScreen(),
		)
		if err := c.Run(ctx); err != nil {
			fmt.Printf("Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(cfg); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
