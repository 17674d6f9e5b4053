package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sahaj/followup/internal/api"
	"github.com/sahaj/followup/internal/config"
	"github.com/sahaj/followup/internal/logging"
	"github.com/sahaj/followup/internal/service"
	"github.com/sahaj/followup/internal/session"
	"github.com/sahaj/followup/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		// the TUI owns the terminal, so logging is file-only; losing it
		// is not fatal
		log = zap.NewNop()
	}
	defer log.Sync()

	store, err := session.NewStore("")
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, log)

	app := tui.New(context.Background(), cfg, tui.Deps{
		API:   client,
		Store: store,
		Dup:   &service.DupCheck{API: client},
		Log:   log,
	})

	log.Info("starting", zap.String("base_url", cfg.API.BaseURL))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
