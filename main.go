package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/breakdown"
	"dayflow/internal/config"
	"dayflow/internal/repo"
	"dayflow/internal/store"
	"dayflow/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	var provider breakdown.Provider = breakdown.Patterns{}
	if cfg.API.Key != "" {
		api := breakdown.NewAPIProvider(cfg.API.Key, cfg.API.BaseURL, cfg.API.Model)
		provider = breakdown.Fallback(api, breakdown.Patterns{})
	}

	p := tea.NewProgram(ui.NewModel(repo.New(s), s, provider), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
