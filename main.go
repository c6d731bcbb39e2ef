package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"catui/config"
	"catui/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error", err.Error())
		p := tea.NewProgram(
			errorModal,
			tea.WithAltScreen(),
		)
		if _, runErr := p.Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog()

	p := tea.NewProgram(
		ui.NewAppView(cfg, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running catui: %v\n", err)
		os.Exit(1)
	}
}
