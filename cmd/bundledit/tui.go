package main

import (
	"fmt"

	"bundledit/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewTuiCmd creates the TUI command
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [bundle.csv]",
		Short: "Launch the terminal editor",
		Long:  `Edit a bundle in the terminal. Without an argument the last opened bundle is used.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Files.LastOpened
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no bundle given and no last opened bundle on record")
			}

			m := tui.New(cfg, newEngine(), path)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
