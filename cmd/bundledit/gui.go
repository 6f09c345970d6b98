package main

import (
	"bundledit/internal/gui"

	"github.com/spf13/cobra"
)

// NewGuiCmd creates the GUI command
func NewGuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [bundle.csv]",
		Short: "Launch the graphical editor",
		Long:  `Launch the Fyne editor window. With a bundle argument the file is opened at startup; otherwise the last opened bundle is reopened when auto_load is set.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				// Reuse the startup auto-load path for an explicit argument.
				cfg.Files.LastOpened = args[0]
				cfg.Files.AutoLoad = true
			}
			app := gui.NewApp(cfg, newEngine())
			app.Run()
		},
	}
}
